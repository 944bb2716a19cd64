// internal/output/text.go
package output

import (
	"bufio"
	"io"

	"deltafilter/internal/delta"
)

// WriteCoords prints one TSV line per alignment, optionally after TSVHeader.
func WriteCoords(w io.Writer, recs []*delta.Record, header bool) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	if header {
		if _, err := bw.WriteString(TSVHeader + "\n"); err != nil {
			return err
		}
	}
	var line []byte
	for _, rec := range recs {
		for i := range rec.Alignments {
			line = AppendRowTSV(line[:0], rec, &rec.Alignments[i])
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
