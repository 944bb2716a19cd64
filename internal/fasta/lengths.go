// internal/fasta/lengths.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"deltafilter/internal/input"
)

// Lengths maps sequence ids to their lengths in bases (or residues).
type Lengths map[string]int64

// Length implements graph.LengthLookup.
func (l Lengths) Length(id string) (int64, bool) {
	n, ok := l[id]
	return n, ok
}

// LoadLengths indexes every sequence of the given FASTA files ("-" reads
// stdin, gzip is detected). An id seen twice with different lengths is an
// error; an exact repeat is accepted.
func LoadLengths(ctx context.Context, paths ...string) (Lengths, error) {
	out := make(Lengths)
	for _, p := range paths {
		rc, err := input.Open(p)
		if err != nil {
			return nil, err
		}
		err = scanLengths(ctx, rc, func(id string, n int64) error {
			if have, ok := out[id]; ok && have != n {
				return fmt.Errorf("sequence %q has length %d and %d", id, have, n)
			}
			out[id] = n
			return nil
		})
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return out, nil
}

// scanLengths streams r and calls emit once per record with its id and
// sequence length. Whitespace inside sequence lines is not counted.
func scanLengths(ctx context.Context, r io.Reader, emit func(id string, n int64) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id    string
		n     int64
		inRec bool
	)
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if inRec {
				if err := emit(id, n); err != nil {
					return err
				}
			}
			id, n, inRec = parseHeaderID(line[1:]), 0, true
			if id == "" {
				return errors.New("empty FASTA header")
			}
			continue
		}
		if !inRec {
			return errors.New("sequence data before first FASTA header")
		}
		for _, c := range line {
			if c != ' ' && c != '\t' && c != '\r' {
				n++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	if inRec {
		return emit(id, n)
	}
	return nil
}

// parseHeaderID returns the first whitespace-delimited token of a header.
func parseHeaderID(hdr []byte) string {
	f := bytes.Fields(hdr)
	if len(f) == 0 {
		return ""
	}
	return string(f[0])
}
