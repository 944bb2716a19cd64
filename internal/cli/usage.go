// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"

	"deltafilter/internal/version"
)

// installUsage sets a grouped help text on fs. Defaults are read back from
// the registered flags.
func installUsage(fs *flag.FlagSet) {
	name := fs.Name()
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – filter a delta alignment file\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage: %s [options] <deltafile|->\n", name)
		fmt.Fprintln(out, "Filters run in the order their flags first appear.")

		fmt.Fprintln(out, "\nFilters:")
		fmt.Fprintln(out, "  -i, --min-identity float     Minimum alignment identity [0,100]")
		fmt.Fprintln(out, "  -l, --min-length int         Minimum alignment length on the reference")
		fmt.Fprintln(out, "  -u, --min-unique float       Minimum alignment uniqueness [0,100]")
		fmt.Fprintln(out, "  -q, --query                  Query chain: keep the best consistent set per query")
		fmt.Fprintln(out, "  -r, --reference              Reference chain: keep the best consistent set per reference")
		fmt.Fprintln(out, "  -g, --global                 Global chain per sequence pair")
		fmt.Fprintln(out, "  -1, --one-to-one             Alignments on both the query and reference chains")
		fmt.Fprintln(out, "  -m, --many-to-many           Alignments on the query or the reference chain")
		fmt.Fprintf(out, "  -e, --epsilon float          Keep repeats within this percent of the best chain (-1=best only) [%s]\n", def("epsilon"))
		fmt.Fprintf(out, "  -o, --max-overlap float      Max overlap between chained alignments, %% of shorter [%s]\n", def("max-overlap"))

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "      --ref-fasta file         Reference FASTA for length checks (repeatable)")
		fmt.Fprintln(out, "      --qry-fasta file         Query FASTA for length checks (repeatable)")

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int            Worker threads for filter passes (0=all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "      --output string          Output: delta | coords | json | jsonl [%s]\n", def("output"))
		fmt.Fprintf(out, "      --no-header              Suppress header line in coords output [%s]\n", def("no-header"))
		fmt.Fprintf(out, "      --stats                  Print a JSON run summary to stderr [%s]\n", def("stats"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "      --quiet                  Suppress non-essential messages [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, --version                Print version and exit")
		fmt.Fprintln(out, "  -h, --help                   Show this help and exit")
	}
}
