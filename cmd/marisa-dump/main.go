// Command marisa-dump prints every key stored in a trie dictionary,
// using a predictive search over the empty prefix.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/hideo55/go-marisa"
	"github.com/spf13/cobra"
)

func main() {
	var (
		delimiter string
		mmap      bool
	)

	cmd := &cobra.Command{
		Use:   "marisa-dump <dictionary>",
		Short: "Dump all keys from a MARISA trie dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trie := marisa.NewTrie()
			var loadErr error
			if mmap {
				loadErr = trie.Mmap(args[0])
				defer trie.Close()
			} else {
				loadErr = trie.Load(args[0])
			}
			if loadErr != nil {
				return loadErr
			}

			agent := marisa.NewAgent()
			agent.SetQueryString("")

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()

			numKeys := 0
			for trie.PredictiveSearch(agent) {
				fmt.Fprintf(w, "%s%s", agent.Key(), delimiter)
				numKeys++
			}
			fmt.Fprintf(os.Stderr, "#keys: %d\n", numKeys)
			return nil
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "\n", "delimiter between dumped keys")
	cmd.Flags().BoolVarP(&mmap, "mmap-dictionary", "m", false, "use memory-mapped I/O")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "marisa-dump:", err)
		os.Exit(1)
	}
}
