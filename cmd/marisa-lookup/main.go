// Command marisa-lookup reports, for each input line, whether it is
// an exact key in the given trie dictionary.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/hideo55/go-marisa"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:   "marisa-lookup <dictionary>",
		Short: "Look up keys read from stdin against a MARISA trie dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trie := marisa.NewTrie()
			if err := trie.Load(args[0]); err != nil {
				return err
			}

			agent := marisa.NewAgent()
			scanner := bufio.NewScanner(os.Stdin)
			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()

			for scanner.Scan() {
				line := scanner.Text()
				agent.SetQueryString(line)
				if trie.Lookup(agent) {
					fmt.Fprintf(w, "%s\t%d\n", line, agent.KeyID())
				} else {
					fmt.Fprintf(w, "%s\n", line)
				}
			}
			return scanner.Err()
		},
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "marisa-lookup:", err)
		os.Exit(1)
	}
}
