// Command marisa-common-prefix-search reports, for each input line,
// every key that is a prefix of it.
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
		Use:   "marisa-common-prefix-search <dictionary>",
		Short: "Find keys that are prefixes of each line read from stdin",
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
				found := false
				for trie.CommonPrefixSearch(agent) {
					found = true
					fmt.Fprintf(w, "%s\t%s\t%d\n", line, agent.Key(), agent.KeyID())
				}
				if !found {
					fmt.Fprintf(w, "%s\n", line)
				}
			}
			return scanner.Err()
		},
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "marisa-common-prefix-search:", err)
		os.Exit(1)
	}
}
