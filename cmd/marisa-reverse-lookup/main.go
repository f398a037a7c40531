// Command marisa-reverse-lookup restores the key text for each
// numeric key id read from stdin.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/hideo55/go-marisa"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:   "marisa-reverse-lookup <dictionary>",
		Short: "Restore keys from ids read from stdin against a MARISA trie dictionary",
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
				id, err := strconv.ParseUint(scanner.Text(), 10, 32)
				if err != nil {
					return fmt.Errorf("invalid key id %q: %w", scanner.Text(), err)
				}
				agent.SetQueryID(uint32(id))
				trie.ReverseLookup(agent)
				fmt.Fprintf(w, "%s\n", agent.Key())
			}
			return scanner.Err()
		},
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "marisa-reverse-lookup:", err)
		os.Exit(1)
	}
}
