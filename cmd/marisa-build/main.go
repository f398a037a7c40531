// Command marisa-build reads keys (optionally tab-weighted) from
// stdin or files and writes a trie dictionary.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hideo55/go-marisa"
	"github.com/spf13/cobra"
)

func main() {
	var (
		numTries   uint32
		binaryTail bool
		labelOrder bool
		cacheLevel uint32
		output     string
	)

	cmd := &cobra.Command{
		Use:     "marisa-build [files...]",
		Short:   "Build a MARISA trie dictionary from text input",
		Version: "1.0.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromFlags(numTries, cacheLevel, binaryTail, labelOrder)
			if err != nil {
				return err
			}

			ks := marisa.NewKeyset()
			if len(args) == 0 {
				if err := readKeys(os.Stdin, ks); err != nil {
					return err
				}
			}
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				err = readKeys(f, ks)
				f.Close()
				if err != nil {
					return err
				}
			}

			trie := marisa.NewTrie()
			trie.Build(ks, cfg)

			if output == "" {
				return trie.WriteTo(os.Stdout)
			}
			return trie.Save(output)
		},
	}

	cmd.Flags().Uint32VarP(&numTries, "num-tries", "n", 3, "number of tries [1-127]")
	cmd.Flags().BoolVarP(&binaryTail, "binary-tail", "b", false, "build with binary TAIL (default: text)")
	cmd.Flags().BoolVarP(&labelOrder, "label-order", "l", false, "arrange siblings in label order (default: weight)")
	cmd.Flags().Uint32VarP(&cacheLevel, "cache-level", "c", 3, "cache level [1-5]")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "marisa-build:", err)
		os.Exit(1)
	}
}

func configFromFlags(numTries, cacheLevel uint32, binaryTail, labelOrder bool) (marisa.Config, error) {
	if cacheLevel < 1 || cacheLevel > 5 {
		return marisa.Config{}, fmt.Errorf("cache level must be 1-5, got %d", cacheLevel)
	}
	levels := []marisa.CacheLevel{
		marisa.CacheLevelTiny,
		marisa.CacheLevelSmall,
		marisa.CacheLevelNormal,
		marisa.CacheLevelLarge,
		marisa.CacheLevelHuge,
	}

	tailMode := marisa.TailModeText
	if binaryTail {
		tailMode = marisa.TailModeBinary
	}
	nodeOrder := marisa.NodeOrderWeight
	if labelOrder {
		nodeOrder = marisa.NodeOrderLabel
	}

	flags := numTries&0x7F | uint32(tailMode) | uint32(nodeOrder) | uint32(levels[cacheLevel-1])
	return marisa.ParseConfig(flags)
}

func readKeys(f *os.File, ks *marisa.Keyset) error {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if pos := strings.LastIndexByte(line, '\t'); pos >= 0 {
			if weight, err := strconv.ParseFloat(line[pos+1:], 32); err == nil {
				if err := ks.PushBackWeighted([]byte(line[:pos]), float32(weight)); err != nil {
					return err
				}
				continue
			}
		}
		if err := ks.PushBackString(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
