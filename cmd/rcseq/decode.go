package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gavlooth/rcseq/pkg/codec"
	"github.com/gavlooth/rcseq/pkg/container"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Parse textual form and print its top-level shape",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	text, err := readInput(path)
	if err != nil {
		return err
	}

	s := newStore()
	h, err := codec.Decode(s, strings.TrimRight(text, "\n"))
	if err != nil {
		logger.Error("decode failed", zap.Error(err))
		return fmt.Errorf("decode: %w", err)
	}
	defer s.Free(h)
	logger.Info("decoded", zap.String("source", path))

	n, err := s.Len(h)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "root: %d element(s)\n", n)
	for i := 1; i <= n; i++ {
		k, err := s.Kind(h, i)
		if err != nil {
			return err
		}
		if k == container.Int {
			v, err := s.GetInt(h, i)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  [%d] int %d\n", i, v)
			continue
		}
		child, err := s.GetList(h, i)
		if err != nil {
			return err
		}
		cn, err := s.Len(child)
		_ = s.Free(child)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d] list (%d element(s))\n", i, cn)
	}
	return nil
}
