package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gavlooth/rcseq/pkg/codec"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Decode textual form and re-emit it in canonical spacing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("decode: %w", err)
	}
	defer s.Free(h)

	out, err := codec.Encode(s, h)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	logger.Info("reformatted", zap.Int("bytes", len(out)))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
