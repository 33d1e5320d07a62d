package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gavlooth/rcseq/pkg/codec"
	"github.com/gavlooth/rcseq/pkg/container"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Decode textual form and report container counts, depth, and invariant violations",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

type walkStats struct {
	containers int
	ints       int
	maxDepth   int
	seen       []*container.Handle
}

func (w *walkStats) visited(s *container.Store, h *container.Handle) bool {
	for _, v := range w.seen {
		if container.Same(v, h) {
			return true
		}
	}
	return false
}

func (w *walkStats) walk(s *container.Store, h *container.Handle, depth int) error {
	if depth > w.maxDepth {
		w.maxDepth = depth
	}
	if w.visited(s, h) {
		return nil
	}
	w.seen = append(w.seen, h)
	w.containers++

	n, err := s.Len(h)
	if err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		k, err := s.Kind(h, i)
		if err != nil {
			return err
		}
		if k == container.Int {
			w.ints++
			continue
		}
		child, err := s.GetList(h, i)
		if err != nil {
			return err
		}
		err = w.walk(s, child, depth+1)
		_ = s.Free(child)
		if err != nil {
			return err
		}
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
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

	w := &walkStats{}
	if err := w.walk(s, h, 1); err != nil {
		return err
	}

	report := container.Verify(h)
	if !report.OK() {
		logger.Warn("verify found violations", zap.Int("count", len(report.Violations)))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "containers: %d\n", w.containers)
	fmt.Fprintf(cmd.OutOrStdout(), "ints: %d\n", w.ints)
	fmt.Fprintf(cmd.OutOrStdout(), "max depth: %d\n", w.maxDepth)
	if report.OK() {
		fmt.Fprintln(cmd.OutOrStdout(), "invariants: ok")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "invariants: %d violation(s)\n", len(report.Violations))
		for _, v := range report.Violations {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", v)
		}
	}
	return nil
}
