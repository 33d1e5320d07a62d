package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gavlooth/rcseq/pkg/codec"
)

var (
	encodeInts    []int32
	encodeTypeTag int64
	encodeUserTag int64
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a flat list from --int values and print its canonical textual form",
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().Int32SliceVar(&encodeInts, "int", nil, "an integer element, repeatable")
	encodeCmd.Flags().Int64Var(&encodeTypeTag, "type-tag", 0, "the root list's type tag")
	encodeCmd.Flags().Int64Var(&encodeUserTag, "user-tag", 0, "the root list's user tag")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	s := newStore()
	h, err := s.Init()
	if err != nil {
		return err
	}
	defer s.Free(h)

	if encodeTypeTag != 0 {
		if err := s.SetTypeTag(h, encodeTypeTag); err != nil {
			return err
		}
	}
	if encodeUserTag != 0 {
		if err := s.SetUserTag(h, encodeUserTag); err != nil {
			return err
		}
	}
	for _, v := range encodeInts {
		if err := s.AppendInt(h, v); err != nil {
			return err
		}
	}

	text, err := codec.Encode(s, h)
	if err != nil {
		return err
	}
	logger.Info("encoded", zap.Int("elements", len(encodeInts)))
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
