package main

import (
	"fmt"
	"io"

	"github.com/book-expert/tts-chunker/internal/pipeline"
	"github.com/spf13/cobra"
)

func newNormalizeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [TEXT]",
		Short: "Print text as it will be read aloud",
		Long:  `Applies the line filter and normalizer to TEXT, or to standard input when TEXT is omitted.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.chunkingConfig()
			if err != nil {
				return err
			}

			preparer, err := pipeline.New(cfg, nil)
			if err != nil {
				return err
			}

			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), preparer.Normalize(text))

			return err
		},
	}
}

func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}

	return string(data), nil
}
