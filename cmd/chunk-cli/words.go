package main

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/book-expert/tts-chunker/internal/numspell"
	"github.com/spf13/cobra"
)

// ErrNotNumber indicates a words argument that is not a decimal number.
var ErrNotNumber = errors.New("not a decimal number")

var numberPattern = regexp.MustCompile(`^[+-]?\d+(?:[.,]\d+)?$`)

func newWordsCmd() *cobra.Command {
	var ordinal bool

	cmd := &cobra.Command{
		Use:   "words NUMBER",
		Short: "Spell a number in Kyrgyz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spelled, err := spellNumber(args[0], ordinal)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), spelled)

			return err
		},
	}

	cmd.Flags().BoolVar(&ordinal, flagOrdinal, false, flagOrdinalDesc)

	return cmd
}

func spellNumber(arg string, ordinal bool) (string, error) {
	if !numberPattern.MatchString(arg) {
		return "", fmt.Errorf("%w: %q", ErrNotNumber, arg)
	}

	n, isInteger := numspell.Parse(strings.TrimPrefix(arg, "+"))

	switch {
	case ordinal && isInteger:
		return numspell.Ordinal(n), nil
	case ordinal:
		return "", fmt.Errorf("%w: ordinals need an integer, got %q", ErrNotNumber, arg)
	case isInteger:
		return numspell.Words(n), nil
	default:
		return numspell.Decimal(arg), nil
	}
}
