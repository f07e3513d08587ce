package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/powerjson/powerjson/pkg/convert"
	"github.com/powerjson/powerjson/pkg/output"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ConvertOptions holds command-line options for the convert command.
type ConvertOptions struct {
	Raw    bool
	Output string
	Pretty bool
	Quiet  bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <converter> [file]",
		Short: "Convert a command report to structured records",
		Long: `Convert the human-readable output of a power-device utility into
structured records.

Reads from the given capture file, or from stdin when no file is given.
Use 'powerjson list' to see the available converters.

Exit codes:
  0 - Conversion succeeded
  2 - Malformed input or runtime error

Example:
  upower -d | powerjson convert upower
  powerjson convert --raw --pretty upower capture.txt
  powerjson convert -o yaml upsc ups-dump.txt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Raw, "raw", "r", false, "Skip normalization, keep all values as strings")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "json", "Output format (json|yaml)")
	cmd.Flags().BoolVarP(&opts.Pretty, "pretty", "p", false, "Indent the output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress the compatibility advisory")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	conv, err := convert.Get(args[0])
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args[1:])
	if err != nil {
		return err
	}

	records, err := conv.Convert(data, convert.Options{
		Raw:   opts.Raw,
		Quiet: opts.Quiet,
		Advise: func(msg string) {
			log.Warn().Msg(msg)
		},
	})
	if err != nil {
		return fmt.Errorf("converting %s input: %w", conv.Name(), err)
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{Pretty: opts.Pretty})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, records, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}
