package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/powerjson/powerjson/pkg/convert"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
	ShowAll    bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <capture-file>",
		Short: "Detect which converter fits a capture",
		Long: `Analyze a capture file to identify which command produced it.

Samples lines from the file and probes each registered converter for its
structural patterns. Reports the best matching converter with a confidence
score.

Example:
  powerjson detect capture.txt
  powerjson detect --sample 500 large-capture.txt
  powerjson detect -o json capture.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all matching converters, not just the best match")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	captureFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(captureFile); os.IsNotExist(err) {
		return fmt.Errorf("capture file not found: %s", captureFile)
	}

	d := convert.NewDetector(convert.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, captureFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(cmd, result, captureFile, opts)
	default:
		return outputDetectText(cmd, result, captureFile, opts)
	}
}

func outputDetectText(cmd *cobra.Command, result *convert.DetectionResult, captureFile string, opts *DetectOptions) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "=== Converter Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", captureFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No converter matched.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: check the first few lines manually; the capture may be from a")
		fmt.Fprintln(w, "command powerjson does not support yet.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected converter: %s\n", best.Converter.Name())
	fmt.Fprintf(w, "Confidence: %.1f%%\n", best.Confidence*100)
	fmt.Fprintf(w, "Source command: %v\n", best.Converter.Magic())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Convert with:\n  powerjson convert %s %s\n", best.Converter.Name(), captureFile)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "--- Other matching converters ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Converter.Name(), m.Confidence*100)
		}
	}

	return nil
}

// DetectJSONMatch represents a converter match in JSON output.
type DetectJSONMatch struct {
	Converter  string   `json:"converter"`
	Magic      []string `json:"magic"`
	Confidence float64  `json:"confidence"`
}

// DetectJSONOutput represents the full JSON output.
type DetectJSONOutput struct {
	File         string            `json:"file"`
	Matches      []DetectJSONMatch `json:"matches"`
	SampledLines int               `json:"sampled_lines"`
}

func outputDetectJSON(cmd *cobra.Command, result *convert.DetectionResult, captureFile string, opts *DetectOptions) error {
	out := DetectJSONOutput{
		File:         captureFile,
		SampledLines: result.SampledLines,
		Matches:      make([]DetectJSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, DetectJSONMatch{
			Converter:  m.Converter.Name(),
			Magic:      m.Converter.Magic(),
			Confidence: m.Confidence,
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
