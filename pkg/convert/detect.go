package convert

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DetectionResult holds the outcome of probing a capture against the
// registered converters.
type DetectionResult struct {
	Matches      []ConverterMatch // Converters that matched, sorted by confidence descending
	SampledLines int              // Number of lines sampled
}

// ConverterMatch is one converter's confidence for a capture.
type ConverterMatch struct {
	Converter  Converter
	Confidence float64 // 0.0 to 1.0
}

// Detector scores captures against the registered converters to identify
// which command produced them.
type Detector struct {
	sampleSize int
}

// DetectorOption configures the Detector.
type DetectorOption func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) DetectorOption {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// NewDetector creates a Detector over the default registry.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{sampleSize: 100}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples a capture file and probes the registered converters.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines probes the registered converters with the given lines.
// Converters that do not implement Prober are skipped.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{SampledLines: len(lines)}

	if len(lines) == 0 {
		return result
	}

	for _, c := range All() {
		p, ok := c.(Prober)
		if !ok {
			continue
		}
		confidence := p.Probe(lines)
		if confidence <= 0 {
			continue
		}
		result.Matches = append(result.Matches, ConverterMatch{
			Converter:  c,
			Confidence: confidence,
		})
	}

	// Sort by confidence descending, then by name for stable output
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return result.Matches[i].Converter.Name() < result.Matches[j].Converter.Name()
	})

	return result
}

// sampleFile reads up to sampleSize non-empty lines from a file.
// Uses simple head sampling for efficiency.
func (d *Detector) sampleFile(_ context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() && len(lines) < d.sampleSize {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *ConverterMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one converter matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
