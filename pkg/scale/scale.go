// Package scale maps numeric node values onto visual properties.
//
// The helpers bucket a value by its position between the minimum and
// maximum of a node set. They are meant for building graphs before they
// are handed to a session, e.g. sizing nodes by download count or coloring
// them by release year.
package scale

import (
	"math"

	"github.com/matzehuels/webgraph/pkg/errors"
)

// SizeOptions controls [NodeSizeForValue].
type SizeOptions struct {
	Steps   int     // number of distinct sizes
	MinSize float64 // size of the lowest bucket
	MaxSize float64 // size of the highest bucket
}

// DefaultSizeOptions yields three sizes between 6 and 12.
func DefaultSizeOptions() SizeOptions {
	return SizeOptions{Steps: 3, MinSize: 6, MaxSize: 12}
}

// NodeSizeForValue buckets value into opts.Steps equal intervals of
// [minValue, maxValue] and returns the size of its bucket. Sizes are spaced
// evenly from MinSize to MaxSize. Values outside the range are clamped to
// the first or last bucket.
func NodeSizeForValue(value, minValue, maxValue float64, opts SizeOptions) (float64, error) {
	if opts.Steps <= 0 || opts.MinSize <= 0 || opts.MaxSize <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "steps, min size and max size must all be greater than 0")
	}
	if opts.MinSize > opts.MaxSize {
		return 0, errors.New(errors.ErrCodeInvalidInput, "min size %v is larger than max size %v", opts.MinSize, opts.MaxSize)
	}

	divider := float64(opts.Steps)
	if opts.Steps != 1 {
		divider--
	}
	offset := (opts.MaxSize - opts.MinSize) / divider

	section := 0
	if interval := math.Abs(maxValue-minValue) / float64(opts.Steps); interval > 0 {
		section = int(math.Floor((value - minValue) / interval))
	}
	section = max(0, min(section, opts.Steps-1))

	return opts.MinSize + float64(section)*offset, nil
}

// NodeColorForValue splits [minValue, maxValue] into one interval per color
// and returns the color of value's interval. Values past the maximum take
// the last color.
func NodeColorForValue(value, minValue, maxValue float64, colors []string) (string, error) {
	if len(colors) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "color palette is empty")
	}
	if value < 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "value must be >= 0, got %v", value)
	}
	if minValue > maxValue {
		return "", errors.New(errors.ErrCodeInvalidInput, "min value %v is larger than max value %v", minValue, maxValue)
	}

	size := (maxValue - minValue) / float64(len(colors))
	if size == 0 {
		size = 1
	}
	idx := int(math.Floor((value - minValue) / size))
	idx = max(0, min(idx, len(colors)-1))
	return colors[idx], nil
}

// NormalizedValue maps value from [minValue, maxValue] onto [0, 1].
// An empty range yields 0.
func NormalizedValue(value, minValue, maxValue float64) float64 {
	if maxValue == minValue {
		return 0
	}
	return (value - minValue) / (maxValue - minValue)
}
