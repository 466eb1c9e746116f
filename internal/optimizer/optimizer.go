package optimizer

import (
	"fmt"
)

// Compression schedule. Quality starts at 0.40 and drops by 0.10 per failed
// attempt; once two attempts have failed, pixel dimensions also shrink by a
// factor of 0.70 before each further pass. At most five passes are made.
const (
	InitialQuality  = 0.40
	QualityStep     = 0.10
	MinQuality      = 0.10
	DimensionFactor = 0.70
	MaxAttempts     = 5

	// attempts that run before dimension shrinking kicks in
	shrinkAfterAttempts = 2
)

// Params holds the knobs for a single compression attempt.
type Params struct {
	Quality float64
	Width   int
	Height  int
}

// NextParams computes the knobs for the attempt following the given one.
// attempt is the 1-based index of the attempt that just failed. The function
// is pure so the whole retry schedule can be verified without a codec.
func NextParams(p Params, attempt int) Params {
	next := p
	next.Quality = p.Quality - QualityStep
	if next.Quality < MinQuality {
		next.Quality = MinQuality
	}
	if attempt >= shrinkAfterAttempts {
		next.Width = int(float64(p.Width) * DimensionFactor)
		next.Height = int(float64(p.Height) * DimensionFactor)
		if next.Width < 1 {
			next.Width = 1
		}
		if next.Height < 1 {
			next.Height = 1
		}
	}
	return next
}

// FitDimensions scales (width, height) proportionally so the longer side
// equals maxDimension. Dimensions already within the cap are returned
// unchanged.
func FitDimensions(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}
	if width >= height {
		h := int(float64(height) * float64(maxDimension) / float64(width))
		if h < 1 {
			h = 1
		}
		return maxDimension, h
	}
	w := int(float64(width) * float64(maxDimension) / float64(height))
	if w < 1 {
		w = 1
	}
	return w, maxDimension
}

// Result is the outcome of an optimization run. Data may still exceed the
// requested budget when all attempts were exhausted; Attempts tells how many
// passes were made.
type Result struct {
	Data     []byte
	Width    int
	Height   int
	Attempts int
}

// Optimizer recompresses images until they fit a byte budget.
type Optimizer struct {
	codec        Codec
	maxDimension int
	thumbSize    int
	thumbQuality float64
}

func New(codec Codec, maxDimension int) *Optimizer {
	return &Optimizer{
		codec:        codec,
		maxDimension: maxDimension,
		thumbSize:    150,
		thumbQuality: 0.50,
	}
}

// Optimize resizes the input so its longer side fits the configured maximum,
// then recompresses it following the schedule until the output is at or below
// targetBytes or MaxAttempts passes have run. The last pass's output is
// returned either way.
func (o *Optimizer) Optimize(data []byte, targetBytes int64) (*Result, error) {
	img, width, height, err := o.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitW, fitH := FitDimensions(width, height, o.maxDimension)
	if fitW != width || fitH != height {
		img = o.codec.Resize(img, fitW, fitH)
	}

	p := Params{Quality: InitialQuality, Width: fitW, Height: fitH}
	current := img
	attempts := 0

	var out []byte
	for {
		out, err = o.codec.Encode(current, p.Quality)
		if err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		attempts++

		if int64(len(out)) <= targetBytes || attempts >= MaxAttempts {
			break
		}

		next := NextParams(p, attempts)
		if next.Width != p.Width || next.Height != p.Height {
			current = o.codec.Resize(current, next.Width, next.Height)
		}
		p = next
	}

	return &Result{Data: out, Width: p.Width, Height: p.Height, Attempts: attempts}, nil
}

// Thumbnail produces a fixed-dimension thumbnail from an already optimized
// image, compressed more aggressively than the main variant.
func (o *Optimizer) Thumbnail(data []byte) ([]byte, error) {
	img, _, _, err := o.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := o.codec.Resize(img, o.thumbSize, o.thumbSize)
	out, err := o.codec.Encode(thumb, o.thumbQuality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return out, nil
}
