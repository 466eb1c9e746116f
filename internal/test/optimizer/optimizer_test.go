package optimizer_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"realty-crm-backend/internal/optimizer"
)

// fakeCodec scripts the byte sizes returned by successive encode calls so the
// compression schedule can be verified without a real image codec.
type fakeCodec struct {
	width  int
	height int

	encodedSizes []int

	encodeQualities []float64
	resizeCalls     [][2]int
	encodeCalls     int
}

func (f *fakeCodec) Decode(data []byte) (image.Image, int, int, error) {
	return nil, f.width, f.height, nil
}

func (f *fakeCodec) Resize(img image.Image, width, height int) image.Image {
	f.resizeCalls = append(f.resizeCalls, [2]int{width, height})
	return nil
}

func (f *fakeCodec) Encode(img image.Image, quality float64) ([]byte, error) {
	size := f.encodedSizes[len(f.encodedSizes)-1]
	if f.encodeCalls < len(f.encodedSizes) {
		size = f.encodedSizes[f.encodeCalls]
	}
	f.encodeCalls++
	f.encodeQualities = append(f.encodeQualities, quality)
	return make([]byte, size), nil
}

func TestOptimize_FirstAttemptWithinBudget(t *testing.T) {
	codec := &fakeCodec{width: 640, height: 480, encodedSizes: []int{100}}
	opt := optimizer.New(codec, 800)

	result, err := opt.Optimize([]byte("input"), 200)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Attempts)
	assert.Len(t, result.Data, 100)
	assert.Equal(t, 640, result.Width)
	assert.Equal(t, 480, result.Height)
	// longer side already under the cap, so no resize happened at all
	assert.Empty(t, codec.resizeCalls)
}

func TestOptimize_GivesUpAfterFiveAttempts(t *testing.T) {
	codec := &fakeCodec{width: 640, height: 480, encodedSizes: []int{1000}}
	opt := optimizer.New(codec, 800)

	result, err := opt.Optimize([]byte("input"), 10)
	require.NoError(t, err)

	// never more than five passes, and the last pass's output is returned
	assert.Equal(t, optimizer.MaxAttempts, result.Attempts)
	assert.Equal(t, optimizer.MaxAttempts, codec.encodeCalls)
	assert.Len(t, result.Data, 1000)
}

func TestOptimize_QualitySchedule(t *testing.T) {
	codec := &fakeCodec{width: 640, height: 480, encodedSizes: []int{1000}}
	opt := optimizer.New(codec, 800)

	_, err := opt.Optimize([]byte("input"), 10)
	require.NoError(t, err)

	// 0.40, then -0.10 per attempt, clamped at the floor
	expected := []float64{0.40, 0.30, 0.20, 0.10, 0.10}
	require.Len(t, codec.encodeQualities, len(expected))
	for i, q := range expected {
		assert.InDelta(t, q, codec.encodeQualities[i], 0.0001, "attempt %d", i+1)
	}
}

func TestOptimize_ShrinksDimensionsAfterTwoAttempts(t *testing.T) {
	codec := &fakeCodec{width: 800, height: 600, encodedSizes: []int{1000}}
	opt := optimizer.New(codec, 800)

	result, err := opt.Optimize([]byte("input"), 10)
	require.NoError(t, err)

	// attempts 1 and 2 keep the dimensions; 3, 4 and 5 shrink by 0.7 each
	expected := [][2]int{{560, 420}, {392, 294}, {274, 205}}
	assert.Equal(t, expected, codec.resizeCalls)
	assert.Equal(t, 274, result.Width)
	assert.Equal(t, 205, result.Height)
}

func TestOptimize_CapsLongerSideBeforeCompression(t *testing.T) {
	codec := &fakeCodec{width: 2000, height: 3000, encodedSizes: []int{100}}
	opt := optimizer.New(codec, 800)

	result, err := opt.Optimize([]byte("input"), 200)
	require.NoError(t, err)

	require.Len(t, codec.resizeCalls, 1)
	assert.Equal(t, [2]int{533, 800}, codec.resizeCalls[0])
	assert.Equal(t, 533, result.Width)
	assert.Equal(t, 800, result.Height)
}

func TestNextParams(t *testing.T) {
	p := optimizer.Params{Quality: 0.40, Width: 800, Height: 600}

	p = optimizer.NextParams(p, 1)
	assert.InDelta(t, 0.30, p.Quality, 0.0001)
	assert.Equal(t, 800, p.Width)
	assert.Equal(t, 600, p.Height)

	p = optimizer.NextParams(p, 2)
	assert.InDelta(t, 0.20, p.Quality, 0.0001)
	assert.Equal(t, 560, p.Width)
	assert.Equal(t, 420, p.Height)

	p = optimizer.NextParams(p, 3)
	assert.InDelta(t, 0.10, p.Quality, 0.0001)
	assert.Equal(t, 392, p.Width)
	assert.Equal(t, 294, p.Height)

	// quality never drops below the floor
	p = optimizer.NextParams(p, 4)
	assert.InDelta(t, 0.10, p.Quality, 0.0001)
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		max           int
		wantW, wantH  int
	}{
		{"within cap is untouched", 640, 480, 800, 640, 480},
		{"exact cap is untouched", 800, 600, 800, 800, 600},
		{"wide landscape", 1600, 900, 800, 800, 450},
		{"tall portrait", 2000, 3000, 800, 533, 800},
		{"square", 1000, 1000, 800, 800, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := optimizer.FitDimensions(tt.width, tt.height, tt.max)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

// End-to-end pass with the real codec: a large JPEG comes back no wider than
// the cap within at most five attempts, and the thumbnail is exactly 150x150.
func TestOptimize_RealCodec(t *testing.T) {
	input := encodeTestJPEG(t, 2000, 3000)

	opt := optimizer.New(optimizer.JPEGCodec{}, 800)
	result, err := opt.Optimize(input, 50*1024)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.Width, 800)
	assert.LessOrEqual(t, result.Height, 800)
	assert.LessOrEqual(t, result.Attempts, optimizer.MaxAttempts)
	assert.GreaterOrEqual(t, result.Attempts, 1)
	assert.NotEmpty(t, result.Data)

	thumb, err := opt.Thumbnail(result.Data)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 150, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestOptimize_CorruptInput(t *testing.T) {
	opt := optimizer.New(optimizer.JPEGCodec{}, 800)

	_, err := opt.Optimize([]byte("not an image"), 50*1024)
	assert.Error(t, err)
}

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: uint8(((x + y) * 255) / (width + height)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}
