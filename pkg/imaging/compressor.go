package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

// File is an in-memory image file moving through the authoring pipeline.
type File struct {
	Name     string
	Data     []byte
	MimeType string
	ModTime  time.Time
}

func (f File) Size() int { return len(f.Data) }

// Options controls re-encoding. Zero fields fall back to defaults.
type Options struct {
	MaxWidth     int
	MaxHeight    int
	Quality      int    // JPEG quality 1-100
	TargetSizeKB int    // stop re-encoding once output is at or under this
	MimeType     string // target encoding, image/jpeg or image/png
	Watermark    string // optional label stamped in the bottom-right corner
}

func DefaultOptions() Options {
	return Options{
		MaxWidth:     1200,
		MaxHeight:    1200,
		Quality:      65,
		TargetSizeKB: 500,
		MimeType:     "image/jpeg",
	}
}

const (
	// Inputs above this size get tighter dimension/quality ceilings before
	// the quality ladder even starts (phone photos are routinely 4-12 MB).
	largeSourceBytes = 2 << 20

	// The multi-attempt search only engages above this size; smaller files
	// are encoded once at the configured quality.
	multiPassThreshold = 500 * 1024

	// Dimensions shrink by this ratio when the ladder alone cannot reach
	// the target, but never below minRetryWidth.
	shrinkRatio   = 0.8
	minRetryWidth = 800
)

// qualityLadder is the fixed candidate sequence tried after the configured
// starting quality.
var qualityLadder = []int{55, 50, 45, 40}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxWidth <= 0 {
		o.MaxWidth = def.MaxWidth
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = def.MaxHeight
	}
	if o.Quality <= 0 {
		o.Quality = def.Quality
	}
	if o.MimeType == "" {
		o.MimeType = def.MimeType
	}
	return o
}

// Compress re-encodes an image so it fits under the configured byte budget
// without ever returning more bytes than it was given. Non-image files are
// returned unchanged. Decode failures propagate; callers are expected to
// fall back to the original file.
func Compress(file File, opts Options) (File, error) {
	if !strings.HasPrefix(file.MimeType, "image/") {
		return file, nil
	}
	opts = opts.withDefaults()

	img, _, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return File{}, fmt.Errorf("decode image %s: %w", file.Name, err)
	}

	maxW, maxH, quality := opts.MaxWidth, opts.MaxHeight, opts.Quality
	if len(file.Data) > largeSourceBytes {
		maxW = min(maxW, 1200)
		maxH = min(maxH, 1200)
		quality = min(quality, 60)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxW || h > maxH {
		ratio := minFloat(float64(maxW)/float64(w), float64(maxH)/float64(h))
		w = int(float64(w)*ratio + 0.5)
		h = int(float64(h)*ratio + 0.5)
	}

	var best []byte
	if opts.TargetSizeKB > 0 && len(file.Data) > multiPassThreshold {
		target := opts.TargetSizeKB * 1024
		for _, q := range append([]int{quality}, qualityLadder...) {
			encoded, err := encodeAt(img, w, h, q, opts)
			if err != nil {
				return File{}, err
			}
			best = encoded
			if len(encoded) <= target {
				break
			}
			if w > minRetryWidth {
				w = int(float64(w)*shrinkRatio + 0.5)
				h = int(float64(h)*shrinkRatio + 0.5)
			}
		}
	} else {
		best, err = encodeAt(img, w, h, quality, opts)
		if err != nil {
			return File{}, err
		}
	}

	// Never regress: tiny or already-optimized inputs can re-encode larger.
	if len(best) > len(file.Data) {
		return file, nil
	}

	return File{
		Name:     file.Name,
		Data:     best,
		MimeType: opts.MimeType,
		ModTime:  time.Now(),
	}, nil
}

func encodeAt(img image.Image, w, h, quality int, opts Options) ([]byte, error) {
	canvas := scale(img, w, h)
	if opts.Watermark != "" {
		stampWatermark(canvas, opts.Watermark)
	}

	var buf bytes.Buffer
	switch opts.MimeType {
	case "image/png":
		if err := png.Encode(&buf, canvas); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
