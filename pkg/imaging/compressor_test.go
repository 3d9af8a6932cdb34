package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeJPEG(t *testing.T, w, h int) File {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	return File{
		Name:     "fixture.jpg",
		Data:     buf.Bytes(),
		MimeType: "image/jpeg",
	}
}

func TestCompress_NonImagePassthrough(t *testing.T) {
	file := File{
		Name:     "notes.pdf",
		Data:     []byte("definitely not an image"),
		MimeType: "application/pdf",
	}

	out, err := Compress(file, DefaultOptions())

	assert.NoError(t, err)
	assert.Equal(t, file.Name, out.Name)
	assert.Equal(t, file.Data, out.Data)
	assert.Equal(t, file.MimeType, out.MimeType)
}

func TestCompress_NeverLargerThanInput(t *testing.T) {
	file := makeJPEG(t, 400, 300)

	out, err := Compress(file, DefaultOptions())

	assert.NoError(t, err)
	assert.LessOrEqual(t, out.Size(), file.Size())
}

func TestCompress_ResizesOversizedImage(t *testing.T) {
	file := makeJPEG(t, 2000, 1000)

	out, err := Compress(file, DefaultOptions())
	assert.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out.Data))
	assert.NoError(t, err)
	assert.Equal(t, 1200, decoded.Bounds().Dx())
	assert.Equal(t, 600, decoded.Bounds().Dy())
}

func TestCompress_SmallImageKeptWithinBounds(t *testing.T) {
	file := makeJPEG(t, 300, 200)

	out, err := Compress(file, DefaultOptions())
	assert.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out.Data))
	assert.NoError(t, err)
	// Already within bounds: no resize.
	assert.Equal(t, 300, decoded.Bounds().Dx())
	assert.Equal(t, 200, decoded.Bounds().Dy())
}

func TestCompress_DecodeErrorPropagates(t *testing.T) {
	file := File{
		Name:     "broken.jpg",
		Data:     []byte("corrupt bytes"),
		MimeType: "image/jpeg",
	}

	_, err := Compress(file, DefaultOptions())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}

func TestCompress_Watermark(t *testing.T) {
	file := makeJPEG(t, 600, 400)

	opts := DefaultOptions()
	opts.Watermark = "fieldnotes"

	out, err := Compress(file, opts)
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Data)

	_, _, err = image.Decode(bytes.NewReader(out.Data))
	assert.NoError(t, err)
}

func TestCompressAll_SubstitutesOriginalOnFailure(t *testing.T) {
	good := makeJPEG(t, 200, 200)
	broken := File{Name: "broken.jpg", Data: []byte("corrupt"), MimeType: "image/jpeg"}

	out := CompressAll([]File{good, broken, good}, DefaultOptions(), nil)

	assert.Len(t, out, 3)
	assert.Equal(t, broken.Data, out[1].Data)
}

func TestCompressAll_Progress(t *testing.T) {
	files := []File{
		makeJPEG(t, 100, 100),
		makeJPEG(t, 100, 100),
		makeJPEG(t, 100, 100),
		makeJPEG(t, 100, 100),
	}

	var percents []int
	var completions []int
	out := CompressAll(files, DefaultOptions(), func(percent, completed, total int) {
		percents = append(percents, percent)
		completions = append(completions, completed)
		assert.Equal(t, 4, total)
	})

	assert.Len(t, out, 4)
	assert.Equal(t, []int{25, 50, 75, 100}, percents)
	assert.Equal(t, []int{1, 2, 3, 4}, completions)
	for i := 1; i < len(percents); i++ {
		assert.Greater(t, percents[i], percents[i-1])
	}
}
