// Package preprocess turns an image file into the tensor the classifier
// was trained on: one 64x64 grayscale channel scaled to [0,1].
package preprocess

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Brownie44l1/signscan/internal/failure"
	"github.com/Brownie44l1/signscan/internal/tensor"
)

// ImageSize is the edge length of the square model input.
const ImageSize = 64

// Shape is the layout of a preprocessed tensor: batch, height, width, channel.
var Shape = []int64{1, ImageSize, ImageSize, 1}

// Preprocessor converts images into model input tensors.
type Preprocessor struct {
	log *logrus.Entry
}

// New creates a Preprocessor logging through log.
func New(log *logrus.Entry) *Preprocessor {
	return &Preprocessor{log: log}
}

// Load reads the image at path and converts it to a [1,64,64,1] tensor.
func (p *Preprocessor) Load(path string) (*tensor.Tensor, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, failure.New(failure.NotFound, "preprocess", "image file not found: %s", path)
		}
		return nil, failure.Wrap(failure.Decode, "preprocess", err)
	}

	img, format, err := decode(path)
	if err != nil {
		return nil, failure.Wrap(failure.Decode, "decode image "+path, err)
	}

	p.log.WithFields(logrus.Fields{
		"format": format,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
		"mode":   colorMode(img.ColorModel()),
	}).Info("Image loaded")

	t, err := FromImage(img)
	if err != nil {
		return nil, failure.Wrap(failure.Decode, "preprocess", err)
	}

	lo, hi := t.Range()
	p.log.WithFields(logrus.Fields{
		"shape": t.Shape,
		"min":   lo,
		"max":   hi,
	}).Info("Image preprocessed")
	return t, nil
}

func decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return image.Decode(f)
}

// FromImage converts an in-memory image. The result depends only on the
// pixel values, so identical inputs always give identical tensors.
func FromImage(img image.Image) (*tensor.Tensor, error) {
	gray := Grayscale(img)
	resized := resize.Resize(ImageSize, ImageSize, gray, resize.Bicubic)

	t, err := tensor.New(Shape...)
	if err != nil {
		return nil, err
	}

	b := resized.Bounds()
	for y := 0; y < ImageSize; y++ {
		for x := 0; x < ImageSize; x++ {
			px := color.GrayModel.Convert(resized.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			t.Data[y*ImageSize+x] = float32(px.Y) / 255.0
		}
	}
	return t, nil
}

// Grayscale converts img to 8-bit luma using the ITU-R 601-2 weights on
// straight RGB. Alpha is ignored.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return out
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.Pix[y*out.Stride+x] = luma(c.R, c.G, c.B)
		}
	}
	return out
}

func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}

func colorMode(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}
	switch m {
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return "RGBA"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	}
	return "unknown"
}
