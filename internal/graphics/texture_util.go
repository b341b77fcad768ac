package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture2D is a GL 2D texture. Materials bind it to whichever unit is active.
type Texture2D struct {
	ID     uint32
	Width  int
	Height int

	dev Device
}

// NewTexture uploads an RGBA image with mipmaps
func NewTexture(dev Device, img *image.RGBA) *Texture2D {
	size := img.Rect.Size()
	return &Texture2D{
		ID:     dev.CreateTexture2D(img, true),
		Width:  size.X,
		Height: size.Y,
		dev:    dev,
	}
}

// NewSolidTexture creates a 1x1 texture of a single color
func NewSolidTexture(dev Device, c color.RGBA) *Texture2D {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return &Texture2D{
		ID:     dev.CreateTexture2D(img, false),
		Width:  1,
		Height: 1,
		dev:    dev,
	}
}

// LoadTexture loads a 2D texture from a file
func LoadTexture(dev Device, path string) (*Texture2D, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return NewTexture(dev, img), nil
}

// DecodeImage reads an image file into RGBA with rows flipped so that the
// first row is the bottom of the image, matching GL texture coordinates.
func DecodeImage(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	flipRows(rgba)
	return rgba, nil
}

func flipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// Bind binds the texture to the active texture unit
func (t *Texture2D) Bind() {
	t.dev.BindTexture2D(t.ID)
}

// Delete frees the GL texture
func (t *Texture2D) Delete() {
	if t.ID == 0 {
		return
	}
	t.dev.DeleteTexture(t.ID)
	t.ID = 0
}
