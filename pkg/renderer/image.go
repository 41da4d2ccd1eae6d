package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/William-Lu-Jia-Rong/FinalRaytraceAssignment/pkg/core"
)

// Image is a buffer of unclamped RGB values, row-major with row 0 at the top
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Set stores the color of pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pixels[y*img.Width+x] = c
}

// Bounds returns the image rectangle
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// channelByte maps a color channel to 0..255, clamping out-of-range values
func channelByte(c float64) uint8 {
	return uint8(max(0.0, min(1.0, c)) * 255.0)
}

// vec3ToColor converts a Vec3 color to RGBA with clamping
func vec3ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: channelByte(c.X),
		G: channelByte(c.Y),
		B: channelByte(c.Z),
		A: 255,
	}
}

// ToRGBA converts the buffer to an 8-bit image
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			rgba.SetRGBA(x, y, vec3ToColor(img.At(x, y)))
		}
	}
	return rgba
}

// WritePPM writes the image as a binary (P6) pixel map
func (img *Image) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for _, p := range img.Pixels {
		if _, err := bw.Write([]byte{channelByte(p.X), channelByte(p.Y), channelByte(p.Z)}); err != nil {
			return fmt.Errorf("failed to write PPM pixels: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM pixels: %w", err)
	}
	return nil
}

// WritePNG writes the image as PNG
func (img *Image) WritePNG(w io.Writer) error {
	if err := png.Encode(w, img.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Save writes the image to filename, as PNG for .png files and PPM otherwise
func (img *Image) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".png") {
		err = img.WritePNG(file)
	} else {
		err = img.WritePPM(file)
	}
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
