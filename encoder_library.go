//go:build !manualonly

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

func libraryEncoder() (IconEncoder, bool) {
	return LibraryEncoder{}, true
}

// LibraryEncoder draws the pattern once at the largest requested size,
// scales it down for the other sizes and stores each image as PNG.
type LibraryEncoder struct{}

func (LibraryEncoder) Name() string { return encoderLibrary }

func (LibraryEncoder) Encode(sizes []Size, p Pattern) ([]byte, error) {
	if err := validateSizes(sizes); err != nil {
		return nil, err
	}

	src := renderPattern(largestSize(sizes), p)

	blocks := make([]imageBlock, len(sizes))
	var g errgroup.Group
	for i, s := range sizes {
		i, s := i, s
		g.Go(func() error {
			data, err := encodePNG(scaleImage(src, s))
			if err != nil {
				return fmt.Errorf("encode %s: %w", s, err)
			}
			blocks[i] = imageBlock{size: s, data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return packICO(blocks)
}

func largestSize(sizes []Size) Size {
	var l Size
	for _, s := range sizes {
		l.Width = max(l.Width, s.Width)
		l.Height = max(l.Height, s.Height)
	}
	return l
}

// renderPattern draws p onto a new canvas of the given size.
func renderPattern(s Size, p Pattern) image.Image {
	dc := gg.NewContext(s.Width, s.Height)

	switch p := p.(type) {
	case solidPattern:
		dc.SetColor(p.color)
		dc.Clear()
	case gradientPattern:
		// Pattern rows count up from the bottom, so the gradient runs from
		// the bottom-left corner towards the top-right.
		d := float64(s.Width+s.Height) / 2
		h := float64(s.Height)
		grad := gg.NewLinearGradient(0, h, d, h-d)
		grad.AddColorStop(0, color.NRGBA{A: p.end.A})
		grad.AddColorStop(1, p.end)
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, float64(s.Width), float64(s.Height))
		dc.Fill()
	default:
		for y := 0; y < s.Height; y++ {
			for x := 0; x < s.Width; x++ {
				dc.SetColor(p.At(x, s.Height-1-y, s.Width, s.Height))
				dc.SetPixel(x, y)
			}
		}
	}

	return dc.Image()
}

// scaleImage resamples src to exactly s.
func scaleImage(src image.Image, s Size) image.Image {
	b := src.Bounds()
	if b.Dx() == s.Width && b.Dy() == s.Height {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
