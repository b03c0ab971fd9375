package main

import (
	"errors"
	"image/color"
	"testing"
)

var (
	colorGreen     = color.NRGBA{G: 200, A: 255}
	colorGreenFull = color.NRGBA{G: 255, A: 255}
)

func colorRGBA(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func TestNewPattern_SolidDefault(t *testing.T) {
	p, err := newPattern("solid", nil)
	if err != nil {
		t.Fatalf("newPattern error: %v", err)
	}
	if got := p.At(5, 7, 32, 32); got != colorGreen {
		t.Errorf("solid default = %v, want %v", got, colorGreen)
	}
}

func TestNewPattern_SolidCustom(t *testing.T) {
	c := colorRGBA(1, 2, 3, 4)
	p, err := newPattern("solid", &c)
	if err != nil {
		t.Fatalf("newPattern error: %v", err)
	}
	if got := p.At(0, 0, 16, 16); got != c {
		t.Errorf("solid = %v, want %v", got, c)
	}
}

func TestNewPattern_Unsupported(t *testing.T) {
	_, err := newPattern("checkerboard", nil)
	if !errors.Is(err, ErrUnsupportedPattern) {
		t.Errorf("error = %v, want ErrUnsupportedPattern", err)
	}
}

func TestGradientPattern(t *testing.T) {
	p, err := newPattern("gradient", nil)
	if err != nil {
		t.Fatalf("newPattern error: %v", err)
	}
	cases := []struct {
		x, y int
		g    uint8
	}{
		{0, 0, 0},
		{24, 0, 63},   // 255*24/96
		{47, 47, 249}, // 255*94/96
	}
	for _, c := range cases {
		got := p.At(c.x, c.y, 48, 48)
		want := color.NRGBA{G: c.g, A: 255}
		if got != want {
			t.Errorf("gradient At(%d,%d) = %v, want %v", c.x, c.y, got, want)
		}
	}
}

func TestGradientPattern_KeepsAlpha(t *testing.T) {
	p := gradientPattern{end: colorRGBA(200, 100, 50, 128)}
	got := p.At(0, 0, 16, 16)
	if got != colorRGBA(0, 0, 0, 128) {
		t.Errorf("gradient origin = %v, want transparent-black with alpha 128", got)
	}
}

func TestValidPatternName(t *testing.T) {
	if !ValidPatternName("solid") || !ValidPatternName("gradient") {
		t.Error("known patterns should be valid")
	}
	if ValidPatternName("") || ValidPatternName("Solid") {
		t.Error("unknown patterns should be invalid")
	}
}
