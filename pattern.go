package main

import (
	"errors"
	"fmt"
	"image/color"
)

var ErrUnsupportedPattern = errors.New("unsupported fill pattern")

const (
	patternSolid    = "solid"
	patternGradient = "gradient"
)

var patternNames = []string{patternSolid, patternGradient}

// Pattern decides the colour of every pixel of an icon image. Rows are
// numbered in bitmap order: y 0 is the bottom row.
type Pattern interface {
	Name() string
	At(x, y, width, height int) color.NRGBA
}

// ValidPatternName reports whether name selects a known pattern.
func ValidPatternName(name string) bool {
	for _, n := range patternNames {
		if n == name {
			return true
		}
	}
	return false
}

// newPattern returns the pattern called name. A nil colour keeps the
// pattern's own default.
func newPattern(name string, col *color.NRGBA) (Pattern, error) {
	switch name {
	case patternSolid:
		p := solidPattern{color: color.NRGBA{R: 0, G: 200, B: 0, A: 255}}
		if col != nil {
			p.color = *col
		}
		return p, nil
	case patternGradient:
		p := gradientPattern{end: color.NRGBA{R: 0, G: 255, B: 0, A: 255}}
		if col != nil {
			p.end = *col
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnsupportedPattern, name, patternNames)
}

// solidPattern paints every pixel the same colour.
type solidPattern struct {
	color color.NRGBA
}

func (p solidPattern) Name() string { return patternSolid }

func (p solidPattern) At(_, _, _, _ int) color.NRGBA { return p.color }

// gradientPattern fades the colour channels from zero in the bottom-left
// corner towards end along the diagonal. Alpha is constant.
type gradientPattern struct {
	end color.NRGBA
}

func (p gradientPattern) Name() string { return patternGradient }

func (p gradientPattern) At(x, y, width, height int) color.NRGBA {
	num, den := x+y, width+height
	scale := func(c uint8) uint8 {
		return uint8(int(c) * num / den)
	}
	return color.NRGBA{R: scale(p.end.R), G: scale(p.end.G), B: scale(p.end.B), A: p.end.A}
}
