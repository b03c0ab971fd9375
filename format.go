package main

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// parseSizes parses a comma-separated list such as "16,32x32,48".
// A bare number means a square image.
func parseSizes(s string) ([]Size, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrNoImages
	}
	var sizes []Size
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		w, h, hasHeight := strings.Cut(strings.ToLower(field), "x")
		width, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot parse %q", ErrInvalidSize, field)
		}
		height := width
		if hasHeight {
			if height, err = strconv.Atoi(h); err != nil {
				return nil, fmt.Errorf("%w: cannot parse %q", ErrInvalidSize, field)
			}
		}
		size := Size{width, height}
		if err := size.validate(); err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// formatSizes renders sizes the way parseSizes reads them.
func formatSizes(sizes []Size) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional.
func parseHexColor(s string) (color.NRGBA, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil || (len(raw) != 3 && len(raw) != 4) {
		return color.NRGBA{}, fmt.Errorf("invalid color %q (want #RRGGBB or #RRGGBBAA)", s)
	}
	c := color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 255}
	if len(raw) == 4 {
		c.A = raw[3]
	}
	return c, nil
}

func validColor(s string) bool {
	_, err := parseHexColor(s)
	return err == nil
}

func validSizes(s string) bool {
	_, err := parseSizes(s)
	return err == nil
}

// formatSummary describes a freshly written icon.
func formatSummary(path string, enc IconEncoder, p Pattern, sizes []Size, n int) string {
	return fmt.Sprintf("Created %s (%s, %s pattern, %s encoder, %s)",
		path, formatSizes(sizes), p.Name(), enc.Name(), humanize.Bytes(uint64(n)))
}

// formatImageLine describes one directory entry of an inspected icon.
func formatImageLine(i int, img icoImage) string {
	return fmt.Sprintf("  #%d %s %dbpp %s %s at offset %d",
		i+1, img.size(), img.BitCount, img.Format, humanize.Bytes(uint64(img.Size)), img.Offset)
}
