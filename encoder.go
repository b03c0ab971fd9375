package main

import (
	"errors"
	"fmt"
	"log"
)

var ErrEncoderUnavailable = errors.New("image library encoder not built in")

const (
	encoderAuto    = "auto"
	encoderLibrary = "library"
	encoderManual  = "manual"
)

// IconEncoder turns a list of sizes and a fill pattern into ICO file bytes.
type IconEncoder interface {
	Name() string
	Encode(sizes []Size, p Pattern) ([]byte, error)
}

// ManualEncoder packs BMP images by hand and needs nothing beyond the
// standard library.
type ManualEncoder struct{}

func (ManualEncoder) Name() string { return encoderManual }

func (ManualEncoder) Encode(sizes []Size, p Pattern) ([]byte, error) {
	return assemble(sizes, p)
}

// ValidEncoderName reports whether name selects an encoder strategy.
func ValidEncoderName(name string) bool {
	switch name {
	case encoderAuto, encoderLibrary, encoderManual:
		return true
	}
	return false
}

// selectEncoder returns the encoder for name. "auto" prefers the image
// library and falls back to manual packing when it is not compiled in.
func selectEncoder(name string) (IconEncoder, error) {
	switch name {
	case encoderManual:
		return ManualEncoder{}, nil
	case encoderLibrary:
		enc, ok := libraryEncoder()
		if !ok {
			return nil, ErrEncoderUnavailable
		}
		return enc, nil
	case encoderAuto, "":
		if enc, ok := libraryEncoder(); ok {
			return enc, nil
		}
		log.Printf("Image library not available, using manual encoder")
		return ManualEncoder{}, nil
	}
	return nil, fmt.Errorf("unknown encoder %q", name)
}

// generateIcon encodes the icon completely in memory, then writes it to path.
// It returns the number of bytes written.
func generateIcon(enc IconEncoder, sizes []Size, p Pattern, path string) (int, error) {
	if err := validateSizes(sizes); err != nil {
		return 0, err
	}
	data, err := enc.Encode(sizes, p)
	if err != nil {
		return 0, fmt.Errorf("%s encoder: %w", enc.Name(), err)
	}
	if err := writeFile(path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}
