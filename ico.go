package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
	dibHeaderSize = 40

	// Largest edge a directory entry can describe (stored as 0).
	maxIconSize = 256
)

var (
	ErrInvalidSize = errors.New("invalid icon size")
	ErrNoImages    = errors.New("icon needs at least one image")
)

// WriteError reports an icon that could not be written to Path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return "write " + e.Path + ": " + e.Err.Error() }

func (e *WriteError) Unwrap() error { return e.Err }

// Size is the pixel geometry of one image inside the icon.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// validate rejects sizes that cannot be stored in a directory entry.
func (s Size) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %s is not positive", ErrInvalidSize, s)
	}
	if s.Width > maxIconSize || s.Height > maxIconSize {
		return fmt.Errorf("%w: %s exceeds %dx%d", ErrInvalidSize, s, maxIconSize, maxIconSize)
	}
	return nil
}

func validateSizes(sizes []Size) error {
	if len(sizes) == 0 {
		return ErrNoImages
	}
	if len(sizes) > math.MaxUint16 {
		return fmt.Errorf("%w: %d images", ErrInvalidSize, len(sizes))
	}
	for _, s := range sizes {
		if err := s.validate(); err != nil {
			return err
		}
	}
	return nil
}

// paddedRowSize returns the byte length of a bitmap row of the given bit
// width, rounded up to a 4-byte boundary.
func paddedRowSize(bits int) int {
	return (bits + 31) / 32 * 4
}

// buildHeader returns the ICONDIR header for imageCount images.
func buildHeader(imageCount int) ([]byte, error) {
	if imageCount < 1 {
		return nil, ErrNoImages
	}
	if imageCount > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d images", ErrInvalidSize, imageCount)
	}
	buf := make([]byte, icoHeaderSize)
	binary.LittleEndian.PutUint16(buf[0:], 0) // reserved
	binary.LittleEndian.PutUint16(buf[2:], 1) // type: ICO
	binary.LittleEndian.PutUint16(buf[4:], uint16(imageCount))
	return buf, nil
}

// buildDibHeader returns a BITMAPINFOHEADER for a 32bpp image. The height
// covers both the colour bitmap and the AND mask.
func buildDibHeader(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d is not positive", ErrInvalidSize, width, height)
	}
	if width > math.MaxInt32 || height > math.MaxInt32/2 {
		return nil, fmt.Errorf("%w: %dx%d overflows bitmap header", ErrInvalidSize, width, height)
	}
	buf := make([]byte, dibHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:], dibHeaderSize)
	binary.LittleEndian.PutUint32(buf[4:], uint32(width))
	binary.LittleEndian.PutUint32(buf[8:], uint32(height*2))
	binary.LittleEndian.PutUint16(buf[12:], 1)  // planes
	binary.LittleEndian.PutUint16(buf[14:], 32) // bits per pixel
	// compression (BI_RGB), image size, resolution and palette fields stay 0.
	return buf, nil
}

// generatePixelRow returns pattern row y (0 is the bottom row) as BGRA quads,
// zero-padded to a 4-byte boundary.
func generatePixelRow(width, y, height int, p Pattern) []byte {
	row := make([]byte, paddedRowSize(width*32))
	for x := 0; x < width; x++ {
		c := p.At(x, y, width, height)
		i := x * 4
		row[i+0] = c.B
		row[i+1] = c.G
		row[i+2] = c.R
		row[i+3] = c.A
	}
	return row
}

// buildAndMask returns a fully opaque 1bpp mask.
func buildAndMask(width, height int) []byte {
	return make([]byte, paddedRowSize(width)*height)
}

// buildDirectoryEntry returns the ICONDIRENTRY describing one image block.
func buildDirectoryEntry(width, height, dataSize, offset int) ([]byte, error) {
	if err := (Size{width, height}).validate(); err != nil {
		return nil, err
	}
	if dataSize < 0 || offset < 0 || int64(dataSize)+int64(offset) > math.MaxUint32 {
		return nil, fmt.Errorf("image data of %d bytes at offset %d does not fit in an icon", dataSize, offset)
	}

	buf := make([]byte, icoEntrySize)
	// 256 wraps to 0.
	buf[0] = byte(width % maxIconSize)
	buf[1] = byte(height % maxIconSize)
	buf[2] = 0 // color count (0 for truecolor)
	buf[3] = 0 // reserved
	binary.LittleEndian.PutUint16(buf[4:], 1)  // planes
	binary.LittleEndian.PutUint16(buf[6:], 32) // bits per pixel
	binary.LittleEndian.PutUint32(buf[8:], uint32(dataSize))
	binary.LittleEndian.PutUint32(buf[12:], uint32(offset))
	return buf, nil
}

// imageBlock is the encoded payload of one icon image.
type imageBlock struct {
	size Size
	data []byte
}

// buildImageBlock returns the DIB header, the colour bitmap and the AND mask
// for one image. Bitmap rows are stored bottom-up, so pattern row 0 comes
// first.
func buildImageBlock(s Size, p Pattern) (imageBlock, error) {
	dib, err := buildDibHeader(s.Width, s.Height)
	if err != nil {
		return imageBlock{}, err
	}
	mask := buildAndMask(s.Width, s.Height)

	data := make([]byte, 0, len(dib)+paddedRowSize(s.Width*32)*s.Height+len(mask))
	data = append(data, dib...)
	for y := 0; y < s.Height; y++ {
		data = append(data, generatePixelRow(s.Width, y, s.Height, p)...)
	}
	data = append(data, mask...)
	return imageBlock{size: s, data: data}, nil
}

// packICO lays out the header, one directory entry per block and the blocks
// themselves, in order and contiguous.
func packICO(blocks []imageBlock) ([]byte, error) {
	header, err := buildHeader(len(blocks))
	if err != nil {
		return nil, err
	}

	offset := icoHeaderSize + icoEntrySize*len(blocks)
	total := offset
	for _, b := range blocks {
		total += len(b.data)
	}

	var buf bytes.Buffer
	buf.Grow(total)
	buf.Write(header)
	for i, b := range blocks {
		entry, err := buildDirectoryEntry(b.size.Width, b.size.Height, len(b.data), offset)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		buf.Write(entry)
		offset += len(b.data)
	}
	for _, b := range blocks {
		buf.Write(b.data)
	}
	return buf.Bytes(), nil
}

// assemble builds a complete BMP-based icon holding one image per size.
func assemble(sizes []Size, p Pattern) ([]byte, error) {
	if err := validateSizes(sizes); err != nil {
		return nil, err
	}
	blocks := make([]imageBlock, 0, len(sizes))
	for _, s := range sizes {
		b, err := buildImageBlock(s, p)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return packICO(blocks)
}

// tempFile is the part of *os.File that writeFile needs.
type tempFile interface {
	io.WriteCloser
	Name() string
}

var createTemp = func(dir, pattern string) (tempFile, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// writeFile writes data to a temporary file next to path and renames it into
// place. On failure path is left as it was.
func writeFile(path string, data []byte) (err error) {
	f, err := createTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
