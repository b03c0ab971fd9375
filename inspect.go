package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type icoDirEntry struct {
	Width      uint8 // 0 means 256
	Height     uint8 // 0 means 256
	ColorCount uint8
	Reserved   uint8
	Planes     uint16
	BitCount   uint16
	Size       uint32
	Offset     uint32
}

func (e icoDirEntry) size() Size {
	w, h := int(e.Width), int(e.Height)
	if w == 0 {
		w = maxIconSize
	}
	if h == 0 {
		h = maxIconSize
	}
	return Size{w, h}
}

// icoImage is a directory entry plus what its payload turned out to be.
type icoImage struct {
	icoDirEntry
	Format string // "png" or "bmp"
}

type icoHeader struct {
	Reserved uint16
	Type     uint16 // 1 for icons, 2 for cursors
	Count    uint16
}

type icoFile struct {
	icoHeader
	Images []icoImage
}

// parseICO reads the header and directory of an icon and checks that every
// entry points inside data.
func parseICO(data []byte) (icoFile, error) {
	var f icoFile
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &f.icoHeader); err != nil {
		return f, fmt.Errorf("read header: %w", err)
	}

	if f.Reserved != 0 {
		return f, fmt.Errorf("reserved header field is %d, want 0", f.Reserved)
	}
	if f.Type != 1 {
		return f, fmt.Errorf("unsupported resource type %d (only icons are supported)", f.Type)
	}
	if f.Count == 0 {
		return f, ErrNoImages
	}

	for i := 0; i < int(f.Count); i++ {
		var e icoDirEntry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return f, fmt.Errorf("read entry %d: %w", i, err)
		}
		end := uint64(e.Offset) + uint64(e.Size)
		if e.Offset < uint32(icoHeaderSize+icoEntrySize*int(f.Count)) || end > uint64(len(data)) {
			return f, fmt.Errorf("entry %d: %d bytes at offset %d outside file of %d bytes", i, e.Size, e.Offset, len(data))
		}
		format := "bmp"
		if bytes.HasPrefix(data[e.Offset:end], pngSignature) {
			format = "png"
		}
		f.Images = append(f.Images, icoImage{icoDirEntry: e, Format: format})
	}
	return f, nil
}
