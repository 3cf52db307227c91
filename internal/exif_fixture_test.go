package internal

import (
	"bytes"
	"encoding/binary"
	"os"
	"sort"
	"testing"
)

// EXIF/TIFF tag IDs used by the fixtures.
const (
	tagDateTime          = 0x0132 // IFD0 "Image DateTime"
	tagExifIFDPointer    = 0x8769
	tagDateTimeOriginal  = 0x9003
	tagDateTimeDigitized = 0x9004
)

// writeEXIFTIFF writes a minimal little-endian TIFF carrying the given date
// tags ("YYYY:MM:DD HH:MM:SS" strings). tagDateTime lands in IFD0; the
// capture tags land in the EXIF sub-IFD, reached through an ExifIFDPointer
// entry, which is how real camera files lay them out.
func writeEXIFTIFF(t *testing.T, path string, dates map[uint16]string) {
	t.Helper()

	var ifd0Tags, exifTags []uint16
	for tag := range dates {
		if tag == tagDateTime {
			ifd0Tags = append(ifd0Tags, tag)
		} else {
			exifTags = append(exifTags, tag)
		}
	}
	sort.Slice(ifd0Tags, func(i, j int) bool { return ifd0Tags[i] < ifd0Tags[j] })
	sort.Slice(exifTags, func(i, j int) bool { return exifTags[i] < exifTags[j] })

	hasExifIFD := len(exifTags) > 0
	n0 := len(ifd0Tags)
	if hasExifIFD {
		n0++
	}

	ifd0Size := 2 + 12*n0 + 4
	exifOff := 8 + ifd0Size
	exifSize := 0
	if hasExifIFD {
		exifSize = 2 + 12*len(exifTags) + 4
	}
	dataOff := uint32(8 + ifd0Size + exifSize)

	// Assign value offsets in the order the strings are emitted.
	offsets := make(map[uint16]uint32)
	next := dataOff
	for _, tag := range append(append([]uint16{}, ifd0Tags...), exifTags...) {
		offsets[tag] = next
		next += uint32(len(dates[tag]) + 1)
	}

	buf := &bytes.Buffer{}
	le := binary.LittleEndian
	u16 := func(v uint16) { binary.Write(buf, le, v) }
	u32 := func(v uint32) { binary.Write(buf, le, v) }
	asciiEntry := func(tag uint16) {
		u16(tag)
		u16(2) // ASCII
		u32(uint32(len(dates[tag]) + 1))
		u32(offsets[tag])
	}

	buf.WriteString("II")
	u16(0x2A)
	u32(8)

	u16(uint16(n0))
	for _, tag := range ifd0Tags {
		asciiEntry(tag)
	}
	if hasExifIFD {
		u16(tagExifIFDPointer)
		u16(4) // LONG
		u32(1)
		u32(uint32(exifOff))
	}
	u32(0)

	if hasExifIFD {
		u16(uint16(len(exifTags)))
		for _, tag := range exifTags {
			asciiEntry(tag)
		}
		u32(0)
	}

	for _, tag := range append(append([]uint16{}, ifd0Tags...), exifTags...) {
		buf.WriteString(dates[tag])
		buf.WriteByte(0)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write EXIF fixture: %v", err)
	}
}

// testConfig returns the default extension configuration without going
// through viper.
func testConfig() *Config {
	return &Config{
		PhotoExt:   []string{".arw", ".jpg", ".jpeg", ".dng", ".tif", ".tiff"},
		VideoExt:   []string{".mp4", ".mov", ".mts", ".m2ts"},
		SidecarExt: []string{".xml", ".bup", ".ifo"},
	}
}
