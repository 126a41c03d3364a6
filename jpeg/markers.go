package jpeg

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/AlanRace/go-imagelib"
)

const (
	marker uint8 = 0xff
	tem    uint8 = 0x01
	sof0   uint8 = 0xc0
	dht    uint8 = 0xc4
	jpg    uint8 = 0xc8
	dac    uint8 = 0xcc
	sof15  uint8 = 0xcf
	rst0   uint8 = 0xd0
	rst7   uint8 = 0xd7
	soi    uint8 = 0xd8
	eoi    uint8 = 0xd9
	sos    uint8 = 0xda
	com    uint8 = 0xfe
)

// startOfFrame is the fixed part of an SOFn segment, after its length.
type startOfFrame struct {
	Precision     uint8
	ImageHeight   uint16
	ImageWidth    uint16
	NumComponents uint8
}

// Header describes a JPEG frame as found in its header segments.
type Header struct {
	Width, Height int
	// Precision is the sample precision in bits, usually 8.
	Precision int
	// Components is 1 for greyscale, 3 for YCbCr and 4 for CMYK.
	Components int
	// Progressive is set for progressive frames (SOF2, SOF6, SOF10, SOF14).
	Progressive bool
	// Comments holds the COM segments preceding the frame header. Text that
	// is not valid UTF-8 is read as ISO 8859-15.
	Comments []string
}

// DecodeHeader reads the marker segments of a JPEG stream up to and
// including the frame header, without decoding any scan data.
func DecodeHeader(r io.Reader) (*Header, error) {
	src, ok := r.(*imagelib.ChunkReader)
	if !ok {
		src = imagelib.NewChunkReader(r)
	}
	return readHeader(src)
}

// isSOF reports whether m starts a frame header. C4, C8 and CC share the
// range but are DHT, JPG and DAC.
func isSOF(m uint8) bool {
	return m >= sof0 && m <= sof15 && m != dht && m != jpg && m != dac
}

func formatError(format string, args ...any) error {
	return &imagelib.FormatError{Format: formatName, Msg: fmt.Sprintf(format, args...)}
}

func decodeComment(text []byte) string {
	if utf8.Valid(text) {
		return string(text)
	}
	decoded, err := charmap.ISO8859_15.NewDecoder().Bytes(text)
	if err != nil {
		return string(text)
	}
	return string(decoded)
}

// readHeader walks the marker segments at the start of src and stops just
// past the first frame header.
func readHeader(src *imagelib.ChunkReader) (*Header, error) {
	buf, err := src.ReadChunk(2)
	if err != nil {
		return nil, err
	}
	if buf[0] != marker || buf[1] != soi {
		return nil, formatError("missing SOI marker")
	}

	var comments []string
	for {
		buf, err = src.ReadChunk(2)
		if err != nil {
			return nil, err
		}
		if buf[0] != marker {
			return nil, formatError("expected marker at offset %d, found %#02x", src.Offset()-2, buf[0])
		}

		m := buf[1]
		// Any number of 0xff fill bytes may precede a marker.
		for m == marker {
			if m, err = src.ReadByte(); err != nil {
				return nil, err
			}
		}

		switch {
		case m == sos || m == eoi:
			return nil, formatError("no frame header before marker %#02x", m)
		case m == tem || (m >= rst0 && m <= rst7):
			// Standalone markers have no length.
			continue
		}

		buf, err = src.ReadChunk(2)
		if err != nil {
			return nil, err
		}
		length := int(binary.BigEndian.Uint16(buf))
		if length < 2 {
			return nil, formatError("segment %#02x has invalid length %d", m, length)
		}

		if isSOF(m) {
			var sof startOfFrame
			if err := binary.Read(src, binary.BigEndian, &sof); err != nil {
				return nil, err
			}
			if sof.ImageWidth == 0 || sof.ImageHeight == 0 {
				return nil, formatError("frame is %dx%d", sof.ImageWidth, sof.ImageHeight)
			}
			return &Header{
				Width:       int(sof.ImageWidth),
				Height:      int(sof.ImageHeight),
				Precision:   int(sof.Precision),
				Components:  int(sof.NumComponents),
				Progressive: m&0x03 == 0x02,
				Comments:    comments,
			}, nil
		}

		payload, err := src.ReadChunk(length - 2)
		if err != nil {
			return nil, err
		}
		if m == com {
			comments = append(comments, decodeComment(payload))
		}
	}
}
