package attachment

import "bytes"

// signatureSegment is one run of expected bytes at a fixed offset.
type signatureSegment struct {
	offset int
	value  []byte
}

// imageSignature describes the magic number of one image format. Every
// segment must match for the signature to match. Adding a format means
// adding a table row.
type imageSignature struct {
	format   string
	segments []signatureSegment
}

var imageSignatures = []imageSignature{
	{format: "png", segments: []signatureSegment{{offset: 0, value: []byte{0x89, 0x50, 0x4E, 0x47}}}},
	{format: "jpeg", segments: []signatureSegment{{offset: 0, value: []byte{0xFF, 0xD8, 0xFF}}}},
	{format: "gif", segments: []signatureSegment{{offset: 0, value: []byte("GIF8")}}},
	{format: "webp", segments: []signatureSegment{
		{offset: 0, value: []byte("RIFF")},
		{offset: 8, value: []byte("WEBP")},
	}},
}

func (s imageSignature) matches(buf []byte) bool {
	for _, seg := range s.segments {
		end := seg.offset + len(seg.value)
		if len(buf) < end {
			return false
		}
		if !bytes.Equal(buf[seg.offset:end], seg.value) {
			return false
		}
	}
	return true
}

// HasValidImageHeader reports whether buf begins with the magic number of a
// supported image format (PNG, JPEG, GIF, WebP). Buffers too short to carry
// a full signature are rejected; unrecognized buffers are rejected, not
// guessed.
func HasValidImageHeader(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	for _, sig := range imageSignatures {
		if sig.matches(buf) {
			return true
		}
	}
	return false
}
