package ansi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
)

// cp437ToUnicode maps the upper 128 bytes of CP437 — the encoding most art
// in the wild still ships in — to their Unicode runes. Index 0 is byte
// 0x80; the table itself is fixed by the CP437 code page, not something
// this domain has any say over.
var cp437ToUnicode = [128]rune{
	'Ç', 'ü', 'é', 'â', 'ä', 'à', 'å', 'ç', // 80-87
	'ê', 'ë', 'è', 'ï', 'î', 'ì', 'Ä', 'Å', // 88-8F
	'É', 'æ', 'Æ', 'ô', 'ö', 'ò', 'û', 'ù', // 90-97
	'ÿ', 'Ö', 'Ü', '¢', '£', '¥', '₧', 'ƒ', // 98-9F
	'á', 'í', 'ó', 'ú', 'ñ', 'Ñ', 'ª', 'º', // A0-A7
	'¿', '⌐', '¬', '½', '¼', '¡', '«', '»', // A8-AF
	'░', '▒', '▓', '│', '┤', '╡', '╢', '╖', // B0-B7
	'╕', '╣', '║', '╗', '╝', '╜', '╛', '┐', // B8-BF
	'└', '┴', '┬', '├', '─', '┼', '╞', '╟', // C0-C7
	'╚', '╔', '╩', '╦', '╠', '═', '╬', '╧', // C8-CF
	'╨', '╤', '╥', '╙', '╘', '╒', '╓', '╫', // D0-D7
	'╪', '┘', '┌', '█', '▄', '▌', '▐', '▀', // D8-DF
	'α', 'ß', 'Γ', 'π', 'Σ', 'σ', 'µ', 'τ', // E0-E7
	'Φ', 'Θ', 'Ω', 'δ', '∞', 'φ', 'ε', '∩', // E8-EF
	'≡', '±', '≥', '≤', '⌠', '⌡', '÷', '≈', // F0-F7
	'°', '∙', '·', '√', 'ⁿ', '²', '■', ' ', // F8-FF
}

// DecodeCP437 converts CP437-encoded art bytes to a UTF-8 string, for the
// fraction of peers that negotiated a UTF-8-capable terminal type rather
// than a legacy DOS-art client (see internal/transport's legacyTerminals).
func DecodeCP437(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))

	for _, b := range data {
		if b < 0x80 {
			sb.WriteByte(b)
		} else {
			sb.WriteRune(cp437ToUnicode[b-0x80])
		}
	}
	return sb.String()
}

// The SAUCE (Standard Architecture for Universal Comment Extensions)
// record is a fixed 128-byte trailer many art-scene .ans files carry,
// naming the piece and its artist. This repo surfaces that credit in the
// welcome banner template when present; art with no SAUCE record renders
// exactly as its raw bytes.
const (
	sauceIDLen  = 5
	sauceRecLen = 128
)

var (
	sauceID    = []byte("SAUCE")
	errNoSauce = errors.New("ansi: no SAUCE record present")
)

// SauceInfo is the subset of a SAUCE record this repo's banner template
// cares about — title and artist credit, not the full type/flags table a
// dedicated SAUCE-editing tool would need.
type SauceInfo struct {
	Title    string
	Author   string
	Group    string
	Date     string
	Comments []string
}

// StripSauce removes a trailing SAUCE record (and its comment block, and
// the EOF marker some editors place before it) from data, leaving the
// drawable art bytes.
func StripSauce(data []byte) []byte {
	if len(data) < sauceRecLen {
		return data
	}

	recStart := len(data) - sauceRecLen
	if !bytes.Equal(data[recStart:recStart+sauceIDLen], sauceID) {
		return data
	}

	commentsCount := int(data[recStart+104])

	trimLen := sauceRecLen
	if commentsCount > 0 {
		// "COMNT" (5 bytes) + 64 bytes per comment line.
		trimLen += 5 + (64 * commentsCount)
	}
	if trimLen > len(data) {
		return []byte{}
	}

	contentEnd := len(data) - trimLen
	if contentEnd > 0 && data[contentEnd-1] == 0x1A {
		contentEnd--
	}
	return data[:contentEnd]
}

// ParseSauceInfo extracts the title/artist credit from data's trailing
// SAUCE record, or errNoSauce if it has none.
func ParseSauceInfo(data []byte) (*SauceInfo, error) {
	if len(data) < sauceRecLen {
		return nil, errNoSauce
	}

	recStart := len(data) - sauceRecLen
	if !bytes.Equal(data[recStart:recStart+sauceIDLen], sauceID) {
		return nil, errNoSauce
	}

	r := bytes.NewReader(data[recStart:])
	r.Seek(7, io.SeekStart) // skip "SAUCE" + version

	readString := func(n int) string {
		buf := make([]byte, n)
		r.Read(buf)
		return string(bytes.TrimRight(buf, "\x00 "))
	}

	info := &SauceInfo{
		Title:  readString(35),
		Author: readString(20),
		Group:  readString(20),
		Date:   readString(8),
	}

	r.Seek(4, io.SeekCurrent) // skip FileSize
	r.Seek(2, io.SeekCurrent) // skip DataType, FileType
	r.Seek(8, io.SeekCurrent) // skip TInfo1-4

	var commentsCount, flags byte
	binary.Read(r, binary.LittleEndian, &commentsCount)
	binary.Read(r, binary.LittleEndian, &flags)

	if commentsCount > 0 {
		commentBlockLen := 5 + (64 * int(commentsCount))
		commentStart := recStart - commentBlockLen
		if commentStart >= 0 && bytes.Equal(data[commentStart:commentStart+5], []byte("COMNT")) {
			info.Comments = make([]string, commentsCount)
			cr := bytes.NewReader(data[commentStart+5:])
			for i := 0; i < int(commentsCount); i++ {
				buf := make([]byte, 64)
				cr.Read(buf)
				info.Comments[i] = string(bytes.TrimRight(buf, "\x00 "))
			}
		}
	}

	return info, nil
}
