package source

// sanitize.go provides streaming reader wrappers applied to CSV input
// before parsing:
//
//   - bomReader strips the UTF-8 BOM (0xEF 0xBB 0xBF) that Windows tools
//     prepend to exported files
//   - utf8Reader replaces invalid UTF-8 bytes with '?' on the fly
//
// Both operate in constant memory so large files never need to be loaded
// whole.

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// wrapReader applies BOM skipping and UTF-8 sanitization in the required
// order: the BOM must be gone before any byte inspection happens.
func wrapReader(r io.Reader) io.Reader {
	return newUTF8Reader(newBOMReader(r))
}

// bomReader skips a leading UTF-8 BOM if present.
type bomReader struct {
	r       *bufio.Reader
	checked bool
}

func newBOMReader(r io.Reader) *bomReader {
	return &bomReader{r: bufio.NewReader(r)}
}

func (b *bomReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		lead, err := b.r.Peek(3)
		if err == nil && lead[0] == 0xEF && lead[1] == 0xBB && lead[2] == 0xBF {
			if _, err := b.r.Discard(3); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// utf8Reader replaces invalid UTF-8 sequences with '?' as data streams
// through. A multi-byte rune split across two reads is held back as pending
// bytes until the rest arrives.
type utf8Reader struct {
	r       io.Reader
	pending []byte
}

func newUTF8Reader(r io.Reader) *utf8Reader {
	return &utf8Reader{r: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (u *utf8Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	// Prepend bytes held back from the previous read.
	offset := copy(p, u.pending)
	u.pending = u.pending[:0]

	n, err := u.r.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	// Fast path: pure ASCII needs no inspection.
	if allASCII(p[:n]) {
		return n, err
	}

	return u.sanitize(p[:n], err == io.EOF), err
}

// sanitize rewrites data in place, replacing each invalid byte with '?'.
// Returns the number of bytes to surface. When not at EOF, an incomplete
// trailing sequence is saved for the next read instead of being mangled.
func (u *utf8Reader) sanitize(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])

		if r == utf8.RuneError && size == 1 {
			rest := data[read:]
			if !atEOF && incompleteRune(rest) {
				u.pending = append(u.pending, rest...)
				return write
			}
			data[write] = '?'
			write++
			read++
			continue
		}

		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

func allASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// incompleteRune reports whether data could be the start of a multi-byte
// sequence whose tail has not been read yet.
func incompleteRune(data []byte) bool {
	if len(data) == 0 || len(data) >= utf8.UTFMax {
		return false
	}
	lead := data[0]
	var want int
	switch {
	case lead < 0x80:
		return false
	case lead < 0xC0:
		return false // continuation byte, plainly invalid
	case lead < 0xE0:
		want = 2
	case lead < 0xF0:
		want = 3
	default:
		want = 4
	}
	if len(data) >= want {
		return false
	}
	// All bytes after the lead must be continuation bytes, otherwise the
	// sequence is already broken and waiting will not fix it.
	for _, b := range data[1:] {
		if b&0xC0 != 0x80 {
			return false
		}
	}
	return true
}
