package tabular

import (
	"golang.org/x/text/transform"
)

// unescaper rewrites escape-style quoting (\" and \\) into the RFC 4180 form
// read by encoding/csv. It tracks the field layout so each escape is rewritten
// for where it appears:
//   - inside a quoted field an escaped quote becomes a doubled quote;
//   - inside an unquoted field it becomes a bare quote, kept literally by LazyQuotes;
//   - at the start of an unquoted field the field is re-emitted quoted, so the
//     quote is not taken as an opening quote.
//
// An escaped escape becomes a single escape; any other escape byte passes through.
// It works on bytes, so delimiter, escape and quote must be ASCII.
type unescaper struct {
	escape byte
	quote  byte
	delim  byte

	fieldStart bool
	quoted     bool
	// synthetic is set while re-emitting an unquoted field in quotes.
	synthetic bool
}

func newUnescaper(escape, quote, delimiter rune) transform.Transformer {
	if quote == 0 {
		quote = '"'
	}
	u := &unescaper{escape: byte(escape), quote: byte(quote), delim: byte(delimiter)}
	u.Reset()
	return u
}

func (u *unescaper) Reset() {
	u.fieldStart = true
	u.quoted = false
	u.synthetic = false
}

func (u *unescaper) isBoundary(c byte) bool {
	return c == u.delim || c == '\n' || c == '\r'
}

func (u *unescaper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	var out [3]byte
	for nSrc < len(src) {
		c := src[nSrc]
		n, consumed := 0, 1

		var next byte
		hasNext := nSrc+1 < len(src)
		if hasNext {
			next = src[nSrc+1]
		}
		needsNext := c == u.escape || (u.quoted && c == u.quote)
		if needsNext && !hasNext && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		fieldStart, quoted, synthetic := false, u.quoted, u.synthetic
		switch {
		case c == u.escape && hasNext && (next == u.quote || next == u.escape):
			consumed = 2
			switch {
			case next == u.escape:
				out[0], n = u.escape, 1
			case quoted || synthetic:
				out[0], out[1], n = u.quote, u.quote, 2
			case u.fieldStart:
				out[0], out[1], out[2], n = u.quote, u.quote, u.quote, 3
				synthetic = true
			default:
				out[0], n = u.quote, 1
			}
		case quoted && c == u.quote:
			if hasNext && next == u.quote {
				out[0], out[1], n, consumed = u.quote, u.quote, 2, 2
			} else {
				out[0], n = c, 1
				quoted = false
			}
		case quoted:
			out[0], n = c, 1
		case synthetic && u.isBoundary(c):
			out[0], out[1], n = u.quote, c, 2
			synthetic = false
			fieldStart = true
		case synthetic && c == u.quote:
			out[0], out[1], n = u.quote, u.quote, 2
		case !synthetic && u.fieldStart && c == u.quote:
			out[0], n = c, 1
			quoted = true
		default:
			out[0], n = c, 1
			fieldStart = !synthetic && u.isBoundary(c)
		}

		if nDst+n > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		copy(dst[nDst:], out[:n])
		nDst += n
		nSrc += consumed
		u.fieldStart, u.quoted, u.synthetic = fieldStart, quoted, synthetic
	}

	if atEOF && u.synthetic {
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = u.quote
		nDst++
		u.synthetic = false
	}
	return nDst, nSrc, nil
}
