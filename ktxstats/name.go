package ktxstats

import "strings"

// qwCharset maps the low half of the Quake character set to readable ASCII.
// The high half (128-255) repeats it in red/gold glyphs.
var qwCharset = func() [128]byte {
	var t [128]byte
	for i := range t {
		switch {
		case i >= 32 && i < 127:
			t[i] = byte(i)
		case i >= 18 && i <= 27:
			t[i] = byte('0' + i - 18)
		default:
			t[i] = '#'
		}
	}
	t[5], t[14], t[15], t[28] = '.', '.', '.', '.'
	t[16], t[17] = '[', ']'
	t[29], t[30], t[31] = '(', '=', ')'
	t[127] = '<'
	return t
}()

// CleanName converts a QuakeWorld name to plain ASCII: gold digits become
// digits, red letters become letters and decorations become punctuation.
// Runes outside the Quake character set are kept as they are.
func CleanName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == 128:
			b.WriteByte('(')
		case r == 129:
			b.WriteByte('=')
		case r == 130:
			b.WriteByte(')')
		case r >= 0 && r < 256:
			b.WriteByte(qwCharset[r&127])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
