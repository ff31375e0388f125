package domain

import (
	"strconv"
	"strings"
)

// HeadingAlpha is the translucency applied to category headings.
const HeadingAlpha = 0.4

// HexToRGBA converts a hex color ("#abc", "aabbcc", ...) to an rgba() CSS value.
//
// Three-digit colors are expanded to six. The value is parsed like a browser
// would parse an integer in base 16: the longest leading run of hex digits is
// used and anything after it is ignored. When there is no such run the
// channels come out as NaN, which CSS treats as an invalid color.
func HexToRGBA(hex string, alpha float64) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	}

	a := strconv.FormatFloat(alpha, 'f', -1, 64)

	n, ok := parseHexPrefix(hex)
	if !ok {
		return "rgba(NaN,NaN,NaN," + a + ")"
	}

	r := (n >> 16) & 255
	g := (n >> 8) & 255
	b := n & 255
	return "rgba(" + strconv.FormatUint(uint64(r), 10) + "," +
		strconv.FormatUint(uint64(g), 10) + "," +
		strconv.FormatUint(uint64(b), 10) + "," + a + ")"
}

// PickerColor returns the value an <input type="color"> keeps for hex: the
// lowercase "#rrggbb" form of a 3 or 6 digit color, "#000000" for anything else.
func PickerColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return "#000000"
	}
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return "#000000"
		}
	}
	hex = strings.ToLower(hex)
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return "#" + hex
}

// parseHexPrefix accumulates leading hex digits into 32 bits, wrapping on overflow.
func parseHexPrefix(s string) (uint32, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}

	var n uint32
	digits := 0
	for i := 0; i < len(s); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			break
		}
		n = n<<4 | uint32(d)
		digits++
	}
	return n, digits > 0
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
