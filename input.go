package tilesheet

import "unicode"

// ParseDimension parses a value typed into a numeric field. Leading
// whitespace and an optional sign are skipped and the leading run of digits
// is used, so "48px" is 48. It returns false if there are no digits or the
// value is not positive or larger than MaxDimension.
func ParseDimension(s string) (int, bool) {
	i := 0
	for i < len(s) && unicode.IsSpace(rune(s[i])) {
		i++
	}

	negative := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		negative = s[i] == '-'
		i++
	}

	n, digits := 0, 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > MaxDimension {
			return 0, false
		}
		digits++
	}

	if digits == 0 || negative || n <= 0 {
		return 0, false
	}
	return n, true
}

// InputTileWidth applies a value typed into the tile width field. Invalid
// input leaves the tile width unchanged.
func (e *Editor) InputTileWidth(s string) bool {
	if n, ok := ParseDimension(s); ok {
		return e.SetTileWidth(n)
	}
	return false
}

// InputTileHeight applies a value typed into the tile height field.
func (e *Editor) InputTileHeight(s string) bool {
	if n, ok := ParseDimension(s); ok {
		return e.SetTileHeight(n)
	}
	return false
}

// InputMapWidth applies a value typed into the map width field.
func (e *Editor) InputMapWidth(s string) bool {
	if n, ok := ParseDimension(s); ok {
		return e.SetMapWidth(n)
	}
	return false
}

// InputMapHeight applies a value typed into the map height field.
func (e *Editor) InputMapHeight(s string) bool {
	if n, ok := ParseDimension(s); ok {
		return e.SetMapHeight(n)
	}
	return false
}
