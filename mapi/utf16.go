package mapi

import "unicode/utf16"

// utf16Encode converts a Go UTF-8 string to UTF-16LE code units, the
// encoding used throughout CFB directory-entry names and PT_UNICODE
// property values.
func utf16Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}
