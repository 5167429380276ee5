package tztable

import "fmt"

// Codes are three uppercase letters packed into 15 bits, 5 bits per
// letter with 'A' as zero. The packed form is both the storage format
// and the dedup key.

// PackCode packs a 3-letter code. Lowercase input is accepted and
// folded to uppercase.
func PackCode(code string) (uint16, error) {
	if len(code) != 3 {
		return 0, fmt.Errorf("code %q must be exactly 3 letters", code)
	}
	var packed uint16
	for i := 0; i < 3; i++ {
		c := code[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("code %q contains non-letter %q", code, code[i])
		}
		packed = packed<<5 | uint16(c-'A')
	}
	return packed, nil
}

// UnpackCode expands a packed code back to its 3-letter string.
func UnpackCode(packed uint16) string {
	return string([]byte{
		'A' + byte(packed>>10&0x1F),
		'A' + byte(packed>>5&0x1F),
		'A' + byte(packed&0x1F),
	})
}
