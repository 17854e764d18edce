package str

// ToUpperCase maps every ASCII lowercase letter of the given string to its uppercase form.
// All other bytes, including every byte of a multi-byte UTF-8 sequence, are kept as is.
func ToUpperCase(in string) string {
	first := -1
	for i := 0; i < len(in); i++ {
		if isLowerASCII(in[i]) {
			first = i
			break
		}
	}
	if first < 0 {
		return in
	}

	b := []byte(in)
	for i := first; i < len(b); i++ {
		if isLowerASCII(b[i]) {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

func isLowerASCII[C byte | rune](c C) bool {
	return 'a' <= c && c <= 'z'
}
