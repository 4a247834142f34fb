package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// It is used to drop passwords from memory once they have been sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// ParseBool reads a boolean stored as the literal string "true".
// Anything else, including an absent value, is false.
func ParseBool(b []byte) bool {
	return string(b) == "true"
}

// FormatBool is the inverse of ParseBool.
func FormatBool(v bool) []byte {
	if v {
		return []byte("true")
	}
	return []byte("false")
}
