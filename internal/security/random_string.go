// Package security generates secrets handed out to operators and users.
package security

import (
	"crypto/rand"
	"errors"
	"fmt"
)

var (
	ErrNegativeLength = errors.New("length must be non-negative")
	ErrAlphabetSize   = errors.New("alphabet must hold between 1 and 256 bytes")
)

// RandomString draws length bytes from alphabet using crypto/rand. Bytes that
// would bias the result towards the start of the alphabet are discarded.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", ErrNegativeLength
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", ErrAlphabetSize
	}
	if length == 0 {
		return "", nil
	}

	size := len(alphabet)
	ceiling := 256 - 256%size
	value := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(value) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, sample := range buffer {
			if int(sample) >= ceiling {
				continue
			}
			value = append(value, alphabet[int(sample)%size])
			if len(value) == length {
				break
			}
		}
	}
	return string(value), nil
}
