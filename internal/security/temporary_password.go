package security

// TemporaryPasswordAlphabet leaves out characters that are easy to misread.
const TemporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const minTemporaryPasswordLength = 8

// TemporaryPassword returns a random one-time password of at least eight characters.
func TemporaryPassword(length int) (string, error) {
	if length < minTemporaryPasswordLength {
		length = minTemporaryPasswordLength
	}
	return RandomString(length, TemporaryPasswordAlphabet)
}
