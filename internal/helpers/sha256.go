package helpers

import (
	"crypto/sha256"
	"encoding/hex"
)

const shortIDLength = 12

func SHA256(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

// ShortID derives a stable short identifier from a source string, used to tag
// one submission across log lines.
func ShortID(input string) string {
	sum := SHA256(input)
	if len(sum) > shortIDLength {
		return sum[:shortIDLength]
	}
	return sum
}
