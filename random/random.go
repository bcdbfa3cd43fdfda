// Package random produces random alphanumeric strings for secrets and
// throwaway fixture data.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	mrand "math/rand"
	"time"
)

const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var fixtures *mrand.Rand

func init() {
	seed := time.Now().UnixNano()
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	fixtures = mrand.New(mrand.NewSource(seed))
}

// String is not safe for secrets or for concurrent use.
func String(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[fixtures.Intn(len(charset))]
	}
	return string(b)
}

// Email returns a unique looking address on the example.com domain.
func Email() string {
	return fmt.Sprintf("%s@example.com", String(12))
}

// StringSecure draws every character from crypto/rand.
func StringSecure(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid length %d", length)
	}

	b := make([]byte, length)
	max := big.NewInt(int64(len(charset)))
	for i := range b {
		num, err := crand.Int(crand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}
