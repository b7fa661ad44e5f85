package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// 16 chars over a 62-symbol alphabet is ~95 bits of entropy.
const suffixLength = 16

// NewToken returns an opaque session token: a nanosecond timestamp plus
// a random suffix. Tokens only need to be unique, they are not secrets.
func NewToken() (string, error) {
	suffix := make([]byte, suffixLength)

	for i := 0; i < suffixLength; i++ {
		randomIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		suffix[i] = alphabet[randomIndex.Int64()]
	}

	return fmt.Sprintf("session_%d_%s", time.Now().UnixNano(), suffix), nil
}
