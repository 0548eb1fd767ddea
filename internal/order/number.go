package order

import (
	"crypto/rand"
	"math/big"
	"time"
)

const numberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderNumber formats MM-YYYYMMDDHHMMSS-XXXXXX from the UTC time and six
// random characters.
func NewOrderNumber(now time.Time) (string, error) {
	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(numberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = numberAlphabet[n.Int64()]
	}
	return "MM-" + now.UTC().Format("20060102150405") + "-" + string(suffix), nil
}
