package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// AuthTokenHeaderName is the HTTP header carrying the access token on
// outbound API requests.
const AuthTokenHeaderName = "Authorization"

// GenerateOTP returns a numeric one-time code of the given length with no
// leading zeros, e.g. length 6 yields a value in [100000, 999999].
func GenerateOTP(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("invalid otp length %d", length)
	}
	low := big.NewInt(1)
	for i := 1; i < length; i++ {
		low.Mul(low, big.NewInt(10))
	}
	// span = 9 * 10^(length-1), so result = low + n covers [low, 10*low).
	span := new(big.Int).Mul(low, big.NewInt(9))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return new(big.Int).Add(low, n).String(), nil
}

// MakeRandHexString returns a hex string built from size random bytes.
func MakeRandHexString(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
