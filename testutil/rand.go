package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"
)

// RandomAlphaNum generates a random alphanumeric string.
// In case length <= 0 it returns an error.
func RandomAlphaNum(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	if length <= 0 {
		return "", fmt.Errorf("length must be greater than 0")
	}

	randomString := make([]byte, length)
	for i := range randomString {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		randomString[i] = charset[num.Int64()]
	}

	return string(randomString), nil
}

// RandomAddress generates a random hex account address.
func RandomAddress() string {
	return gofakeit.HexUint(160)
}

// RandomAmount generates a random positive amount below maxAmount.
func RandomAmount(maxAmount int64) sdkmath.Int {
	return sdkmath.NewInt(int64(gofakeit.Number(1, int(maxAmount))))
}
