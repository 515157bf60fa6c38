package dice

import (
	"crypto/rand"
	"math/big"
)

// osRandom draws from the operating system's entropy pool.
type osRandom struct{}

// NewCryptoSource returns the Source used outside tests.
func NewCryptoSource() Source {
	return osRandom{}
}

// Intn panics when n <= 0 or when the entropy pool cannot be read.
func (osRandom) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: reading entropy: " + err.Error())
	}
	return int(v.Int64())
}
