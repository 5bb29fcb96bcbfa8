package testutil

import (
	"crypto/rand"
	"math/big"
)

const lowercase = "abcdefghijklmnopqrstuvwxyz"

// RandomString returns length random lowercase ASCII letters.
func RandomString(length int) string {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(lowercase))))
		if err != nil {
			panic(err)
		}
		out[i] = lowercase[n.Int64()]
	}
	return string(out)
}

// RandomEmail returns an address with an 8 letter local part at domain
// (example.com when empty).
func RandomEmail(domain string) string {
	if domain == "" {
		domain = "example.com"
	}
	return RandomString(8) + "@" + domain
}
