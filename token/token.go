// Package token generates the verification codes and session tokens used to
// claim a manager profile.
package token

import (
	"crypto/rand"
	"math/big"
)

const (
	// CodeAlphabet leaves out characters that are easy to misread: I, O, 0 and 1.
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	CodeLength   = 6

	SessionAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	SessionTokenLength = 64
)

// Generator produces verification codes and session tokens.
type Generator interface {
	GenerateCode() string
	GenerateSessionToken() string
}

type randomGenerator struct{}

// New returns a Generator backed by crypto/rand.
func New() Generator {
	return randomGenerator{}
}

func (randomGenerator) GenerateCode() string {
	return randomString(CodeAlphabet, CodeLength)
}

func (randomGenerator) GenerateSessionToken() string {
	return randomString(SessionAlphabet, SessionTokenLength)
}

func randomString(alphabet string, n int) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken.
			panic("token: reading random source: " + err.Error())
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}

// Fixed is a Generator that always returns the same values.
type Fixed struct {
	Code         string
	SessionToken string
}

func (f Fixed) GenerateCode() string {
	return f.Code
}

func (f Fixed) GenerateSessionToken() string {
	return f.SessionToken
}
