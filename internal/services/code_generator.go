package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/Filichkin/SA-RAG/domain"
)

// SecureCodeGenerator implements domain.CodeGenerator. Every digit is
// drawn independently from crypto/rand, so leading zeros are as likely
// as any other digit and stay significant.
type SecureCodeGenerator struct {
	length int
}

// NewCodeGenerator creates a generator for codes of the given length
func NewCodeGenerator(length int) domain.CodeGenerator {
	return &SecureCodeGenerator{length: length}
}

// Generate implements domain.CodeGenerator
func (g *SecureCodeGenerator) Generate() (string, error) {
	digits := make([]byte, g.length)

	for i := 0; i < g.length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
