package generator

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	// Alphabet is the 62-symbol set short codes are drawn from.
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultCodeLength  = 6
	DefaultMaxAttempts = 10
)

// ErrExhausted is returned when every generated candidate collided within
// the attempt bound. With 62^6 combinations hitting it means the keyspace is
// nearly full or the uniqueness check is misbehaving.
var ErrExhausted = errors.New("exhausted short code generation attempts")

// GenerateShortCode produces a code of the given length drawn uniformly from
// the alphanumeric alphabet.
func GenerateShortCode(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(Alphabet))))
		if err != nil {
			return "", err
		}
		b[i] = Alphabet[n.Int64()]
	}

	return string(b), nil
}

// EnsureUnique generates codes until exists reports no collision, up to
// maxAttempts. The check is inherently racy against concurrent inserts; the
// storage layer's uniqueness constraint remains the final arbiter and the
// caller retries on a constraint violation.
func EnsureUnique(ctx context.Context, length, maxAttempts int, exists func(context.Context, string) (bool, error)) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for i := 0; i < maxAttempts; i++ {
		code, err := GenerateShortCode(length)
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("uniqueness check failed: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", ErrExhausted, maxAttempts)
}
