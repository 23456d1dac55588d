package naming

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// ErrInvalidLength indicates a non-positive suffix length was requested.
var ErrInvalidLength = errors.New("suffix length must be positive")

const (
	// DefaultPrefix is the bucket name prefix used when none is configured.
	DefaultPrefix = "my-bucket"

	// DefaultSuffixLength is the random suffix length used when none is configured.
	DefaultSuffixLength = 10

	minLength = 3
	maxLength = 63
)

// suffixAlphabet holds the characters a random suffix is drawn from.
const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)

// GenerateBucketName returns prefix + "-" + a random suffix of the given
// length, coerced into the S3 bucket grammar. The prefix is lowercased and
// stripped of characters outside [a-z0-9-] before joining.
func GenerateBucketName(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("suffix length %d: %w", length, ErrInvalidLength)
	}

	suffix := make([]byte, length)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(suffixAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		suffix[i] = suffixAlphabet[n.Int64()]
	}

	name := sanitizePrefix(prefix) + "-" + string(suffix)

	if len(name) > maxLength {
		name = name[:maxLength]
	}

	// First and last character must be a letter or digit.
	if !isAlnum(name[0]) {
		name = "a" + name[1:]
	}
	if !isAlnum(name[len(name)-1]) {
		name = name[:len(name)-1] + "a"
	}

	return name, nil
}

// Validate checks a name against the S3 bucket grammar: 3 to 63 characters,
// lowercase letters, digits and hyphens, with a letter or digit at both ends.
func Validate(name string) error {
	if len(name) < minLength || len(name) > maxLength {
		return fmt.Errorf("bucket name must be between %d and %d characters, got %d", minLength, maxLength, len(name))
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("bucket name %q must consist of lowercase letters, digits and hyphens and start and end with a letter or digit", name)
	}
	return nil
}

func sanitizePrefix(prefix string) string {
	prefix = strings.ToLower(prefix)

	var b strings.Builder
	b.Grow(len(prefix))
	for _, r := range prefix {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
