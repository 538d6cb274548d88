package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// GenerateOTP generates a 6-digit code from crypto/rand
func GenerateOTP() (string, error) {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(strconv.FormatInt(n.Int64(), 10))
	}
	return b.String(), nil
}

// RandomHex returns n random bytes hex-encoded (2n characters)
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken is the sha256 hex digest stored instead of a raw secret
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ParsePrice accepts a number or numeric string. 0 marks a free course; empty or garbage means no price
func ParsePrice(v interface{}) *float64 {
	var f float64
	switch p := v.(type) {
	case nil:
		return nil
	case float64:
		f = p
	case int:
		f = float64(p)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		parsed, err := strconv.ParseFloat(fmt.Sprint(p), 64)
		if err != nil {
			return nil
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Percent is round(part/total*100), 0 when total is 0
func Percent(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Round2 rounds to two decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
