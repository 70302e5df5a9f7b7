package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// unambiguous subset for codes people read aloud at the table
const inviteChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateInviteCode returns an n-character uppercase code without
// look-alike characters (0/O, 1/I).
func GenerateInviteCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("code length must be positive")
	}
	var sb strings.Builder
	sb.Grow(n)

	limit := big.NewInt(int64(len(inviteChars)))
	for range n {
		num, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(inviteChars[num.Int64()])
	}
	return sb.String(), nil
}
