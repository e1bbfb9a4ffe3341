// Package identity holds the rules shared by the API server and the client for
// wallet addresses, handles and the onboarding predicate.
package identity

import (
	"encoding/hex"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

var (
	ErrAddressRequired = errors.New("wallet address is required")
	ErrInvalidAddress  = errors.New("invalid wallet address")
	ErrBadChecksum     = errors.New("wallet address checksum mismatch")
	ErrInvalidHandle   = errors.New("handle must be 3-30 characters of a-z, 0-9 or _")
)

var handlePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// NormalizeAddress validates an EVM address and returns its lowercase form.
// Mixed-case input must carry a valid EIP-55 checksum; single-case input is
// accepted as is.
func NormalizeAddress(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if addr == "" {
		return "", ErrAddressRequired
	}
	if len(addr) != 42 || !(strings.HasPrefix(addr, "0x") || strings.HasPrefix(addr, "0X")) {
		return "", ErrInvalidAddress
	}
	body := addr[2:]
	if _, err := hex.DecodeString(body); err != nil {
		return "", ErrInvalidAddress
	}

	lower := strings.ToLower(body)
	if body != lower && body != strings.ToUpper(body) {
		if checksum(lower) != body {
			return "", ErrBadChecksum
		}
	}
	return "0x" + lower, nil
}

// ChecksumAddress renders a normalized address in EIP-55 mixed case.
func ChecksumAddress(addr string) string {
	return "0x" + checksum(strings.ToLower(strings.TrimPrefix(addr, "0x")))
}

func checksum(lowerHex string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lowerHex))
	digest := h.Sum(nil)

	out := []byte(lowerHex)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}

// NormalizeHandle trims and lowercases a handle and checks its shape.
func NormalizeHandle(raw string) (string, error) {
	handle := strings.ToLower(strings.TrimSpace(raw))
	if !handlePattern.MatchString(handle) {
		return "", ErrInvalidHandle
	}
	return handle, nil
}

// IsOnboarded is true iff both display name and handle are set. Whitespace-only
// values count as unset.
func IsOnboarded(username, handle string) bool {
	return strings.TrimSpace(username) != "" && strings.TrimSpace(handle) != ""
}
