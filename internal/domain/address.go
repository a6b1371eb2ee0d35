package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the fixed byte length of a wallet address.
const AddressLength = 32

// Address is a fixed-length wallet identifier.
type Address [AddressLength]byte

// ParseAddress decodes a hex wallet address, with or without a 0x prefix.
// Bad hex or a length other than AddressLength fails with ErrInvalidInput.
func ParseAddress(s string) (Address, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return Address{}, fmt.Errorf("address %q: %w", s, ErrInvalidInput)
	}
	return AddressFromBytes(raw)
}

// AddressFromBytes builds an Address from exactly AddressLength raw bytes.
func AddressFromBytes(raw []byte) (Address, error) {
	var a Address
	if len(raw) != AddressLength {
		return a, fmt.Errorf("address length %d, want %d: %w", len(raw), AddressLength, ErrInvalidInput)
	}
	copy(a[:], raw)
	return a, nil
}

// String returns the 0x-prefixed lowercase hex form.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Short returns an abbreviated form for logs: 0x1234..cdef.
func (a Address) Short() string {
	s := hex.EncodeToString(a[:])
	return "0x" + s[:4] + ".." + s[len(s)-4:]
}

// Bytes returns a copy of the raw address bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressLength)
	copy(out, a[:])
	return out
}
