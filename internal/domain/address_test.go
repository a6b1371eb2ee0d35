package domain

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseAddress(t *testing.T) {
	hexBody := strings.Repeat("ab", AddressLength)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"with 0x prefix", "0x" + hexBody, false},
		{"without prefix", hexBody, false},
		{"uppercase prefix", "0X" + hexBody, false},
		{"too short", "0x" + strings.Repeat("ab", 16), true},
		{"too long", "0x" + strings.Repeat("ab", 33), true},
		{"bad hex", "0x" + strings.Repeat("zz", AddressLength), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("ParseAddress(%q) error = %v, want ErrInvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddress(%q) unexpected error: %v", tt.input, err)
			}
			if got := addr.String(); got != "0x"+hexBody {
				t.Errorf("String() = %q, want %q", got, "0x"+hexBody)
			}
		})
	}
}

func TestParseAddressEmptyIsInvalid(t *testing.T) {
	// hex.DecodeString("") succeeds with zero bytes; the length check must
	// still reject it.
	_, err := ParseAddress("")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseAddress(\"\") error = %v, want ErrInvalidInput", err)
	}
}

func TestAddressFromBytes(t *testing.T) {
	raw := bytes.Repeat([]byte{0x7f}, AddressLength)
	addr, err := AddressFromBytes(raw)
	if err != nil {
		t.Fatalf("AddressFromBytes: %v", err)
	}
	if !bytes.Equal(addr.Bytes(), raw) {
		t.Errorf("Bytes() = %x, want %x", addr.Bytes(), raw)
	}

	if _, err := AddressFromBytes(raw[:31]); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("AddressFromBytes(31 bytes) error = %v, want ErrInvalidInput", err)
	}
}

func TestAddressShort(t *testing.T) {
	addr, err := ParseAddress("0x" + strings.Repeat("12", 16) + strings.Repeat("cd", 16))
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if got := addr.Short(); got != "0x1212..cdcd" {
		t.Errorf("Short() = %q, want %q", got, "0x1212..cdcd")
	}
}

func TestAddressBytesIsACopy(t *testing.T) {
	addr, _ := AddressFromBytes(bytes.Repeat([]byte{1}, AddressLength))
	b := addr.Bytes()
	b[0] = 99
	if addr.Bytes()[0] != 1 {
		t.Error("mutating Bytes() result must not change the address")
	}
}
