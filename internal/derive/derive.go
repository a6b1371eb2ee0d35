package derive

import (
	"fmt"

	"github.com/chainstat/walletstat/internal/domain"
)

const (
	nativeBalanceModulus = 50_000_000_000
	nativeBalanceFloor   = 100_000_000

	nftCountIndex = 31
)

// hashSum is the plain arithmetic sum of all address bytes.
func hashSum(addr domain.Address) uint64 {
	var sum uint64
	for _, b := range addr {
		sum += uint64(b)
	}
	return sum
}

// NativeBalance derives the synthetic native-currency balance for an address:
// hashSum mod 50_000_000_000, lifted by 100_000_000 when below that floor so
// no address ever looks empty. A 32-byte address sums to at most 8160, so the
// floor lift applies to every address.
func NativeBalance(addr domain.Address) uint64 {
	balance := hashSum(addr) % nativeBalanceModulus
	if balance < nativeBalanceFloor {
		balance += nativeBalanceFloor
	}
	return balance
}

// NFTCount maps byte 31 of the address through a fixed step table.
func NFTCount(addr domain.Address) int {
	b := addr[nftCountIndex]
	switch {
	case b < 2:
		return 0
	case b < 50:
		return 1
	case b < 100:
		return 2
	case b < 150:
		return 3
	case b < 200:
		return 5
	case b < 240:
		return 8
	default:
		return 15
	}
}

// Derive produces the full synthetic fact set for an address using the
// default token catalog.
func Derive(addr domain.Address) domain.WalletFacts {
	return DeriveWithCatalog(addr, DefaultCatalog())
}

// DeriveWithCatalog produces the synthetic fact set using a custom catalog.
func DeriveWithCatalog(addr domain.Address, cat Catalog) domain.WalletFacts {
	return domain.WalletFacts{
		Address:       addr,
		NativeBalance: NativeBalance(addr),
		Tokens:        cat.TokenFacts(addr),
		NFTCount:      NFTCount(addr),
	}
}

// DeriveBytes validates the raw address length and derives facts from it.
// Any length other than domain.AddressLength fails with ErrInvalidInput.
func DeriveBytes(raw []byte) (domain.WalletFacts, error) {
	addr, err := domain.AddressFromBytes(raw)
	if err != nil {
		return domain.WalletFacts{}, fmt.Errorf("deriving wallet facts: %w", err)
	}
	return Derive(addr), nil
}

// Deriver binds a catalog so derivation can be injected as a collaborator.
type Deriver struct {
	catalog Catalog
}

// NewDeriver creates a deriver over the given catalog.
func NewDeriver(catalog Catalog) *Deriver {
	return &Deriver{catalog: catalog}
}

func (d *Deriver) Facts(addr domain.Address) domain.WalletFacts {
	return DeriveWithCatalog(addr, d.catalog)
}
