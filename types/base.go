package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BaseType describes the asset side of a trade: either a set of fungible
// coins held by the contract, or the address of a non-fungible scope whose
// custody is tracked by the external metadata system. Exactly one variant is
// set; the JSON form matches the contract's wire format, e.g.
// {"coin":{"coins":[...]}} or {"scope":{"scope_address":"..."}}.
type BaseType struct {
	Coin  *CoinBase  `json:"coin,omitempty"`
	Scope *ScopeBase `json:"scope,omitempty"`
}

type CoinBase struct {
	Coins sdk.Coins `json:"coins"`
}

type ScopeBase struct {
	ScopeAddress string `json:"scope_address"`
}

func NewCoinBase(coins ...sdk.Coin) BaseType {
	return BaseType{Coin: &CoinBase{Coins: coins}}
}

func NewScopeBase(scopeAddress string) BaseType {
	return BaseType{Scope: &ScopeBase{ScopeAddress: scopeAddress}}
}

// Validate checks that exactly one variant is populated and that the variant
// itself is well formed. Coin bases must be non-empty with positive amounts
// and no duplicate denoms.
func (b BaseType) Validate() error {
	switch {
	case b.Coin != nil && b.Scope != nil:
		return errorsmod.Wrap(ErrInvalidBase, "base must be either coin or scope, not both")
	case b.Coin != nil:
		if err := ValidateCoins(b.Coin.Coins); err != nil {
			return errorsmod.Wrapf(ErrInvalidBase, "coin base: %s", err)
		}
		return nil
	case b.Scope != nil:
		if b.Scope.ScopeAddress == "" {
			return errorsmod.Wrap(ErrInvalidBase, "scope base: empty scope address")
		}
		return nil
	default:
		return errorsmod.Wrap(ErrInvalidBase, "no base provided")
	}
}

// Equal reports whether two bases describe the same asset: the same coin
// multiset, or the same scope address.
func (b BaseType) Equal(other BaseType) bool {
	switch {
	case b.Coin != nil && other.Coin != nil:
		return CoinsEqual(b.Coin.Coins, other.Coin.Coins)
	case b.Scope != nil && other.Scope != nil:
		return b.Scope.ScopeAddress == other.Scope.ScopeAddress
	default:
		return false
	}
}

func (b BaseType) String() string {
	switch {
	case b.Coin != nil:
		return b.Coin.Coins.String()
	case b.Scope != nil:
		return "scope:" + b.Scope.ScopeAddress
	default:
		return "<empty base>"
	}
}

// ValidateCoins checks a caller-supplied coin list: non-empty, valid denoms,
// strictly positive amounts, and no denom repeated. The list does not have to
// arrive sorted.
func ValidateCoins(coins sdk.Coins) error {
	if len(coins) == 0 {
		return fmt.Errorf("empty coin list")
	}
	seen := make(map[string]struct{}, len(coins))
	for _, c := range coins {
		if err := sdk.ValidateDenom(c.Denom); err != nil {
			return fmt.Errorf("invalid denom %q: %w", c.Denom, err)
		}
		if c.Amount.IsNil() || !c.Amount.IsPositive() {
			return fmt.Errorf("amount for denom %q must be positive", c.Denom)
		}
		if _, ok := seen[c.Denom]; ok {
			return fmt.Errorf("duplicate denom %q", c.Denom)
		}
		seen[c.Denom] = struct{}{}
	}
	return nil
}

// CoinsEqual compares two coin lists as multisets, so callers may supply the
// coins in any order and still compare repeatably. Denom and amount are
// compared field by field; Coin.IsEqual panics on mismatched denoms, which
// here is an ordinary "not equal".
func CoinsEqual(a, b sdk.Coins) bool {
	if len(a) != len(b) {
		return false
	}
	as := SortedCoins(a)
	bs := SortedCoins(b)
	for i := range as {
		if as[i].Denom != bs[i].Denom || !as[i].Amount.Equal(bs[i].Amount) {
			return false
		}
	}
	return true
}

// SortedCoins returns a sorted copy, leaving the caller's slice alone.
func SortedCoins(coins sdk.Coins) sdk.Coins {
	out := make(sdk.Coins, len(coins))
	copy(out, coins)
	return out.Sort()
}
