package types

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseTypeValidate(t *testing.T) {
	tests := []struct {
		name    string
		base    BaseType
		wantErr error
	}{
		{
			name: "valid single coin",
			base: NewCoinBase(sdk.NewInt64Coin("gme", 1)),
		},
		{
			name: "valid multi coin",
			base: NewCoinBase(sdk.NewInt64Coin("usd", 8), sdk.NewInt64Coin("gme", 1)),
		},
		{
			name: "valid scope",
			base: NewScopeBase("scope1qzge0zaztu65tx5x5llv5xc9ztsqxlkwel"),
		},
		{
			name:    "empty base",
			base:    BaseType{},
			wantErr: ErrInvalidBase,
		},
		{
			name:    "both variants set",
			base:    BaseType{Coin: &CoinBase{Coins: sdk.Coins{sdk.NewInt64Coin("gme", 1)}}, Scope: &ScopeBase{ScopeAddress: "scope"}},
			wantErr: ErrInvalidBase,
		},
		{
			name:    "empty coin list",
			base:    BaseType{Coin: &CoinBase{}},
			wantErr: ErrInvalidBase,
		},
		{
			name:    "zero amount",
			base:    BaseType{Coin: &CoinBase{Coins: sdk.Coins{sdk.Coin{Denom: "gme", Amount: sdk.ZeroInt()}}}},
			wantErr: ErrInvalidBase,
		},
		{
			name:    "negative amount",
			base:    BaseType{Coin: &CoinBase{Coins: sdk.Coins{sdk.Coin{Denom: "gme", Amount: sdk.NewInt(-3)}}}},
			wantErr: ErrInvalidBase,
		},
		{
			name: "duplicate denom",
			base: BaseType{Coin: &CoinBase{Coins: sdk.Coins{
				sdk.NewInt64Coin("gme", 1),
				sdk.NewInt64Coin("gme", 2),
			}}},
			wantErr: ErrInvalidBase,
		},
		{
			name:    "empty scope address",
			base:    BaseType{Scope: &ScopeBase{}},
			wantErr: ErrInvalidBase,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.base.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBaseTypeEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b BaseType
		want bool
	}{
		{
			name: "same coins different order",
			a:    NewCoinBase(sdk.NewInt64Coin("usd", 8), sdk.NewInt64Coin("gme", 1)),
			b:    NewCoinBase(sdk.NewInt64Coin("gme", 1), sdk.NewInt64Coin("usd", 8)),
			want: true,
		},
		{
			name: "different amounts",
			a:    NewCoinBase(sdk.NewInt64Coin("gme", 1)),
			b:    NewCoinBase(sdk.NewInt64Coin("gme", 2)),
			want: false,
		},
		{
			name: "different denoms",
			a:    NewCoinBase(sdk.NewInt64Coin("gme", 1)),
			b:    NewCoinBase(sdk.NewInt64Coin("amc", 1)),
			want: false,
		},
		{
			name: "same scope",
			a:    NewScopeBase("scope-addr"),
			b:    NewScopeBase("scope-addr"),
			want: true,
		},
		{
			name: "different scope",
			a:    NewScopeBase("scope-addr"),
			b:    NewScopeBase("other-addr"),
			want: false,
		},
		{
			name: "coin vs scope",
			a:    NewCoinBase(sdk.NewInt64Coin("gme", 1)),
			b:    NewScopeBase("scope-addr"),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestCoinsEqual(t *testing.T) {
	assert.True(t, CoinsEqual(
		sdk.Coins{sdk.NewInt64Coin("usd", 8), sdk.NewInt64Coin("gme", 1)},
		sdk.Coins{sdk.NewInt64Coin("gme", 1), sdk.NewInt64Coin("usd", 8)},
	))
	assert.False(t, CoinsEqual(
		sdk.Coins{sdk.NewInt64Coin("usd", 8)},
		sdk.Coins{sdk.NewInt64Coin("usd", 8), sdk.NewInt64Coin("gme", 1)},
	))
	assert.False(t, CoinsEqual(
		sdk.Coins{sdk.NewInt64Coin("usd", 8)},
		sdk.Coins{sdk.NewInt64Coin("usd", 9)},
	))
	// same length, different denoms: must report false, never panic
	assert.False(t, CoinsEqual(
		sdk.Coins{sdk.NewInt64Coin("gme", 1)},
		sdk.Coins{sdk.NewInt64Coin("amc", 1)},
	))
	assert.False(t, CoinsEqual(
		sdk.Coins{sdk.NewInt64Coin("gme", 1), sdk.NewInt64Coin("usd", 8)},
		sdk.Coins{sdk.NewInt64Coin("amc", 1), sdk.NewInt64Coin("usd", 8)},
	))
	assert.True(t, CoinsEqual(nil, sdk.Coins{}))
}

func TestSortedCoinsDoesNotMutate(t *testing.T) {
	original := sdk.Coins{sdk.NewInt64Coin("usd", 8), sdk.NewInt64Coin("gme", 1)}
	sorted := SortedCoins(original)

	require.Equal(t, "gme", sorted[0].Denom)
	assert.Equal(t, "usd", original[0].Denom)
}
