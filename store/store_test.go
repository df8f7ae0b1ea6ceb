package store_test

import (
	"errors"
	"path/filepath"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provlabs/bilateral-escrow/store"
	"github.com/provlabs/bilateral-escrow/types"
)

func TestOrderStoreRoundTrip(t *testing.T) {
	backends := map[string]func(t *testing.T) store.DB{
		"memdb": func(t *testing.T) store.DB {
			return store.NewMemDB()
		},
		"boltdb": func(t *testing.T) store.DB {
			db, err := store.OpenBoltDB(filepath.Join(t.TempDir(), "test.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			return db
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			db := open(t)

			ask := &types.AskOrder{
				ID:    "ask-1",
				Owner: "asker",
				Base:  types.NewCoinBase(sdk.NewInt64Coin("gme", 1)),
				Quote: sdk.NewCoins(sdk.NewInt64Coin("usd", 8)),
			}
			bid := &types.BidOrder{
				ID:    "bid-1",
				Owner: "bidder",
				Base:  types.NewCoinBase(sdk.NewInt64Coin("gme", 1)),
				Quote: sdk.NewCoins(sdk.NewInt64Coin("usd", 8)),
			}
			info := types.NewContractInfo("admin", "escrow.sc", "Escrow", nil, nil)

			err := db.Update(func(kv store.KV) error {
				s := store.NewOrderStore(kv)
				require.NoError(t, s.SaveAsk(ask))
				require.NoError(t, s.SaveBid(bid))
				require.NoError(t, s.SetContractInfo(&info))
				return nil
			})
			require.NoError(t, err)

			err = db.View(func(kv store.KV) error {
				s := store.NewOrderStore(kv)

				gotAsk, err := s.GetAsk("ask-1")
				require.NoError(t, err)
				assert.Equal(t, ask, gotAsk)

				gotBid, err := s.GetBid("bid-1")
				require.NoError(t, err)
				assert.Equal(t, bid, gotBid)

				gotInfo, err := s.GetContractInfo()
				require.NoError(t, err)
				assert.Equal(t, &info, gotInfo)

				// ask and bid ids are independent namespaces
				_, err = s.GetAsk("bid-1")
				assert.ErrorIs(t, err, types.ErrNotFound)
				_, err = s.GetBid("ask-1")
				assert.ErrorIs(t, err, types.ErrNotFound)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestOrderStoreDelete(t *testing.T) {
	db := store.NewMemDB()

	err := db.Update(func(kv store.KV) error {
		s := store.NewOrderStore(kv)
		require.NoError(t, s.SaveAsk(&types.AskOrder{ID: "ask-1", Owner: "asker"}))
		return s.DeleteAsk("ask-1")
	})
	require.NoError(t, err)

	err = db.View(func(kv store.KV) error {
		s := store.NewOrderStore(kv)
		has, err := s.HasAsk("ask-1")
		require.NoError(t, err)
		assert.False(t, has)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdateRollsBackOnError(t *testing.T) {
	backends := map[string]func(t *testing.T) store.DB{
		"memdb": func(t *testing.T) store.DB {
			return store.NewMemDB()
		},
		"boltdb": func(t *testing.T) store.DB {
			db, err := store.OpenBoltDB(filepath.Join(t.TempDir(), "test.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			return db
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			db := open(t)

			failure := errors.New("boom")
			err := db.Update(func(kv store.KV) error {
				s := store.NewOrderStore(kv)
				require.NoError(t, s.SaveAsk(&types.AskOrder{ID: "ask-1", Owner: "asker"}))
				return failure
			})
			require.ErrorIs(t, err, failure)

			err = db.View(func(kv store.KV) error {
				s := store.NewOrderStore(kv)
				has, err := s.HasAsk("ask-1")
				require.NoError(t, err)
				assert.False(t, has, "write should have been rolled back")
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestViewIsReadOnly(t *testing.T) {
	db := store.NewMemDB()
	err := db.View(func(kv store.KV) error {
		return kv.Set([]byte("key"), []byte("value"))
	})
	require.Error(t, err)
}
