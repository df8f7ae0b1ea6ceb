package store

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/provlabs/bilateral-escrow/types"
)

// Key namespaces within the state bucket. Ask and bid ids are independent
// namespaces; contract info is a singleton.
const (
	askKeyPrefix    = "ask/"
	bidKeyPrefix    = "bid/"
	contractInfoKey = "contract_info"
)

// OrderStore is the typed persistence layer for orders and contract info,
// bound to the KV of the current invocation's transaction.
type OrderStore struct {
	kv KV
}

func NewOrderStore(kv KV) *OrderStore {
	return &OrderStore{kv: kv}
}

func askKey(id string) []byte { return []byte(askKeyPrefix + id) }
func bidKey(id string) []byte { return []byte(bidKeyPrefix + id) }

func (s *OrderStore) HasAsk(id string) (bool, error) {
	return s.kv.Has(askKey(id))
}

func (s *OrderStore) GetAsk(id string) (*types.AskOrder, error) {
	bz, err := s.kv.Get(askKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get ask order: %w", err)
	}
	if bz == nil {
		return nil, errorsmod.Wrapf(types.ErrNotFound, "ask order %q", id)
	}
	var order types.AskOrder
	if err := json.Unmarshal(bz, &order); err != nil {
		return nil, fmt.Errorf("failed to decode ask order %q: %w", id, err)
	}
	return &order, nil
}

func (s *OrderStore) SaveAsk(order *types.AskOrder) error {
	bz, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode ask order %q: %w", order.ID, err)
	}
	if err := s.kv.Set(askKey(order.ID), bz); err != nil {
		return fmt.Errorf("failed to save ask order %q: %w", order.ID, err)
	}
	return nil
}

func (s *OrderStore) DeleteAsk(id string) error {
	if err := s.kv.Delete(askKey(id)); err != nil {
		return fmt.Errorf("failed to delete ask order %q: %w", id, err)
	}
	return nil
}

func (s *OrderStore) HasBid(id string) (bool, error) {
	return s.kv.Has(bidKey(id))
}

func (s *OrderStore) GetBid(id string) (*types.BidOrder, error) {
	bz, err := s.kv.Get(bidKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get bid order: %w", err)
	}
	if bz == nil {
		return nil, errorsmod.Wrapf(types.ErrNotFound, "bid order %q", id)
	}
	var order types.BidOrder
	if err := json.Unmarshal(bz, &order); err != nil {
		return nil, fmt.Errorf("failed to decode bid order %q: %w", id, err)
	}
	return &order, nil
}

func (s *OrderStore) SaveBid(order *types.BidOrder) error {
	bz, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode bid order %q: %w", order.ID, err)
	}
	if err := s.kv.Set(bidKey(order.ID), bz); err != nil {
		return fmt.Errorf("failed to save bid order %q: %w", order.ID, err)
	}
	return nil
}

func (s *OrderStore) DeleteBid(id string) error {
	if err := s.kv.Delete(bidKey(id)); err != nil {
		return fmt.Errorf("failed to delete bid order %q: %w", id, err)
	}
	return nil
}

func (s *OrderStore) GetContractInfo() (*types.ContractInfo, error) {
	bz, err := s.kv.Get([]byte(contractInfoKey))
	if err != nil {
		return nil, fmt.Errorf("failed to get contract info: %w", err)
	}
	if bz == nil {
		return nil, errorsmod.Wrap(types.ErrNotFound, "contract info")
	}
	var info types.ContractInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return nil, fmt.Errorf("failed to decode contract info: %w", err)
	}
	return &info, nil
}

func (s *OrderStore) SetContractInfo(info *types.ContractInfo) error {
	bz, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode contract info: %w", err)
	}
	if err := s.kv.Set([]byte(contractInfoKey), bz); err != nil {
		return fmt.Errorf("failed to save contract info: %w", err)
	}
	return nil
}
