package contract

import (
	"encoding/json"
	"fmt"

	"github.com/provlabs/bilateral-escrow/store"
	"github.com/provlabs/bilateral-escrow/types"
)

// Query serves the read-only routes. The result is the JSON encoding of the
// requested record; no route mutates state.
func (c *Contract) Query(kv store.KV, msg types.QueryMsg) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	orders := store.NewOrderStore(kv)
	switch {
	case msg.GetAsk != nil:
		order, err := orders.GetAsk(msg.GetAsk.ID)
		if err != nil {
			return nil, err
		}
		return marshalResult(order)
	case msg.GetBid != nil:
		order, err := orders.GetBid(msg.GetBid.ID)
		if err != nil {
			return nil, err
		}
		return marshalResult(order)
	default:
		info, err := orders.GetContractInfo()
		if err != nil {
			return nil, err
		}
		return marshalResult(info)
	}
}

func marshalResult(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query result: %w", err)
	}
	return bz, nil
}
