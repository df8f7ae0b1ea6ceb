package contract

import (
	errorsmod "cosmossdk.io/errors"
	"go.uber.org/zap"

	"github.com/provlabs/bilateral-escrow/store"
	"github.com/provlabs/bilateral-escrow/types"
)

// executeMatch atomically settles a compatible ask/bid pair: the held quote
// goes to the asker, the held base goes to the bidder, and both orders are
// deleted. Only the admin may trigger a match; the asker and bidder never
// settle with each other directly. There are no partial matches, the two
// sides must agree exactly.
func (c *Contract) executeMatch(kv store.KV, env Env, info MsgInfo, msg types.ExecuteMatch) (*types.Response, error) {
	orders := store.NewOrderStore(kv)
	contractInfo, err := orders.GetContractInfo()
	if err != nil {
		return nil, err
	}
	if info.Sender != contractInfo.Admin {
		return nil, errorsmod.Wrap(types.ErrUnauthorized, "only the admin may execute matches")
	}
	if msg.AskID == "" || msg.BidID == "" {
		return nil, errorsmod.Wrap(types.ErrMissingField, "ask_id and bid_id are required")
	}
	if !info.Funds.IsZero() {
		return nil, errorsmod.Wrap(types.ErrUnexpectedFunds, "cannot attach funds when executing a match")
	}

	ask, err := orders.GetAsk(msg.AskID)
	if err != nil {
		return nil, err
	}
	bid, err := orders.GetBid(msg.BidID)
	if err != nil {
		return nil, err
	}

	// The critical check: the bidder pays exactly what the asker listed for,
	// and expects exactly the asset the asker escrowed.
	if !isExecutable(ask, bid) {
		return nil, errorsmod.Wrapf(types.ErrMatchMismatch, "ask %q and bid %q", ask.ID, bid.ID)
	}

	baseIns, err := c.baseTransfer(env, ask.Base, bid.Owner)
	if err != nil {
		return nil, err
	}

	if err := orders.DeleteAsk(ask.ID); err != nil {
		return nil, err
	}
	if err := orders.DeleteBid(bid.ID); err != nil {
		return nil, err
	}

	c.logger.Info("match executed",
		zap.String("ask_id", ask.ID),
		zap.String("bid_id", bid.ID),
		zap.String("asker", ask.Owner),
		zap.String("bidder", bid.Owner),
	)

	return types.NewResponse().
		AddInstruction(types.BankSend{
			FromAddress: env.ContractAddress,
			ToAddress:   ask.Owner,
			Amount:      bid.Quote,
		}).
		AddInstruction(baseIns).
		AddAttribute("action", "execute"), nil
}

// isExecutable reports whether the two sides agree: equal quote coin sets and
// equal bases. Coin comparisons are canonical, so list order never matters.
func isExecutable(ask *types.AskOrder, bid *types.BidOrder) bool {
	return ask.Base.Equal(bid.Base) && types.CoinsEqual(ask.Quote, bid.Quote)
}
