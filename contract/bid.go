package contract

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/provlabs/bilateral-escrow/store"
	"github.com/provlabs/bilateral-escrow/types"
)

// createBid takes the attached funds into custody as the bid's quote, net of
// any configured bid fee. The base is a description of what the bidder
// expects to receive; a scope base is not looked up here because the scope
// does not even have to exist yet.
func (c *Contract) createBid(kv store.KV, env Env, info MsgInfo, msg types.CreateBid) (*types.Response, error) {
	if msg.ID == "" {
		return nil, errorsmod.Wrap(types.ErrMissingField, "id")
	}
	if err := msg.Base.Validate(); err != nil {
		return nil, err
	}

	orders := store.NewOrderStore(kv)
	exists, err := orders.HasBid(msg.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorsmod.Wrapf(types.ErrDuplicateID, "bid order %q", msg.ID)
	}

	contractInfo, err := orders.GetContractInfo()
	if err != nil {
		return nil, err
	}

	if info.Funds.IsZero() {
		return nil, errorsmod.Wrap(types.ErrNoFundsProvided, "bid quote")
	}

	quote := types.SortedCoins(info.Funds)
	var feeIns types.Instruction
	if contractInfo.BidFee != nil {
		feeCoin := sdk.NewCoin(types.FeeDenom, *contractInfo.BidFee)
		remaining, neg := types.SortedCoins(info.Funds).SafeSub(feeCoin)
		if neg {
			return nil, errorsmod.Wrapf(types.ErrInsufficientFunds,
				"bid fee of %s must be attached on top of the quote", feeCoin)
		}
		quote = remaining
		feeIns = types.BankSend{
			FromAddress: env.ContractAddress,
			ToAddress:   contractInfo.Admin,
			Amount:      sdk.NewCoins(feeCoin),
		}
	}
	if quote.IsZero() {
		return nil, errorsmod.Wrap(types.ErrNoFundsProvided, "bid quote")
	}

	order := types.BidOrder{
		ID:            msg.ID,
		Owner:         info.Sender,
		Base:          msg.Base,
		Quote:         quote,
		EffectiveTime: msg.EffectiveTime,
	}
	if err := orders.SaveBid(&order); err != nil {
		return nil, err
	}

	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bid order: %w", err)
	}

	resp := types.NewResponse().
		AddAttribute("action", "create_bid").
		SetData(data)
	if feeIns != nil {
		resp.AddAttribute("fee_charged", fmt.Sprintf("%s%s", contractInfo.BidFee, types.FeeDenom)).
			AddInstruction(feeIns)
	}

	c.logger.Info("bid order created",
		zap.String("id", order.ID),
		zap.String("owner", order.Owner),
		zap.String("quote", order.Quote.String()),
	)

	return resp, nil
}

// cancelBid removes a bid and returns its quote funds to the owner. Creation
// fees are not refunded.
func (c *Contract) cancelBid(kv store.KV, env Env, info MsgInfo, msg types.CancelBid) (*types.Response, error) {
	if msg.ID == "" {
		return nil, errorsmod.Wrap(types.ErrMissingField, "id")
	}
	if !info.Funds.IsZero() {
		return nil, errorsmod.Wrap(types.ErrUnexpectedFunds, "cannot attach funds when canceling")
	}

	orders := store.NewOrderStore(kv)
	order, err := orders.GetBid(msg.ID)
	if err != nil {
		return nil, err
	}
	if order.Owner != info.Sender {
		return nil, errorsmod.Wrapf(types.ErrUnauthorized, "only the order owner may cancel bid %q", msg.ID)
	}

	if err := orders.DeleteBid(msg.ID); err != nil {
		return nil, err
	}

	c.logger.Info("bid order canceled", zap.String("id", msg.ID), zap.String("owner", order.Owner))

	return types.NewResponse().
		AddInstruction(types.BankSend{
			FromAddress: env.ContractAddress,
			ToAddress:   order.Owner,
			Amount:      order.Quote,
		}).
		AddAttribute("action", "cancel_bid"), nil
}
