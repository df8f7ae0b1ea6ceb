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

// createAsk lists a base for trade, taking it into contract custody until a
// match or cancellation. Coin bases arrive as the attached funds; scope bases
// must already be owned by the contract's address. The caller is responsible
// for bundling the scope ownership transfer into the same transaction — the
// engine can only verify the resulting ownership, not that the transfer
// happened in-band.
func (c *Contract) createAsk(kv store.KV, env Env, info MsgInfo, msg types.CreateAsk) (*types.Response, error) {
	if msg.ID == "" {
		return nil, errorsmod.Wrap(types.ErrMissingField, "id")
	}
	if err := types.ValidateCoins(msg.Quote); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidQuote, "%s", err)
	}

	orders := store.NewOrderStore(kv)
	exists, err := orders.HasAsk(msg.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorsmod.Wrapf(types.ErrDuplicateID, "ask order %q", msg.ID)
	}

	contractInfo, err := orders.GetContractInfo()
	if err != nil {
		return nil, err
	}

	var (
		base   types.BaseType
		feeIns types.Instruction
	)
	if msg.ScopeAddress != "" {
		base, feeIns, err = c.scopeAskBase(env, info, msg, contractInfo)
	} else {
		base, feeIns, err = coinAskBase(env, info, msg, contractInfo)
	}
	if err != nil {
		return nil, err
	}

	order := types.AskOrder{
		ID:    msg.ID,
		Owner: info.Sender,
		Base:  base,
		Quote: msg.Quote,
	}
	if err := orders.SaveAsk(&order); err != nil {
		return nil, err
	}

	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ask order: %w", err)
	}

	resp := types.NewResponse().
		AddAttribute("action", "create_ask").
		SetData(data)
	if feeIns != nil {
		resp.AddAttribute("fee_charged", fmt.Sprintf("%s%s", contractInfo.AskFee, types.FeeDenom)).
			AddInstruction(feeIns)
	}

	c.logger.Info("ask order created",
		zap.String("id", order.ID),
		zap.String("owner", order.Owner),
		zap.String("base", order.Base.String()),
	)

	return resp, nil
}

// scopeAskBase validates a scope-backed ask: no funds may ride along, no coin
// base may be declared, and the contract must already be the scope's sole
// owner and value owner. Any configured ask fee is declared as a custom fee
// charged to the sender, since no attached funds exist to carry it.
func (c *Contract) scopeAskBase(env Env, info MsgInfo, msg types.CreateAsk, contractInfo *types.ContractInfo) (types.BaseType, types.Instruction, error) {
	if !info.Funds.IsZero() {
		return types.BaseType{}, nil, errorsmod.Wrap(types.ErrUnexpectedFunds, "scope asks cannot attach funds")
	}
	if !msg.Base.IsZero() {
		return types.BaseType{}, nil, errorsmod.Wrap(types.ErrInvalidBase, "scope asks cannot also declare a coin base")
	}

	scope, err := c.scopes.GetScope(msg.ScopeAddress)
	if err != nil {
		return types.BaseType{}, nil, fmt.Errorf("failed to query scope %q: %w", msg.ScopeAddress, err)
	}
	if err := checkScopeOwners(scope, env.ContractAddress, env.ContractAddress); err != nil {
		return types.BaseType{}, nil, err
	}

	var feeIns types.Instruction
	if contractInfo.AskFee != nil {
		feeIns = types.AssessCustomFee{
			Amount:           sdk.NewCoin(types.FeeDenom, *contractInfo.AskFee),
			Name:             "Ask creation fee",
			FromAddress:      env.ContractAddress,
			RecipientAddress: contractInfo.Admin,
		}
	}
	return types.NewScopeBase(msg.ScopeAddress), feeIns, nil
}

// coinAskBase validates a coin-backed ask: attached funds must equal the
// declared base plus the configured ask fee exactly. Base alone with a fee
// configured means the fee was left out; anything else is a plain mismatch.
func coinAskBase(env Env, info MsgInfo, msg types.CreateAsk, contractInfo *types.ContractInfo) (types.BaseType, types.Instruction, error) {
	if err := types.ValidateCoins(msg.Base); err != nil {
		return types.BaseType{}, nil, errorsmod.Wrapf(types.ErrInvalidBase, "%s", err)
	}

	expected := types.SortedCoins(msg.Base)
	var feeCoin sdk.Coin
	if contractInfo.AskFee != nil {
		feeCoin = sdk.NewCoin(types.FeeDenom, *contractInfo.AskFee)
		expected = expected.Add(feeCoin)
	}

	if !types.CoinsEqual(info.Funds, expected) {
		if contractInfo.AskFee != nil && types.CoinsEqual(info.Funds, msg.Base) {
			return types.BaseType{}, nil, errorsmod.Wrapf(types.ErrInsufficientFunds,
				"ask fee of %s%s must be attached on top of the base", contractInfo.AskFee, types.FeeDenom)
		}
		return types.BaseType{}, nil, errorsmod.Wrapf(types.ErrFundsMismatch,
			"attached %s, declared base %s", info.Funds, msg.Base)
	}

	var feeIns types.Instruction
	if contractInfo.AskFee != nil {
		feeIns = types.BankSend{
			FromAddress: env.ContractAddress,
			ToAddress:   contractInfo.Admin,
			Amount:      sdk.NewCoins(feeCoin),
		}
	}
	return types.NewCoinBase(types.SortedCoins(msg.Base)...), feeIns, nil
}

// cancelAsk removes an ask and returns its base to the owner. Creation fees
// are not refunded.
func (c *Contract) cancelAsk(kv store.KV, env Env, info MsgInfo, msg types.CancelAsk) (*types.Response, error) {
	if msg.ID == "" {
		return nil, errorsmod.Wrap(types.ErrMissingField, "id")
	}
	if !info.Funds.IsZero() {
		return nil, errorsmod.Wrap(types.ErrUnexpectedFunds, "cannot attach funds when canceling")
	}

	orders := store.NewOrderStore(kv)
	order, err := orders.GetAsk(msg.ID)
	if err != nil {
		return nil, err
	}
	if order.Owner != info.Sender {
		return nil, errorsmod.Wrapf(types.ErrUnauthorized, "only the order owner may cancel ask %q", msg.ID)
	}

	refund, err := c.baseTransfer(env, order.Base, order.Owner)
	if err != nil {
		return nil, err
	}
	if err := orders.DeleteAsk(msg.ID); err != nil {
		return nil, err
	}

	c.logger.Info("ask order canceled", zap.String("id", msg.ID), zap.String("owner", order.Owner))

	return types.NewResponse().
		AddInstruction(refund).
		AddAttribute("action", "cancel_ask"), nil
}

// baseTransfer builds the instruction that hands a base to the given
// recipient: a bank send for coins, or a scope rewrite making the recipient
// sole owner and value owner.
func (c *Contract) baseTransfer(env Env, base types.BaseType, recipient string) (types.Instruction, error) {
	if base.Coin != nil {
		return types.BankSend{
			FromAddress: env.ContractAddress,
			ToAddress:   recipient,
			Amount:      base.Coin.Coins,
		}, nil
	}

	scope, err := c.scopes.GetScope(base.Scope.ScopeAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to query scope %q: %w", base.Scope.ScopeAddress, err)
	}
	return types.WriteScope{
		Scope:   replaceScopeOwner(*scope, recipient),
		Signers: []string{env.ContractAddress},
	}, nil
}
