// Package contract implements the bilateral escrow exchange engine: an
// admin-matched order book where the contract holds an asker's base and a
// bidder's quote in custody until the pair is settled atomically or canceled.
//
// The engine is written for a host that serializes invocations and treats
// each one, together with every instruction it emits, as a single
// all-or-nothing transaction. Handlers never partially commit: any error
// leaves the store untouched because the host rolls the transaction back.
package contract

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/provlabs/bilateral-escrow/store"
	"github.com/provlabs/bilateral-escrow/types"
)

// Env describes the transaction environment supplied by the host.
type Env struct {
	// ContractAddress is this instance's own address, used as the custody
	// account in emitted instructions.
	ContractAddress string
}

// MsgInfo carries the caller and any funds attached to the invocation. The
// host has already moved attached funds into the contract's balance by the
// time a handler runs.
type MsgInfo struct {
	Sender string
	Funds  sdk.Coins
}

// ScopeQuerier resolves scope records from the collaborating metadata system.
type ScopeQuerier interface {
	GetScope(address string) (*types.Scope, error)
}

// Contract is the engine. It holds no mutable state of its own; all state
// lives in the KV store passed to each handler.
type Contract struct {
	scopes ScopeQuerier
	logger *zap.Logger
}

func New(scopes ScopeQuerier, logger *zap.Logger) *Contract {
	return &Contract{
		scopes: scopes,
		logger: logger.With(zap.String("module", "contract")),
	}
}

// Instantiate creates the ContractInfo singleton with the caller as admin and
// emits the name binding for the contract's address.
func (c *Contract) Instantiate(kv store.KV, env Env, info MsgInfo, msg types.InstantiateMsg) (*types.Response, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	orders := store.NewOrderStore(kv)
	contractInfo := types.NewContractInfo(info.Sender, msg.BindName, msg.ContractName, msg.AskFee, msg.BidFee)
	if err := orders.SetContractInfo(&contractInfo); err != nil {
		return nil, err
	}

	c.logger.Info("contract instantiated",
		zap.String("admin", contractInfo.Admin),
		zap.String("bind_name", contractInfo.BindName),
	)

	// The name binding executes in the same transaction once this returns.
	return types.NewResponse().
		AddInstruction(types.BindName{
			Name:       contractInfo.BindName,
			Address:    env.ContractAddress,
			Restricted: true,
		}).
		AddAttribute("action", "init").
		AddAttribute("contract_info", fmt.Sprintf("%+v", contractInfo)), nil
}

// Execute dispatches a state-changing request to its handler.
func (c *Contract) Execute(kv store.KV, env Env, info MsgInfo, msg types.ExecuteMsg) (*types.Response, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case msg.CreateAsk != nil:
		return c.createAsk(kv, env, info, *msg.CreateAsk)
	case msg.CreateBid != nil:
		return c.createBid(kv, env, info, *msg.CreateBid)
	case msg.CancelAsk != nil:
		return c.cancelAsk(kv, env, info, *msg.CancelAsk)
	case msg.CancelBid != nil:
		return c.cancelBid(kv, env, info, *msg.CancelBid)
	case msg.ExecuteMatch != nil:
		return c.executeMatch(kv, env, info, *msg.ExecuteMatch)
	default:
		return c.updateFees(kv, info, *msg.UpdateFees)
	}
}

// Migrate handles in-place code upgrades. The only route bumps the stored
// contract version; order storage is never rewritten.
func (c *Contract) Migrate(kv store.KV, msg types.MigrateMsg) (*types.Response, error) {
	if msg.NewVersion == nil {
		return nil, errorsmod.Wrap(types.ErrMissingField, "migrate message must contain a new_version request")
	}

	orders := store.NewOrderStore(kv)
	info, err := orders.GetContractInfo()
	if err != nil {
		return nil, err
	}
	info.ContractVersion = types.ContractVersion
	if err := orders.SetContractInfo(info); err != nil {
		return nil, err
	}

	return types.NewResponse().AddAttribute("action", "migrate"), nil
}
