// Package host is a standalone execution environment for the contract
// engine. It plays the part of the chain runtime: it serializes invocations,
// moves attached funds into the contract's balance, runs the handler, and
// applies every emitted instruction against a local bank ledger, scope
// registry, and name table — all inside one store transaction, so any
// failure rolls the whole invocation back.
package host

import (
	"encoding/json"
	"fmt"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/provlabs/bilateral-escrow/contract"
	"github.com/provlabs/bilateral-escrow/store"
	"github.com/provlabs/bilateral-escrow/types"
)

const (
	balanceKeyPrefix = "bank/"
	scopeKeyPrefix   = "scope/"
	nameKeyPrefix    = "name/"
)

type Host struct {
	db              store.DB
	logger          *zap.Logger
	contractAddress string

	// Serializes invocations. The engine itself is single-threaded; the host
	// provides the strict total order.
	mtx sync.Mutex
}

func New(db store.DB, contractAddress string, logger *zap.Logger) *Host {
	return &Host{
		db:              db,
		logger:          logger.With(zap.String("module", "host")),
		contractAddress: contractAddress,
	}
}

func (h *Host) ContractAddress() string {
	return h.contractAddress
}

// Instantiate runs the contract's instantiation in its own transaction.
func (h *Host) Instantiate(sender string, msg types.InstantiateMsg) (*types.Response, error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	var resp *types.Response
	err := h.db.Update(func(kv store.KV) error {
		eng := h.engine(kv)
		var err error
		resp, err = eng.Instantiate(kv, h.env(), contract.MsgInfo{Sender: sender}, msg)
		if err != nil {
			return err
		}
		return h.applyInstructions(kv, sender, resp.Instructions)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Execute runs one invocation: debit the caller's attached funds into the
// contract balance, run the handler, apply the emitted instructions. The
// whole thing commits or rolls back as a unit.
func (h *Host) Execute(sender string, funds sdk.Coins, msg types.ExecuteMsg) (*types.Response, error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if len(funds) > 0 {
		if err := types.ValidateCoins(funds); err != nil {
			return nil, fmt.Errorf("invalid attached funds: %w", err)
		}
		funds = types.SortedCoins(funds)
	}

	invocationID := uuid.New().String()[0:8]
	logger := h.logger.With(zap.String("invocation", invocationID), zap.String("sender", sender))

	var resp *types.Response
	err := h.db.Update(func(kv store.KV) error {
		if !funds.IsZero() {
			if err := h.transfer(kv, sender, h.contractAddress, funds); err != nil {
				return fmt.Errorf("failed to escrow attached funds: %w", err)
			}
		}

		eng := h.engine(kv)
		var err error
		resp, err = eng.Execute(kv, h.env(), contract.MsgInfo{Sender: sender, Funds: funds}, msg)
		if err != nil {
			return err
		}
		return h.applyInstructions(kv, sender, resp.Instructions)
	})
	if err != nil {
		logger.Info("invocation failed", zap.Error(err))
		return nil, err
	}

	logger.Info("invocation applied", zap.Int("instructions", len(resp.Instructions)))
	return resp, nil
}

// Query serves a read-only request outside any write transaction.
func (h *Host) Query(msg types.QueryMsg) ([]byte, error) {
	var result []byte
	err := h.db.View(func(kv store.KV) error {
		var err error
		result, err = h.engine(kv).Query(kv, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Migrate runs a code-upgrade migration in its own transaction.
func (h *Host) Migrate(msg types.MigrateMsg) (*types.Response, error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	var resp *types.Response
	err := h.db.Update(func(kv store.KV) error {
		var err error
		resp, err = h.engine(kv).Migrate(kv, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// engine builds a contract bound to the current transaction's KV for scope
// lookups.
func (h *Host) engine(kv store.KV) *contract.Contract {
	return contract.New(&scopeRegistry{kv: kv}, h.logger)
}

func (h *Host) env() contract.Env {
	return contract.Env{ContractAddress: h.contractAddress}
}

func (h *Host) applyInstructions(kv store.KV, sender string, instructions []types.Instruction) error {
	for _, ins := range instructions {
		if err := h.applyInstruction(kv, sender, ins); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) applyInstruction(kv store.KV, sender string, ins types.Instruction) error {
	switch ins := ins.(type) {
	case types.BankSend:
		return h.transfer(kv, ins.FromAddress, ins.ToAddress, ins.Amount)
	case types.AssessCustomFee:
		// The fee module charges the transaction signer even though the
		// contract is the nominal "from" address.
		recipient := ins.RecipientAddress
		if recipient == "" {
			recipient = feeCollectorAddress
		}
		return h.transfer(kv, sender, recipient, sdk.NewCoins(ins.Amount))
	case types.WriteScope:
		return setScope(kv, &ins.Scope)
	case types.BindName:
		return kv.Set([]byte(nameKeyPrefix+ins.Name), []byte(ins.Address))
	default:
		return fmt.Errorf("unsupported instruction type %T", ins)
	}
}

// feeCollectorAddress absorbs custom fees with no explicit recipient.
const feeCollectorAddress = "fee_collector"

// Balance returns an account's current bank balance.
func (h *Host) Balance(address string) (sdk.Coins, error) {
	var coins sdk.Coins
	err := h.db.View(func(kv store.KV) error {
		var err error
		coins, err = getBalance(kv, address)
		return err
	})
	if err != nil {
		return nil, err
	}
	return coins, nil
}

// Fund credits an account out of thin air. Dev and test helper only.
func (h *Host) Fund(address string, coins sdk.Coins) error {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	coins = types.SortedCoins(coins)
	return h.db.Update(func(kv store.KV) error {
		balance, err := getBalance(kv, address)
		if err != nil {
			return err
		}
		return setBalance(kv, address, balance.Add(coins...))
	})
}

// SetScope seeds or overwrites a scope record in the local registry. Dev and
// test helper standing in for the external metadata system's own writes.
func (h *Host) SetScope(scope *types.Scope) error {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	return h.db.Update(func(kv store.KV) error {
		return setScope(kv, scope)
	})
}

// GetScope reads a scope record from the local registry.
func (h *Host) GetScope(address string) (*types.Scope, error) {
	var scope *types.Scope
	err := h.db.View(func(kv store.KV) error {
		var err error
		scope, err = getScope(kv, address)
		return err
	})
	if err != nil {
		return nil, err
	}
	return scope, nil
}

// ResolveName returns the address a name is bound to, or empty if unbound.
func (h *Host) ResolveName(name string) (string, error) {
	var address string
	err := h.db.View(func(kv store.KV) error {
		bz, err := kv.Get([]byte(nameKeyPrefix + name))
		if err != nil {
			return err
		}
		address = string(bz)
		return nil
	})
	if err != nil {
		return "", err
	}
	return address, nil
}

func (h *Host) transfer(kv store.KV, from, to string, amount sdk.Coins) error {
	fromBalance, err := getBalance(kv, from)
	if err != nil {
		return err
	}
	remaining, neg := fromBalance.SafeSub(amount...)
	if neg {
		return fmt.Errorf("insufficient balance: %s has %s, needs %s", from, fromBalance, amount)
	}
	if err := setBalance(kv, from, remaining); err != nil {
		return err
	}
	toBalance, err := getBalance(kv, to)
	if err != nil {
		return err
	}
	return setBalance(kv, to, toBalance.Add(amount...))
}

func getBalance(kv store.KV, address string) (sdk.Coins, error) {
	bz, err := kv.Get([]byte(balanceKeyPrefix + address))
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for %s: %w", address, err)
	}
	if bz == nil {
		return sdk.NewCoins(), nil
	}
	var coins sdk.Coins
	if err := json.Unmarshal(bz, &coins); err != nil {
		return nil, fmt.Errorf("failed to decode balance for %s: %w", address, err)
	}
	return coins, nil
}

func setBalance(kv store.KV, address string, coins sdk.Coins) error {
	bz, err := json.Marshal(coins)
	if err != nil {
		return fmt.Errorf("failed to encode balance for %s: %w", address, err)
	}
	return kv.Set([]byte(balanceKeyPrefix+address), bz)
}

func getScope(kv store.KV, address string) (*types.Scope, error) {
	bz, err := kv.Get([]byte(scopeKeyPrefix + address))
	if err != nil {
		return nil, fmt.Errorf("failed to get scope %s: %w", address, err)
	}
	if bz == nil {
		return nil, fmt.Errorf("scope %s does not exist", address)
	}
	var scope types.Scope
	if err := json.Unmarshal(bz, &scope); err != nil {
		return nil, fmt.Errorf("failed to decode scope %s: %w", address, err)
	}
	return &scope, nil
}

func setScope(kv store.KV, scope *types.Scope) error {
	bz, err := json.Marshal(scope)
	if err != nil {
		return fmt.Errorf("failed to encode scope %s: %w", scope.ScopeID, err)
	}
	return kv.Set([]byte(scopeKeyPrefix+scope.ScopeID), bz)
}

// scopeRegistry adapts the host's scope bucket to the engine's querier
// interface, bound to the current transaction.
type scopeRegistry struct {
	kv store.KV
}

func (r *scopeRegistry) GetScope(address string) (*types.Scope, error) {
	return getScope(r.kv, address)
}
