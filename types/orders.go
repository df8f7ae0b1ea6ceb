package types

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AskOrder is an offer to trade the held base for the listed quote. The base
// is in the contract's custody while the order exists: coin bases sit in the
// contract's bank balance, scope bases are owned by the contract's address in
// the external metadata system.
type AskOrder struct {
	ID    string    `json:"id"`
	Owner string    `json:"owner"`
	Base  BaseType  `json:"base"`
	Quote sdk.Coins `json:"quote"`
}

// BidOrder is an offer of the held quote funds in exchange for the described
// base. Base here is a description used for match compatibility, not funds
// held for this side. EffectiveTime is informational metadata supplied by the
// bidder; nothing enforces it.
type BidOrder struct {
	ID            string     `json:"id"`
	Owner         string     `json:"owner"`
	Base          BaseType   `json:"base"`
	Quote         sdk.Coins  `json:"quote"`
	EffectiveTime *time.Time `json:"effective_time,omitempty"`
}

// ContractInfo is the singleton record created at instantiation. Admin is
// immutable; only the fee fields may change afterwards, and only through the
// admin-gated update_fees route.
type ContractInfo struct {
	Admin           string    `json:"admin"`
	BindName        string    `json:"bind_name"`
	ContractName    string    `json:"contract_name"`
	ContractType    string    `json:"contract_type"`
	ContractVersion string    `json:"contract_version"`
	AskFee          *math.Int `json:"ask_fee,omitempty"`
	BidFee          *math.Int `json:"bid_fee,omitempty"`
}

func NewContractInfo(admin, bindName, contractName string, askFee, bidFee *math.Int) ContractInfo {
	return ContractInfo{
		Admin:           admin,
		BindName:        bindName,
		ContractName:    contractName,
		ContractType:    ContractType,
		ContractVersion: ContractVersion,
		AskFee:          askFee,
		BidFee:          bidFee,
	}
}
