package types

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// InstantiateMsg sets up a new contract instance.
type InstantiateMsg struct {
	// BindName is registered to the contract's own address through the
	// external naming system. Must be non-empty.
	BindName string `json:"bind_name"`
	// ContractName is a free-form display name.
	ContractName string `json:"contract_name"`
	// AskFee, if set, is charged (in FeeDenom) on every create_ask. Omitting
	// it means no fee; zero or negative values are rejected.
	AskFee *math.Int `json:"ask_fee,omitempty"`
	// BidFee is the create_bid counterpart of AskFee.
	BidFee *math.Int `json:"bid_fee,omitempty"`
}

func (m InstantiateMsg) Validate() error {
	if m.BindName == "" {
		return errorsmod.Wrap(ErrMissingField, "bind_name")
	}
	if m.ContractName == "" {
		return errorsmod.Wrap(ErrMissingField, "contract_name")
	}
	if err := validateFee("ask", m.AskFee); err != nil {
		return err
	}
	return validateFee("bid", m.BidFee)
}

// ExecuteMsg is the closed set of state-changing requests. Exactly one
// variant must be set; the JSON form is a single-key object keyed by the
// snake_case variant name, e.g. {"create_ask":{...}}.
type ExecuteMsg struct {
	CreateAsk    *CreateAsk    `json:"create_ask,omitempty"`
	CreateBid    *CreateBid    `json:"create_bid,omitempty"`
	CancelAsk    *CancelAsk    `json:"cancel_ask,omitempty"`
	CancelBid    *CancelBid    `json:"cancel_bid,omitempty"`
	ExecuteMatch *ExecuteMatch `json:"execute_match,omitempty"`
	UpdateFees   *UpdateFees   `json:"update_fees,omitempty"`
}

// Validate checks that the envelope carries exactly one variant.
func (m ExecuteMsg) Validate() error {
	count := 0
	for _, set := range []bool{
		m.CreateAsk != nil,
		m.CreateBid != nil,
		m.CancelAsk != nil,
		m.CancelBid != nil,
		m.ExecuteMatch != nil,
		m.UpdateFees != nil,
	} {
		if set {
			count++
		}
	}
	if count != 1 {
		return errorsmod.Wrapf(ErrMissingField, "execute message must contain exactly one request, got %d", count)
	}
	return nil
}

// CreateAsk lists a base for trade. For a coin base, Base declares the coins
// being offered and the attached funds must equal Base plus any configured
// ask fee. For a scope base, ScopeAddress is set instead, Base is left empty,
// and no funds may be attached; ownership of the scope must already have been
// transferred to the contract's address, ideally in the same transaction.
type CreateAsk struct {
	ID           string    `json:"id"`
	Base         sdk.Coins `json:"base,omitempty"`
	Quote        sdk.Coins `json:"quote"`
	ScopeAddress string    `json:"scope_address,omitempty"`
}

// CreateBid offers the attached funds (net of any configured bid fee) as the
// quote for the described base.
type CreateBid struct {
	ID            string     `json:"id"`
	Base          BaseType   `json:"base"`
	EffectiveTime *time.Time `json:"effective_time,omitempty"`
}

// CancelAsk removes an ask and refunds its base to the owner.
type CancelAsk struct {
	ID string `json:"id"`
}

// CancelBid removes a bid and refunds its quote to the owner.
type CancelBid struct {
	ID string `json:"id"`
}

// ExecuteMatch settles a compatible ask/bid pair. Admin only.
type ExecuteMatch struct {
	AskID string `json:"ask_id"`
	BidID string `json:"bid_id"`
}

// UpdateFees replaces the configured creation fees. Omitted fields clear the
// corresponding fee. Admin only.
type UpdateFees struct {
	AskFee *math.Int `json:"ask_fee,omitempty"`
	BidFee *math.Int `json:"bid_fee,omitempty"`
}

// QueryMsg is the closed set of read-only requests.
type QueryMsg struct {
	GetAsk          *GetAsk          `json:"get_ask,omitempty"`
	GetBid          *GetBid          `json:"get_bid,omitempty"`
	GetContractInfo *GetContractInfo `json:"get_contract_info,omitempty"`
}

func (m QueryMsg) Validate() error {
	count := 0
	for _, set := range []bool{m.GetAsk != nil, m.GetBid != nil, m.GetContractInfo != nil} {
		if set {
			count++
		}
	}
	if count != 1 {
		return errorsmod.Wrapf(ErrMissingField, "query message must contain exactly one request, got %d", count)
	}
	return nil
}

type GetAsk struct {
	ID string `json:"id"`
}

type GetBid struct {
	ID string `json:"id"`
}

type GetContractInfo struct{}

// MigrateMsg upgrades the contract code in place.
type MigrateMsg struct {
	// NewVersion overwrites the stored contract version. Order storage is
	// never touched by this route.
	NewVersion *NewVersion `json:"new_version,omitempty"`
}

type NewVersion struct{}

func validateFee(feeType string, fee *math.Int) error {
	if fee != nil && !fee.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidFee, "%s fee must be positive, got %s", feeType, fee)
	}
	return nil
}
