package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Instruction is a declarative side effect emitted by a contract handler.
// The host applies every emitted instruction in the same all-or-nothing
// transaction as the handler's own state mutations; the contract performs no
// compensation bookkeeping of its own.
type Instruction interface {
	isInstruction()
}

// BankSend moves coins between accounts through the host's bank.
type BankSend struct {
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	Amount      sdk.Coins `json:"amount"`
}

// AssessCustomFee declares a fee to be charged from the transaction signer by
// the host's fee-distribution module. The contract's responsibility ends at
// computing the amount and naming the recipient; how the fee is split and
// collected belongs to the host.
type AssessCustomFee struct {
	Amount           sdk.Coin `json:"amount"`
	Name             string   `json:"name"`
	FromAddress      string   `json:"from_address"`
	RecipientAddress string   `json:"recipient_address,omitempty"`
}

// WriteScope replaces a scope record in the external metadata system. Used to
// hand scope ownership back to an asker on cancel, or over to a bidder on
// match.
type WriteScope struct {
	Scope   Scope    `json:"scope"`
	Signers []string `json:"signers"`
}

// BindName registers a name to an address through the external naming system.
type BindName struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Restricted bool   `json:"restricted"`
}

func (BankSend) isInstruction()        {}
func (AssessCustomFee) isInstruction() {}
func (WriteScope) isInstruction()      {}
func (BindName) isInstruction()        {}

// Scope mirrors the metadata system's non-fungible record: a set of parties
// and a value owner. The contract only ever inspects and rewrites ownership.
type Scope struct {
	ScopeID           string  `json:"scope_id"`
	Owners            []Party `json:"owners"`
	ValueOwnerAddress string  `json:"value_owner_address"`
}

type Party struct {
	Address string    `json:"address"`
	Role    PartyType `json:"role"`
}

type PartyType string

const (
	PartyTypeOwner PartyType = "owner"
)

// Attribute is an event key/value pair surfaced to anything watching the
// host's event stream.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is the successful result of an invocation: emitted instructions,
// event attributes, and optional JSON payload data.
type Response struct {
	Instructions []Instruction `json:"instructions,omitempty"`
	Attributes   []Attribute   `json:"attributes,omitempty"`
	Data         []byte        `json:"data,omitempty"`
}

func NewResponse() *Response {
	return &Response{}
}

func (r *Response) AddInstruction(ins Instruction) *Response {
	r.Instructions = append(r.Instructions, ins)
	return r
}

func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

func (r *Response) SetData(data []byte) *Response {
	r.Data = data
	return r
}
