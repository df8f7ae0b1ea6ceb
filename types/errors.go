package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Contract sentinel errors. Every failed invocation surfaces exactly one of
// these, wrapped with enough context to identify the offending order or field.
var (
	ErrDuplicateID       = errorsmod.Register(ModuleName, 2, "an order with the given id already exists")
	ErrNotFound          = errorsmod.Register(ModuleName, 3, "no order found for the given id")
	ErrUnauthorized      = errorsmod.Register(ModuleName, 4, "unauthorized")
	ErrInvalidBase       = errorsmod.Register(ModuleName, 5, "invalid base")
	ErrInvalidQuote      = errorsmod.Register(ModuleName, 6, "invalid quote")
	ErrFundsMismatch     = errorsmod.Register(ModuleName, 7, "attached funds do not match the declared base")
	ErrUnexpectedFunds   = errorsmod.Register(ModuleName, 8, "funds must not be attached")
	ErrInsufficientFunds = errorsmod.Register(ModuleName, 9, "attached funds do not cover the configured fee")
	ErrNoFundsProvided   = errorsmod.Register(ModuleName, 10, "no quote funds provided")
	ErrMatchMismatch     = errorsmod.Register(ModuleName, 11, "ask order does not match bid order")
	ErrInvalidFee        = errorsmod.Register(ModuleName, 12, "fee must be a positive amount")
	ErrMissingField      = errorsmod.Register(ModuleName, 13, "missing required field")
	ErrInvalidScopeOwner = errorsmod.Register(ModuleName, 14, "scope has invalid owners")
)
