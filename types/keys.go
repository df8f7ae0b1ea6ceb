package types

const (
	// ModuleName defines the contract module name
	ModuleName = "bilateral"

	// ContractType identifies the kind of contract recorded in ContractInfo.
	ContractType = "bilateral_exchange"

	// ContractVersion is the code version written on instantiation and
	// overwritten in storage by a new_version migration.
	ContractVersion = "0.2.0"

	// FeeDenom is the only denom accepted for configured ask and bid fees.
	FeeDenom = "nhash"
)
