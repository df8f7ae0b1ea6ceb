package contract

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/provlabs/bilateral-escrow/types"
)

// checkScopeOwners verifies a scope is safe to take into custody: it must
// have a single owner party, and both that owner and the value owner must be
// the expected address. Scopes with multiple owners are rejected outright
// because rewriting them on settlement could lose owner data.
func checkScopeOwners(scope *types.Scope, expectedOwner, expectedValueOwner string) error {
	var owners []types.Party
	for _, p := range scope.Owners {
		if p.Role == types.PartyTypeOwner {
			owners = append(owners, p)
		}
	}
	if len(owners) != 1 {
		return errorsmod.Wrapf(types.ErrInvalidScopeOwner,
			"scope %q should have a single owner, found %d", scope.ScopeID, len(owners))
	}
	if owners[0].Address != expectedOwner {
		return errorsmod.Wrapf(types.ErrInvalidScopeOwner,
			"scope %q owner expected to be %q, not %q", scope.ScopeID, expectedOwner, owners[0].Address)
	}
	if scope.ValueOwnerAddress != expectedValueOwner {
		return errorsmod.Wrapf(types.ErrInvalidScopeOwner,
			"scope %q value owner expected to be %q, not %q", scope.ScopeID, expectedValueOwner, scope.ValueOwnerAddress)
	}
	return nil
}

// replaceScopeOwner rewrites the scope so the given address is the sole owner
// party and the value owner, giving it full control.
func replaceScopeOwner(scope types.Scope, newOwner string) types.Scope {
	owners := make([]types.Party, 0, len(scope.Owners)+1)
	for _, p := range scope.Owners {
		if p.Role != types.PartyTypeOwner {
			owners = append(owners, p)
		}
	}
	owners = append(owners, types.Party{Address: newOwner, Role: types.PartyTypeOwner})
	scope.Owners = owners
	scope.ValueOwnerAddress = newOwner
	return scope
}
