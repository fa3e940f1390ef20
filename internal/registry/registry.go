// Package registry abstracts the external asset registry that verifies
// authenticity proofs and executes delegation and ownership changes. The
// engine only ever calls it synchronously; a failed call aborts the whole
// operation.
package registry

import (
	"github.com/mintara/auction-house/internal/entity"
)

type AssetRegistry interface {
	// Delegate hands control of the asset from its owner to newDelegate so a
	// later settlement can move it without the owner's live signature.
	Delegate(asset, owner, newDelegate string, proof entity.Proof) error

	// Transfer moves the asset from the current delegate to newOwner.
	Transfer(asset, delegate, newOwner string, proof entity.Proof) error
}
