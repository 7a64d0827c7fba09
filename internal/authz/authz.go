package authz

import "audit-checklist/internal/apperr"

// Authorizer decides whether callerID may act on a resource owned by
// ownerID.
type Authorizer interface {
	Authorize(ownerID, callerID string) error
}

// OwnerOnly allows access to the resource owner and nobody else.
type OwnerOnly struct{}

func (OwnerOnly) Authorize(ownerID, callerID string) error {
	if callerID == "" || ownerID != callerID {
		return apperr.Forbidden("access denied")
	}
	return nil
}
