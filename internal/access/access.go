// Package access implements the authorization gate shared by the domain
// services. An ActorContext is resolved once per request and passed to every
// operation explicitly.
package access

import (
	"fmt"

	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
)

var (
	ErrUnauthenticated = apperr.New(apperr.KindUnauthenticated, "UNAUTHENTICATED", "You must sign in")
	ErrRoleRequired    = apperr.Forbidden("ROLE_REQUIRED", "Your current role does not allow this action")
	ErrNotOwner        = apperr.Forbidden("NOT_OWNER", "You do not have access to this resource")
)

// ActorContext is the caller of a domain operation. Role is "" when the user
// has not selected one yet.
type ActorContext struct {
	ID    int64
	Email string
	Role  domain.Role
}

func (a ActorContext) Authenticated() bool {
	return a.ID > 0
}

// RequireIdentity is step 1 of the gate.
func RequireIdentity(a ActorContext) error {
	if !a.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// RequireRole is steps 1 and 2 of the gate.
func RequireRole(a ActorContext, role domain.Role) error {
	if err := RequireIdentity(a); err != nil {
		return err
	}
	if a.Role != role {
		return &apperr.Error{
			Kind:    ErrRoleRequired.Kind,
			Code:    ErrRoleRequired.Code,
			Message: fmt.Sprintf("You must be in %s role", role),
		}
	}
	return nil
}

// RequireOwner is steps 3 and 4: ownerID is booking.customer_id for customer
// scoped operations and service.worker_id for worker scoped ones.
func RequireOwner(a ActorContext, ownerID int64) error {
	if a.ID != ownerID {
		return ErrNotOwner
	}
	return nil
}
