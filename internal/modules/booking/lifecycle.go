package booking

import (
	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
)

type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionConfirm  Action = "confirm"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Event routing keys published after a successful write.
const (
	EventCreated   = "booking.created"
	EventUpdated   = "booking.updated"
	EventConfirmed = "booking.confirmed"
	EventCompleted = "booking.completed"
	EventCancelled = "booking.cancelled"
)

// Request describes one attempted lifecycle step. Current is "" for create.
// IsCustomer and IsWorker describe the actor's relation to the booking: its
// customer, and the owner of its service.
type Request struct {
	Action     Action
	Current    domain.BookingStatus
	Actor      access.ActorContext
	IsCustomer bool
	IsWorker   bool
}

// Decision is what the caller must write when a step is allowed.
type Decision struct {
	Next        domain.BookingStatus
	CancelledBy domain.Role
	Event       string
}

type rule struct {
	roles    []domain.Role
	from     []domain.BookingStatus
	to       domain.BookingStatus
	event    string
	stateErr *apperr.Error
}

var rules = map[Action]rule{
	ActionCreate: {
		roles: []domain.Role{domain.RoleCustomer},
		from:  []domain.BookingStatus{""},
		to:    domain.BookingPending,
		event: EventCreated,
	},
	ActionUpdate: {
		roles:    []domain.Role{domain.RoleCustomer},
		from:     []domain.BookingStatus{domain.BookingPending},
		to:       domain.BookingPending,
		event:    EventUpdated,
		stateErr: ErrNotEditable,
	},
	ActionConfirm: {
		roles:    []domain.Role{domain.RoleWorker},
		from:     []domain.BookingStatus{domain.BookingPending},
		to:       domain.BookingConfirmed,
		event:    EventConfirmed,
		stateErr: ErrNotConfirmable,
	},
	ActionComplete: {
		roles:    []domain.Role{domain.RoleWorker},
		from:     []domain.BookingStatus{domain.BookingConfirmed},
		to:       domain.BookingCompleted,
		event:    EventCompleted,
		stateErr: ErrNotCompletable,
	},
	ActionCancel: {
		roles:    []domain.Role{domain.RoleCustomer, domain.RoleWorker},
		from:     []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed},
		to:       domain.BookingCancelled,
		event:    EventCancelled,
		stateErr: ErrNotCancellable,
	},
}

// CheckRole runs the identity and role steps of the gate for an action. It
// needs no stored state, so services call it before loading anything.
func CheckRole(action Action, a access.ActorContext) error {
	r, ok := rules[action]
	if !ok {
		return ErrUnknownAction
	}
	if err := access.RequireIdentity(a); err != nil {
		return err
	}
	if len(r.roles) == 1 {
		return access.RequireRole(a, r.roles[0])
	}
	for _, role := range r.roles {
		if a.Role == role {
			return nil
		}
	}
	return access.ErrRoleRequired
}

// Decide maps the current state, the actor and the requested action to the
// resulting status. Checks run in gate order: identity, role, ownership,
// then state.
func Decide(req Request) (Decision, error) {
	if err := CheckRole(req.Action, req.Actor); err != nil {
		return Decision{}, err
	}
	r := rules[req.Action]

	if req.Action != ActionCreate {
		owner := false
		switch req.Actor.Role {
		case domain.RoleCustomer:
			owner = req.IsCustomer
		case domain.RoleWorker:
			owner = req.IsWorker
		}
		if !owner {
			return Decision{}, access.ErrNotOwner
		}
	}

	allowed := false
	for _, from := range r.from {
		if req.Current == from {
			allowed = true
			break
		}
	}
	if !allowed {
		if r.stateErr == nil {
			return Decision{}, ErrInvalidTransition
		}
		return Decision{}, r.stateErr
	}

	d := Decision{Next: r.to, Event: r.event}
	if req.Action == ActionCancel {
		d.CancelledBy = req.Actor.Role
	}
	return d, nil
}
