package booking

import "servicemarket/internal/domain"

// transitionActors is the single declarative matrix governing the
// booking lifecycle: which actor roles may move a booking from one
// status to another. Anything absent from the matrix is an invalid
// transition; terminal states have no outgoing edges at all.
//
// Ownership is checked separately: provider and client entries only
// apply to the provider/client the booking references.
var transitionActors = map[domain.BookingStatus]map[domain.BookingStatus][]domain.UserRole{
	domain.BookingPending: {
		domain.BookingConfirmed:  {domain.RoleAdmin, domain.RoleProvider},
		domain.BookingInProgress: {domain.RoleAdmin, domain.RoleProvider},
		domain.BookingCompleted:  {domain.RoleAdmin, domain.RoleProvider},
		domain.BookingCancelled:  {domain.RoleAdmin, domain.RoleClient, domain.RoleProvider},
	},
	domain.BookingConfirmed: {
		domain.BookingInProgress: {domain.RoleProvider, domain.RoleAdmin},
		domain.BookingCompleted:  {domain.RoleProvider, domain.RoleAdmin},
		domain.BookingCancelled:  {domain.RoleClient, domain.RoleProvider},
	},
	domain.BookingInProgress: {
		domain.BookingCompleted: {domain.RoleProvider, domain.RoleAdmin},
	},
}

// transitionKnown reports whether from->to is an edge of the lifecycle
// at all, for any role.
func transitionKnown(from, to domain.BookingStatus) bool {
	_, ok := transitionActors[from][to]
	return ok
}

// roleAllowed reports whether the role may trigger a known from->to
// edge.
func roleAllowed(from, to domain.BookingStatus, role domain.UserRole) bool {
	for _, r := range transitionActors[from][to] {
		if r == role {
			return true
		}
	}
	return false
}
