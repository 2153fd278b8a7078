// Package authz holds the portal's capability checks as pure functions over
// (actor, resource). Handlers and services call these predicates; role
// checks never happen inline anywhere else.
package authz

import "udyam/pkg/domain"

// CanSubmit reports whether the actor may create or submit an application
// on behalf of the startup owned by ownerID.
func CanSubmit(actor domain.Actor, ownerID domain.UserID) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.UserID == ownerID && !actor.UserID.IsNil()
}

// CanListForOfficials reports whether the actor may browse the full
// application queue. Holding the gov_official role is insufficient on its
// own: the role must also be verified.
func CanListForOfficials(actor domain.Actor) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.Role == domain.RoleGovOfficial && actor.RoleVerified
}

// CanView reports whether the actor may read a single application: the
// owning user, an admin, or a verified official.
func CanView(actor domain.Actor, ownerID domain.UserID) bool {
	if actor.UserID == ownerID && !actor.UserID.IsNil() {
		return true
	}
	return CanListForOfficials(actor)
}
