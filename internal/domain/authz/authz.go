// Package authz centralizes the ownership and role checks that the
// car, booking, and mission endpoints share, so the rules cannot drift
// between handlers.
package authz

import (
	"github.com/google/uuid"

	"github.com/lavauto/lavauto-server/internal/domain/model"
)

// Action is what the subject wants to do with a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionCancel Action = "cancel"
	ActionDelete Action = "delete"
	// ActionAccept is a washer claiming a pending mission. It is role
	// gated rather than ownership gated.
	ActionAccept Action = "accept"
)

// Subject is the acting user.
type Subject struct {
	UserID uuid.UUID
	Role   model.UserRole
}

// SubjectFor builds a Subject from a resolved local user.
func SubjectFor(u *model.User) Subject {
	return Subject{UserID: u.ID, Role: u.Role}
}

// Resource is anything with a single owning user.
type Resource interface {
	OwnerID() uuid.UUID
}

// Can decides whether the subject may perform the action on the
// resource. Admins may do anything; accepting a mission requires the
// washer role; everything else requires ownership.
func Can(sub Subject, action Action, res Resource) bool {
	if sub.Role == model.RoleAdmin {
		return true
	}
	if action == ActionAccept {
		return sub.Role == model.RoleLaveur
	}
	return res != nil && res.OwnerID() == sub.UserID
}
