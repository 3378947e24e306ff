package errors

import "fmt"

// Uniqueness constraints that can reject profile creation. The conflict
// response names the one that fired so the client can disambiguate.
const (
	ConstraintSiret          = "siret"
	ConstraintSupabaseUserID = "supabase_user_id"
	ConstraintEmail          = "email"
)

// DuplicateProfileError is returned when onboarding collides with an
// existing user row.
type DuplicateProfileError struct {
	Constraint string
}

func (e *DuplicateProfileError) Error() string {
	return fmt.Sprintf("profile already exists (constraint: %s)", e.Constraint)
}

// NewDuplicateProfileError creates a DuplicateProfileError for the given
// constraint.
func NewDuplicateProfileError(constraint string) *DuplicateProfileError {
	return &DuplicateProfileError{Constraint: constraint}
}
