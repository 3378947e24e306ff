package errors

import "errors"

var (
	// ErrSlotFull indicates the requested time slot already holds the
	// maximum number of active bookings. It is the sentinel used to
	// abort the reservation transaction.
	ErrSlotFull = errors.New("time slot is fully booked")

	// ErrSlotInPast indicates the requested timestamp is before now.
	ErrSlotInPast = errors.New("time slot is in the past")

	// ErrOutsideBusinessHours indicates the requested time falls outside
	// the 08:00-18:30 window.
	ErrOutsideBusinessHours = errors.New("time slot is outside business hours")

	// ErrShortNotice indicates a same-day booking less than 30 minutes away.
	ErrShortNotice = errors.New("same-day bookings require at least 30 minutes notice")

	// ErrInvalidCar indicates the supplied car id does not belong to the
	// requesting customer.
	ErrInvalidCar = errors.New("car does not belong to the customer")

	// ErrCarNotFound indicates the referenced car does not exist.
	ErrCarNotFound = errors.New("car not found")

	// ErrCarHasBookings blocks deletion of a car referenced by a booking
	// whose status is not CANCELLED.
	ErrCarHasBookings = errors.New("car is linked to active or completed bookings")

	// ErrBookingNotFound indicates the referenced booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotPending indicates a mission claim on a booking that is
	// no longer PENDING.
	ErrBookingNotPending = errors.New("booking is no longer pending")

	// ErrBookingNotCancellable indicates a cancellation attempt on a
	// completed, already cancelled, or past booking.
	ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")

	// ErrScheduleConflict indicates the washer already holds an active
	// assignment overlapping the candidate window.
	ErrScheduleConflict = errors.New("washer already has a mission on this slot")

	// ErrUserNotFound indicates no local user exists for the
	// authenticated identity.
	ErrUserNotFound = errors.New("user profile not found")

	// ErrMissingBookingMetadata indicates a checkout event without a
	// booking_id in its metadata.
	ErrMissingBookingMetadata = errors.New("checkout event carries no booking id")

	// ErrAccessDenied indicates the subject may not act on the resource.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidRole indicates an onboarding request with a role other
	// than CLIENT or LAVEUR.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidSiret indicates a washer onboarding without a valid
	// 14-digit SIRET number.
	ErrInvalidSiret = errors.New("a valid 14-digit SIRET number is required")
)
