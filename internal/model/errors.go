package model

import "errors"

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrClientHasBookings  = errors.New("client has bookings")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyComment       = errors.New("comment text is required")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrCommentExists      = errors.New("client already left a comment")
)
