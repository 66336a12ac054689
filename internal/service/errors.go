package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidCredentials is returned when login fails
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAlreadyLinked is returned when converting an inquiry that already has a lead
	ErrAlreadyLinked = errors.New("inquiry is already linked to a lead")

	// ErrNoCustomerRef is returned when a quotation has neither a client nor a lead
	ErrNoCustomerRef = errors.New("quotation has no client or lead reference")

	// ErrAlreadySent is returned when sending a quotation that was already sent
	ErrAlreadySent = errors.New("quotation has already been sent")

	// ErrNotAccepted is returned when creating a sales order from a quotation that isn't accepted
	ErrNotAccepted = errors.New("quotation is not accepted")

	// ErrInsufficientStock is returned when an order would take stock below zero
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrAlreadyClockedIn is returned on a second clock-in for the same day
	ErrAlreadyClockedIn = errors.New("already clocked in today")

	// ErrNotClockedIn is returned for break/clock-out operations without an open attendance record
	ErrNotClockedIn = errors.New("no open attendance record")

	// ErrBreakOpen is returned when starting a break while one is already open
	ErrBreakOpen = errors.New("a break is already in progress")

	// ErrNoBreakOpen is returned when ending a break while none is open
	ErrNoBreakOpen = errors.New("no break in progress")

	// ErrIPNotAllowed is returned when an OJT user clocks in from a non-allowlisted address
	ErrIPNotAllowed = errors.New("clock-in not allowed from this address")

	// ErrCategoryInUse is returned when deleting a document category that still has documents
	ErrCategoryInUse = errors.New("Cannot delete category with existing documents")
)
