package domain

import "errors"

var (
	// ErrProductNotFound is returned when a lookup completes without a transport
	// error but matches no product. Expected for unknown barcodes, never fatal.
	ErrProductNotFound = errors.New("product not found")

	// ErrFoodAPIFailure is returned when the Open Food Facts request fails
	ErrFoodAPIFailure = errors.New("food database request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCameraDenied is returned when camera access is not granted
	ErrCameraDenied = errors.New("camera access denied")

	// ErrDecoderInit is returned when the barcode decode library fails to start
	ErrDecoderInit = errors.New("barcode decoder initialization failed")

	// ErrSessionNotFound is returned when a scan session id matches no active session
	ErrSessionNotFound = errors.New("scan session not found")

	// ErrLookupInFlight is returned when a lookup is requested while one is outstanding
	ErrLookupInFlight = errors.New("lookup already in flight")

	// ErrOffline is returned when an action requires connectivity
	ErrOffline = errors.New("device is offline")

	// ErrInvalidTransition is returned when a view transition is not permitted
	// from the current view
	ErrInvalidTransition = errors.New("view transition not permitted")
)
