package cache

import "errors"

var (
	// ErrAlreadyInProgress appears when attempting to mark a cache as in progress while it is
	// already in progress. The client should handle this error and wait for the in progress
	// data to resolve via Get.
	ErrAlreadyInProgress = errors.New("already in progress")
	// ErrCastingFailed is returned when a cached item is not of the expected type.
	ErrCastingFailed = errors.New("casting failed")
)
