package services

import "errors"

var (
	// ErrScheduleNotLoaded is reported by readiness checks before the first
	// successful load
	ErrScheduleNotLoaded = errors.New("schedule not loaded")

	// ErrReloadInProgress is returned when a reload is requested while
	// another one is running
	ErrReloadInProgress = errors.New("schedule reload already in progress")
)
