package runregistry

import "errors"

// Sentinel errors for the run registry.
var (
	ErrRunNotFound        = errors.New("run not found")
	ErrPlayerAlreadyInRun = errors.New("player already bound to a run")
	ErrPlayerNotInRun     = errors.New("player not bound to any run")
)
