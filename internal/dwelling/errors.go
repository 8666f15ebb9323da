package dwelling

import "errors"

// Domain errors for the dwelling package, checked with errors.Is.
var (
	// ErrHubInstalled is returned when installing a hub that is already
	// installed in a dwelling.
	ErrHubInstalled = errors.New("dwelling: hub already installed")

	// ErrHubNotInstalled is returned when the hub is not installed in this
	// dwelling.
	ErrHubNotInstalled = errors.New("dwelling: hub not installed")
)
