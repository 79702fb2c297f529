package solar

import (
	"errors"
)

var (
	// ErrInvalidTimestamp is returned when a millisecond timestamp does
	// not decode into a representable civil UTC date
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidObserverCoordinate is returned for a latitude outside
	// [-90, 90] or a non-finite latitude or longitude
	ErrInvalidObserverCoordinate = errors.New("invalid observer coordinate")
)
