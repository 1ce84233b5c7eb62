package insight

import (
	"errors"
	"fmt"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
)

// Error taxonomy surfaced by the insight components. All of these propagate
// unchanged to the route layer; none is retried here.
var (
	// ErrNotFound means the referenced webinar or summary does not exist
	ErrNotFound = errors.New("webinar not found")

	// ErrInvalidInput means a question or required field was empty or malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrDependencyUnavailable means the event store could not be reached.
	// The failed operation was read-only, so retrying it is safe.
	ErrDependencyUnavailable = errors.New("event store unavailable")

	// ErrGenerationFailed means the generation service errored or timed out.
	// Retrying is the caller's decision since generation is expensive.
	ErrGenerationFailed = errors.New("generation failed")
)

// storeErr maps a store failure onto the insight taxonomy
func storeErr(op string, err error) error {
	if errors.Is(err, webinar.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrDependencyUnavailable, err)
}
