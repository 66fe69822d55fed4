package morphology

import "errors"

var (
	// ErrNilKernel is returned when Apply or Run is given a nil kernel.
	ErrNilKernel = errors.New("morphology: nil kernel")

	// ErrAggregatorAborted is returned when a row worker reports failure
	// mid-sweep.
	ErrAggregatorAborted = errors.New("morphology: aggregator sweep aborted")

	// ErrZeroIterations is returned by Run when the iteration count is 0:
	// callers get back a nil result rather than a no-op copy of the input.
	ErrZeroIterations = errors.New("morphology: iteration count is zero")

	// ErrUnknownMethod is returned for a method not in the orchestrator's
	// static table.
	ErrUnknownMethod = errors.New("morphology: unknown method")
)
