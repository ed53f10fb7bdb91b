package hlda

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig reports hyperparameters NewEngine cannot work
	// with.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrIllegalArgument reports an unknown node id, an out of range
	// level or document index, or an operation in the wrong engine
	// state.  Operations returning it leave the model untouched.
	ErrIllegalArgument = errors.New("illegal argument")
)
