package blockchain

import "github.com/pkg/errors"

var (
	// ErrUnknownParent is returned when the parent of a received block has no stored state.
	ErrUnknownParent = errors.New("unknown parent block")
	// ErrNilBlock is returned when a nil block is received.
	ErrNilBlock = errors.New("nil block")
	// errNilDatabase is returned when the service is built without a database.
	errNilDatabase = errors.New("nil beacon db")
	// errNilHeadState is returned when a head has no stored state.
	errNilHeadState = errors.New("nil head state")
)
