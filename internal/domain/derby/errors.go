package derby

import "github.com/cockroachdb/errors"

var (
	ErrStoreConnection  = errors.New("store connection failed")
	ErrSchema           = errors.New("schema mismatch")
	ErrEmptyInput       = errors.New("empty input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrDegenerateInput  = errors.New("degenerate input")
)
