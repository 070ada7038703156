package types

import "errors"

// Domain errors for type validation
var (
	ErrInvalidRange     = errors.New("invalid chunk range")
	ErrRangeOutOfBounds = errors.New("chunk range out of bounds")
	ErrOverlappingRange = errors.New("chunk ranges overlap or are out of order")
	ErrDuplicateDocID   = errors.New("duplicate doc ID")
)
