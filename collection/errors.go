package collection

import "errors"

var (
	// ErrCorrupt reports a stored payload that cannot be decoded.
	ErrCorrupt = errors.New("corrupt collection payload")

	// ErrMissingID is returned when creating a record without an id.
	ErrMissingID = errors.New("record id is empty")

	// ErrDuplicateID is returned when creating a record whose id already exists.
	ErrDuplicateID = errors.New("record id already exists")

	// ErrInvalidPatch is returned when a partial update cannot be applied to the record type.
	ErrInvalidPatch = errors.New("invalid partial update")
)
