package domain

import "errors"

// Sentinel errors for the label domain. Use errors.Is() to check these.
var (
	// ErrInvalidItemCode indicates an item code that is empty or not all digits.
	ErrInvalidItemCode = errors.New("invalid item code")

	// ErrInvalidRootKind indicates a label was requested for an item that is
	// neither a finished nor a partial product.
	ErrInvalidRootKind = errors.New("item is not a finished or partial product")

	// ErrZeroTotalQuantity indicates an explosion with no usable raw material quantity.
	ErrZeroTotalQuantity = errors.New("total ingredient quantity is zero")

	// ErrItemNotFound indicates the item or its product tree does not exist upstream.
	ErrItemNotFound = errors.New("item not found")

	// ErrLabelNotFound indicates no label has been computed for the item.
	ErrLabelNotFound = errors.New("label not found")

	// ErrInvalidItemData indicates a raw material with missing or malformed label data.
	ErrInvalidItemData = errors.New("invalid item data")

	// ErrCyclicTree indicates an assembly that contains itself.
	ErrCyclicTree = errors.New("cyclic product tree")

	// ErrUpstream indicates the item master could not be reached or answered unexpectedly.
	ErrUpstream = errors.New("item master unavailable")
)
