package instance

import "errors"

var (
	// ErrUnknownFileType is returned when an XML document is neither an
	// <SPInstance> nor a <modular> container.
	ErrUnknownFileType = errors.New("instance: unknown XML root element")
	// ErrUnknownShopType is returned by ParseShopType for an unrecognised
	// --shop-type value.
	ErrUnknownShopType = errors.New("instance: unknown shop type")
	// ErrNoJobs is returned when a <flowVector> names no jobs at all.
	ErrNoJobs = errors.New("instance: flow vector names no jobs")
)
