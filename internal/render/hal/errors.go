package hal

import "errors"

var (
	// ErrAdapterNotFound is returned when no adapter matches the request.
	ErrAdapterNotFound = errors.New("no suitable GPU adapters found")
	// ErrDeviceRejected is returned when an adapter refuses a device descriptor.
	ErrDeviceRejected = errors.New("device request rejected")
	// ErrIncompatibleSurface is returned when a surface or window belongs
	// to another driver.
	ErrIncompatibleSurface = errors.New("incompatible surface")

	ErrSurfaceLost     = errors.New("surface lost")
	ErrSurfaceOutdated = errors.New("surface outdated")
	ErrSurfaceTimeout  = errors.New("surface timeout")
	ErrOutOfMemory     = errors.New("out of memory")
)
