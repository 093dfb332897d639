package graphics

import "errors"

var (
	// ErrResourceLoad is returned when a shader source or texture asset is missing,
	// unreadable or cannot be decoded.
	ErrResourceLoad = errors.New("resource load failed")

	// ErrCompile is returned when a shader stage fails to compile. The wrapping error
	// carries the compiler log.
	ErrCompile = errors.New("shader compile failed")

	// ErrLink is returned when a program fails to link. The wrapping error carries the
	// linker log.
	ErrLink = errors.New("program link failed")

	// ErrBinding is returned when an attribute or uniform name does not resolve to a
	// location in the linked program, or when vertex data does not match the
	// program's layout.
	ErrBinding = errors.New("binding mismatch")
)
