package blit

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrFatal wraps panic values raised for programmer errors such as a
	// RenderPass without a mesh. These are not recoverable.
	ErrFatal = errors.New("blit: fatal precondition")

	// ErrLogic reports API misuse the caller can continue past, such as
	// popping an empty state stack. It is logged, never panicked.
	ErrLogic = errors.New("blit: logic error")

	// ErrNotImplemented is returned by operations a backend does not support.
	ErrNotImplemented = errors.New("blit: not implemented")

	// ErrInvalidShader is logged when a shader fails to compile or reflect.
	ErrInvalidShader = errors.New("blit: invalid shader")
)

// assert panics with an ErrFatal-wrapped error when cond is false.
func assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("%w: %s", ErrFatal, fmt.Sprintf(format, args...)))
	}
}

// logLogic logs an ErrLogic-wrapped message at error level.
func logLogic(msg string, args ...any) {
	Logger().Error(msg, append(args, "error", ErrLogic)...)
}
