package depot

import (
	"fmt"
	"strings"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidInstance indicates a pre-built instance of a primitive or nil value
	CodeInvalidInstance = "INVALID_INSTANCE"

	// CodeUnknownDependency indicates a key with no provider, or a provider that cannot produce an instance
	CodeUnknownDependency = "UNKNOWN_DEPENDENCY"

	// CodeCyclicDependency indicates resolution re-entered a key already in flight
	CodeCyclicDependency = "CYCLIC_DEPENDENCY"

	// CodeInvalidConstructor indicates a construction recipe is not a usable function
	CodeInvalidConstructor = "INVALID_CONSTRUCTOR"

	// CodeTypeMismatch indicates a resolved value does not fit the requested type
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeConstructorFailed indicates a construction recipe returned an error
	CodeConstructorFailed = "CONSTRUCTOR_FAILED"

	// CodeNoContainer indicates an operation that needs a container was given none
	CodeNoContainer = "NO_CONTAINER"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidInstanceSentinel is a sentinel error for rejected instances (for error checking).
var ErrInvalidInstanceSentinel = errs.NewError(CodeInvalidInstance, "invalid instance type", nil)

// ErrUnknownDependencySentinel is a sentinel error for unknown dependencies (for error checking).
var ErrUnknownDependencySentinel = errs.NewError(CodeUnknownDependency, "unknown dependency", nil)

// ErrCyclicDependencySentinel is a sentinel error for dependency cycles (for error checking).
var ErrCyclicDependencySentinel = errs.NewError(CodeCyclicDependency, "cyclic dependency", nil)

// ErrInvalidConstructorSentinel is a sentinel error for invalid constructors (for error checking).
var ErrInvalidConstructorSentinel = errs.NewError(CodeInvalidConstructor, "invalid constructor", nil)

// ErrTypeMismatchSentinel is a sentinel error for type mismatch during resolution.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// ErrConstructorFailedSentinel is a sentinel error for failing constructors (for error checking).
var ErrConstructorFailedSentinel = errs.NewError(CodeConstructorFailed, "constructor failed", nil)

// ErrNoContainerSentinel is a sentinel error for a missing container (for error checking).
var ErrNoContainerSentinel = errs.NewError(CodeNoContainer, "no container available", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrInvalidInstance creates an error for a pre-built instance of an unsupported kind
func ErrInvalidInstance(key string, instance any) *errs.Error {
	return errs.NewError(
		CodeInvalidInstance,
		fmt.Sprintf("instance for '%s' has invalid type %T", key, instance),
		nil,
	).WithContext("key", key).
		WithContext("actual_type", fmt.Sprintf("%T", instance)).(*errs.Error)
}

// ErrUnknownDependency creates an error for a key that is not known and cannot be injected
func ErrUnknownDependency(key string) *errs.Error {
	return errs.NewError(
		CodeUnknownDependency,
		fmt.Sprintf("type '%s' is not known and cannot be injected", key),
		nil,
	).WithContext("key", key).(*errs.Error)
}

// ErrCyclicDependency creates an error for a resolution chain that loops back on itself.
// The chain lists the in-flight keys followed by the key that closed the cycle.
func ErrCyclicDependency(chain []string) *errs.Error {
	return errs.NewError(
		CodeCyclicDependency,
		"cyclic dependency detected: "+strings.Join(chain, " -> "),
		nil,
	).WithContext("cycle", chain).(*errs.Error)
}

// ErrInvalidConstructor creates an error for a construction recipe that cannot be used
func ErrInvalidConstructor(reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidConstructor,
		"invalid constructor: "+reason,
		nil,
	).WithContext("reason", reason).(*errs.Error)
}

// ErrTypeMismatch creates an error for a value that does not fit the expected type
func ErrTypeMismatch(key string, expected string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("'%s' type mismatch: expected %s, got %T", key, expected, actual),
		nil,
	).WithContext("key", key).
		WithContext("expected_type", expected).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

// ErrConstructorFailed creates an error for a constructor that returned an error
func ErrConstructorFailed(key string, cause error) *errs.Error {
	return errs.NewError(
		CodeConstructorFailed,
		fmt.Sprintf("constructor for '%s' failed", key),
		cause,
	).WithContext("key", key).(*errs.Error)
}

// ErrNoContainer creates an error for a lazy dependency that has no container to resolve from
func ErrNoContainer(key string) *errs.Error {
	return errs.NewError(
		CodeNoContainer,
		fmt.Sprintf("no container available to resolve '%s'", key),
		nil,
	).WithContext("key", key).(*errs.Error)
}
