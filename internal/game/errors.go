package game

import "fmt"

// ErrorKind classifies why a command was rejected. Every kind is recoverable:
// a rejected command never mutates state.
type ErrorKind int

const (
	// NotFound: unknown player, sector, or ship reference.
	NotFound ErrorKind = iota
	// InvalidTarget: non-adjacent move, out-of-range scan, self-attack,
	// dead target, unscanned strike target.
	InvalidTarget
	// InsufficientResource: AP below the action's cost.
	InsufficientResource
	// PermissionDenied: wrong turn owner, level below requirement, sector
	// not controlled, bad credential.
	PermissionDenied
	// AlreadyInState: outpost already built, already at full health.
	AlreadyInState
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InvalidTarget:
		return "invalid_target"
	case InsufficientResource:
		return "insufficient_resource"
	case PermissionDenied:
		return "permission_denied"
	case AlreadyInState:
		return "already_in_state"
	}
	return "unknown"
}

// CommandError is a structured rejection: a kind for callers that branch on
// it, and a reason string fit for showing to the player.
type CommandError struct {
	Kind   ErrorKind
	Reason string
}

func (e *CommandError) Error() string { return e.Reason }

func errNotFound(format string, args ...any) *CommandError {
	return &CommandError{Kind: NotFound, Reason: fmt.Sprintf(format, args...)}
}

func errInvalidTarget(format string, args ...any) *CommandError {
	return &CommandError{Kind: InvalidTarget, Reason: fmt.Sprintf(format, args...)}
}

func errInsufficientAP(format string, args ...any) *CommandError {
	return &CommandError{Kind: InsufficientResource, Reason: fmt.Sprintf(format, args...)}
}

func errPermission(format string, args ...any) *CommandError {
	return &CommandError{Kind: PermissionDenied, Reason: fmt.Sprintf(format, args...)}
}

func errAlready(format string, args ...any) *CommandError {
	return &CommandError{Kind: AlreadyInState, Reason: fmt.Sprintf(format, args...)}
}
