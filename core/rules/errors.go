package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfBounds is matched by *IndexError.
	ErrIndexOutOfBounds = errors.New("rule index out of bounds")
	// ErrParse is matched by *ParseError.
	ErrParse = errors.New("invalid rule input")
	// ErrNoRules is returned when a community has no stored configuration.
	ErrNoRules = errors.New("no rules configured")
)

// IndexError reports a rule index outside the stored list, typically a
// stale index after a concurrent edit.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("rule number %d is out of bounds: no rules configured", e.Index)
	}
	return fmt.Sprintf("rule number %d is out of bounds: enter a rule number in the range 0-%d", e.Index, e.Len-1)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfBounds }

// ParseError reports malformed rule input. It is returned before any state
// is touched.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %s", e.Field, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ErrHierarchyViolation is matched by *HierarchyError.
var ErrHierarchyViolation = errors.New("role hierarchy violation")

// ErrRoleNotFound is returned when a rule targets a role the community does
// not have.
var ErrRoleNotFound = errors.New("role not found")

// HierarchyError reports that the bot's highest role is not strictly above
// the role it is asked to manage.
type HierarchyError struct {
	BotRole string
	Role    string
}

func (e *HierarchyError) Error() string {
	return fmt.Sprintf("Please update the role hierarchy with '%s' above of %s and try again.", e.BotRole, e.Role)
}

func (e *HierarchyError) Is(target error) bool { return target == ErrHierarchyViolation }
