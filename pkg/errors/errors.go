package errors

import (
	"fmt"
)

// ParseError represents a configuration or document decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StructuralError reports a document tree whose shape does not match what a
// component requires. It aborts the current document build.
type StructuralError struct {
	Element string
	Message string
	Err     error
}

// NewStructuralError constructs a StructuralError for the element at the given path.
func NewStructuralError(element, message string, err error) error {
	return &StructuralError{Element: element, Message: message, Err: err}
}

func (e *StructuralError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Element != "" {
		return fmt.Sprintf("structural error at %s: %s", e.Element, msg)
	}
	return fmt.Sprintf("structural error: %s", msg)
}

// Unwrap exposes the root error.
func (e *StructuralError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ComponentError indicates a failure inside a component handler.
type ComponentError struct {
	Component string
	Message   string
	Err       error
}

// NewComponentError constructs a ComponentError for the given class label.
func NewComponentError(component string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ComponentError{Component: component, Message: message, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Component != "" {
		return fmt.Sprintf("component error [%s]: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("component error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
