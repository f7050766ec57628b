package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("semtheme.yml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "semtheme.yml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: semtheme.yml:12: unexpected token", err.Error())
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("stdin", 0, stdErrors.New("unexpected EOF"))
	require.Equal(t, "parse error: stdin: unexpected EOF", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("components.container.panel.function", "must be an identifier", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "components.container.panel.function", validationErr.Field)
	require.Contains(t, err.Error(), "must be an identifier")
}

func TestStructuralErrorNamesElement(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("expected a container")
	err := NewStructuralError("blocks[2].children[0]", "card label on heading", underlying)

	var structuralErr *StructuralError
	require.ErrorAs(t, err, &structuralErr)
	require.Equal(t, "blocks[2].children[0]", structuralErr.Element)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "structural error at blocks[2].children[0]: card label on heading", err.Error())
}

func TestStructuralErrorFallsBackToCause(t *testing.T) {
	t.Parallel()

	err := NewStructuralError("", "", stdErrors.New("bad shape"))
	require.Equal(t, "structural error: bad shape", err.Error())
}

func TestComponentErrorIncludesComponentName(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("no handler")
	err := NewComponentError("card-grid", underlying)

	var componentErr *ComponentError
	require.ErrorAs(t, err, &componentErr)
	require.Equal(t, "card-grid", componentErr.Component)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "component error [card-grid]: no handler", err.Error())
}

func TestNilReceiversAreSafe(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var validationErr *ValidationError
	var structuralErr *StructuralError
	var componentErr *ComponentError

	require.Empty(t, parseErr.Error())
	require.Empty(t, validationErr.Error())
	require.Empty(t, structuralErr.Error())
	require.Empty(t, componentErr.Error())
	require.Nil(t, structuralErr.Unwrap())
}
