package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func TestCardFieldsKeepDeclarationOrder(t *testing.T) {
	t.Parallel()

	card := Card{Title: "A", Content: "x", Footer: "z", Style: CardStyleFilled, Colour: "#fff"}
	require.Equal(t, []string{"title", "content", "footer", "style", "color"}, fieldNames(card.Fields()))

	titleOnly := Card{Title: "Only"}
	require.Len(t, titleOnly.Fields(), 1)
	require.False(t, titleOnly.Empty())
	require.True(t, Card{Style: CardStyleSubtle}.Empty())
}

func TestEventFieldsAlwaysIncludeDateAndTitle(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"date", "title"}, fieldNames(Event{Title: "Launch"}.Fields()))
	require.Equal(t, []string{"date", "title", "description"}, fieldNames(Event{Date: "2024", Description: "d"}.Fields()))
	require.True(t, Event{Description: "only"}.Empty())
}

func TestParseCardStyle(t *testing.T) {
	t.Parallel()

	style, ok := ParseCardStyle("outlined")
	require.True(t, ok)
	require.Equal(t, CardStyleOutlined, style)

	_, ok = ParseCardStyle("Outlined")
	require.False(t, ok)
}

func TestProgressPercent(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 40.0, Progress{Value: 40, Max: 100}.Percent(), 0.001)
	require.InDelta(t, 50.0, Progress{Value: 15, Min: 10, Max: 20}.Percent(), 0.001)
	require.InDelta(t, 100.0, Progress{Value: 150, Max: 100}.Percent(), 0.001)
	require.InDelta(t, 0.0, Progress{Value: -5, Max: 100}.Percent(), 0.001)
	require.InDelta(t, 0.0, Progress{Value: 5, Min: 10, Max: 10}.Percent(), 0.001)
}
