package news

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_Normalize(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		item := Item{Headline: "ETF inflows slow"}.Normalize()

		assert.Equal(t, DefaultImpact, item.Impact)
		assert.Equal(t, DefaultMarket, item.Market)
		assert.Equal(t, Placeholder, item.Session)
		assert.Equal(t, Placeholder, item.TimePKT)
		assert.NotNil(t, item.KeyPoints)
		assert.Empty(t, item.Sources)
	})

	t.Run("keeps provided values", func(t *testing.T) {
		item := Item{
			ID:      "fixed-id",
			Impact:  "High",
			Market:  "Forex",
			Session: "London",
			TimePKT: "Oct 19, 2026 • 1:00 PM",
		}.Normalize()

		assert.Equal(t, "fixed-id", item.ID)
		assert.Equal(t, "High", item.Impact)
		assert.Equal(t, "Forex", item.Market)
		assert.Equal(t, "London", item.Session)
		assert.Equal(t, "Oct 19, 2026 • 1:00 PM", item.TimePKT)
	})

	t.Run("caps key points and sources", func(t *testing.T) {
		item := Item{
			KeyPoints: []string{"a", "b", "c", "d", "e", "f", "g"},
			Sources: []SourceLink{
				{Name: "Reuters", URL: "https://reuters.com"},
				{URL: "https://example.com/a"},
				{Name: "FT", URL: "https://ft.com"},
				{Name: "WSJ", URL: "https://wsj.com"},
			},
		}.Normalize()

		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, item.KeyPoints)
		require.Len(t, item.Sources, MaxSources)
		assert.Equal(t, "Reuters", item.Sources[0].Name)
		assert.Equal(t, DefaultSourceName, item.Sources[1].Name)
		assert.Equal(t, "FT", item.Sources[2].Name)
	})

	t.Run("derives stable ids", func(t *testing.T) {
		a := Item{Headline: "Fed holds rates", TimePKT: "11:00 PM"}.Normalize()
		b := Item{Headline: "Fed holds rates", TimePKT: "11:00 PM"}.Normalize()
		c := Item{Headline: "Fed cuts rates", TimePKT: "11:00 PM"}.Normalize()

		assert.Equal(t, a.ID, b.ID)
		assert.NotEqual(t, a.ID, c.ID)

		parsed, err := uuid.Parse(a.ID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(5), parsed.Version())
	})
}
