package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "0m", HumanDuration(0))
	assert.Equal(t, "0m", HumanDuration(-5))
	assert.Equal(t, "45m", HumanDuration(45))
	assert.Equal(t, "1h 1m", HumanDuration(61))
	assert.Equal(t, "6h 0m", HumanDuration(360))
	assert.Equal(t, "47h 30m", HumanDuration(2850))
}

func TestFormatNow(t *testing.T) {
	now := time.Date(2026, 10, 19, 13, 30, 0, 0, time.UTC)
	assert.Equal(t, "Oct 19, 2026 • 6:30 PM PKT", FormatNow(now, mustLoc(t, "Asia/Karachi")))
}

func TestShortCountry(t *testing.T) {
	assert.Equal(t, "US", ShortCountry("USA"))
	assert.Equal(t, "UK", ShortCountry("UK"))
	assert.Equal(t, "Japan", ShortCountry("Japan"))
}

func TestPresent(t *testing.T) {
	service := newTestService(t, fixedProfile(t))
	ny := mustMarket(t, service, "ny")
	crypto := mustMarket(t, service, "crypto")

	t.Run("open", func(t *testing.T) {
		st := service.Evaluate(time.Date(2024, 1, 16, 15, 0, 0, 0, time.UTC), ny, nil)
		v := Present(st, ny)

		assert.Equal(t, "New York", v.Title)
		assert.Equal(t, "US", v.Country)
		assert.Equal(t, "Open", v.Label)
		assert.Equal(t, "open", v.Indicator)
		assert.Equal(t, "Closes in 6h 0m", v.Countdown)
		assert.Equal(t, "7:30 PM", v.OpensAt)
		assert.Equal(t, "2:00 AM", v.ClosesAt)
		require.NotNil(t, v.NextOpen)
		assert.True(t, v.NextOpen.Equal(st.NextOpen))
	})

	t.Run("pre-open", func(t *testing.T) {
		st := service.Evaluate(time.Date(2024, 1, 16, 13, 45, 0, 0, time.UTC), ny, nil)
		v := Present(st, ny)

		assert.Equal(t, "Pre-Open", v.Label)
		assert.Equal(t, "pre", v.Indicator)
		assert.Equal(t, "Opens in 45m", v.Countdown)
	})

	t.Run("weekend", func(t *testing.T) {
		st := service.Evaluate(time.Date(2024, 1, 13, 15, 0, 0, 0, time.UTC), ny, nil)
		v := Present(st, ny)

		assert.Equal(t, "Closed (Weekend)", v.Label)
		assert.Equal(t, "closed", v.Indicator)
		assert.Equal(t, "Opens in 47h 30m", v.Countdown)
	})

	t.Run("always open", func(t *testing.T) {
		st := service.Evaluate(time.Date(2024, 1, 13, 15, 0, 0, 0, time.UTC), crypto, nil)
		v := Present(st, crypto)

		assert.Equal(t, "Open", v.Label)
		assert.Equal(t, "24/7", v.Countdown)
		assert.Equal(t, Placeholder, v.OpensAt)
		assert.Equal(t, Placeholder, v.ClosesAt)
		assert.Nil(t, v.NextOpen)
	})
}
