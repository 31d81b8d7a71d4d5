package sessions

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMarkets returns the dashboard's built-in market table
func DefaultMarkets() []Definition {
	return []Definition{
		{
			Key:      "syd",
			Name:     "Sydney",
			Country:  "Australia",
			TimeZone: "Australia/Sydney",
			Open:     &Clock{Hour: 10, Minute: 0}, // ASX approx 10:00
			Close:    &Clock{Hour: 16, Minute: 0},
			Focus:    "Volatility: Medium | Focus: AU/Asia open, risk tone",
		},
		{
			Key:      "tok",
			Name:     "Tokyo",
			Country:  "Japan",
			TimeZone: "Asia/Tokyo",
			Open:     &Clock{Hour: 9, Minute: 0},
			Close:    &Clock{Hour: 15, Minute: 0},
			Focus:    "Volatility: Medium | Focus: JPY flows, Asia liquidity",
		},
		{
			Key:      "lon",
			Name:     "London",
			Country:  "UK",
			TimeZone: "Europe/London",
			Open:     &Clock{Hour: 8, Minute: 0},
			Close:    &Clock{Hour: 16, Minute: 30},
			Focus:    "Volatility: High | Focus: FX, macro, risk repricing",
		},
		{
			Key:      "ny",
			Name:     "New York",
			Country:  "USA",
			TimeZone: "America/New_York",
			Open:     &Clock{Hour: 9, Minute: 30},
			Close:    &Clock{Hour: 16, Minute: 0},
			Focus:    "Volatility: High | Focus: US data, Wall St, ETFs",
		},
		{
			Key:      "crypto",
			Name:     "Crypto",
			Country:  "24/7",
			TimeZone: AlwaysOpenZone,
			Focus:    "Volatility: Varies | Focus: On-chain, funding, narratives",
		},
	}
}

// marketFile is the on-disk layout of a market table
type marketFile struct {
	Markets []Definition `yaml:"markets"`
}

// LoadMarkets reads a YAML market table. An empty path yields the defaults.
// Definitions are validated later by NewSessionService.
func LoadMarkets(path string) ([]Definition, error) {
	if path == "" {
		return DefaultMarkets(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read market table: %w", err)
	}

	var file marketFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse market table %s: %w", path, err)
	}
	if len(file.Markets) == 0 {
		return nil, fmt.Errorf("%w: market table %s is empty", ErrInvalidMarket, path)
	}

	return file.Markets, nil
}
