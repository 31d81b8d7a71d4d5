// Package news loads the curated news feed and pages through it.
package news

import (
	"strings"

	"github.com/google/uuid"
)

// Display defaults for fields missing from a feed item
const (
	DefaultImpact     = "Low"
	DefaultMarket     = "Crypto"
	DefaultSourceName = "Source"
	Placeholder       = "—"

	MaxKeyPoints = 5
	MaxSources   = 3
)

// itemNamespace seeds the name-based ids of items that arrive without one
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("decisionlens/news"))

// SourceLink is an attribution link
type SourceLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Item is one news card
type Item struct {
	ID           string       `json:"id"`
	Headline     string       `json:"headline"`
	Summary      string       `json:"summary"`
	KeyPoints    []string     `json:"keyPoints"`
	WhyItMatters string       `json:"whyItMatters"`
	Impact       string       `json:"impact"`
	Market       string       `json:"market"`
	Session      string       `json:"session"`
	TimePKT      string       `json:"timePKT"`
	Sources      []SourceLink `json:"sources"`
}

// Normalize fills display defaults and trims the lists to what a card shows
func (i Item) Normalize() Item {
	if strings.TrimSpace(i.Impact) == "" {
		i.Impact = DefaultImpact
	}
	if strings.TrimSpace(i.Market) == "" {
		i.Market = DefaultMarket
	}
	if strings.TrimSpace(i.Session) == "" {
		i.Session = Placeholder
	}
	if strings.TrimSpace(i.TimePKT) == "" {
		i.TimePKT = Placeholder
	}

	if len(i.KeyPoints) > MaxKeyPoints {
		i.KeyPoints = i.KeyPoints[:MaxKeyPoints]
	}
	if i.KeyPoints == nil {
		i.KeyPoints = []string{}
	}

	sources := make([]SourceLink, 0, MaxSources)
	for _, s := range i.Sources {
		if len(sources) == MaxSources {
			break
		}
		if strings.TrimSpace(s.Name) == "" {
			s.Name = DefaultSourceName
		}
		sources = append(sources, s)
	}
	i.Sources = sources

	if i.ID == "" {
		i.ID = uuid.NewSHA1(itemNamespace, []byte(i.Headline+"\x00"+i.TimePKT)).String()
	}
	return i
}
