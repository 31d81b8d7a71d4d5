// Package watchlist serves the sample symbol lists shown beside the sessions.
package watchlist

import (
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// DefaultTab is shown when no tab is selected
const DefaultTab = "btc"

// EmptyMessage is shown for a tab without symbols
const EmptyMessage = "No symbols in this list yet."

// Symbol is a watched instrument
type Symbol struct {
	Sym       string  `json:"sym" yaml:"sym"`
	Name      string  `json:"name" yaml:"name"`
	Price     float64 `json:"price" yaml:"price"`
	ChangePct float64 `json:"chg" yaml:"chg"`
}

// Tab is a named list
type Tab struct {
	Key     string
	Label   string
	Symbols []Symbol
}

// Row is the display form of a symbol
type Row struct {
	Sym        string  `json:"sym"`
	Name       string  `json:"name"`
	Price      string  `json:"price"`
	ChangePct  float64 `json:"change_pct"`
	ChangeText string  `json:"change_text"`
	Direction  string  `json:"direction"`
}

// Summary aggregates a tab's changes
type Summary struct {
	Count      int     `json:"count"`
	MeanChange float64 `json:"mean_change"`
	Advancers  int     `json:"advancers"`
	Decliners  int     `json:"decliners"`
}

// View is one rendered tab
type View struct {
	Tab          string  `json:"tab"`
	Rows         []Row   `json:"rows"`
	Summary      Summary `json:"summary"`
	EmptyMessage string  `json:"empty_message,omitempty"`
}

// Watchlist holds the configured tabs in display order
type Watchlist struct {
	tabs []Tab
}

// New creates a watchlist from tabs
func New(tabs []Tab) *Watchlist {
	return &Watchlist{tabs: tabs}
}

// Sample returns the built-in sample lists
func Sample() *Watchlist {
	return New([]Tab{
		{Key: "btc", Label: "BTC", Symbols: []Symbol{
			{Sym: "SOL", Name: "Solana", Price: 102.42, ChangePct: 1.9},
			{Sym: "AVAX", Name: "Avalanche", Price: 34.18, ChangePct: -0.8},
			{Sym: "DOGE", Name: "Dogecoin", Price: 0.0812, ChangePct: 0.4},
		}},
		{Key: "eth", Label: "ETH", Symbols: []Symbol{
			{Sym: "ARB", Name: "Arbitrum", Price: 1.12, ChangePct: -1.6},
			{Sym: "OP", Name: "Optimism", Price: 2.58, ChangePct: 0.9},
			{Sym: "LDO", Name: "Lido", Price: 2.11, ChangePct: 0.2},
		}},
		{Key: "ind", Label: "Indices", Symbols: []Symbol{
			{Sym: "LINK", Name: "Chainlink", Price: 17.92, ChangePct: 0.6},
			{Sym: "RNDR", Name: "Render", Price: 7.48, ChangePct: -0.3},
		}},
	})
}

// Tabs returns the tab keys and labels in display order
func (w *Watchlist) Tabs() []Tab {
	out := make([]Tab, len(w.tabs))
	copy(out, w.tabs)
	return out
}

// View renders a tab. An empty key selects DefaultTab; an unknown key
// renders an empty list.
func (w *Watchlist) View(key string) View {
	if key == "" {
		key = DefaultTab
	}

	var symbols []Symbol
	for _, t := range w.tabs {
		if t.Key == key {
			symbols = t.Symbols
			break
		}
	}

	v := View{
		Tab:     key,
		Rows:    make([]Row, 0, len(symbols)),
		Summary: Summarize(symbols),
	}
	for _, s := range symbols {
		v.Rows = append(v.Rows, NewRow(s))
	}
	if len(v.Rows) == 0 {
		v.EmptyMessage = EmptyMessage
	}
	return v
}

// NewRow formats a symbol for display
func NewRow(s Symbol) Row {
	return Row{
		Sym:        s.Sym,
		Name:       s.Name,
		Price:      strconv.FormatFloat(s.Price, 'f', -1, 64),
		ChangePct:  s.ChangePct,
		ChangeText: FormatChange(s.ChangePct),
		Direction:  Direction(s.ChangePct),
	}
}

// FormatChange renders a signed percentage, e.g. "+1.9%" or "-0.8%".
// Zero counts as a gain.
func FormatChange(chg float64) string {
	sign := ""
	if chg >= 0 {
		sign = "+"
	}
	return sign + strconv.FormatFloat(chg, 'f', -1, 64) + "%"
}

// Direction classifies a change as "up" or "down"
func Direction(chg float64) string {
	if chg >= 0 {
		return "up"
	}
	return "down"
}

// Summarize computes the mean change and the advancer/decliner split
func Summarize(symbols []Symbol) Summary {
	s := Summary{Count: len(symbols)}
	if len(symbols) == 0 {
		return s
	}

	changes := make([]float64, len(symbols))
	for i, sym := range symbols {
		changes[i] = sym.ChangePct
		if sym.ChangePct >= 0 {
			s.Advancers++
		} else {
			s.Decliners++
		}
	}
	s.MeanChange = stat.Mean(changes, nil)
	return s
}
