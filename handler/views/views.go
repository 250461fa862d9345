package views

import (
	"tokenservice/core"

	"github.com/shopspring/decimal"
)

// Balance balance view
type Balance struct {
	Balance decimal.Decimal `json:"balance"`
}

// Price price view
type Price struct {
	Price decimal.Decimal `json:"price"`
}

// Quote swap quote view, amounts are decimal strings
type Quote struct {
	Status          core.QuoteStatus `json:"status"`
	EstimatedOutput decimal.Decimal  `json:"estimated_output"`
	MinimumOutput   decimal.Decimal  `json:"minimum_output"`
	Gas             decimal.Decimal  `json:"gas"`
}

// QuoteView convert a swap quote
func QuoteView(q *core.SwapQuote) Quote {
	return Quote{
		Status:          q.Status,
		EstimatedOutput: q.EstimatedOutput,
		MinimumOutput:   q.MinimumOutput,
		Gas:             q.Gas,
	}
}

// Argument tool argument descriptor
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Tool tool descriptor
type Tool struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Arguments   []Argument `json:"arguments"`
}

// Tools tool list with the registry's symbols
type Tools struct {
	Tools  []Tool   `json:"tools"`
	Assets []string `json:"assets"`
	Feeds  []string `json:"feeds"`
}
