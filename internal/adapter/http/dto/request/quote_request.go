package request

import (
	"topspot/internal/usecase"

	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	Description   string              `json:"description"`
	EstimatedCost decimal.Decimal     `json:"estimated_cost"`
	Availability  AvailabilityRequest `json:"availability"`
}

func (r QuoteRequest) ToTerms() (usecase.QuoteTerms, error) {
	availability, err := r.Availability.ResolveAvailability()
	if err != nil {
		return usecase.QuoteTerms{}, err
	}
	return usecase.QuoteTerms{
		Description:   r.Description,
		EstimatedCost: r.EstimatedCost,
		Availability:  availability,
	}, nil
}
