package response

import (
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/shopspring/decimal"
)

type AvailabilityResponse struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date,omitempty"`
	FromTime string `json:"from_time"`
	ToTime   string `json:"to_time"`
}

func FromAvailability(a entities.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		FromDate: entities.FormatDate(a.FromDate),
		ToDate:   entities.FormatDate(a.ToDate),
		FromTime: a.FromTime,
		ToTime:   a.ToTime,
	}
}

type ServiceResponse struct {
	ID           string               `json:"id"`
	OwnerID      string               `json:"owner_id"`
	ContractorID string               `json:"contractor_id,omitempty"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Categories   []string             `json:"categories"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     string               `json:"currency"`
	Availability AvailabilityResponse `json:"availability"`
	Status       string               `json:"status"`
	Paid         bool                 `json:"paid"`
	Media        []string             `json:"media"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func FromService(s entities.Service) ServiceResponse {
	media := s.Media
	if media == nil {
		media = []string{}
	}
	return ServiceResponse{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		ContractorID: s.ContractorID,
		Name:         s.Name,
		Description:  s.Description,
		Categories:   s.Categories,
		Amount:       s.Amount,
		Currency:     s.Currency,
		Availability: FromAvailability(s.Availability),
		Status:       string(s.Status),
		Paid:         s.Paid,
		Media:        media,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func FromServices(services []entities.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, FromService(s))
	}
	return out
}

type ServicePageResponse struct {
	Items []ServiceResponse `json:"items"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int               `json:"total"`
}

func FromServicePage(p usecase.ServicePage) ServicePageResponse {
	return ServicePageResponse{
		Items: FromServices(p.Items),
		Page:  p.Page,
		Limit: p.Limit,
		Total: p.Total,
	}
}
