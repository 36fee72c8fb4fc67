package request

import (
	"errors"
	"strings"
	"time"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDate = errors.New("dates must use YYYY-MM-DD")
)

type AvailabilityRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	FromTime string `json:"from_time"`
	ToTime   string `json:"to_time"`
}

// ResolveAvailability parses the dates; range and time checks happen in the
// use case.
func (r AvailabilityRequest) ResolveAvailability() (entities.Availability, error) {
	from, err := parseOptionalDate(r.FromDate)
	if err != nil {
		return entities.Availability{}, err
	}
	to, err := parseOptionalDate(r.ToDate)
	if err != nil {
		return entities.Availability{}, err
	}
	return entities.Availability{
		FromDate: from,
		ToDate:   to,
		FromTime: strings.TrimSpace(r.FromTime),
		ToTime:   strings.TrimSpace(r.ToTime),
	}, nil
}

type ServiceRequest struct {
	Name         string              `json:"name" binding:"required"`
	Description  string              `json:"description"`
	Categories   []string            `json:"categories" binding:"required"`
	Amount       decimal.Decimal     `json:"amount"`
	Currency     string              `json:"currency"`
	Availability AvailabilityRequest `json:"availability"`
}

func (r ServiceRequest) ToInput() (usecase.ServiceInput, error) {
	availability, err := r.Availability.ResolveAvailability()
	if err != nil {
		return usecase.ServiceInput{}, err
	}
	return usecase.ServiceInput{
		Name:         r.Name,
		Description:  r.Description,
		Categories:   r.Categories,
		Amount:       r.Amount,
		Currency:     r.Currency,
		Availability: availability,
	}, nil
}

// ServicePatchRequest carries only the fields being changed.
type ServicePatchRequest struct {
	Name         *string              `json:"name"`
	Description  *string              `json:"description"`
	Categories   *[]string            `json:"categories"`
	Amount       *decimal.Decimal     `json:"amount"`
	Availability *AvailabilityRequest `json:"availability"`
}

func (r ServicePatchRequest) ToPatch() (usecase.ServicePatch, error) {
	patch := usecase.ServicePatch{
		Name:        r.Name,
		Description: r.Description,
		Categories:  r.Categories,
		Amount:      r.Amount,
	}
	if r.Availability != nil {
		a, err := r.Availability.ResolveAvailability()
		if err != nil {
			return usecase.ServicePatch{}, err
		}
		patch.Availability = &a
	}
	return patch, nil
}

type AssignContractorRequest struct {
	ContractorID string `json:"contractor_id" binding:"required"`
}

// ContractorServicesQuery is bound from the query string.
type ContractorServicesQuery struct {
	Date   string `form:"date"`
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q ContractorServicesQuery) ToFilter() (usecase.ContractorServiceFilter, error) {
	date, err := parseOptionalDate(q.Date)
	if err != nil {
		return usecase.ContractorServiceFilter{}, err
	}
	return usecase.ContractorServiceFilter{
		Date:   date,
		Status: entities.ServiceStatus(strings.TrimSpace(q.Status)),
		Page:   q.Page,
		Limit:  q.Limit,
	}, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := entities.ParseDate(s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
