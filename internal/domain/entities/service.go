package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceStatus is the lifecycle of a service request.
//
//	pending -> ongoing -> completed
//	pending | ongoing -> cancelled
type ServiceStatus string

const (
	ServiceStatusPending   ServiceStatus = "pending"
	ServiceStatusOngoing   ServiceStatus = "ongoing"
	ServiceStatusCompleted ServiceStatus = "completed"
	ServiceStatusCancelled ServiceStatus = "cancelled"
)

var serviceTransitions = map[ServiceStatus][]ServiceStatus{
	ServiceStatusPending: {ServiceStatusOngoing, ServiceStatusCancelled},
	ServiceStatusOngoing: {ServiceStatusCompleted, ServiceStatusCancelled},
}

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceStatusPending, ServiceStatusOngoing, ServiceStatusCompleted, ServiceStatusCancelled:
		return true
	}
	return false
}

func (s ServiceStatus) IsTerminal() bool {
	return s == ServiceStatusCompleted || s == ServiceStatusCancelled
}

func (s ServiceStatus) CanTransitionTo(next ServiceStatus) bool {
	for _, allowed := range serviceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const DefaultCurrency = "PHP"

// ServiceCategories lists the accepted request categories.
var ServiceCategories = []string{
	"plumbing",
	"painting",
	"furniture assembly",
	"electrical work",
	"room cleaning",
	"other",
}

func ValidCategory(c string) bool {
	for _, known := range ServiceCategories {
		if known == c {
			return true
		}
	}
	return false
}

// Service is a unit of requested work.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (owner_id-index): owner_id
//   - GSI (contractor_id-index): contractor_id
//
// Version increases by one on every write and guards concurrent updates.
type Service struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	ContractorID string          `json:"contractor_id,omitempty"`
	Name         string          `json:"name"`
	Categories   []string        `json:"categories"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Availability Availability    `json:"availability"`
	Status       ServiceStatus   `json:"status"`
	Paid         bool            `json:"paid"`
	Media        []string        `json:"media,omitempty"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (s Service) HasContractor() bool {
	return s.ContractorID != ""
}

func (s Service) HasCategory(c string) bool {
	for _, own := range s.Categories {
		if own == c {
			return true
		}
	}
	return false
}
