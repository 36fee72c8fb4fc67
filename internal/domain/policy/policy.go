// Package policy holds the authorization decision table consulted by every
// mutating operation.
package policy

import (
	"topspot/internal/domain"
	"topspot/internal/domain/entities"
)

type Action string

const (
	ActionCreateService          Action = "service.create"
	ActionEditService            Action = "service.edit"
	ActionViewService            Action = "service.view"
	ActionAttachMedia            Action = "service.attach_media"
	ActionCompleteService        Action = "service.complete"
	ActionCancelService          Action = "service.cancel"
	ActionAssignContractor       Action = "service.assign_contractor"
	ActionListAllServices        Action = "service.list_all"
	ActionListAssignedServices   Action = "service.list_assigned"
	ActionSearchServices         Action = "service.search"
	ActionCreateQuote            Action = "quote.create"
	ActionApproveQuote           Action = "quote.approve"
	ActionDeclineQuote           Action = "quote.decline"
	ActionContractorApproveQuote Action = "quote.contractor_approve"
	ActionAdminApproveQuote      Action = "quote.admin_approve"
	ActionCounterOffer           Action = "quote.counter_offer"
	ActionDisapproveQuote        Action = "quote.disapprove"
	ActionViewServiceQuotes      Action = "quote.list_by_service"
	ActionInitiateCheckout       Action = "payment.checkout"
	ActionCancelCheckout         Action = "payment.cancel_checkout"
	ActionViewServicePayments    Action = "payment.list_by_service"
	ActionVerifyUser             Action = "user.verify"
	ActionSetContractorStatus    Action = "user.set_contractor_status"
	ActionChangeRole             Action = "user.change_role"
	ActionListUsers              Action = "user.list"
	ActionViewProfile            Action = "user.view_profile"
)

// Target is the entity set an action applies to. Rules needing an entity
// deny with NotFound when it is absent.
type Target struct {
	Service *entities.Service
	Quote   *entities.Quote
	Subject *entities.User
}

type rule func(actor entities.User, t Target) error

var decisionTable = map[Action]rule{
	ActionCreateService: func(a entities.User, _ Target) error {
		return allowIf(a.Role.PostsServices())
	},
	ActionEditService:      serviceOwner,
	ActionAttachMedia:      serviceOwner,
	ActionCompleteService:  serviceOwner,
	ActionCancelService:    serviceOwner,
	ActionInitiateCheckout: serviceOwner,
	ActionCancelCheckout:   serviceOwner,
	ActionDisapproveQuote:  withQuote(serviceOwner),
	ActionViewService: func(a entities.User, t Target) error {
		if t.Service == nil {
			return domain.ErrNotFound
		}
		return allowIf(a.Role == entities.RoleAdmin || a.Role == entities.RoleContractor || a.ID == t.Service.OwnerID)
	},
	ActionAssignContractor: func(a entities.User, t Target) error {
		if t.Service == nil {
			return domain.ErrNotFound
		}
		return allowIf(a.Role == entities.RoleAdmin || a.ID == t.Service.OwnerID)
	},
	ActionCreateQuote: func(a entities.User, t Target) error {
		if t.Service == nil {
			return domain.ErrNotFound
		}
		return allowIf(a.ID == t.Service.OwnerID || a.Role == entities.RoleContractor)
	},
	ActionApproveQuote:           withQuote(notAuthor(ownerOrAssignedContractor)),
	ActionDeclineQuote:           withQuote(notAuthor(ownerOrAssignedContractor)),
	ActionContractorApproveQuote: withQuote(notAuthor(assignedContractor)),
	ActionAdminApproveQuote:      withQuote(notAuthor(admin)),
	ActionCounterOffer:           withQuote(admin),
	ActionViewServiceQuotes: func(a entities.User, t Target) error {
		if t.Service == nil {
			return domain.ErrNotFound
		}
		return allowIf(a.Role == entities.RoleAdmin || a.Role == entities.RoleContractor || a.ID == t.Service.OwnerID)
	},
	ActionViewServicePayments: func(a entities.User, t Target) error {
		if t.Service == nil {
			return domain.ErrNotFound
		}
		return allowIf(a.Role == entities.RoleAdmin || a.ID == t.Service.OwnerID)
	},
	ActionListAssignedServices: func(a entities.User, _ Target) error {
		return allowIf(a.Role == entities.RoleContractor)
	},
	ActionSearchServices: func(a entities.User, _ Target) error {
		return allowIf(a.Role == entities.RoleContractor || a.Role == entities.RoleAdmin)
	},
	ActionViewProfile: func(a entities.User, t Target) error {
		if t.Subject == nil {
			return domain.ErrNotFound
		}
		return allowIf(a.ID == t.Subject.ID || a.Role == entities.RoleAdmin)
	},
	ActionListAllServices:     admin,
	ActionVerifyUser:          admin,
	ActionSetContractorStatus: admin,
	ActionChangeRole:          admin,
	ActionListUsers:           admin,
}

// Authorize returns nil when actor may perform action on target. Unknown
// actions and anonymous actors are denied.
func Authorize(actor entities.User, action Action, target Target) error {
	r, ok := decisionTable[action]
	if !ok || actor.ID == "" {
		return domain.ErrNotAuthorized
	}
	return r(actor, target)
}

func allowIf(ok bool) error {
	if ok {
		return nil
	}
	return domain.ErrNotAuthorized
}

func admin(a entities.User, _ Target) error {
	return allowIf(a.Role == entities.RoleAdmin)
}

func serviceOwner(a entities.User, t Target) error {
	if t.Service == nil {
		return domain.ErrNotFound
	}
	return allowIf(a.ID == t.Service.OwnerID)
}

func ownerOrAssignedContractor(a entities.User, t Target) error {
	return allowIf(a.ID == t.Service.OwnerID || (t.Service.HasContractor() && a.ID == t.Service.ContractorID))
}

func assignedContractor(a entities.User, t Target) error {
	return allowIf(a.Role == entities.RoleContractor && t.Service.HasContractor() && a.ID == t.Service.ContractorID)
}

// withQuote requires both the quote and its service to be present.
func withQuote(next rule) rule {
	return func(a entities.User, t Target) error {
		if t.Quote == nil || t.Service == nil {
			return domain.ErrNotFound
		}
		return next(a, t)
	}
}

// notAuthor rejects the quote's author before any role check.
func notAuthor(next rule) rule {
	return func(a entities.User, t Target) error {
		if t.Quote.AuthorID == a.ID {
			return domain.ErrSelfApproval
		}
		return next(a, t)
	}
}
