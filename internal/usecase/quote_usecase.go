package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	"topspot/internal/domain/policy"
	"topspot/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ApprovalStatus string

const (
	ApprovalApplied         ApprovalStatus = "applied"
	ApprovalPaymentRequired ApprovalStatus = "payment_required"
	ApprovalSkipped         ApprovalStatus = "skipped"
)

// ApprovalResult is the outcome of an approval. PaymentRequired is not an
// error: nothing was changed and Checkout tells the payer where to go.
type ApprovalResult struct {
	Status   ApprovalStatus           `json:"status"`
	Quote    entities.Quote           `json:"quote"`
	Service  entities.Service         `json:"service"`
	Declined []string                 `json:"declined_quote_ids,omitempty"`
	Checkout *entities.CheckoutHandle `json:"checkout,omitempty"`
}

// QuoteTerms is the proposal part of a quote.
type QuoteTerms struct {
	Description   string
	EstimatedCost decimal.Decimal
	Availability  entities.Availability
}

func (t QuoteTerms) validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return domain.Invalid("description is required")
	}
	if !t.EstimatedCost.IsPositive() {
		return domain.Invalid("estimated cost must be greater than zero")
	}
	if t.Availability.IsZero() {
		return nil
	}
	if err := t.Availability.ValidateComplete(); err != nil {
		return domain.Wrap(domain.KindInvalidInput, "INVALID_AVAILABILITY", err.Error(), err)
	}
	return nil
}

// IApprovalResumer re-runs an approval deferred by the payment gate.
type IApprovalResumer interface {
	ResumeApproval(ctx context.Context, serviceID, approverID string, paid decimal.Decimal) (ApprovalResult, error)
}

// IQuoteUseCase is the negotiation engine.
//
//   - CreateQuote => owner or contractor proposes terms
//   - ApproveQuote / ContractorApproveQuote / AdminApproveQuote => binds terms, payment gated
//   - DeclineQuote => soft decline, the quote is kept as history
//   - CounterOffer => admin proposes new terms on the same service
type IQuoteUseCase interface {
	IApprovalResumer
	CreateQuote(ctx context.Context, actor entities.User, serviceID string, terms QuoteTerms) (entities.Quote, error)
	ApproveQuote(ctx context.Context, actor entities.User, quoteID string) (ApprovalResult, error)
	ContractorApproveQuote(ctx context.Context, actor entities.User, quoteID string) (ApprovalResult, error)
	AdminApproveQuote(ctx context.Context, actor entities.User, quoteID string) (ApprovalResult, error)
	DeclineQuote(ctx context.Context, actor entities.User, quoteID string) (entities.Quote, error)
	CounterOffer(ctx context.Context, actor entities.User, quoteID string, terms QuoteTerms) (entities.Quote, error)
	GetQuote(ctx context.Context, actor entities.User, quoteID string) (entities.Quote, error)
	ListServiceQuotes(ctx context.Context, actor entities.User, serviceID string) ([]entities.Quote, error)
	ListUserQuotes(ctx context.Context, actor entities.User) ([]entities.Quote, error)
}

type QuoteUseCase struct {
	repo     interfaces.IQuoteRepository
	services interfaces.IServiceRepository
	users    interfaces.IUserRepository
	gate     IPaymentGate
	locker   interfaces.ILocker
	notify   notifier
	logger   *zap.Logger
	now      func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	repo interfaces.IQuoteRepository,
	services interfaces.IServiceRepository,
	users interfaces.IUserRepository,
	gate IPaymentGate,
	n interfaces.INotifier,
	locker interfaces.ILocker,
	logger *zap.Logger,
) *QuoteUseCase {
	logger = orNop(logger)
	return &QuoteUseCase{
		repo:     repo,
		services: services,
		users:    users,
		gate:     gate,
		locker:   locker,
		notify:   notifier{target: n, users: users, logger: logger},
		logger:   logger,
		now:      utcNow,
	}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, actor entities.User, serviceID string, terms QuoteTerms) (entities.Quote, error) {
	svc, err := loadService(ctx, u.services, serviceID)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := policy.Authorize(actor, policy.ActionCreateQuote, policy.Target{Service: &svc}); err != nil {
		return entities.Quote{}, err
	}
	if svc.Status.IsTerminal() {
		return entities.Quote{}, ErrServiceClosed
	}
	if err := terms.validate(); err != nil {
		return entities.Quote{}, err
	}

	q, err := u.repo.Create(ctx, u.newQuote(actor, svc, terms))
	if err != nil {
		return entities.Quote{}, err
	}
	u.logger.Info("quote created", zap.String("quote_id", q.ID), zap.String("service_id", svc.ID), zap.String("author_id", actor.ID))
	u.notify.send(ctx, "New quote received",
		fmt.Sprintf("A new quote of %s %s was submitted for \"%s\".", q.EstimatedCost.StringFixed(2), q.Currency, svc.Name),
		svc.OwnerID, svc.ContractorID)
	return q, nil
}

func (u *QuoteUseCase) CounterOffer(ctx context.Context, actor entities.User, quoteID string, terms QuoteTerms) (entities.Quote, error) {
	original, err := loadQuote(ctx, u.repo, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	svc, err := u.serviceOf(ctx, original)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := policy.Authorize(actor, policy.ActionCounterOffer, policy.Target{Service: &svc, Quote: &original}); err != nil {
		return entities.Quote{}, err
	}
	if svc.Status.IsTerminal() {
		return entities.Quote{}, ErrServiceClosed
	}
	if err := terms.validate(); err != nil {
		return entities.Quote{}, err
	}

	q := u.newQuote(actor, svc, terms)
	q.CounterOfferOf = original.ID
	q, err = u.repo.Create(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	u.logger.Info("counter offer created", zap.String("quote_id", q.ID), zap.String("counter_of", original.ID))
	u.notify.send(ctx, "Counter offer",
		fmt.Sprintf("An administrator proposed %s %s for \"%s\".", q.EstimatedCost.StringFixed(2), q.Currency, svc.Name),
		svc.OwnerID, original.AuthorID)
	return q, nil
}

func (u *QuoteUseCase) ApproveQuote(ctx context.Context, actor entities.User, quoteID string) (ApprovalResult, error) {
	return u.approve(ctx, actor, quoteID, policy.ActionApproveQuote)
}

func (u *QuoteUseCase) ContractorApproveQuote(ctx context.Context, actor entities.User, quoteID string) (ApprovalResult, error) {
	return u.approve(ctx, actor, quoteID, policy.ActionContractorApproveQuote)
}

func (u *QuoteUseCase) AdminApproveQuote(ctx context.Context, actor entities.User, quoteID string) (ApprovalResult, error) {
	return u.approve(ctx, actor, quoteID, policy.ActionAdminApproveQuote)
}

// approve binds a quote's terms to its service. Checks run in order and the
// first failure wins; the service is locked for the whole sequence and the
// final write is one conditional commit.
func (u *QuoteUseCase) approve(ctx context.Context, actor entities.User, quoteID string, action policy.Action) (ApprovalResult, error) {
	q, err := loadQuote(ctx, u.repo, quoteID)
	if err != nil {
		return ApprovalResult{}, err
	}

	unlock, err := lockService(ctx, u.locker, q.ServiceID)
	if err != nil {
		return ApprovalResult{}, err
	}
	defer unlock()

	// Re-read under the lock.
	if q, err = loadQuote(ctx, u.repo, q.ID); err != nil {
		return ApprovalResult{}, err
	}
	svc, err := u.serviceOf(ctx, q)
	if err != nil {
		return ApprovalResult{}, err
	}
	if err := policy.Authorize(actor, action, policy.Target{Service: &svc, Quote: &q}); err != nil {
		return ApprovalResult{}, err
	}

	switch q.ApprovalState {
	case entities.ApprovalApproved:
		return ApprovalResult{}, ErrQuoteAlreadyDecided
	case entities.ApprovalDeclined:
		return ApprovalResult{}, ErrQuoteNotPending
	}
	if svc.Status.IsTerminal() {
		return ApprovalResult{}, ErrServiceClosed
	}

	contractorID, err := u.bindingContractor(ctx, actor, q, svc)
	if err != nil {
		return ApprovalResult{}, err
	}

	var availability entities.Availability
	if !q.Availability.IsZero() {
		if err := q.Availability.ValidateComplete(); err != nil {
			return ApprovalResult{}, domain.Wrap(domain.KindInvalidInput, "INVALID_AVAILABILITY", err.Error(), err)
		}
		availability = q.Availability
	}

	if !svc.Paid {
		if u.gate == nil {
			return ApprovalResult{}, ErrGatewayNotConfigured
		}
		gate, err := u.gate.EnsurePaid(ctx, actor, ChargeRequest{
			Service:        svc,
			Amount:         q.EstimatedCost,
			Title:          svc.Name,
			ResumeApproval: true,
			ApproverID:     actor.ID,
		})
		if err != nil {
			return ApprovalResult{}, err
		}
		if !gate.Paid {
			u.logger.Info("quote approval deferred for payment", zap.String("quote_id", q.ID), zap.String("service_id", svc.ID))
			return ApprovalResult{Status: ApprovalPaymentRequired, Quote: q, Service: svc, Checkout: gate.Checkout}, nil
		}
		// Settled but our copy of the service predates it.
		if svc, err = loadService(ctx, u.services, svc.ID); err != nil {
			return ApprovalResult{}, err
		}
	}

	now := u.now()
	expected := svc.Version
	svc.Amount = q.EstimatedCost
	svc.Description = q.Description
	if q.Currency != "" {
		svc.Currency = q.Currency
	}
	if !availability.IsZero() {
		svc.Availability = availability
	}
	svc.Status = entities.ServiceStatusOngoing
	svc.ContractorID = contractorID
	svc.Version = expected + 1
	svc.UpdatedAt = now

	siblings, err := u.repo.ListByServiceID(ctx, svc.ID)
	if err != nil {
		return ApprovalResult{}, err
	}
	transitions := []entities.QuoteTransition{{
		QuoteID: q.ID, From: entities.ApprovalPending, To: entities.ApprovalApproved, By: actor.ID, At: now,
	}}
	var declined []string
	declinedAuthors := []string{}
	for _, s := range siblings {
		if s.ID == q.ID || s.ApprovalState != entities.ApprovalPending {
			continue
		}
		transitions = append(transitions, entities.QuoteTransition{
			QuoteID: s.ID, From: entities.ApprovalPending, To: entities.ApprovalDeclined, By: actor.ID, At: now,
		})
		declined = append(declined, s.ID)
		declinedAuthors = append(declinedAuthors, s.AuthorID)
	}

	if err := u.repo.CommitNegotiation(ctx, entities.NegotiationCommit{
		Service:         svc,
		ExpectedVersion: expected,
		Transitions:     transitions,
	}); err != nil {
		u.logger.Warn("quote approval commit failed", zap.String("quote_id", q.ID), zap.Error(err))
		return ApprovalResult{}, err
	}

	q.ApprovalState = entities.ApprovalApproved
	q.DecidedBy = actor.ID
	q.UpdatedAt = now
	u.logger.Info("quote approved",
		zap.String("quote_id", q.ID),
		zap.String("service_id", svc.ID),
		zap.String("contractor_id", svc.ContractorID),
		zap.Int("auto_declined", len(declined)))

	u.notify.send(ctx, "Quote approved",
		fmt.Sprintf("The quote for \"%s\" was approved. The service is now ongoing at %s %s.", svc.Name, svc.Amount.StringFixed(2), svc.Currency),
		svc.OwnerID, svc.ContractorID, q.AuthorID)
	if len(declinedAuthors) > 0 {
		u.notify.send(ctx, "Quote declined",
			fmt.Sprintf("Another quote was approved for \"%s\" and yours was declined.", svc.Name),
			declinedAuthors...)
	}

	return ApprovalResult{Status: ApprovalApplied, Quote: q, Service: svc, Declined: declined}, nil
}

// bindingContractor decides who the service is bound to after approval.
// An existing assignment is kept when the owner or an admin approves; a
// contractor can only approve on a service bound to them.
func (u *QuoteUseCase) bindingContractor(ctx context.Context, actor entities.User, q entities.Quote, svc entities.Service) (string, error) {
	candidate := ""
	switch {
	case actor.Role == entities.RoleContractor:
		candidate = actor.ID
	case q.AuthoredByContractor():
		candidate = q.AuthorID
	}
	if candidate == "" || candidate == svc.ContractorID {
		return svc.ContractorID, nil
	}
	if svc.HasContractor() {
		if actor.Role == entities.RoleContractor {
			return "", ErrContractorMismatch
		}
		return svc.ContractorID, nil
	}
	c, err := loadUser(ctx, u.users, candidate)
	if err != nil {
		return "", err
	}
	if !c.IsActiveContractor() {
		return "", ErrContractorNotActive
	}
	return candidate, nil
}

func (u *QuoteUseCase) DeclineQuote(ctx context.Context, actor entities.User, quoteID string) (entities.Quote, error) {
	q, err := loadQuote(ctx, u.repo, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	svc, err := u.serviceOf(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := policy.Authorize(actor, policy.ActionDeclineQuote, policy.Target{Service: &svc, Quote: &q}); err != nil {
		return entities.Quote{}, err
	}
	switch q.ApprovalState {
	case entities.ApprovalDeclined:
		return entities.Quote{}, ErrQuoteAlreadyDecided
	case entities.ApprovalApproved:
		return entities.Quote{}, ErrQuoteNotPending
	}
	if svc.HasContractor() {
		party := ""
		if q.AuthoredByContractor() {
			party = q.AuthorID
		} else if actor.Role == entities.RoleContractor {
			party = actor.ID
		}
		if party != "" && party != svc.ContractorID {
			return entities.Quote{}, ErrContractorMismatch
		}
	}

	updated, err := u.repo.TransitionState(ctx, entities.QuoteTransition{
		QuoteID: q.ID,
		From:    entities.ApprovalPending,
		To:      entities.ApprovalDeclined,
		By:      actor.ID,
		At:      u.now(),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	u.logger.Info("quote declined", zap.String("quote_id", q.ID), zap.String("by", actor.ID))
	u.notify.send(ctx, "Quote declined",
		fmt.Sprintf("Your quote for \"%s\" was declined.", svc.Name),
		q.AuthorID)
	return updated, nil
}

// ResumeApproval approves the newest quote of a service once it is paid.
// A quote priced above the settled amount is left pending.
func (u *QuoteUseCase) ResumeApproval(ctx context.Context, serviceID, approverID string, paid decimal.Decimal) (ApprovalResult, error) {
	quotes, err := u.repo.ListByServiceID(ctx, serviceID)
	if err != nil {
		return ApprovalResult{}, err
	}
	if len(quotes) == 0 {
		return ApprovalResult{Status: ApprovalSkipped}, nil
	}
	sortQuotesNewestFirst(quotes)
	latest := quotes[0]
	if latest.ApprovalState != entities.ApprovalPending {
		u.logger.Info("approval resume skipped", zap.String("service_id", serviceID), zap.String("quote_id", latest.ID), zap.String("state", string(latest.ApprovalState)))
		return ApprovalResult{Status: ApprovalSkipped, Quote: latest}, nil
	}
	if latest.EstimatedCost.GreaterThan(paid) {
		u.logger.Warn("approval resume skipped: quote exceeds settled amount",
			zap.String("service_id", serviceID), zap.String("quote_id", latest.ID),
			zap.String("estimated_cost", latest.EstimatedCost.String()), zap.String("paid", paid.String()))
		return ApprovalResult{Status: ApprovalSkipped, Quote: latest}, nil
	}

	approver, err := loadUser(ctx, u.users, approverID)
	if err != nil {
		return ApprovalResult{}, err
	}
	action := policy.ActionApproveQuote
	if approver.Role == entities.RoleAdmin {
		action = policy.ActionAdminApproveQuote
	}
	return u.approve(ctx, approver, latest.ID, action)
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, actor entities.User, quoteID string) (entities.Quote, error) {
	q, err := loadQuote(ctx, u.repo, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	svc, err := u.serviceOf(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := policy.Authorize(actor, policy.ActionViewServiceQuotes, policy.Target{Service: &svc}); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (u *QuoteUseCase) ListServiceQuotes(ctx context.Context, actor entities.User, serviceID string) ([]entities.Quote, error) {
	svc, err := loadService(ctx, u.services, serviceID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionViewServiceQuotes, policy.Target{Service: &svc}); err != nil {
		return nil, err
	}
	quotes, err := u.repo.ListByServiceID(ctx, svc.ID)
	if err != nil {
		return nil, err
	}
	sortQuotesNewestFirst(quotes)
	return quotes, nil
}

// ListUserQuotes returns quotes a contractor or admin wrote, or the quotes
// received on an owner's services.
func (u *QuoteUseCase) ListUserQuotes(ctx context.Context, actor entities.User) ([]entities.Quote, error) {
	if actor.ID == "" {
		return nil, domain.ErrNotAuthorized
	}
	if !actor.Role.PostsServices() {
		quotes, err := u.repo.ListByAuthorID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		sortQuotesNewestFirst(quotes)
		return quotes, nil
	}

	services, err := u.services.ListByOwnerID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := []entities.Quote{}
	for _, s := range services {
		quotes, err := u.repo.ListByServiceID(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, quotes...)
	}
	sortQuotesNewestFirst(out)
	return out, nil
}

func (u *QuoteUseCase) serviceOf(ctx context.Context, q entities.Quote) (entities.Service, error) {
	return loadService(ctx, u.services, q.ServiceID)
}

func (u *QuoteUseCase) newQuote(actor entities.User, svc entities.Service, terms QuoteTerms) entities.Quote {
	now := u.now()
	currency := svc.Currency
	if currency == "" {
		currency = entities.DefaultCurrency
	}
	return entities.Quote{
		ID:            uuid.NewString(),
		ServiceID:     svc.ID,
		AuthorID:      actor.ID,
		AuthorRole:    actor.Role,
		Description:   strings.TrimSpace(terms.Description),
		EstimatedCost: terms.EstimatedCost,
		Currency:      currency,
		Availability:  terms.Availability,
		ApprovalState: entities.ApprovalPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
