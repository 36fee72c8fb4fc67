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

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type ServiceInput struct {
	Name         string
	Description  string
	Categories   []string
	Amount       decimal.Decimal
	Currency     string
	Availability entities.Availability
}

// ServicePatch carries the fields to change; nil means unchanged.
type ServicePatch struct {
	Name         *string
	Description  *string
	Categories   *[]string
	Amount       *decimal.Decimal
	Availability *entities.Availability
}

type ContractorServiceFilter struct {
	Date   time.Time
	Status entities.ServiceStatus
	Page   int
	Limit  int
}

type ServicePage struct {
	Items []entities.Service `json:"items"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int                `json:"total"`
}

// IServiceUseCase drives a service through its lifecycle.
//
//	pending -> ongoing   only through quote approval
//	ongoing -> completed CompleteService
//	* -> cancelled       CancelService, DisapproveQuote
type IServiceUseCase interface {
	CreateService(ctx context.Context, actor entities.User, in ServiceInput) (entities.Service, error)
	EditService(ctx context.Context, actor entities.User, serviceID string, patch ServicePatch) (entities.Service, error)
	AttachMedia(ctx context.Context, actor entities.User, serviceID string, data []byte) (entities.Service, error)
	AssignContractor(ctx context.Context, actor entities.User, serviceID, contractorID string) (entities.Service, error)
	CompleteService(ctx context.Context, actor entities.User, serviceID string) (entities.Service, error)
	CancelService(ctx context.Context, actor entities.User, serviceID string) (entities.Service, error)
	DisapproveQuote(ctx context.Context, actor entities.User, quoteID string) (entities.Service, error)
	GetService(ctx context.Context, actor entities.User, serviceID string) (entities.Service, error)
	ListOwnerServices(ctx context.Context, actor entities.User, status entities.ServiceStatus) ([]entities.Service, error)
	ListContractorServices(ctx context.Context, actor entities.User, filter ContractorServiceFilter) (ServicePage, error)
	ListAllServices(ctx context.Context, actor entities.User, month string) ([]entities.Service, error)
	SearchOpenServices(ctx context.Context, actor entities.User, category, text string) ([]entities.Service, error)
}

type ServiceUseCase struct {
	repo   interfaces.IServiceRepository
	quotes interfaces.IQuoteRepository
	users  interfaces.IUserRepository
	media  interfaces.IMediaStore
	locker interfaces.ILocker
	notify notifier
	logger *zap.Logger
	now    func() time.Time
}

var _ IServiceUseCase = (*ServiceUseCase)(nil)

func NewServiceUseCase(
	repo interfaces.IServiceRepository,
	quotes interfaces.IQuoteRepository,
	users interfaces.IUserRepository,
	media interfaces.IMediaStore,
	n interfaces.INotifier,
	locker interfaces.ILocker,
	logger *zap.Logger,
) *ServiceUseCase {
	logger = orNop(logger)
	return &ServiceUseCase{
		repo:   repo,
		quotes: quotes,
		users:  users,
		media:  media,
		locker: locker,
		notify: notifier{target: n, users: users, logger: logger},
		logger: logger,
		now:    utcNow,
	}
}

func (in ServiceInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return domain.Invalid("description is required")
	}
	if err := validateCategories(in.Categories); err != nil {
		return err
	}
	if !in.Amount.IsPositive() {
		return domain.Invalid("amount must be greater than zero")
	}
	return validateServiceAvailability(in.Availability)
}

func validateCategories(categories []string) error {
	if len(categories) == 0 {
		return domain.Invalid("at least one category is required")
	}
	for _, c := range categories {
		if !entities.ValidCategory(c) {
			return domain.Invalid(fmt.Sprintf("unknown category %q", c))
		}
	}
	return nil
}

func validateServiceAvailability(a entities.Availability) error {
	if err := a.ValidateOpenEnded(); err != nil {
		return domain.Wrap(domain.KindInvalidInput, "INVALID_AVAILABILITY", err.Error(), err)
	}
	return nil
}

func (u *ServiceUseCase) CreateService(ctx context.Context, actor entities.User, in ServiceInput) (entities.Service, error) {
	if err := policy.Authorize(actor, policy.ActionCreateService, policy.Target{}); err != nil {
		return entities.Service{}, err
	}
	if err := in.validate(); err != nil {
		return entities.Service{}, err
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = entities.DefaultCurrency
	}

	now := u.now()
	s := entities.Service{
		ID:           uuid.NewString(),
		OwnerID:      actor.ID,
		Name:         strings.TrimSpace(in.Name),
		Categories:   in.Categories,
		Description:  strings.TrimSpace(in.Description),
		Amount:       in.Amount,
		Currency:     currency,
		Availability: in.Availability,
		Status:       entities.ServiceStatusPending,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := u.repo.Create(ctx, s)
	if err != nil {
		return entities.Service{}, err
	}
	u.logger.Info("service created", zap.String("service_id", created.ID), zap.String("owner_id", actor.ID))
	return created, nil
}

func (u *ServiceUseCase) EditService(ctx context.Context, actor entities.User, serviceID string, patch ServicePatch) (entities.Service, error) {
	return u.mutate(ctx, actor, serviceID, policy.ActionEditService, func(s *entities.Service) error {
		if s.Status != entities.ServiceStatusPending || s.HasContractor() {
			return ErrServiceNotEditable
		}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return domain.Invalid("name is required")
			}
			s.Name = name
		}
		if patch.Description != nil {
			desc := strings.TrimSpace(*patch.Description)
			if desc == "" {
				return domain.Invalid("description is required")
			}
			s.Description = desc
		}
		if patch.Categories != nil {
			if err := validateCategories(*patch.Categories); err != nil {
				return err
			}
			s.Categories = *patch.Categories
		}
		if patch.Amount != nil {
			if !patch.Amount.IsPositive() {
				return domain.Invalid("amount must be greater than zero")
			}
			s.Amount = *patch.Amount
		}
		if patch.Availability != nil {
			if err := validateServiceAvailability(*patch.Availability); err != nil {
				return err
			}
			s.Availability = *patch.Availability
		}
		return nil
	})
}

// AttachMedia uploads before locking; an upload whose service write then
// fails leaves an unreferenced object behind.
func (u *ServiceUseCase) AttachMedia(ctx context.Context, actor entities.User, serviceID string, data []byte) (entities.Service, error) {
	svc, err := loadService(ctx, u.repo, serviceID)
	if err != nil {
		return entities.Service{}, err
	}
	if err := policy.Authorize(actor, policy.ActionAttachMedia, policy.Target{Service: &svc}); err != nil {
		return entities.Service{}, err
	}
	if len(data) == 0 {
		return entities.Service{}, domain.Invalid("file is required")
	}
	if u.media == nil {
		return entities.Service{}, ErrMediaStoreNotConfigured
	}
	url, err := u.media.Upload(ctx, "services/"+svc.ID, data)
	if err != nil {
		u.logger.Error("media upload failed", zap.String("service_id", svc.ID), zap.Error(err))
		return entities.Service{}, err
	}
	return u.mutate(ctx, actor, svc.ID, policy.ActionAttachMedia, func(s *entities.Service) error {
		s.Media = append(s.Media, url)
		return nil
	})
}

func (u *ServiceUseCase) AssignContractor(ctx context.Context, actor entities.User, serviceID, contractorID string) (entities.Service, error) {
	contractorID, err := requireID(contractorID, "contractor id")
	if err != nil {
		return entities.Service{}, err
	}
	contractor, err := loadUser(ctx, u.users, contractorID)
	if err != nil {
		return entities.Service{}, err
	}
	if !contractor.IsActiveContractor() {
		return entities.Service{}, ErrContractorNotActive
	}

	unchanged := false
	svc, err := u.mutate(ctx, actor, serviceID, policy.ActionAssignContractor, func(s *entities.Service) error {
		if s.Status.IsTerminal() {
			return ErrServiceClosed
		}
		switch s.ContractorID {
		case contractorID:
			unchanged = true
			return errUnchanged
		case "":
			s.ContractorID = contractorID
			return nil
		}
		return ErrContractorMismatch
	})
	if err != nil {
		return entities.Service{}, err
	}
	if !unchanged {
		u.logger.Info("contractor assigned", zap.String("service_id", svc.ID), zap.String("contractor_id", contractorID))
		u.notify.sendTo(ctx, "New service assignment",
			fmt.Sprintf("You were assigned to \"%s\".", svc.Name),
			contractor.Email)
	}
	return svc, nil
}

func (u *ServiceUseCase) CompleteService(ctx context.Context, actor entities.User, serviceID string) (entities.Service, error) {
	svc, err := u.mutate(ctx, actor, serviceID, policy.ActionCompleteService, func(s *entities.Service) error {
		if !s.Status.CanTransitionTo(entities.ServiceStatusCompleted) {
			if s.Status.IsTerminal() {
				return ErrServiceClosed
			}
			return ErrServiceNotOngoing
		}
		s.Status = entities.ServiceStatusCompleted
		return nil
	})
	if err != nil {
		return entities.Service{}, err
	}
	u.logger.Info("service completed", zap.String("service_id", svc.ID))
	u.notify.send(ctx, "Service completed",
		fmt.Sprintf("\"%s\" was marked as completed.", svc.Name),
		svc.ContractorID)
	return svc, nil
}

// CancelService cancels a non-terminal service and declines its pending
// quotes in the same commit.
func (u *ServiceUseCase) CancelService(ctx context.Context, actor entities.User, serviceID string) (entities.Service, error) {
	svc, err := loadService(ctx, u.repo, serviceID)
	if err != nil {
		return entities.Service{}, err
	}
	if err := policy.Authorize(actor, policy.ActionCancelService, policy.Target{Service: &svc}); err != nil {
		return entities.Service{}, err
	}

	unlock, err := lockService(ctx, u.locker, svc.ID)
	if err != nil {
		return entities.Service{}, err
	}
	defer unlock()

	if svc, err = loadService(ctx, u.repo, svc.ID); err != nil {
		return entities.Service{}, err
	}
	if svc.Status.IsTerminal() {
		return entities.Service{}, ErrServiceClosed
	}

	svc.Status = entities.ServiceStatusCancelled
	svc, err = u.commit(ctx, actor, svc)
	if err != nil {
		return entities.Service{}, err
	}
	u.logger.Info("service cancelled", zap.String("service_id", svc.ID))
	u.notify.send(ctx, "Service cancelled",
		fmt.Sprintf("\"%s\" was cancelled by its owner.", svc.Name),
		svc.ContractorID)
	return svc, nil
}

// DisapproveQuote lets the owner reject the contractor bound to a service:
// the contractor is cleared and the service is cancelled.
func (u *ServiceUseCase) DisapproveQuote(ctx context.Context, actor entities.User, quoteID string) (entities.Service, error) {
	q, err := loadQuote(ctx, u.quotes, quoteID)
	if err != nil {
		return entities.Service{}, err
	}

	unlock, err := lockService(ctx, u.locker, q.ServiceID)
	if err != nil {
		return entities.Service{}, err
	}
	defer unlock()

	svc, err := loadService(ctx, u.repo, q.ServiceID)
	if err != nil {
		return entities.Service{}, err
	}
	if err := policy.Authorize(actor, policy.ActionDisapproveQuote, policy.Target{Service: &svc, Quote: &q}); err != nil {
		return entities.Service{}, err
	}
	if svc.Status.IsTerminal() {
		return entities.Service{}, ErrServiceClosed
	}
	if !svc.HasContractor() {
		return entities.Service{}, ErrNoContractorAssigned
	}
	if q.AuthoredByContractor() && q.AuthorID != svc.ContractorID {
		return entities.Service{}, ErrContractorMismatch
	}

	dismissed := svc.ContractorID
	svc.ContractorID = ""
	svc.Status = entities.ServiceStatusCancelled
	svc, err = u.commit(ctx, actor, svc)
	if err != nil {
		return entities.Service{}, err
	}
	u.logger.Info("quote disapproved", zap.String("service_id", svc.ID), zap.String("quote_id", q.ID), zap.String("contractor_id", dismissed))
	u.notify.send(ctx, "Service disapproved",
		fmt.Sprintf("The owner disapproved your work on \"%s\" and the service was cancelled.", svc.Name),
		dismissed)
	return svc, nil
}

// commit writes svc and declines every pending quote of it atomically.
func (u *ServiceUseCase) commit(ctx context.Context, actor entities.User, svc entities.Service) (entities.Service, error) {
	now := u.now()
	quotes, err := u.quotes.ListByServiceID(ctx, svc.ID)
	if err != nil {
		return entities.Service{}, err
	}
	transitions := []entities.QuoteTransition{}
	for _, q := range quotes {
		if q.ApprovalState != entities.ApprovalPending {
			continue
		}
		transitions = append(transitions, entities.QuoteTransition{
			QuoteID: q.ID, From: entities.ApprovalPending, To: entities.ApprovalDeclined, By: actor.ID, At: now,
		})
	}

	expected := svc.Version
	svc.Version = expected + 1
	svc.UpdatedAt = now
	if err := u.quotes.CommitNegotiation(ctx, entities.NegotiationCommit{
		Service:         svc,
		ExpectedVersion: expected,
		Transitions:     transitions,
	}); err != nil {
		return entities.Service{}, err
	}
	return svc, nil
}

var errUnchanged = domain.New(domain.KindInternal, "UNCHANGED", "no change")

// mutate runs change on a freshly loaded copy under the service lock and
// stores it with a version check.
func (u *ServiceUseCase) mutate(ctx context.Context, actor entities.User, serviceID string, action policy.Action, change func(*entities.Service) error) (entities.Service, error) {
	svc, err := loadService(ctx, u.repo, serviceID)
	if err != nil {
		return entities.Service{}, err
	}
	if err := policy.Authorize(actor, action, policy.Target{Service: &svc}); err != nil {
		return entities.Service{}, err
	}

	unlock, err := lockService(ctx, u.locker, svc.ID)
	if err != nil {
		return entities.Service{}, err
	}
	defer unlock()

	if svc, err = loadService(ctx, u.repo, svc.ID); err != nil {
		return entities.Service{}, err
	}
	if err := change(&svc); err != nil {
		if err == errUnchanged {
			return svc, nil
		}
		return entities.Service{}, err
	}
	expected := svc.Version
	svc.Version = expected + 1
	svc.UpdatedAt = u.now()
	return u.repo.Update(ctx, svc, expected)
}

func (u *ServiceUseCase) GetService(ctx context.Context, actor entities.User, serviceID string) (entities.Service, error) {
	svc, err := loadService(ctx, u.repo, serviceID)
	if err != nil {
		return entities.Service{}, err
	}
	if err := policy.Authorize(actor, policy.ActionViewService, policy.Target{Service: &svc}); err != nil {
		return entities.Service{}, err
	}
	return svc, nil
}

func (u *ServiceUseCase) ListOwnerServices(ctx context.Context, actor entities.User, status entities.ServiceStatus) ([]entities.Service, error) {
	if actor.ID == "" || !actor.Role.PostsServices() {
		return nil, domain.ErrNotAuthorized
	}
	if status != "" && !status.Valid() {
		return nil, domain.Invalid("unknown status filter")
	}
	items, err := u.repo.ListByOwnerID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Service, 0, len(items))
	for _, s := range items {
		if status == "" || s.Status == status {
			out = append(out, s)
		}
	}
	sortServicesNewestFirst(out)
	return out, nil
}

func (u *ServiceUseCase) ListContractorServices(ctx context.Context, actor entities.User, f ContractorServiceFilter) (ServicePage, error) {
	if err := policy.Authorize(actor, policy.ActionListAssignedServices, policy.Target{}); err != nil {
		return ServicePage{}, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return ServicePage{}, domain.Invalid("unknown status filter")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}

	items, err := u.repo.ListByContractorID(ctx, actor.ID)
	if err != nil {
		return ServicePage{}, err
	}
	matched := make([]entities.Service, 0, len(items))
	for _, s := range items {
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if !f.Date.IsZero() && !s.Availability.Covers(f.Date) {
			continue
		}
		matched = append(matched, s)
	}
	sortServicesNewestFirst(matched)

	page := ServicePage{Items: []entities.Service{}, Page: f.Page, Limit: f.Limit, Total: len(matched)}
	// Compare page counts before multiplying so a huge page number cannot overflow.
	if f.Page-1 < (len(matched)+f.Limit-1)/f.Limit {
		start := (f.Page - 1) * f.Limit
		end := start + f.Limit
		if end > len(matched) {
			end = len(matched)
		}
		page.Items = matched[start:end]
	}
	return page, nil
}

// ListAllServices returns every service, optionally those created in month (YYYY-MM).
func (u *ServiceUseCase) ListAllServices(ctx context.Context, actor entities.User, month string) ([]entities.Service, error) {
	if err := policy.Authorize(actor, policy.ActionListAllServices, policy.Target{}); err != nil {
		return nil, err
	}
	var from, to time.Time
	if month = strings.TrimSpace(month); month != "" {
		m, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, domain.Invalid("month must use YYYY-MM")
		}
		from, to = m, m.AddDate(0, 1, 0)
	}
	items, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if from.IsZero() {
		sortServicesNewestFirst(items)
		return items, nil
	}
	out := make([]entities.Service, 0, len(items))
	for _, s := range items {
		created := s.CreatedAt.UTC()
		if !created.Before(from) && created.Before(to) {
			out = append(out, s)
		}
	}
	sortServicesNewestFirst(out)
	return out, nil
}

// SearchOpenServices lists pending, unassigned services a contractor could quote on.
func (u *ServiceUseCase) SearchOpenServices(ctx context.Context, actor entities.User, category, text string) ([]entities.Service, error) {
	if err := policy.Authorize(actor, policy.ActionSearchServices, policy.Target{}); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(strings.ToLower(category))
	if category != "" && !entities.ValidCategory(category) {
		return nil, domain.Invalid(fmt.Sprintf("unknown category %q", category))
	}
	text = strings.ToLower(strings.TrimSpace(text))

	items, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []entities.Service{}
	for _, s := range items {
		if s.Status != entities.ServiceStatusPending || s.HasContractor() {
			continue
		}
		if category != "" && !s.HasCategory(category) {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(s.Name+" "+s.Description), text) {
			continue
		}
		out = append(out, s)
	}
	sortServicesNewestFirst(out)
	return out, nil
}
