package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"topspot/internal/domain"
	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"

	"go.uber.org/zap"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func requireID(raw, field string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", domain.Invalid(field + " is required")
	}
	return id, nil
}

func loadService(ctx context.Context, repo interfaces.IServiceRepository, id string) (entities.Service, error) {
	id, err := requireID(id, "service id")
	if err != nil {
		return entities.Service{}, err
	}
	s, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return s, nil
}

func loadQuote(ctx context.Context, repo interfaces.IQuoteRepository, id string) (entities.Quote, error) {
	id, err := requireID(id, "quote id")
	if err != nil {
		return entities.Quote{}, err
	}
	q, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func loadUser(ctx context.Context, repo interfaces.IUserRepository, id string) (entities.User, error) {
	id, err := requireID(id, "user id")
	if err != nil {
		return entities.User{}, err
	}
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if u.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return u, nil
}

// lockService takes the per-service lock; a nil locker means the store's
// version checks are the only serialization.
func lockService(ctx context.Context, locker interfaces.ILocker, serviceID string) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	unlock, err := locker.Lock(ctx, "service:"+serviceID)
	if err != nil {
		return nil, domain.Wrap(domain.KindConflict, "SERVICE_BUSY", "service is being modified; retry", err)
	}
	return unlock, nil
}

// notifier fans notifications out to user ids. Delivery is best effort.
type notifier struct {
	target interfaces.INotifier
	users  interfaces.IUserRepository
	logger *zap.Logger
}

func (n notifier) send(ctx context.Context, subject, body string, userIDs ...string) {
	if n.target == nil || n.users == nil {
		return
	}
	to := make([]string, 0, len(userIDs))
	seen := map[string]bool{}
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		u, err := n.users.GetByID(ctx, id)
		if err != nil || u.Email == "" {
			n.logger.Warn("notification recipient unavailable", zap.String("user_id", id), zap.Error(err))
			continue
		}
		to = append(to, u.Email)
	}
	n.sendTo(ctx, subject, body, to...)
}

func (n notifier) sendTo(ctx context.Context, subject, body string, emails ...string) {
	if n.target == nil || len(emails) == 0 {
		return
	}
	msg := interfaces.Notification{To: emails, Subject: subject, Body: body}
	if err := n.target.Notify(ctx, msg); err != nil {
		n.logger.Warn("notification failed", zap.Strings("to", emails), zap.String("subject", subject), zap.Error(err))
	}
}

func sortQuotesNewestFirst(items []entities.Quote) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func sortPaymentsNewestFirst(items []entities.Payment) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}

func sortServicesNewestFirst(items []entities.Service) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}
