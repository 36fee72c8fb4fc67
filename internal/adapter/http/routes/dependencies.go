package routes

import (
	"context"
	"fmt"

	"topspot/internal/adapter/http/handlers"
	"topspot/internal/adapter/persistence/memory"
	"topspot/internal/adapter/persistence/repository"
	"topspot/internal/config"
	"topspot/internal/infrastructure/auth"
	"topspot/internal/infrastructure/database"
	"topspot/internal/infrastructure/locking"
	"topspot/internal/infrastructure/notifications"
	"topspot/internal/infrastructure/payments"
	"topspot/internal/infrastructure/storage"
	"topspot/internal/usecase"
	"topspot/internal/usecase/interfaces"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type repositories struct {
	users    interfaces.IUserRepository
	services interfaces.IServiceRepository
	quotes   interfaces.IQuoteRepository
	payments interfaces.IPaymentRepository
}

// dependencies is the wired application. Close releases its connections.
type dependencies struct {
	users      usecase.IUserUseCase
	services   usecase.IServiceUseCase
	quotes     usecase.IQuoteUseCase
	payments   usecase.IPaymentUseCase
	settlement usecase.ISettlementUseCase

	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	adminHandler   *handlers.AdminHandler
	serviceHandler *handlers.ServiceHandler
	quoteHandler   *handlers.QuoteHandler
	paymentHandler *handlers.PaymentHandler

	repos   repositories
	worker  *notifications.Worker
	closers []func()
}

func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func buildDependencies(ctx context.Context, cfg config.Config, logger *zap.Logger) (*dependencies, error) {
	d := &dependencies{}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	d.repos = repos

	creds, err := auth.NewCredentialService(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}

	// Without Redis, locks are per process and emails are sent inline.
	var locker interfaces.ILocker = locking.NewLocalLocker(cfg.LockWait)
	sender := emailSender(cfg, logger)
	notifier := sender

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		d.closers = append(d.closers, func() { _ = rdb.Close() })
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, using in-process locks and inline notifications", zap.Error(err))
		} else {
			locker = locking.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait, logger)

			opt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
			client := asynq.NewClient(opt)
			d.closers = append(d.closers, func() { _ = client.Close() })
			notifier = notifications.NewQueueNotifier(client)
			d.worker = notifications.NewWorker(opt, sender, logger)
		}
	}

	var media interfaces.IMediaStore
	if cfg.S3.Bucket != "" {
		awsCfg, err := database.NewAWSConfig(ctx, cfg.S3.Region, cfg.DynamoDB.AccessKeyID, cfg.DynamoDB.SecretAccessKey)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		store, err := storage.NewS3MediaStore(awsCfg, cfg.S3, logger)
		if err != nil {
			return nil, fmt.Errorf("media store: %w", err)
		}
		media = store
	} else {
		logger.Warn("S3_BUCKET not set, media uploads are disabled")
	}

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments, logger)
	if err != nil {
		logger.Warn("payment gateway not configured", zap.Error(err))
	} else {
		gateway = mpGateway
	}

	paymentUseCase := usecase.NewPaymentUseCase(repos.payments, repos.services, repos.users, gateway, notifier, locker,
		usecase.PaymentSettings{Currency: cfg.Payments.Currency, Timeout: cfg.Payments.Timeout}, logger)
	quoteUseCase := usecase.NewQuoteUseCase(repos.quotes, repos.services, repos.users, paymentUseCase, notifier, locker, logger)

	d.payments = paymentUseCase
	d.quotes = quoteUseCase
	d.services = usecase.NewServiceUseCase(repos.services, repos.quotes, repos.users, media, notifier, locker, logger)
	d.settlement = usecase.NewSettlementUseCase(repos.payments, repos.services, repos.users, gateway, quoteUseCase, notifier, cfg.Payments.Timeout, logger)
	userUseCase := usecase.NewUserUseCase(repos.users, creds, media, notifier, usecase.UserSettings{
		VerifyTTL:   cfg.VerifyTTL,
		ResetTTL:    cfg.ResetTTL,
		MinPassword: cfg.MinPassword,
		FrontendURL: cfg.FrontendURL,
		APIBaseURL:  cfg.APIBaseURL,
	}, logger)
	if cfg.AdminEmail != "" {
		if _, err := userUseCase.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("bootstrap admin: %w", err)
		}
	}
	d.users = userUseCase

	d.authHandler = handlers.NewAuthHandler(d.users)
	d.userHandler = handlers.NewUserHandler(d.users, d.quotes)
	d.adminHandler = handlers.NewAdminHandler(d.users)
	d.serviceHandler = handlers.NewServiceHandler(d.services)
	d.quoteHandler = handlers.NewQuoteHandler(d.quotes, d.services)
	d.paymentHandler = handlers.NewPaymentHandler(d.payments, d.settlement)
	return d, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *zap.Logger) (repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			users:    store.Users(),
			services: store.Services(),
			quotes:   store.Quotes(),
			payments: store.Payments(),
		}, nil
	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return repositories{}, fmt.Errorf("dynamodb: %w", err)
		}
		t := cfg.DynamoDB
		return repositories{
			users:    repository.NewUserDynamoRepository(ddb, t.UsersTable),
			services: repository.NewServiceDynamoRepository(ddb, t.ServicesTable),
			quotes:   repository.NewQuoteDynamoRepository(ddb, t.QuotesTable, t.ServicesTable),
			payments: repository.NewPaymentDynamoRepository(ddb, t.PaymentsTable, t.ServicesTable),
		}, nil
	}
	return repositories{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// emailSender is the final delivery step, used directly or by the queue worker.
func emailSender(cfg config.Config, logger *zap.Logger) interfaces.INotifier {
	sender, err := notifications.NewMailtrapSender(cfg.Mailtrap, logger)
	if err != nil {
		logger.Warn("mailtrap not configured, emails are logged only", zap.Error(err))
		return notifications.NewLogNotifier(logger)
	}
	return sender
}
