package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"topspot/internal/usecase/interfaces"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TaskSendEmail = "email:send"
	QueueEmails   = "emails"
)

type emailPayload struct {
	Notification interfaces.Notification `json:"notification"`
	QueuedAt     time.Time               `json:"queued_at"`
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands notifications to the asynq "emails" queue. Delivery and
// retries happen in the Worker.
type QueueNotifier struct {
	client   enqueuer
	maxRetry int
}

var _ interfaces.INotifier = (*QueueNotifier)(nil)

func NewQueueNotifier(client *asynq.Client) *QueueNotifier {
	return &QueueNotifier{client: client, maxRetry: 5}
}

func (q *QueueNotifier) Notify(ctx context.Context, n interfaces.Notification) error {
	if len(n.To) == 0 {
		return nil
	}
	b, err := json.Marshal(emailPayload{Notification: n, QueuedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TaskSendEmail, b)
	_, err = q.client.EnqueueContext(ctx, task, asynq.Queue(QueueEmails), asynq.MaxRetry(q.maxRetry))
	return err
}

// Worker consumes the emails queue and delivers through sender.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender interfaces.INotifier
	logger *zap.Logger
}

func NewWorker(opt asynq.RedisConnOpt, sender interfaces.INotifier, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Worker{
		server: asynq.NewServer(opt, asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				QueueEmails: 10,
			},
		}),
		mux:    asynq.NewServeMux(),
		sender: sender,
		logger: logger.Named("notify.worker"),
	}
	w.mux.HandleFunc(TaskSendEmail, w.handleSendEmail)
	return w
}

// Start launches the processors and returns; Shutdown stops them.
func (w *Worker) Start() error {
	w.logger.Info("asynq worker starting")
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleSendEmail(ctx context.Context, t *asynq.Task) error {
	var p emailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will never succeed.
		return fmt.Errorf("decode email payload: %v: %w", err, asynq.SkipRetry)
	}
	if err := w.sender.Notify(ctx, p.Notification); err != nil {
		w.logger.Error("email send failed", zap.Strings("to", p.Notification.To), zap.Error(err))
		return err
	}
	w.logger.Info("email sent", zap.Strings("to", p.Notification.To), zap.String("subject", p.Notification.Subject))
	return nil
}
