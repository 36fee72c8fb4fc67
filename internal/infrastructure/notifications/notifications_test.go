package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"topspot/internal/config"
	"topspot/internal/usecase/interfaces"
	mock_interfaces "topspot/internal/usecase/interfaces/mocks"

	"github.com/hibiken/asynq"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMailtrapSender_Notify(t *testing.T) {
	var got mailtrapSendBody
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewMailtrapSender(config.MailtrapConfig{Token: "tok", APIURL: srv.URL, FromEmail: "no-reply@topspot.local", FromName: "TopSpot"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = s.Notify(context.Background(), interfaces.Notification{To: []string{"a@example.com"}, Subject: "Hi", Body: "Hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "Bearer tok" {
		t.Fatalf("expected bearer token, got %q", auth)
	}
	if len(got.To) != 1 || got.To[0].Email != "a@example.com" || got.Subject != "Hi" || got.From.Name != "TopSpot" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestMailtrapSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s, _ := NewMailtrapSender(config.MailtrapConfig{Token: "bad", APIURL: srv.URL}, nil)
	if err := s.Notify(context.Background(), interfaces.Notification{To: []string{"a@example.com"}}); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestNewMailtrapSender_RequiresToken(t *testing.T) {
	if _, err := NewMailtrapSender(config.MailtrapConfig{}, nil); !errors.Is(err, ErrMailtrapNotConfigured) {
		t.Fatalf("expected ErrMailtrapNotConfigured, got %v", err)
	}
}

type recordingEnqueuer struct {
	tasks []*asynq.Task
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "1", Queue: QueueEmails}, nil
}

func TestQueueNotifier_Notify(t *testing.T) {
	rec := &recordingEnqueuer{}
	q := &QueueNotifier{client: rec, maxRetry: 1}

	if err := q.Notify(context.Background(), interfaces.Notification{}); err != nil || len(rec.tasks) != 0 {
		t.Fatalf("expected no task for empty recipients, got %d %v", len(rec.tasks), err)
	}
	if err := q.Notify(context.Background(), interfaces.Notification{To: []string{"a@example.com"}, Subject: "s"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.tasks) != 1 || rec.tasks[0].Type() != TaskSendEmail {
		t.Fatalf("unexpected tasks: %+v", rec.tasks)
	}
}

func TestWorker_HandleSendEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mock_interfaces.NewMockINotifier(ctrl)
	w := &Worker{sender: sender, logger: zap.NewNop()}

	n := interfaces.Notification{To: []string{"a@example.com"}, Subject: "s", Body: "b"}
	b, _ := json.Marshal(emailPayload{Notification: n})

	t.Run("delivers", func(t *testing.T) {
		sender.EXPECT().Notify(gomock.Any(), n).Return(nil)
		if err := w.handleSendEmail(context.Background(), asynq.NewTask(TaskSendEmail, b)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("send failure is retried", func(t *testing.T) {
		sender.EXPECT().Notify(gomock.Any(), n).Return(errors.New("smtp down"))
		if err := w.handleSendEmail(context.Background(), asynq.NewTask(TaskSendEmail, b)); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		err := w.handleSendEmail(context.Background(), asynq.NewTask(TaskSendEmail, []byte("{")))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Fatalf("expected SkipRetry, got %v", err)
		}
	})
}
