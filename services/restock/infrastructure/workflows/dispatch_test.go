package workflows

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/restock/services/restock/application/email"
	"github.com/ghuser/restock/services/restock/domain"
	"github.com/ghuser/restock/services/restock/domain/models"
	"github.com/ghuser/restock/services/restock/infrastructure/persistence/memory"
)

type flakyMailer struct {
	mu       sync.Mutex
	failures int
	sent     []string
}

func (m *flakyMailer) Send(_ context.Context, msg email.Rendered) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg.To)
	return nil
}

func newEnv(t *testing.T, a *Activities) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var s testsuite.WorkflowTestSuite
	env := s.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(DispatchSessionEmails, workflow.RegisterOptions{Name: DispatchWorkflowName})
	env.RegisterActivity(a)
	return env
}

func input() DispatchInput {
	return DispatchInput{
		UserID:    "u-1",
		SessionID: "s-1",
		Emails: []email.Rendered{
			{SupplierID: "sup-1", To: "a@acme.com", Subject: "Restock order"},
			{SupplierID: "sup-2", To: "orders@dairy.co", Subject: "Restock order"},
		},
	}
}

func TestDispatchSessionEmails_SendsThenCompletes(t *testing.T) {
	mailer := &flakyMailer{failures: 1}
	var completed []string
	env := newEnv(t, &Activities{
		Mailer: mailer,
		Complete: func(_ context.Context, userID, sessionID string) error {
			completed = append(completed, userID+"/"+sessionID)
			return nil
		},
	})

	env.ExecuteWorkflow(DispatchWorkflowName, input())

	if !env.IsWorkflowCompleted() {
		t.Fatal("expected workflow to complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("unexpected workflow error: %v", err)
	}
	var out DispatchOutput
	if err := env.GetWorkflowResult(&out); err != nil {
		t.Fatalf("GetWorkflowResult: %v", err)
	}
	if out.Sent != 2 {
		t.Fatalf("expected 2 sent, got %d", out.Sent)
	}
	if len(mailer.sent) != 2 || mailer.sent[0] != "a@acme.com" {
		t.Fatalf("expected retried send to succeed in order, got %v", mailer.sent)
	}
	if len(completed) != 1 || completed[0] != "u-1/s-1" {
		t.Fatalf("expected one completion, got %v", completed)
	}
}

func TestDispatchSessionEmails_SendFailureSkipsCompletion(t *testing.T) {
	called := false
	env := newEnv(t, &Activities{
		Mailer: &flakyMailer{failures: 100},
		Complete: func(context.Context, string, string) error {
			called = true
			return nil
		},
	})

	env.ExecuteWorkflow(DispatchWorkflowName, input())

	if !env.IsWorkflowCompleted() {
		t.Fatal("expected workflow to finish")
	}
	if env.GetWorkflowError() == nil {
		t.Fatal("expected workflow error")
	}
	if called {
		t.Fatal("session must not be completed when a send fails")
	}
}

func TestCompleteSessionActivity(t *testing.T) {
	ctx := context.Background()
	sessions := memory.NewSessionRepository()
	sent := models.RestockSession{ID: "s-sent", UserID: "u-1", Name: "done", Status: models.StatusSent}
	draft := models.RestockSession{ID: "s-draft", UserID: "u-1", Name: "open", Status: models.StatusDraft}
	for _, s := range []models.RestockSession{sent, draft} {
		if err := sessions.Save(ctx, s); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	invalid := func(context.Context, string, string) error {
		return domain.NewInvalidStateError(models.StatusDraft, models.StatusSent)
	}

	tests := []struct {
		name         string
		sessionID    string
		complete     email.CompleteFunc
		wantErr      bool
		nonRetryable bool
	}{
		{"success", "s-draft", func(context.Context, string, string) error { return nil }, false, false},
		{"already sent is idempotent", "s-sent", invalid, false, false},
		{"draft is not retried", "s-draft", invalid, true, true},
		{"transient failure is retried", "s-draft", func(context.Context, string, string) error { return errors.New("db down") }, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s testsuite.WorkflowTestSuite
			env := s.NewTestActivityEnvironment()
			a := &Activities{Complete: tt.complete, Sessions: sessions}
			env.RegisterActivity(a)

			_, err := env.ExecuteActivity(a.CompleteSession, CompleteInput{UserID: "u-1", SessionID: tt.sessionID})
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if !tt.nonRetryable {
				return
			}
			var appErr *temporal.ApplicationError
			if !errors.As(err, &appErr) || !appErr.NonRetryable() {
				t.Fatalf("expected non-retryable application error, got %T: %v", err, err)
			}
		})
	}
}

type fakeRun struct {
	client.WorkflowRun
	id string
}

func (r fakeRun) GetID() string { return r.id }

type fakeStarter struct {
	opts client.StartWorkflowOptions
	name interface{}
	args []interface{}
	err  error
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, opts client.StartWorkflowOptions, wf interface{}, args ...interface{}) (client.WorkflowRun, error) {
	f.opts, f.name, f.args = opts, wf, args
	if f.err != nil {
		return nil, f.err
	}
	return fakeRun{id: opts.ID}, nil
}

func TestTemporalDispatcher(t *testing.T) {
	t.Run("starts workflow per session", func(t *testing.T) {
		starter := &fakeStarter{}
		d := &TemporalDispatcher{starter: starter, taskQueue: "restock-emails"}

		res, err := d.Dispatch(context.Background(), "u-1", "s-1", input().Emails)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Async || res.Reference != "restock-send-s-1" || res.Sent != 0 {
			t.Fatalf("unexpected result: %+v", res)
		}
		if starter.opts.TaskQueue != "restock-emails" || starter.name != DispatchWorkflowName {
			t.Fatalf("unexpected start: %+v %v", starter.opts, starter.name)
		}
		in, ok := starter.args[0].(DispatchInput)
		if !ok || in.SessionID != "s-1" || len(in.Emails) != 2 {
			t.Fatalf("unexpected workflow input: %#v", starter.args)
		}
	})

	t.Run("start failure", func(t *testing.T) {
		sentinel := errors.New("frontend unavailable")
		d := &TemporalDispatcher{starter: &fakeStarter{err: sentinel}}
		if _, err := d.Dispatch(context.Background(), "u-1", "s-1", nil); !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel, got %v", err)
		}
	})
}
