// Package workflows runs supplier email dispatch as a Temporal workflow so a
// batch survives process restarts and mailer outages.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/restock/pkg/telemetry"
	"github.com/ghuser/restock/services/restock/application/email"
	"github.com/ghuser/restock/services/restock/domain"
	"github.com/ghuser/restock/services/restock/domain/models"
	"github.com/ghuser/restock/services/restock/domain/repositories"
)

const (
	DispatchWorkflowName = "DispatchSessionEmails"

	errTypeInvalidState = "InvalidSessionState"
)

// DispatchInput is the workflow argument. Emails are rendered before the
// workflow starts so a replay never re-renders them.
type DispatchInput struct {
	UserID    string           `json:"user_id"`
	SessionID string           `json:"session_id"`
	Emails    []email.Rendered `json:"emails"`
}

type DispatchOutput struct {
	Sent int `json:"sent"`
}

type CompleteInput struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// WorkflowID is deterministic per session, so a second send request attaches
// to the run already in flight.
func WorkflowID(sessionID string) string {
	return "restock-send-" + sessionID
}

// DispatchSessionEmails sends each email in its own activity, then marks the
// session sent. A failed send stops the batch before completion.
func DispatchSessionEmails(ctx workflow.Context, in DispatchInput) (DispatchOutput, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2,
			MaximumInterval:        time.Minute,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{errTypeInvalidState},
		},
	})
	log := workflow.GetLogger(ctx)

	var a *Activities
	var out DispatchOutput
	for _, msg := range in.Emails {
		if err := workflow.ExecuteActivity(ctx, a.SendSupplierEmail, msg).Get(ctx, nil); err != nil {
			log.Error("supplier email failed", "session_id", in.SessionID, "supplier_id", msg.SupplierID, "error", err)
			return out, err
		}
		out.Sent++
	}

	if err := workflow.ExecuteActivity(ctx, a.CompleteSession, CompleteInput{
		UserID:    in.UserID,
		SessionID: in.SessionID,
	}).Get(ctx, nil); err != nil {
		return out, err
	}
	log.Info("supplier emails dispatched", "session_id", in.SessionID, "sent", out.Sent)
	return out, nil
}

// Activities holds the side-effecting steps of the dispatch workflow.
type Activities struct {
	Mailer   email.Mailer
	Complete email.CompleteFunc
	Sessions repositories.SessionRepository
	Metrics  *telemetry.RestockMetrics
}

func (a *Activities) SendSupplierEmail(ctx context.Context, msg email.Rendered) error {
	err := a.Mailer.Send(ctx, msg)
	a.Metrics.EmailSent(ctx, err == nil)
	if err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}

// CompleteSession marks the session sent. A session that is already sent is
// treated as done so a retried activity stays idempotent; any other state
// conflict fails the workflow without retrying.
func (a *Activities) CompleteSession(ctx context.Context, in CompleteInput) error {
	err := a.Complete(ctx, in.UserID, in.SessionID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrInvalidState) {
		return err
	}
	if a.Sessions != nil {
		if s, loadErr := a.Sessions.FindByID(ctx, in.UserID, in.SessionID); loadErr == nil && s.Status == models.StatusSent {
			activity.GetLogger(ctx).Info("session already sent", "session_id", in.SessionID)
			return nil
		}
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), errTypeInvalidState, err)
}

// Register adds the workflow and its activities to w.
func Register(w worker.Registry, a *Activities) {
	w.RegisterWorkflowWithOptions(DispatchSessionEmails, workflow.RegisterOptions{Name: DispatchWorkflowName})
	w.RegisterActivity(a)
}
