package workflows

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	pkgworkflows "github.com/ghuser/restock/pkg/workflows"
	"github.com/ghuser/restock/services/restock/application/email"
)

var _ email.Dispatcher = (*TemporalDispatcher)(nil)

type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalDispatcher starts DispatchSessionEmails and returns without waiting
// for delivery.
type TemporalDispatcher struct {
	starter   workflowStarter
	taskQueue string
}

func NewTemporalDispatcher(tc *pkgworkflows.TemporalClient) *TemporalDispatcher {
	return &TemporalDispatcher{starter: tc.Client, taskQueue: tc.TaskQueue}
}

func (d *TemporalDispatcher) Dispatch(ctx context.Context, userID, sessionID string, msgs []email.Rendered) (email.DispatchResult, error) {
	run, err := d.starter.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        WorkflowID(sessionID),
		TaskQueue: d.taskQueue,
	}, DispatchWorkflowName, DispatchInput{
		UserID:    userID,
		SessionID: sessionID,
		Emails:    msgs,
	})
	if err != nil {
		return email.DispatchResult{}, fmt.Errorf("start %s: %w", DispatchWorkflowName, err)
	}
	return email.DispatchResult{Async: true, Reference: run.GetID()}, nil
}
