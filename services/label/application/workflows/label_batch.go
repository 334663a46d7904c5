// Package workflows holds the Temporal workflows of the label context.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	appsvcs "github.com/ghuser/bomlabel/services/label/application/services"
	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
)

const (
	// LabelBatchWorkflowName is the registered name of LabelBatchWorkflow.
	LabelBatchWorkflowName = "LabelBatchWorkflow"
	// ComputeLabelActivityName is the registered name of Activities.ComputeLabel.
	ComputeLabelActivityName = "ComputeLabel"

	// MaxBatchSize bounds the item codes accepted by one batch.
	MaxBatchSize = 500

	// nonRetryableType marks domain failures that a retry cannot fix.
	nonRetryableType = "LabelDomainError"
)

// LabelBatchInput is the workflow input.
type LabelBatchInput struct {
	ItemCodes []string `json:"item_codes"`
}

// ComputedLabel is one successful activity result.
type ComputedLabel struct {
	ItemCode string `json:"item_code"`
	LabelID  string `json:"label_id"`
}

// FailedLabel records an item whose label could not be computed.
type FailedLabel struct {
	ItemCode string `json:"item_code"`
	Error    string `json:"error"`
}

// LabelBatchResult lists computed and failed codes in input order.
type LabelBatchResult struct {
	Computed []ComputedLabel `json:"computed"`
	Failed   []FailedLabel   `json:"failed"`
}

// LabelBatchWorkflow computes the label of every item code. Activities run
// concurrently; one failing item never fails the batch.
func LabelBatchWorkflow(ctx workflow.Context, in LabelBatchInput) (*LabelBatchResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2,
			MaximumInterval:        30 * time.Second,
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{nonRetryableType},
		},
	})
	log := workflow.GetLogger(ctx)

	futures := make([]workflow.Future, len(in.ItemCodes))
	for i, code := range in.ItemCodes {
		futures[i] = workflow.ExecuteActivity(ctx, ComputeLabelActivityName, code)
	}

	result := &LabelBatchResult{Computed: []ComputedLabel{}, Failed: []FailedLabel{}}
	for i, f := range futures {
		var computed ComputedLabel
		if err := f.Get(ctx, &computed); err != nil {
			log.Warn("label computation failed", "item_code", in.ItemCodes[i], "error", err)
			result.Failed = append(result.Failed, FailedLabel{ItemCode: in.ItemCodes[i], Error: rootMessage(err)})
			continue
		}
		result.Computed = append(result.Computed, computed)
	}
	return result, nil
}

// rootMessage unwraps Temporal's activity error chain to the application message.
func rootMessage(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}

// Activities are the label activities registered on the worker.
type Activities struct {
	Labels *appsvcs.LabelService
}

// ComputeLabel computes and persists the label of one item. Domain errors are
// non-retryable. Upstream failures are retried by the workflow's retry policy.
func (a *Activities) ComputeLabel(ctx context.Context, itemCode string) (*ComputedLabel, error) {
	label, err := a.Labels.Compute(ctx, itemCode)
	if err != nil {
		if isDomainError(err) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), nonRetryableType, err)
		}
		return nil, err
	}
	return &ComputedLabel{ItemCode: label.ItemCode.String(), LabelID: label.ID.String()}, nil
}

func isDomainError(err error) bool {
	for _, target := range []error{
		labeldomain.ErrInvalidItemCode,
		labeldomain.ErrInvalidRootKind,
		labeldomain.ErrZeroTotalQuantity,
		labeldomain.ErrItemNotFound,
		labeldomain.ErrInvalidItemData,
		labeldomain.ErrCyclicTree,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Register adds the workflow and activities to w.
func Register(w worker.Registry, activities *Activities) {
	w.RegisterWorkflowWithOptions(LabelBatchWorkflow, workflow.RegisterOptions{Name: LabelBatchWorkflowName})
	w.RegisterActivityWithOptions(activities.ComputeLabel, activity.RegisterOptions{Name: ComputeLabelActivityName})
}

// Starter starts label batches on a Temporal client.
type Starter struct {
	client    client.Client
	taskQueue string
}

// NewStarter returns a Starter submitting to taskQueue.
func NewStarter(c client.Client, taskQueue string) *Starter {
	return &Starter{client: c, taskQueue: taskQueue}
}

// StartBatch starts one LabelBatchWorkflow and returns its workflow and run ids.
func (s *Starter) StartBatch(ctx context.Context, itemCodes []string) (workflowID, runID string, err error) {
	if len(itemCodes) == 0 || len(itemCodes) > MaxBatchSize {
		return "", "", fmt.Errorf("label batch: %d item codes, want 1..%d", len(itemCodes), MaxBatchSize)
	}
	run, err := s.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "label-batch-" + uuid.NewString(),
		TaskQueue: s.taskQueue,
	}, LabelBatchWorkflowName, LabelBatchInput{ItemCodes: itemCodes})
	if err != nil {
		return "", "", fmt.Errorf("start label batch: %w", err)
	}
	return run.GetID(), run.GetRunID(), nil
}
