package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/veritrace/veritrace/internal/logger"
	"github.com/veritrace/veritrace/internal/store/schema"
)

// IssueTracingCodes mints one batch of tracing codes for a paid order:
// validate the order, derive the code pairs, write the print manifest, then
// commit everything in one transaction. Validation and generation are safe to
// retry; the commit runs exactly once per workflow execution.
func (w *workerCore) IssueTracingCodes(ctx workflow.Context, orderID string) (*IssuanceResult, error) {
	logger.InfoWf(ctx, "Issuing tracing codes", zap.String("order_id", orderID))

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	// Step 1: Validate the order and compute the batch size
	var order *IssuableOrder
	err := workflow.ExecuteActivity(ctx, w.executor.LoadIssuableOrder, orderID).Get(ctx, &order)
	if err != nil {
		logger.ErrorWf(ctx, err, zap.String("order_id", orderID))
		return nil, err
	}

	// Step 2: Generate the code rows. Large batches take a while, so this
	// step gets a longer timeout than the bookkeeping activities.
	generateCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	})
	var codes []schema.TracingCode
	err = workflow.ExecuteActivity(generateCtx, w.executor.GenerateCodeRows, *order).Get(ctx, &codes)
	if err != nil {
		logger.ErrorWf(ctx, err, zap.String("order_id", orderID))
		return nil, err
	}

	// Step 3: Write the print manifest
	var file *schema.StoredFile
	err = workflow.ExecuteActivity(generateCtx, w.executor.WriteManifest, orderID, codes).Get(ctx, &file)
	if err != nil {
		logger.ErrorWf(ctx, err, zap.String("order_id", orderID))
		return nil, err
	}

	// Step 4: Commit. Single attempt: the conditional order update inside the
	// transaction is the last line of defense against double-minting, and a
	// blind retry after an ambiguous failure could trip it spuriously.
	commitCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})
	input := CommitIssuanceInput{
		OrderID: orderID,
		Codes:   codes,
		File:    *file,
		PrintAt: workflow.Now(ctx),
	}
	err = workflow.ExecuteActivity(commitCtx, w.executor.CommitIssuance, input).Get(ctx, nil)
	if err != nil {
		logger.ErrorWf(ctx, err, zap.String("order_id", orderID))
		return nil, err
	}

	logger.InfoWf(ctx, "Tracing codes issued",
		zap.String("order_id", orderID),
		zap.Int("issued", len(codes)))

	return &IssuanceResult{
		OrderID:    orderID,
		Issued:     len(codes),
		ManifestID: file.ID,
	}, nil
}
