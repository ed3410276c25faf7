package workflows

import (
	"go.temporal.io/sdk/workflow"
)

// Worker defines the interface for issuance workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker.go -package=mocks -mock_names=Worker=MockWorker
type Worker interface {
	// IssueTracingCodes mints one batch of tracing codes for a paid order
	IssueTracingCodes(ctx workflow.Context, orderID string) (*IssuanceResult, error)
}

// IssuanceResult reports what one workflow run produced
type IssuanceResult struct {
	OrderID    string
	Issued     int
	ManifestID string
}

// workerCore is the concrete implementation of Worker
type workerCore struct {
	executor IssuanceExecutor
}

// NewWorker creates a new issuance worker instance
func NewWorker(executor IssuanceExecutor) Worker {
	return &workerCore{executor: executor}
}
