package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/veritrace/veritrace/internal/adapter"
	"github.com/veritrace/veritrace/internal/codegen"
	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/export"
	"github.com/veritrace/veritrace/internal/logger"
	"github.com/veritrace/veritrace/internal/store"
	"github.com/veritrace/veritrace/internal/store/schema"
)

// IssuableOrder is the validated issuance input resolved from an order
type IssuableOrder struct {
	OrderID string
	// Factory becomes both the issuing factory and the initial owner
	Factory string
	// Count is the total number of codes to mint (order count times quota)
	Count int
}

// CommitIssuanceInput carries the issuance side effects to persist atomically
type CommitIssuanceInput struct {
	OrderID string
	Codes   []schema.TracingCode
	File    schema.StoredFile
	PrintAt time.Time
}

// IssuanceExecutor defines the interface for executing issuance activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor.go -package=mocks -mock_names=IssuanceExecutor=MockIssuanceExecutor
type IssuanceExecutor interface {
	// LoadIssuableOrder validates the order is issuable and computes the batch size
	LoadIssuableOrder(ctx context.Context, orderID string) (*IssuableOrder, error)

	// GenerateCodeRows mints the batch rows in memory, codes included
	GenerateCodeRows(ctx context.Context, order IssuableOrder) ([]schema.TracingCode, error)

	// WriteManifest renders the printable CSV manifest for the batch
	WriteManifest(ctx context.Context, orderID string, codes []schema.TracingCode) (*schema.StoredFile, error)

	// CommitIssuance persists rows, manifest entity and printed marker in one transaction
	CommitIssuance(ctx context.Context, input CommitIssuanceInput) error
}

// executor is the concrete implementation of IssuanceExecutor
type executor struct {
	store       store.Store
	generator   codegen.Generator
	manifest    *export.ManifestWriter
	clock       adapter.Clock
	manifestDir string
	parallelism int
}

// NewExecutor creates a new issuance executor. parallelism bounds the worker
// pool used for code derivation; zero falls back to a serial pool.
func NewExecutor(
	store store.Store,
	generator codegen.Generator,
	manifest *export.ManifestWriter,
	clock adapter.Clock,
	manifestDir string,
	parallelism int,
) IssuanceExecutor {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &executor{
		store:       store,
		generator:   generator,
		manifest:    manifest,
		clock:       clock,
		manifestDir: manifestDir,
		parallelism: parallelism,
	}
}

// LoadIssuableOrder validates the order is issuable and computes the batch size
func (e *executor) LoadIssuableOrder(ctx context.Context, orderID string) (*IssuableOrder, error) {
	order, err := e.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"order not found",
			"OrderNotFound",
			domain.ErrOrderNotFound.WithDetail("order %s", orderID),
		)
	}

	if order.Status != schema.OrderStatusPaymentConfirmed {
		// CREATED means unpaid, PRINTED means already minted. Neither state
		// can become issuable by retrying this workflow run.
		return nil, temporal.NewNonRetryableApplicationError(
			"order not issuable",
			"OrderNotPaid",
			domain.ErrOrderNotPaid.WithDetail("order %s is %s", orderID, order.Status),
		)
	}

	commodity, err := e.store.GetCommodityByID(ctx, order.CommodityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load commodity: %w", err)
	}
	if commodity == nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"commodity not found",
			"CommodityNotFound",
			domain.ErrValidation.WithDetail("commodity %s not found", order.CommodityID),
		)
	}

	count := order.Count * commodity.Quota
	if count <= 0 {
		return nil, temporal.NewNonRetryableApplicationError(
			"empty batch",
			"EmptyBatch",
			domain.ErrValidation.WithDetail("order %s resolves to %d codes", orderID, count),
		)
	}

	return &IssuableOrder{
		OrderID: orderID,
		Factory: order.Buyer,
		Count:   count,
	}, nil
}

// GenerateCodeRows mints the batch rows in memory. Pair derivation runs on a
// bounded worker pool; each task writes its own index so no locking is needed.
func (e *executor) GenerateCodeRows(ctx context.Context, order IssuableOrder) ([]schema.TracingCode, error) {
	logger.InfoCtx(ctx, "Generating tracing codes",
		zap.String("order_id", order.OrderID),
		zap.Int("count", order.Count))

	rows := make([]schema.TracingCode, order.Count)

	pool := pond.NewPool(e.parallelism)
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for i := 0; i < order.Count; i++ {
		i := i
		group.SubmitErr(func() error {
			pair, err := e.generator.NewPair()
			if err != nil {
				return fmt.Errorf("failed to generate pair %d: %w", i, err)
			}

			rows[i] = schema.TracingCode{
				ID:        ulid.Make().String(),
				InnerCode: pair.Inner,
				OuterCode: pair.Outer,
				Factory:   order.Factory,
				Owner:     order.Factory,
				OrderID:   order.OrderID,
				No:        i + 1,
				State:     domain.StateUnbind,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

// WriteManifest renders the printable CSV manifest for the batch
func (e *executor) WriteManifest(ctx context.Context, orderID string, codes []schema.TracingCode) (*schema.StoredFile, error) {
	file, err := e.manifest.Write(e.manifestDir, orderID, codes, e.clock.Now())
	if err != nil {
		return nil, domain.ErrManifestWrite.WithDetail("order %s: %v", orderID, err)
	}

	logger.InfoCtx(ctx, "Manifest written",
		zap.String("order_id", orderID),
		zap.String("path", file.Path),
		zap.Int64("size", file.Size))

	return file, nil
}

// CommitIssuance persists rows, manifest entity and printed marker in one
// transaction. A failed commit is terminal for the run: the order may have
// been printed concurrently and double-minting must not be retried blindly.
func (e *executor) CommitIssuance(ctx context.Context, input CommitIssuanceInput) error {
	err := e.store.CommitIssuance(ctx, store.IssuanceCommit{
		Codes:   input.Codes,
		File:    input.File,
		OrderID: input.OrderID,
		PrintAt: input.PrintAt,
	})
	if err != nil {
		return temporal.NewNonRetryableApplicationError(
			"issuance commit failed",
			"IssuanceCommitFailed",
			domain.ErrOrderUpdate.WithDetail("order %s: %v", input.OrderID, err),
		)
	}

	logger.InfoCtx(ctx, "Issuance committed",
		zap.String("order_id", input.OrderID),
		zap.Int("codes", len(input.Codes)))

	return nil
}
