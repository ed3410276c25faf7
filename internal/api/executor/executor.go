// Package executor holds the API-side business logic: resolving tracing
// codes, running lifecycle transitions through the state machine, and
// triggering the issuance workflow.
package executor

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/veritrace/veritrace/internal/adapter"
	"github.com/veritrace/veritrace/internal/api/rest/dto"
	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/logger"
	"github.com/veritrace/veritrace/internal/messaging"
	"github.com/veritrace/veritrace/internal/providers/temporal"
	"github.com/veritrace/veritrace/internal/store"
	"github.com/veritrace/veritrace/internal/store/schema"
	"github.com/veritrace/veritrace/internal/tracing"
)

// IssuanceWorkflowName is the registered name of the issuance workflow
// hosted by the worker binary.
const IssuanceWorkflowName = "IssueTracingCodes"

// ListParams are the resolved listing filters after authorization
type ListParams struct {
	OrderID string
	Factory string
	Owner   string
	States  []domain.State
	Limit   int
	Offset  int
	Sort    string
}

// LegRecord is the operation payload of a send or express transition
type LegRecord struct {
	ReceiverType    domain.ReceiverType
	Receiver        string
	ReceiverName    string
	ReceiverPhone   string
	ReceiverAddress string
	ExpressNo       string
	ExpressName     string
}

// UpdateRequest is one requested lifecycle transition against a code
type UpdateRequest struct {
	Operation        domain.Operation
	Key              string
	Record           *LegRecord
	Products         []string
	TracingProducts  []string
	IsFactoryTracing bool
}

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetTracing retrieves a single tracing code by inner or outer code
	GetTracing(ctx context.Context, key string) (*dto.TracingCode, error)

	// ListTracings retrieves tracing codes scoped to the actor
	ListTracings(ctx context.Context, actor domain.Actor, params ListParams) (*dto.ListTracingsResponse, error)

	// UpdateTracing applies one lifecycle transition and returns the updated code
	UpdateTracing(ctx context.Context, actor domain.Actor, req UpdateRequest) (*dto.TracingCode, error)

	// TriggerIssuance starts the issuance workflow for a paid order
	TriggerIssuance(ctx context.Context, actor domain.Actor, orderID string) error

	// DeleteTracing hard-deletes a tracing code
	DeleteTracing(ctx context.Context, actor domain.Actor, id string) error
}

type executor struct {
	store        store.Store
	machine      *tracing.Machine
	publisher    messaging.Publisher
	orchestrator temporal.TemporalOrchestrator
	taskQueue    string
	clock        adapter.Clock
}

// NewExecutor creates the API executor
func NewExecutor(
	st store.Store,
	machine *tracing.Machine,
	publisher messaging.Publisher,
	orchestrator temporal.TemporalOrchestrator,
	taskQueue string,
	clock adapter.Clock,
) Executor {
	return &executor{
		store:        st,
		machine:      machine,
		publisher:    publisher,
		orchestrator: orchestrator,
		taskQueue:    taskQueue,
		clock:        clock,
	}
}

// GetTracing retrieves a single tracing code by inner or outer code
func (e *executor) GetTracing(ctx context.Context, key string) (*dto.TracingCode, error) {
	code, err := e.store.GetTracingCodeByCode(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracing code: %w", err)
	}
	if code == nil {
		return nil, domain.ErrCodeNotFound
	}

	result := dto.FromTracingCode(code)
	return &result, nil
}

// ListTracings retrieves tracing codes scoped to the actor. Non-platform
// actors only ever see their own custody, whatever owner they asked for.
func (e *executor) ListTracings(ctx context.Context, actor domain.Actor, params ListParams) (*dto.ListTracingsResponse, error) {
	if actor.Role != domain.RolePlatform {
		if params.Owner == "" {
			return nil, domain.ErrValidation.WithDetail("owner is required")
		}
		if params.Owner != actor.ID {
			return nil, domain.ErrNotPermitted.WithDetail("listing is scoped to the actor's own custody")
		}
	}

	filter := store.TracingQueryFilter{
		OrderID: params.OrderID,
		Factory: params.Factory,
		Owner:   params.Owner,
		States:  params.States,
		Limit:   params.Limit,
		Offset:  params.Offset,
		Sort:    params.Sort,
	}

	codes, total, err := e.store.GetTracingCodesByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracing codes: %w", err)
	}

	return &dto.ListTracingsResponse{
		Data: dto.FromTracingCodes(codes),
		Meta: dto.ListMeta{
			Limit:  params.Limit,
			Offset: params.Offset,
			Sort:   params.Sort,
			Count:  total,
		},
	}, nil
}

// UpdateTracing applies one lifecycle transition: resolve the code, check
// collaborators, run the state machine against a copy, then persist under
// the revision guard and publish the hand-off event.
func (e *executor) UpdateTracing(ctx context.Context, actor domain.Actor, req UpdateRequest) (*dto.TracingCode, error) {
	if req.Key == "" {
		return nil, domain.ErrValidation.WithDetail("key is required")
	}
	if !domain.IsValidOperation(req.Operation) {
		return nil, domain.ErrValidation.WithDetail("unknown operation %q", req.Operation)
	}

	code, err := e.store.GetTracingCodeByCode(ctx, req.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracing code: %w", err)
	}
	if code == nil {
		return nil, domain.ErrCodeNotFound
	}

	machineReq, err := e.buildMachineRequest(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	children, err := e.loadChildren(ctx, code, machineReq)
	if err != nil {
		return nil, err
	}

	// Apply against a copy so a denial leaves nothing half-mutated.
	updated := *code
	outcome, err := e.machine.Apply(&updated, machineReq, children, e.clock.Now())
	if err != nil {
		return nil, err
	}

	expected := updated.Revision
	updated.Revision++
	commit := store.TransitionCommit{
		Code:             &updated,
		ExpectedRevision: expected,
		CascadeChildIDs:  outcome.CascadeChildIDs,
		NewChildOwner:    actor.ID,
	}
	if err := e.store.CommitTransition(ctx, commit); err != nil {
		return nil, err
	}

	e.publishHandoff(ctx, actor, req.Operation, &updated)

	result := dto.FromTracingCode(&updated)
	return &result, nil
}

// TriggerIssuance starts the issuance workflow for a paid order
func (e *executor) TriggerIssuance(ctx context.Context, actor domain.Actor, orderID string) error {
	if actor.Role != domain.RolePlatform {
		return domain.ErrNotPermitted.WithDetail("issuance is reserved to platform operators")
	}
	if orderID == "" {
		return domain.ErrValidation.WithDetail("order is required")
	}

	// One workflow per order, ever. Re-triggering a printed order must not
	// mint a second batch even if the first workflow already closed.
	options := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("issue-codes-%s", orderID),
		TaskQueue:             e.taskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}

	run, err := e.orchestrator.ExecuteWorkflow(ctx, options, IssuanceWorkflowName, orderID)
	if err != nil {
		return fmt.Errorf("failed to start issuance workflow: %w", err)
	}

	logger.Info("Issuance workflow started",
		zap.String("order_id", orderID),
		zap.String("workflow_id", run.GetID()),
		zap.String("run_id", run.GetRunID()),
	)
	return nil
}

// DeleteTracing hard-deletes a tracing code
func (e *executor) DeleteTracing(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role != domain.RolePlatform {
		return domain.ErrNotPermitted.WithDetail("delete is reserved to platform operators")
	}

	code, err := e.store.GetTracingCodeByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get tracing code: %w", err)
	}
	if code == nil {
		return domain.ErrCodeNotFound
	}

	if err := e.store.DeleteTracingCode(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tracing code: %w", err)
	}
	return nil
}

// buildMachineRequest validates the operation payload shape and resolves
// collaborators that must exist before the transition may run.
func (e *executor) buildMachineRequest(ctx context.Context, actor domain.Actor, req UpdateRequest) (tracing.Request, error) {
	out := tracing.Request{
		Operation: req.Operation,
		Actor:     actor,
	}

	switch req.Operation {
	case domain.OperationBind:
		binding, err := e.buildBinding(ctx, req)
		if err != nil {
			return tracing.Request{}, err
		}
		out.Binding = binding

	case domain.OperationSend:
		if req.Record == nil {
			return tracing.Request{}, domain.ErrValidation.WithDetail("send requires a record")
		}
		if req.Record.ReceiverType == domain.ReceiverTypeBusiness {
			user, err := e.store.GetUserByID(ctx, req.Record.Receiver)
			if err != nil {
				return tracing.Request{}, fmt.Errorf("failed to look up receiver: %w", err)
			}
			if user == nil {
				return tracing.Request{}, domain.ErrReceiverNotFound.WithDetail("receiver %s", req.Record.Receiver)
			}
		}
		out.Leg = &tracing.LegInput{
			ReceiverType:    req.Record.ReceiverType,
			Receiver:        req.Record.Receiver,
			ReceiverName:    req.Record.ReceiverName,
			ReceiverPhone:   req.Record.ReceiverPhone,
			ReceiverAddress: req.Record.ReceiverAddress,
		}

	case domain.OperationExpress:
		if req.Record == nil {
			return tracing.Request{}, domain.ErrValidation.WithDetail("express requires a record")
		}
		out.Express = &tracing.ExpressInput{
			ExpressNo:   req.Record.ExpressNo,
			ExpressName: req.Record.ExpressName,
		}

	case domain.OperationReceive:
		// No payload; the active leg carries everything.
	}

	return out, nil
}

// buildBinding picks the binding variant once, from the request shape, and
// verifies the referenced collaborators exist.
func (e *executor) buildBinding(ctx context.Context, req UpdateRequest) (*tracing.Binding, error) {
	hasProducts := len(req.Products) > 0
	hasChildren := len(req.TracingProducts) > 0

	switch {
	case hasProducts && hasChildren:
		return nil, domain.ErrValidation.WithDetail("bind accepts products or tracing_products, not both")

	case hasChildren || req.IsFactoryTracing:
		if !hasChildren {
			return nil, domain.ErrValidation.WithDetail("bundle bind requires tracing_products")
		}
		return &tracing.Binding{Kind: tracing.BindingBundle, IDs: req.TracingProducts}, nil

	case hasProducts:
		count, err := e.store.CountBarcodeProductsByIDs(ctx, req.Products)
		if err != nil {
			return nil, fmt.Errorf("failed to count products: %w", err)
		}
		if count != int64(len(req.Products)) {
			return nil, domain.ErrValidation.WithDetail("%d of %d products found", count, len(req.Products))
		}
		return &tracing.Binding{Kind: tracing.BindingProducts, IDs: req.Products}, nil

	default:
		return nil, domain.ErrValidation.WithDetail("bind requires products or tracing_products")
	}
}

// loadChildren preloads the bundle children the machine needs: the bind
// targets for a bundle bind, or the existing children when sending a bundle
// (the exhaustion rule inspects their states).
func (e *executor) loadChildren(ctx context.Context, code *schema.TracingCode, req tracing.Request) ([]schema.TracingCode, error) {
	var ids []string

	switch {
	case req.Operation == domain.OperationBind && req.Binding != nil && req.Binding.Kind == tracing.BindingBundle:
		ids = req.Binding.IDs
	case req.Operation == domain.OperationSend && code.IsFactoryTracing:
		ids = code.TracingProducts
	default:
		return nil, nil
	}

	if len(ids) == 0 {
		return nil, nil
	}

	children, err := e.store.GetTracingCodesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load bundle children: %w", err)
	}
	return children, nil
}

// publishHandoff emits the advisory hand-off event. The store already
// committed; a publish failure is logged and swallowed.
func (e *executor) publishHandoff(ctx context.Context, actor domain.Actor, op domain.Operation, code *schema.TracingCode) {
	if e.publisher == nil {
		return
	}

	event := &domain.HandoffEvent{
		EventID:    ulid.Make().String(),
		EventType:  domain.EventTypeForOperation(op),
		CodeID:     code.ID,
		OuterCode:  code.OuterCode,
		OrderID:    code.OrderID,
		ActorID:    actor.ID,
		State:      code.State,
		OccurredAt: e.clock.Now(),
	}

	if err := e.publisher.PublishEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish hand-off event",
			zap.Error(err),
			zap.String("code_id", code.ID),
			zap.String("event_type", string(event.EventType)),
		)
	}
}
