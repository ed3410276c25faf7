package store

import (
	"context"
	"time"

	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/store/schema"
)

// TracingQueryFilter holds conjunctive filters and pagination for listings
type TracingQueryFilter struct {
	OrderID string
	Factory string
	Owner   string
	// States filters by lifecycle state; when empty the store applies
	// domain.DefaultListStates (in-flight codes only).
	States []domain.State
	Limit  int
	Offset int
	// Sort is a whitelisted column name, prefixed with '-' for descending.
	// Empty means "-created_at".
	Sort string
}

// TransitionCommit describes one state-machine transition to persist.
// The code carries its already-incremented revision; ExpectedRevision is the
// revision the transition was computed against.
type TransitionCommit struct {
	Code             *schema.TracingCode
	ExpectedRevision int64
	// CascadeChildIDs lists bundle children whose owner must be reassigned
	// in the same transaction; all must update or the commit fails.
	CascadeChildIDs []string
	NewChildOwner   string
}

// IssuanceCommit persists one issued batch atomically: the code rows, the
// manifest file entity, and the order's printed marker.
type IssuanceCommit struct {
	Codes   []schema.TracingCode
	File    schema.StoredFile
	OrderID string
	PrintAt time.Time
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetTracingCodeByID retrieves a tracing code by its internal id
	GetTracingCodeByID(ctx context.Context, id string) (*schema.TracingCode, error)
	// GetTracingCodeByCode retrieves a tracing code matching either the inner
	// or the outer code; nil when absent
	GetTracingCodeByCode(ctx context.Context, code string) (*schema.TracingCode, error)
	// GetTracingCodesByIDs retrieves tracing codes by their internal ids
	GetTracingCodesByIDs(ctx context.Context, ids []string) ([]schema.TracingCode, error)
	// GetTracingCodesByFilter retrieves tracing codes plus the unpaginated total
	GetTracingCodesByFilter(ctx context.Context, filter TracingQueryFilter) ([]schema.TracingCode, int64, error)
	// CommitTransition persists one transition with a compare-on-write
	// revision guard. Returns domain.ErrConflict when a concurrent update won
	// the race, domain.ErrCodeNotFound when the row vanished, and
	// domain.ErrChildInvalid when a bundle cascade updated fewer children
	// than requested.
	CommitTransition(ctx context.Context, commit TransitionCommit) error
	// BulkInsertTracingCodes inserts issued rows in batches (issuance only)
	BulkInsertTracingCodes(ctx context.Context, codes []schema.TracingCode) error
	// DeleteTracingCode hard-deletes a tracing code (administrative only)
	DeleteTracingCode(ctx context.Context, id string) error

	// CommitIssuance runs the issuance side effects in one transaction
	CommitIssuance(ctx context.Context, commit IssuanceCommit) error

	// Collaborator lookups
	GetOrderByID(ctx context.Context, id string) (*schema.Order, error)
	GetCommodityByID(ctx context.Context, id string) (*schema.Commodity, error)
	GetUserByID(ctx context.Context, id string) (*schema.User, error)
	// CountBarcodeProductsByIDs returns how many of the given ids exist
	CountBarcodeProductsByIDs(ctx context.Context, ids []string) (int64, error)
}
