package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the schema for all core tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.TracingCode{},
		&schema.Order{},
		&schema.Commodity{},
		&schema.User{},
		&schema.BarcodeProduct{},
		&schema.StoredFile{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// insertBatchSize keeps bulk inserts well under Postgres's 65535-parameter
// extended-protocol limit given the tracing_codes column count.
const insertBatchSize = 2000

// sortColumns whitelists sortable columns for listings
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"no":         "no",
	"state":      "state",
}

// GetTracingCodeByID retrieves a tracing code by its internal id
func (s *pgStore) GetTracingCodeByID(ctx context.Context, id string) (*schema.TracingCode, error) {
	var code schema.TracingCode
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tracing code (id=%s): %w", id, err)
	}
	return &code, nil
}

// GetTracingCodeByCode retrieves a tracing code matching either the inner or
// the outer code. A single lookup covers both roles a caller may present.
func (s *pgStore) GetTracingCodeByCode(ctx context.Context, code string) (*schema.TracingCode, error) {
	var row schema.TracingCode
	err := s.db.WithContext(ctx).
		Where("inner_code = ? OR outer_code = ?", code, code).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tracing code (code=%s): %w", code, err)
	}
	return &row, nil
}

// GetTracingCodesByIDs retrieves tracing codes by their internal ids
func (s *pgStore) GetTracingCodesByIDs(ctx context.Context, ids []string) ([]schema.TracingCode, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []schema.TracingCode
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tracing codes (ids=%v): %w", ids, err)
	}
	return rows, nil
}

// GetTracingCodesByFilter retrieves tracing codes with conjunctive filters
// plus the unpaginated total count
func (s *pgStore) GetTracingCodesByFilter(ctx context.Context, filter TracingQueryFilter) ([]schema.TracingCode, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.TracingCode{})

	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Factory != "" {
		query = query.Where("factory = ?", filter.Factory)
	}
	if filter.Owner != "" {
		query = query.Where("owner = ?", filter.Owner)
	}

	states := filter.States
	if len(states) == 0 {
		states = domain.DefaultListStates
	}
	query = query.Where("state IN ?", states)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tracing codes (filter=%+v): %w", filter, err)
	}

	order, err := sortClause(filter.Sort)
	if err != nil {
		return nil, 0, err
	}

	var rows []schema.TracingCode
	err = query.Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tracing codes (filter=%+v): %w", filter, err)
	}

	return rows, total, nil
}

func sortClause(sort string) (string, error) {
	if sort == "" {
		sort = "-created_at"
	}

	desc := false
	if sort[0] == '-' {
		desc = true
		sort = sort[1:]
	}

	column, ok := sortColumns[sort]
	if !ok {
		return "", domain.ErrValidation.WithDetail("unsupported sort column %q", sort)
	}
	if desc {
		return column + " DESC", nil
	}
	return column + " ASC", nil
}

// CommitTransition persists one transition guarded by the revision check.
// Bundle receive cascades run in the same transaction: either every child's
// owner is reassigned or the whole transition rolls back.
func (s *pgStore) CommitTransition(ctx context.Context, commit TransitionCommit) error {
	code := commit.Code

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&schema.TracingCode{}).
			Where("id = ? AND revision = ?", code.ID, commit.ExpectedRevision).
			Select("*").
			Omit("id", "inner_code", "outer_code", "factory", "order_id", "no", "created_at").
			Updates(code)
		if res.Error != nil {
			return fmt.Errorf("failed to update tracing code (id=%s): %w", code.ID, res.Error)
		}

		if res.RowsAffected != 1 {
			// Distinguish a lost optimistic race from a vanished row so
			// callers can decide whether a retry makes sense.
			var count int64
			if err := tx.Model(&schema.TracingCode{}).Where("id = ?", code.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check tracing code existence (id=%s): %w", code.ID, err)
			}
			if count == 0 {
				return domain.ErrCodeNotFound
			}
			return domain.ErrConflict
		}

		if len(commit.CascadeChildIDs) > 0 {
			res := tx.Model(&schema.TracingCode{}).
				Where("id IN ?", commit.CascadeChildIDs).
				Updates(map[string]interface{}{
					"owner":    commit.NewChildOwner,
					"revision": gorm.Expr("revision + 1"),
				})
			if res.Error != nil {
				return fmt.Errorf("failed to cascade child owners (ids=%v): %w", commit.CascadeChildIDs, res.Error)
			}
			if res.RowsAffected != int64(len(commit.CascadeChildIDs)) {
				return domain.ErrChildInvalid.WithDetail(
					"cascade updated %d of %d children", res.RowsAffected, len(commit.CascadeChildIDs))
			}
		}

		return nil
	})
}

// BulkInsertTracingCodes inserts issued rows in batches
func (s *pgStore) BulkInsertTracingCodes(ctx context.Context, codes []schema.TracingCode) error {
	if len(codes) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).CreateInBatches(codes, insertBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to bulk insert %d tracing codes: %w", len(codes), err)
	}
	return nil
}

// DeleteTracingCode hard-deletes a tracing code
func (s *pgStore) DeleteTracingCode(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.TracingCode{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete tracing code (id=%s): %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCodeNotFound
	}
	return nil
}

// CommitIssuance persists the issued batch, the manifest file entity and the
// order's printed marker in one transaction. The order update is conditional
// on the payment-confirmed status so a concurrent issuance cannot double-mint.
func (s *pgStore) CommitIssuance(ctx context.Context, commit IssuanceCommit) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(commit.Codes, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert issued codes (order=%s): %w", commit.OrderID, err)
		}

		if err := tx.Create(&commit.File).Error; err != nil {
			return fmt.Errorf("failed to create manifest file entity (order=%s): %w", commit.OrderID, err)
		}

		res := tx.Model(&schema.Order{}).
			Where("id = ? AND status = ?", commit.OrderID, schema.OrderStatusPaymentConfirmed).
			Updates(map[string]interface{}{
				"status":     schema.OrderStatusPrinted,
				"print_at":   commit.PrintAt,
				"attachment": commit.File.ID,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to mark order printed (order=%s): %w", commit.OrderID, res.Error)
		}
		if res.RowsAffected != 1 {
			return domain.ErrOrderUpdate.WithDetail("order %s no longer payment-confirmed", commit.OrderID)
		}

		return nil
	})
}

// GetOrderByID retrieves an order by id
func (s *pgStore) GetOrderByID(ctx context.Context, id string) (*schema.Order, error) {
	var order schema.Order
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order (id=%s): %w", id, err)
	}
	return &order, nil
}

// GetCommodityByID retrieves a commodity by id
func (s *pgStore) GetCommodityByID(ctx context.Context, id string) (*schema.Commodity, error) {
	var commodity schema.Commodity
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&commodity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get commodity (id=%s): %w", id, err)
	}
	return &commodity, nil
}

// GetUserByID retrieves a user by id
func (s *pgStore) GetUserByID(ctx context.Context, id string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user (id=%s): %w", id, err)
	}
	return &user, nil
}

// CountBarcodeProductsByIDs returns how many of the given ids exist
func (s *pgStore) CountBarcodeProductsByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&schema.BarcodeProduct{}).
		Where("id IN ?", ids).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count barcode products (ids=%v): %w", ids, err)
	}
	return count, nil
}
