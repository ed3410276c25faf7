package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	var dsn string
	var err error

	if dbHost != "" {
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
	} else {
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Started PostgreSQL container\n")
	}

	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	if err := Migrate(testDB); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		if pgContainer != nil {
			if err := pgContainer.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}
		os.Exit(1)
	}

	code := m.Run()

	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	os.Exit(code)
}

// initPGTestDB wraps each test in a transaction for isolation
func initPGTestDB(t *testing.T) (*gorm.DB, Store) {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return tx, NewPGStore(tx)
}

func seedCode(t *testing.T, tx *gorm.DB, code schema.TracingCode) schema.TracingCode {
	t.Helper()
	require.NoError(t, tx.Create(&code).Error)
	return code
}

func TestGetTracingCodeByCode(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	seedCode(t, tx, schema.TracingCode{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FA1",
		InnerCode: "01inner-1",
		OuterCode: "01outer-1",
		Factory:   "factory-1",
		Owner:     "factory-1",
		OrderID:   "order-1",
		No:        1,
		State:     domain.StateUnbind,
	})

	byOuter, err := s.GetTracingCodeByCode(ctx, "01outer-1")
	require.NoError(t, err)
	require.NotNil(t, byOuter)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FA1", byOuter.ID)

	byInner, err := s.GetTracingCodeByCode(ctx, "01inner-1")
	require.NoError(t, err)
	require.NotNil(t, byInner)
	assert.Equal(t, byOuter.ID, byInner.ID)

	missing, err := s.GetTracingCodeByCode(ctx, "01nothing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetTracingCodesByFilter(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	states := []domain.State{
		domain.StateUnbind, domain.StateBind, domain.StateSend,
		domain.StateExpressed, domain.StateReceived,
	}
	for i, state := range states {
		seedCode(t, tx, schema.TracingCode{
			ID:        fmt.Sprintf("01ARZ3NDEKTSV4RRFFQ69G5F%02d", i),
			InnerCode: fmt.Sprintf("01inner-%d", i),
			OuterCode: fmt.Sprintf("01outer-%d", i),
			Factory:   "factory-1",
			Owner:     "factory-1",
			OrderID:   "order-1",
			No:        i + 1,
			State:     state,
		})
	}

	t.Run("default states hide unbound and received", func(t *testing.T) {
		rows, total, err := s.GetTracingCodesByFilter(ctx, TracingQueryFilter{
			Owner: "factory-1",
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		for _, row := range rows {
			assert.Contains(t, domain.DefaultListStates, row.State)
		}
	})

	t.Run("explicit state filter", func(t *testing.T) {
		rows, total, err := s.GetTracingCodesByFilter(ctx, TracingQueryFilter{
			Owner:  "factory-1",
			States: []domain.State{domain.StateReceived},
			Limit:  10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.StateReceived, rows[0].State)
	})

	t.Run("pagination keeps total", func(t *testing.T) {
		rows, total, err := s.GetTracingCodesByFilter(ctx, TracingQueryFilter{
			Owner:  "factory-1",
			States: states,
			Limit:  2,
			Offset: 4,
			Sort:   "no",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, rows, 1)
		assert.Equal(t, 5, rows[0].No)
	})

	t.Run("unknown sort column rejected", func(t *testing.T) {
		_, _, err := s.GetTracingCodesByFilter(ctx, TracingQueryFilter{
			Owner: "factory-1",
			Sort:  "inner_code",
			Limit: 10,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("foreign owner sees nothing", func(t *testing.T) {
		_, total, err := s.GetTracingCodesByFilter(ctx, TracingQueryFilter{
			Owner: "factory-2",
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestCommitTransition(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	code := seedCode(t, tx, schema.TracingCode{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FB1",
		InnerCode: "01inner-t",
		OuterCode: "01outer-t",
		Factory:   "factory-1",
		Owner:     "factory-1",
		OrderID:   "order-1",
		No:        1,
		State:     domain.StateUnbind,
		Revision:  0,
	})

	updated := code
	updated.State = domain.StateBind
	updated.Products = datatypes.JSONSlice[string]{"p1"}
	updated.Revision = 1

	err := s.CommitTransition(ctx, TransitionCommit{
		Code:             &updated,
		ExpectedRevision: 0,
	})
	require.NoError(t, err)

	stored, err := s.GetTracingCodeByID(ctx, code.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateBind, stored.State)
	assert.Equal(t, int64(1), stored.Revision)
	assert.Equal(t, []string{"p1"}, []string(stored.Products))
}

func TestCommitTransition_StaleRevision(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	code := seedCode(t, tx, schema.TracingCode{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FB2",
		InnerCode: "01inner-c",
		OuterCode: "01outer-c",
		Factory:   "factory-1",
		Owner:     "factory-1",
		OrderID:   "order-1",
		No:        1,
		State:     domain.StateBind,
		Revision:  7,
	})

	updated := code
	updated.State = domain.StateSend
	updated.Revision = 3

	err := s.CommitTransition(ctx, TransitionCommit{
		Code:             &updated,
		ExpectedRevision: 2, // the row is already at 7
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, err := s.GetTracingCodeByID(ctx, code.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateBind, stored.State, "losing commit leaves the row untouched")
}

func TestCommitTransition_RowVanished(t *testing.T) {
	_, s := initPGTestDB(t)
	ctx := context.Background()

	ghost := schema.TracingCode{
		ID:       "01ARZ3NDEKTSV4RRFFQ69G5FB3",
		State:    domain.StateBind,
		Revision: 1,
	}

	err := s.CommitTransition(ctx, TransitionCommit{
		Code:             &ghost,
		ExpectedRevision: 0,
	})
	assert.ErrorIs(t, err, domain.ErrCodeNotFound)
}

func TestCommitTransition_CascadeReassignsChildren(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		seedCode(t, tx, schema.TracingCode{
			ID:        fmt.Sprintf("01ARZ3NDEKTSV4RRFFQ69G5FC%d", i),
			InnerCode: fmt.Sprintf("01inner-ch%d", i),
			OuterCode: fmt.Sprintf("01outer-ch%d", i),
			Factory:   "factory-1",
			Owner:     "factory-1",
			OrderID:   "order-1",
			No:        i,
			State:     domain.StateBind,
			Revision:  2,
		})
	}
	bundle := seedCode(t, tx, schema.TracingCode{
		ID:               "01ARZ3NDEKTSV4RRFFQ69G5FC0",
		InnerCode:        "01inner-bd",
		OuterCode:        "01outer-bd",
		Factory:          "factory-1",
		Owner:            "factory-1",
		OrderID:          "order-1",
		No:               3,
		State:            domain.StateSend,
		IsFactoryTracing: true,
		TracingProducts:  datatypes.JSONSlice[string]{"01ARZ3NDEKTSV4RRFFQ69G5FC1", "01ARZ3NDEKTSV4RRFFQ69G5FC2"},
	})

	updated := bundle
	updated.State = domain.StateReceived
	updated.Owner = "shop-1"
	updated.Revision = 1

	err := s.CommitTransition(ctx, TransitionCommit{
		Code:             &updated,
		ExpectedRevision: 0,
		CascadeChildIDs:  []string{"01ARZ3NDEKTSV4RRFFQ69G5FC1", "01ARZ3NDEKTSV4RRFFQ69G5FC2"},
		NewChildOwner:    "shop-1",
	})
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		child, err := s.GetTracingCodeByID(ctx, fmt.Sprintf("01ARZ3NDEKTSV4RRFFQ69G5FC%d", i))
		require.NoError(t, err)
		assert.Equal(t, "shop-1", child.Owner)
		assert.Equal(t, int64(3), child.Revision, "cascade bumps the child revision")
	}
}

func TestCommitTransition_CascadeMissingChildRollsBack(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	bundle := seedCode(t, tx, schema.TracingCode{
		ID:               "01ARZ3NDEKTSV4RRFFQ69G5FD0",
		InnerCode:        "01inner-bd2",
		OuterCode:        "01outer-bd2",
		Factory:          "factory-1",
		Owner:            "factory-1",
		OrderID:          "order-1",
		No:               1,
		State:            domain.StateSend,
		IsFactoryTracing: true,
	})

	updated := bundle
	updated.State = domain.StateReceived
	updated.Owner = "shop-1"
	updated.Revision = 1

	err := s.CommitTransition(ctx, TransitionCommit{
		Code:             &updated,
		ExpectedRevision: 0,
		CascadeChildIDs:  []string{"01ARZ3NDEKTSV4RRFFQ69G5FD9"},
		NewChildOwner:    "shop-1",
	})
	assert.ErrorIs(t, err, domain.ErrChildInvalid)

	stored, err := s.GetTracingCodeByID(ctx, bundle.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateSend, stored.State, "failed cascade rolls back the parent update")
	assert.Equal(t, "factory-1", stored.Owner)
}

func TestBulkInsertTracingCodes(t *testing.T) {
	_, s := initPGTestDB(t)
	ctx := context.Background()

	codes := make([]schema.TracingCode, 10)
	for i := range codes {
		codes[i] = schema.TracingCode{
			ID:        fmt.Sprintf("01ARZ3NDEKTSV4RRFFQ69G5FE%d", i),
			InnerCode: fmt.Sprintf("01inner-bulk%d", i),
			OuterCode: fmt.Sprintf("01outer-bulk%d", i),
			Factory:   "factory-1",
			Owner:     "factory-1",
			OrderID:   "order-bulk",
			No:        i + 1,
			State:     domain.StateUnbind,
		}
	}

	require.NoError(t, s.BulkInsertTracingCodes(ctx, codes))

	rows, err := s.GetTracingCodesByIDs(ctx, []string{codes[0].ID, codes[9].ID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestDeleteTracingCode(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	code := seedCode(t, tx, schema.TracingCode{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FF1",
		InnerCode: "01inner-del",
		OuterCode: "01outer-del",
		Factory:   "factory-1",
		Owner:     "factory-1",
		OrderID:   "order-1",
		No:        1,
		State:     domain.StateUnbind,
	})

	require.NoError(t, s.DeleteTracingCode(ctx, code.ID))

	stored, err := s.GetTracingCodeByID(ctx, code.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.ErrorIs(t, s.DeleteTracingCode(ctx, code.ID), domain.ErrCodeNotFound)
}

func TestCommitIssuance(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	require.NoError(t, tx.Create(&schema.Order{
		ID:          "order-issue",
		CommodityID: "commodity-1",
		Count:       1,
		Status:      schema.OrderStatusPaymentConfirmed,
		Buyer:       "factory-1",
	}).Error)

	printAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	commit := IssuanceCommit{
		Codes: []schema.TracingCode{{
			ID:        "01ARZ3NDEKTSV4RRFFQ69G5FG1",
			InnerCode: "01inner-iss",
			OuterCode: "01outer-iss",
			Factory:   "factory-1",
			Owner:     "factory-1",
			OrderID:   "order-issue",
			No:        1,
			State:     domain.StateUnbind,
		}},
		File: schema.StoredFile{
			ID:          "file-1",
			Path:        "/data/manifests/tracing-codes-order-issue.csv",
			Size:        128,
			ContentType: "text/csv; charset=utf-8",
		},
		OrderID: "order-issue",
		PrintAt: printAt,
	}

	require.NoError(t, s.CommitIssuance(ctx, commit))

	var order schema.Order
	require.NoError(t, tx.Where("id = ?", "order-issue").First(&order).Error)
	assert.Equal(t, schema.OrderStatusPrinted, order.Status)
	require.NotNil(t, order.Attachment)
	assert.Equal(t, "file-1", *order.Attachment)
	require.NotNil(t, order.PrintAt)

	stored, err := s.GetTracingCodeByID(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FG1")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCommitIssuance_DoubleMintGuard(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	require.NoError(t, tx.Create(&schema.Order{
		ID:          "order-printed",
		CommodityID: "commodity-1",
		Count:       1,
		Status:      schema.OrderStatusPrinted,
		Buyer:       "factory-1",
	}).Error)

	commit := IssuanceCommit{
		Codes: []schema.TracingCode{{
			ID:        "01ARZ3NDEKTSV4RRFFQ69G5FH1",
			InnerCode: "01inner-dbl",
			OuterCode: "01outer-dbl",
			Factory:   "factory-1",
			Owner:     "factory-1",
			OrderID:   "order-printed",
			No:        1,
			State:     domain.StateUnbind,
		}},
		File: schema.StoredFile{
			ID:          "file-2",
			Path:        "/data/manifests/tracing-codes-order-printed.csv",
			Size:        128,
			ContentType: "text/csv; charset=utf-8",
		},
		OrderID: "order-printed",
		PrintAt: time.Now().UTC(),
	}

	err := s.CommitIssuance(ctx, commit)
	assert.ErrorIs(t, err, domain.ErrOrderUpdate)

	// The whole transaction must roll back, codes included.
	stored, err := s.GetTracingCodeByID(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FH1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestCountBarcodeProductsByIDs(t *testing.T) {
	tx, s := initPGTestDB(t)
	ctx := context.Background()

	require.NoError(t, tx.Create(&schema.BarcodeProduct{
		ID:      "product-1",
		Barcode: "4006381333931",
		Name:    "Widget",
		Factory: "factory-1",
	}).Error)

	count, err := s.CountBarcodeProductsByIDs(ctx, []string{"product-1", "product-missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = s.CountBarcodeProductsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
