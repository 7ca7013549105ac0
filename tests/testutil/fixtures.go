package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/infrastructure/postgres"
	"github.com/iho/barberledger/internal/infrastructure/postgres/generated"
)

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool    *pgxpool.Pool
	Queries *generated.Queries
	t       *testing.T
}

// NewTestDB connects to TEST_DATABASE_URL and applies the embedded
// migrations. The test is skipped when the variable is not set.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if err := postgres.RunMigrations(dbURL, ""); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dbURL, 10, 1)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool:    pool,
		Queries: generated.New(pool),
		t:       t,
	}
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE services CASCADE;
		TRUNCATE TABLE customers CASCADE;
		TRUNCATE TABLE registers CASCADE;
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateTestRegister inserts a register entry directly.
func (db *TestDB) CreateTestRegister(ctx context.Context, description string, value decimal.Decimal, incoming bool, date time.Time) *domain.RegisterEntry {
	db.t.Helper()

	var numeric pgtype.Numeric
	_ = numeric.Scan(value.String())

	id := GenerateID()
	_, err := db.Queries.CreateRegister(ctx, generated.CreateRegisterParams{
		ID:          id,
		IsIncoming:  incoming,
		Description: description,
		Value:       numeric,
		Date:        pgtype.Timestamptz{Time: date, Valid: true},
	})
	if err != nil {
		db.t.Fatalf("failed to create test register: %v", err)
	}

	return &domain.RegisterEntry{
		ID:          id,
		IsIncoming:  incoming,
		Description: description,
		Value:       value,
		Date:        date,
	}
}

// CreateTestCustomer inserts a customer and returns its id.
func (db *TestDB) CreateTestCustomer(ctx context.Context, name string) string {
	db.t.Helper()

	id := GenerateID()
	if _, err := db.Pool.Exec(ctx, `INSERT INTO customers (id, name) VALUES ($1, $2)`, id, name); err != nil {
		db.t.Fatalf("failed to create test customer: %v", err)
	}
	return id
}

// CreateTestService inserts a rendered service for customerID.
func (db *TestDB) CreateTestService(ctx context.Context, customerID string, value decimal.Decimal, types, payments []string, date time.Time) string {
	db.t.Helper()

	id := GenerateID()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO services (id, customer_id, value, type, payment, date) VALUES ($1, $2, $3::numeric, $4, $5, $6)`,
		id, customerID, value.String(), types, payments, date)
	if err != nil {
		db.t.Fatalf("failed to create test service: %v", err)
	}
	return id
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
