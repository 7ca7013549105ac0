package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/iho/barberledger/internal/domain"
)

func TestServiceRepositoryList(t *testing.T) {
	pool := newMockPool(t)
	repo := NewServiceRepository(pool)

	r, err := domain.ParseDateRange("2024-01-01", "2024-01-31", nil)
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}

	pool.ExpectQuery(regexp.QuoteMeta("JOIN customers c ON c.id = s.customer_id")).
		WithArgs("ana", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pool.NewRows([]string{"id", "customer_name", "value", "type", "payment", "date"}).
			AddRow("s1", "Ana Souza", numeric(t, "300"), []string{"haircut"}, []string{"pix"}, timestamptz("2024-01-03T15:00:00Z")))

	services, err := repo.List(context.Background(), domain.ServiceFilter{CustomerName: "ana", Range: r})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(services))
	}
	s := services[0]
	if s.CustomerName != "Ana Souza" || s.Value.String() != "300" || len(s.Types) != 1 || s.Payments[0] != "pix" {
		t.Fatalf("unexpected service: %+v", s)
	}

	assertExpectations(t, pool)
}

func TestServiceRepositoryListError(t *testing.T) {
	pool := newMockPool(t)
	repo := NewServiceRepository(pool)

	queryErr := errors.New("relation \"services\" does not exist")
	pool.ExpectQuery(regexp.QuoteMeta("FROM services")).WillReturnError(queryErr)

	_, err := repo.List(context.Background(), domain.ServiceFilter{})
	if !errors.Is(err, queryErr) {
		t.Fatalf("expected query error, got %v", err)
	}
}
