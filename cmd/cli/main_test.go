package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/iho/barberledger/internal/adapter/http"
	"github.com/iho/barberledger/internal/adapter/http/handler"
	"github.com/iho/barberledger/internal/domain"
	"github.com/iho/barberledger/internal/usecase"
	"github.com/iho/barberledger/internal/usecase/mocks"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// newLedgerServer serves the real router over in-memory repositories.
func newLedgerServer(t *testing.T, repo *mocks.FakeRegisterRepository, services ...*domain.ServiceRecord) *httptest.Server {
	t.Helper()

	registerUC := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("reg"), nil, nil, nil)
	serviceUC := usecase.NewServiceUseCase(&mocks.FakeServiceRepository{Services: services})
	reportUC := usecase.NewReportUseCase(registerUC, serviceUC, nil, nil)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:          zerolog.Nop(),
		RegisterHandler: handler.NewRegisterHandler(registerUC, time.UTC),
		ServiceHandler:  handler.NewServiceHandler(serviceUC, time.UTC),
		ReportHandler:   handler.NewReportHandler(reportUC, time.UTC),
		HealthHandler:   handler.NewHealthHandler(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newRateServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rc := &rootConfig{now: func() time.Time { return day("2024-01-10") }}
	cmd := newRootCmd(rc)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--url", serverURL, "--timezone", "UTC", "--lang", "en"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestRegisterCreate(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository()
	srv := newLedgerServer(t, repo)

	out, err := execute(t, srv.URL, "register", "create",
		"--description", "Haircut", "--value", "45.50", "--incoming", "--date", "2024-01-03")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var got struct {
		ID          string  `json:"id"`
		Description string  `json:"description"`
		Value       float64 `json:"value"`
		IsIncoming  bool    `json:"isIncoming"`
		Date        string  `json:"date"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if got.ID != "reg-1" || got.Description != "Haircut" || got.Value != 45.5 || !got.IsIncoming {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if !strings.HasPrefix(got.Date, "2024-01-03") {
		t.Fatalf("expected date 2024-01-03, got %s", got.Date)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected one stored entry, got %d", repo.Len())
	}
}

func TestRegisterCreateValidationSendsNothing(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository()
	srv := newLedgerServer(t, repo)

	_, err := execute(t, srv.URL, "register", "create", "--description", "Rent", "--value", "-10")
	if !errors.Is(err, domain.ErrNegativeValue) {
		t.Fatalf("expected negative value error, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected nothing stored, got %d", repo.Len())
	}
}

func TestRegisterCreateInvalidValueFlag(t *testing.T) {
	srv := newLedgerServer(t, mocks.NewFakeRegisterRepository())

	_, err := execute(t, srv.URL, "register", "create", "--description", "Rent", "--value", "abc")
	if err == nil || !strings.Contains(err.Error(), "invalid --value") {
		t.Fatalf("expected invalid value error, got %v", err)
	}
}

func TestRegisterEditAndDelete(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository(&domain.RegisterEntry{
		ID: "r1", Description: "Rent", Value: decimal.NewFromInt(1500), Date: day("2024-01-02"),
	})
	srv := newLedgerServer(t, repo)

	out, err := execute(t, srv.URL, "register", "edit", "r1", "--description", "Rent January", "--value", "1600")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !strings.Contains(out, "Rent January") {
		t.Fatalf("expected edited description, got %s", out)
	}

	out, err = execute(t, srv.URL, "register", "delete", "r1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if strings.TrimSpace(out) != "deleted r1" {
		t.Fatalf("unexpected delete output %q", out)
	}

	_, err = execute(t, srv.URL, "register", "delete", "r1")
	if !errors.Is(err, domain.ErrRegisterNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestRegisterShowAndPartialEdit(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository(&domain.RegisterEntry{
		ID: "r1", Description: "Rent", Value: decimal.RequireFromString("1500.25"), Date: day("2024-01-02"),
	})
	srv := newLedgerServer(t, repo)

	out, err := execute(t, srv.URL, "register", "show", "r1")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, `"description": "Rent"`) || !strings.Contains(out, "1500.25") {
		t.Fatalf("unexpected show output %s", out)
	}

	if _, err := execute(t, srv.URL, "register", "edit", "r1", "--incoming"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	stored, err := repo.GetByID(t.Context(), "r1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !stored.IsIncoming || stored.Description != "Rent" || !stored.Value.Equal(decimal.RequireFromString("1500.25")) {
		t.Fatalf("expected only the category to change, got %+v", stored)
	}
	if !stored.Date.Equal(day("2024-01-02")) {
		t.Fatalf("expected date to be kept, got %s", stored.Date)
	}

	if _, err := execute(t, srv.URL, "register", "show", "missing"); !errors.Is(err, domain.ErrRegisterNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := execute(t, srv.URL, "register", "edit", "missing", "--value", "10"); !errors.Is(err, domain.ErrRegisterNotFound) {
		t.Fatalf("expected not found on edit, got %v", err)
	}
}

func TestRegisterListAndRange(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository(
		&domain.RegisterEntry{ID: "r1", Description: "Salary", Value: decimal.NewFromInt(5000), IsIncoming: true, Date: day("2024-01-01")},
		&domain.RegisterEntry{ID: "r2", Description: "Rent", Value: decimal.NewFromInt(1500), Date: day("2024-02-01")},
	)
	srv := newLedgerServer(t, repo)

	out, err := execute(t, srv.URL, "register", "list", "SAL")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var listed []map[string]any
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode list %q: %v", out, err)
	}
	if len(listed) != 1 || listed[0]["id"] != "r1" {
		t.Fatalf("expected only r1, got %v", listed)
	}

	out, err = execute(t, srv.URL, "register", "list")
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	listed = nil
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode list %q: %v", out, err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected every entry for an empty substring, got %v", listed)
	}

	out, err = execute(t, srv.URL, "register", "range", "2024-02-01", "2024-02-01")
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	listed = nil
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode range %q: %v", out, err)
	}
	if len(listed) != 1 || listed[0]["id"] != "r2" {
		t.Fatalf("expected only r2 for a single-day range, got %v", listed)
	}

	out, err = execute(t, srv.URL, "register", "range", "2024-03-01", "2024-01-01")
	if err != nil {
		t.Fatalf("inverted range failed: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty list for inverted range, got %q", out)
	}
}

func TestReportLedger(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository(
		&domain.RegisterEntry{ID: "r1", Description: "Salary", Value: decimal.NewFromInt(5000), IsIncoming: true, Date: day("2024-01-01")},
		&domain.RegisterEntry{ID: "r2", Description: "Rent", Value: decimal.NewFromInt(1500), Date: day("2024-01-02")},
	)
	srv := newLedgerServer(t, repo)

	out, err := execute(t, srv.URL, "report", "ledger", "--start", "2024-01-01", "--end", "2024-01-31")
	if err != nil {
		t.Fatalf("ledger report failed: %v", err)
	}
	for _, want := range []string{"Ledger 01/01/2024 - 31/01/2024", "Salary", "IN", "Rent", "OUT", "Net:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestReportLedgerDefaultRangeAndSearch(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository(
		&domain.RegisterEntry{ID: "r1", Description: "Old salary", Value: decimal.NewFromInt(5000), IsIncoming: true, Date: day("2023-06-01")},
	)
	srv := newLedgerServer(t, repo)

	out, err := execute(t, srv.URL, "report", "ledger")
	if err != nil {
		t.Fatalf("ledger report failed: %v", err)
	}
	if !strings.Contains(out, "Ledger 08/01/2024 - 11/01/2024") || !strings.Contains(out, "no records") {
		t.Fatalf("expected empty default window, got:\n%s", out)
	}

	out, err = execute(t, srv.URL, "report", "ledger", "--search", "salary")
	if err != nil {
		t.Fatalf("ledger search failed: %v", err)
	}
	if !strings.Contains(out, `matching "salary"`) || !strings.Contains(out, "Old salary") {
		t.Fatalf("expected search results, got:\n%s", out)
	}
}

func TestReportLedgerServerDown(t *testing.T) {
	srv := newLedgerServer(t, mocks.NewFakeRegisterRepository())
	url := srv.URL
	srv.Close()

	out, err := execute(t, url, "report", "ledger", "--start", "2024-01-01", "--end", "2024-01-31")
	if err == nil {
		t.Fatalf("expected error when the server is down")
	}
	if !strings.Contains(out, "error:") {
		t.Fatalf("expected rendered error state, got:\n%s", out)
	}
}

func revenueServices() []*domain.ServiceRecord {
	return []*domain.ServiceRecord{
		{ID: "s1", Date: day("2024-01-03"), CustomerName: "Ana Souza", Value: decimal.NewFromInt(300), Types: []string{"haircut"}, Payments: []string{"pix"}},
		{ID: "s2", Date: day("2024-01-04"), CustomerName: "anabela", Value: decimal.NewFromInt(200), Types: []string{"beard"}, Payments: []string{"cash"}},
		{ID: "s3", Date: day("2024-01-05"), CustomerName: "Bruno", Value: decimal.NewFromInt(150), Types: []string{"haircut"}, Payments: []string{"pix"}},
	}
}

func TestReportRevenueConverted(t *testing.T) {
	srv := newLedgerServer(t, mocks.NewFakeRegisterRepository(), revenueServices()...)
	fx := newRateServer(t, `{"result":"success","base_code":"USD","rates":{"BRL":5}}`)

	out, err := execute(t, srv.URL, "--fx-url", fx.URL, "report", "revenue",
		"--customer", "ana", "--start", "2024-01-01", "--end", "2024-01-31")
	if err != nil {
		t.Fatalf("revenue report failed: %v", err)
	}
	for _, want := range []string{`customer "ana"`, "Ana Souza", "anabela", "Total USD: 100.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Bruno") {
		t.Fatalf("expected Bruno to be filtered out:\n%s", out)
	}
}

func TestReportRevenueRateUnavailable(t *testing.T) {
	srv := newLedgerServer(t, mocks.NewFakeRegisterRepository(), revenueServices()...)
	fx := newRateServer(t, `{"result":"success","rates":{"EUR":0.9}}`)

	out, err := execute(t, srv.URL, "--fx-url", fx.URL, "report", "revenue",
		"--start", "2024-01-01", "--end", "2024-01-31")
	if err != nil {
		t.Fatalf("revenue report failed: %v", err)
	}
	if !strings.Contains(out, "Total USD: n/a") {
		t.Fatalf("expected unavailable USD total, got:\n%s", out)
	}
	if strings.Contains(out, "Total: n/a") {
		t.Fatalf("expected BRL total to be shown, got:\n%s", out)
	}
}

func TestRangeFlags(t *testing.T) {
	def := domain.DayRange(day("2024-01-08"), day("2024-01-11"), time.UTC)

	r, err := rangeFlags("", "", time.UTC, def)
	if err != nil || r != def {
		t.Fatalf("expected default range, got %v (%v)", r, err)
	}

	r, err = rangeFlags("2024-01-01", "", time.UTC, def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Start.Equal(day("2024-01-01")) || !r.End.Equal(def.End) {
		t.Fatalf("expected only start to change, got %v", r)
	}

	r, err = rangeFlags("", "2024-01-31", time.UTC, def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.End.Equal(day("2024-02-01").Add(-time.Nanosecond)) {
		t.Fatalf("expected end of day bound, got %v", r.End)
	}

	if _, err := rangeFlags("yesterday", "", time.UTC, def); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("expected invalid range error, got %v", err)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}); err != nil {
		t.Fatalf("printJSON: %v", err)
	}

	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}
}
