package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

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

func TestRegisterUseCase_CreateRegister(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository()
	publisher := &mocks.FakePublisher{}
	uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("reg"), publisher, nil, nil)

	date := day("2024-01-10")
	entry, err := uc.CreateRegister(context.Background(), usecase.CreateRegisterInput{
		Date:        &date,
		Description: "Salary",
		Value:       decimal.NewFromInt(5000),
		IsIncoming:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "reg-1", entry.ID)
	assert.True(t, entry.Date.Equal(date))
	assert.Equal(t, 1, repo.Len())

	stored, err := repo.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salary", stored.Description)
	assert.True(t, stored.Value.Equal(decimal.NewFromInt(5000)))

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeRegisterCreated, events[0].EventType)
	assert.Equal(t, entry.ID, events[0].AggregateID)
}

func TestRegisterUseCase_CreateRegister_DefaultsDateToNow(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository()
	uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("reg"), nil, nil, nil)

	before := time.Now().UTC()
	entry, err := uc.CreateRegister(context.Background(), usecase.CreateRegisterInput{
		Description: "Rent",
		Value:       decimal.NewFromInt(1500),
	})
	require.NoError(t, err)

	assert.False(t, entry.Date.Before(before.Add(-time.Second)))
	assert.False(t, entry.IsIncoming)
}

func TestRegisterUseCase_CreateRegister_ReturnsStoredPrecision(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository()
	now := time.Date(2024, 5, 10, 12, 0, 0, 123456789, time.UTC)
	uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("reg"), nil, nil, nil).
		WithClock(func() time.Time { return now })

	entry, err := uc.CreateRegister(context.Background(), usecase.CreateRegisterInput{
		Description: "Tip",
		Value:       decimal.RequireFromString("10.50"),
	})
	require.NoError(t, err)

	assert.True(t, entry.Date.Equal(time.Date(2024, 5, 10, 12, 0, 0, 123456000, time.UTC)))

	stored, err := repo.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, entry)

	found, err := uc.ListByDateRange(context.Background(), domain.NewDateRange(entry.Date, entry.Date))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, entry.ID, found[0].ID)
}

func TestRegisterUseCase_CreateRegister_ValidationSkipsStore(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateRegisterInput
		errorType   error
		failedField string
	}{
		{
			name:        "empty description",
			input:       usecase.CreateRegisterInput{Description: "   ", Value: decimal.NewFromInt(10)},
			errorType:   domain.ErrInvalidDescription,
			failedField: domain.FieldDescription,
		},
		{
			name:        "negative value",
			input:       usecase.CreateRegisterInput{Description: "Rent", Value: decimal.NewFromInt(-1)},
			errorType:   domain.ErrNegativeValue,
			failedField: domain.FieldValue,
		},
		{
			name:        "sub-cent value",
			input:       usecase.CreateRegisterInput{Description: "Tip", Value: decimal.RequireFromString("10.005")},
			errorType:   domain.ErrValuePrecision,
			failedField: domain.FieldValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockRegisterRepository(ctrl)
			idGen := mocks.NewMockIDGenerator(ctrl)
			// No EXPECT calls: any store or ID access fails the test.

			uc := usecase.NewRegisterUseCase(repo, idGen, nil, nil, nil)
			_, err := uc.CreateRegister(context.Background(), tt.input)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorIs(t, err, tt.errorType)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			_, ok := domain.ValidationResult{Fields: verr.Fields}.Field(tt.failedField)
			assert.True(t, ok)
		})
	}
}

func TestRegisterUseCase_CreateRegister_RecordsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRegisterRepository(ctrl)
	recorder := mocks.NewMockRecorder(ctrl)
	retrier := mocks.NewMockRetrier(ctrl)

	storeErr := errors.New("connection refused")
	retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, op func() error) error {
			return op()
		})
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(storeErr)
	recorder.EXPECT().RegisterOperation(usecase.OperationCreate, usecase.StatusFailure)

	uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("reg"), nil, retrier, recorder)
	_, err := uc.CreateRegister(context.Background(), usecase.CreateRegisterInput{
		Description: "Rent",
		Value:       decimal.NewFromInt(1500),
	})

	assert.ErrorIs(t, err, storeErr)
}

func TestRegisterUseCase_CreateRegister_PublishFailureIsNotFatal(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository()
	publisher := &mocks.FakePublisher{Err: errors.New("broker down")}
	uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("reg"), publisher, nil, nil)

	_, err := uc.CreateRegister(context.Background(), usecase.CreateRegisterInput{
		Description: "Rent",
		Value:       decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Len())
}

func TestRegisterUseCase_UpdateRegister(t *testing.T) {
	original := &domain.RegisterEntry{
		ID:          "reg-1",
		Date:        day("2024-01-05"),
		Description: "Rent",
		Value:       decimal.NewFromInt(1500),
	}

	t.Run("keeps stored date when none given", func(t *testing.T) {
		repo := mocks.NewFakeRegisterRepository(original)
		uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("evt"), nil, nil, nil)

		updated, err := uc.UpdateRegister(context.Background(), usecase.UpdateRegisterInput{
			ID:          "reg-1",
			Description: "Rent January",
			Value:       decimal.NewFromInt(1600),
		})
		require.NoError(t, err)

		assert.True(t, updated.Date.Equal(original.Date))

		stored, err := repo.GetByID(context.Background(), "reg-1")
		require.NoError(t, err)
		assert.Equal(t, "Rent January", stored.Description)
		assert.True(t, stored.Value.Equal(decimal.NewFromInt(1600)))
	})

	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewFakeRegisterRepository()
		uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("evt"), nil, nil, nil)

		date := day("2024-01-05")
		_, err := uc.UpdateRegister(context.Background(), usecase.UpdateRegisterInput{
			Date:        &date,
			ID:          "missing",
			Description: "Rent",
			Value:       decimal.NewFromInt(1500),
		})
		assert.ErrorIs(t, err, domain.ErrRegisterNotFound)
	})

	t.Run("not found without date", func(t *testing.T) {
		repo := mocks.NewFakeRegisterRepository()
		uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("evt"), nil, nil, nil)

		_, err := uc.UpdateRegister(context.Background(), usecase.UpdateRegisterInput{
			ID:          "missing",
			Description: "Rent",
			Value:       decimal.NewFromInt(1500),
		})
		assert.ErrorIs(t, err, domain.ErrRegisterNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		repo := mocks.NewFakeRegisterRepository(original)
		uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("evt"), nil, nil, nil)

		_, err := uc.UpdateRegister(context.Background(), usecase.UpdateRegisterInput{
			ID:          "reg-1",
			Description: "",
			Value:       decimal.NewFromInt(1500),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDescription)

		stored, err := repo.GetByID(context.Background(), "reg-1")
		require.NoError(t, err)
		assert.Equal(t, "Rent", stored.Description)
	})
}

func TestRegisterUseCase_DeleteRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockEventPublisher(ctrl)
	recorder := mocks.NewMockRecorder(ctrl)

	repo := mocks.NewFakeRegisterRepository(&domain.RegisterEntry{
		ID:          "reg-1",
		Date:        day("2024-01-05"),
		Description: "Rent",
		Value:       decimal.NewFromInt(1500),
	})

	recorder.EXPECT().RegisterOperation(usecase.OperationDelete, usecase.StatusSuccess)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.Event) error {
			assert.Equal(t, domain.EventTypeRegisterDeleted, event.EventType)
			assert.Equal(t, "reg-1", event.AggregateID)
			return nil
		})

	uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("evt"), publisher, nil, recorder)
	require.NoError(t, uc.DeleteRegister(context.Background(), "reg-1"))

	_, err := repo.GetByID(context.Background(), "reg-1")
	assert.ErrorIs(t, err, domain.ErrRegisterNotFound)
}

func TestRegisterUseCase_ListByDescription(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository(
		&domain.RegisterEntry{ID: "1", Date: day("2024-01-01"), Description: "Salary Desc", Value: decimal.NewFromInt(5000), IsIncoming: true},
		&domain.RegisterEntry{ID: "2", Date: day("2024-01-02"), Description: "Rent", Value: decimal.NewFromInt(1500)},
	)
	uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("reg"), nil, nil, nil)

	entries, err := uc.ListByDescription(context.Background(), "sal")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1", entries[0].ID)

	all, err := uc.ListByDescription(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := uc.ListByDescription(context.Background(), "groceries")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRegisterUseCase_ListByDateRange(t *testing.T) {
	repo := mocks.NewFakeRegisterRepository(
		&domain.RegisterEntry{ID: "1", Date: day("2024-01-01"), Description: "Salary", Value: decimal.NewFromInt(5000), IsIncoming: true},
		&domain.RegisterEntry{ID: "2", Date: day("2024-01-31").Add(23 * time.Hour), Description: "Rent", Value: decimal.NewFromInt(1500)},
		&domain.RegisterEntry{ID: "3", Date: day("2024-02-01"), Description: "Fuel", Value: decimal.NewFromInt(200)},
	)
	uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("reg"), nil, nil, nil)

	r, err := domain.ParseDateRange("2024-01-01", "2024-01-31", time.UTC)
	require.NoError(t, err)

	entries, err := uc.ListByDateRange(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, "2", entries[1].ID)
}

func TestRegisterUseCase_ListByDateRange_StartAfterEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRegisterRepository(ctrl)

	uc := usecase.NewRegisterUseCase(repo, mocks.NewSequenceIDGenerator("reg"), nil, nil, nil)
	entries, err := uc.ListByDateRange(context.Background(), domain.DateRange{
		Start: day("2024-02-01"),
		End:   day("2024-01-01"),
	})

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRegisterUseCase_DeleteRegister_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockEventPublisher(ctrl)
	recorder := mocks.NewMockRecorder(ctrl)
	recorder.EXPECT().RegisterOperation(usecase.OperationDelete, usecase.StatusFailure)

	uc := usecase.NewRegisterUseCase(mocks.NewFakeRegisterRepository(), mocks.NewSequenceIDGenerator("evt"), publisher, nil, recorder)
	err := uc.DeleteRegister(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrRegisterNotFound)
}
