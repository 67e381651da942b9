package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

const user = "admin"

func TestService_Snapshot(t *testing.T) {
	type testCase struct {
		name        string
		setupMock   func(m *budget.MockStore)
		wantInitial string
		wantPlanned int
	}

	tests := []testCase{
		{
			name: "Stored",
			setupMock: func(m *budget.MockStore) {
				m.EXPECT().Read(gomock.Any(), user).Return(&budget.Snapshot{
					InitialAmount: "250",
					Planned:       sampleEntries(),
				}, nil)
			},
			wantInitial: "250",
			wantPlanned: 3,
		},
		{
			name: "Missing",
			setupMock: func(m *budget.MockStore) {
				m.EXPECT().Read(gomock.Any(), user).Return(nil, nil)
			},
			wantInitial: "0",
		},
		{
			name: "ReadErrorFallsBackToDefault",
			setupMock: func(m *budget.MockStore) {
				m.EXPECT().Read(gomock.Any(), user).Return(nil, errors.New("disk on fire"))
			},
			wantInitial: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := budget.NewMockStore(ctrl)
			tt.setupMock(store)

			svc := budget.NewService(store, time.UTC, 0)
			got := svc.Snapshot(context.Background(), user)

			require.NotNil(t, got)
			assert.Equal(t, tt.wantInitial, got.InitialAmount)
			assert.Len(t, got.Planned, tt.wantPlanned)
			assert.NotNil(t, got.Actual)
		})
	}
}

func TestService_AddEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := budget.NewMockStore(ctrl)
	svc := budget.NewService(store, time.UTC, 0)

	var written *budget.Snapshot

	store.EXPECT().Read(gomock.Any(), user).Return(&budget.Snapshot{InitialAmount: "0", Planned: sampleEntries()}, nil)
	store.EXPECT().
		Write(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, s *budget.Snapshot) error {
			written = s
			return nil
		})

	got, err := svc.AddEntry(context.Background(), user, budget.CollectionPlanned, budget.Entry{
		Description: "Internet",
		Amount:      "40",
		Kind:        budget.KindExpense,
		Date:        date(2024, 1, 10),
		IsRecurring: true,
		Periodicity: budget.PeriodicityMonthly,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)

	require.NotNil(t, written)
	require.Len(t, written.Planned, 4)
	assert.Equal(t, got.ID, written.Planned[3].ID)
	assert.Empty(t, written.Actual)
}

func TestService_AddEntry_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := budget.NewService(budget.NewMockStore(ctrl), time.UTC, 0)

	_, err := svc.AddEntry(context.Background(), user, budget.CollectionActual, budget.Entry{Description: "x", Amount: "-3", Kind: budget.KindIncome, Date: date(2024, 1, 1)})
	assert.ErrorIs(t, err, budget.ErrInvalidEntry)

	_, err = svc.AddEntry(context.Background(), user, "wishlist", budget.Entry{})
	assert.ErrorIs(t, err, budget.ErrUnknownCollection)
}

func TestService_AddEntry_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := budget.NewMockStore(ctrl)
	svc := budget.NewService(store, time.UTC, 0)

	store.EXPECT().Read(gomock.Any(), user).Return(nil, nil)
	store.EXPECT().Write(gomock.Any(), user, gomock.Any()).Return(errors.New("read-only"))

	got, err := svc.AddEntry(context.Background(), user, budget.CollectionActual, budget.Entry{Description: "x", Amount: "1", Kind: budget.KindIncome, Date: date(2024, 1, 1)})
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestService_UpdateEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := budget.NewMockStore(ctrl)
	svc := budget.NewService(store, time.UTC, 0)

	store.EXPECT().Read(gomock.Any(), user).Return(&budget.Snapshot{Actual: sampleEntries()}, nil).Times(2)
	store.EXPECT().
		Write(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, s *budget.Snapshot) error {
			assert.Equal(t, "Espresso", s.Actual[2].Description)
			return nil
		})

	_, err := svc.UpdateEntry(context.Background(), user, budget.CollectionActual, budget.Entry{
		ID: "c", Description: "Espresso", Amount: "2", Kind: budget.KindExpense, Date: date(2024, 1, 2),
	})
	require.NoError(t, err)

	_, err = svc.UpdateEntry(context.Background(), user, budget.CollectionActual, budget.Entry{
		ID: "missing", Description: "Espresso", Amount: "2", Kind: budget.KindExpense, Date: date(2024, 1, 2),
	})
	assert.ErrorIs(t, err, budget.ErrNotFound)
}

func TestService_DeleteEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := budget.NewMockStore(ctrl)
	svc := budget.NewService(store, time.UTC, 0)

	store.EXPECT().Read(gomock.Any(), user).Return(&budget.Snapshot{Planned: sampleEntries()}, nil).Times(2)
	store.EXPECT().
		Write(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, s *budget.Snapshot) error {
			assert.Len(t, s.Planned, 2)
			return nil
		}).
		Times(1)

	require.NoError(t, svc.DeleteEntry(context.Background(), user, budget.CollectionPlanned, "a"))
	// unknown id: no write at all
	require.NoError(t, svc.DeleteEntry(context.Background(), user, budget.CollectionPlanned, "unknown"))
}

func TestService_ReplaceSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := budget.NewMockStore(ctrl)
	svc := budget.NewService(store, time.UTC, 0)

	store.EXPECT().
		Write(gomock.Any(), user, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, s *budget.Snapshot) error {
			assert.Equal(t, "10.5", s.InitialAmount)
			require.Len(t, s.Planned, 1)
			assert.NotEmpty(t, s.Planned[0].ID)
			assert.NotNil(t, s.Actual)
			return nil
		})

	err := svc.ReplaceSnapshot(context.Background(), user, &budget.Snapshot{
		InitialAmount: "10.5",
		Planned:       []budget.Entry{{Description: "Salary", Amount: "10", Kind: budget.KindIncome, Date: date(2024, 1, 1)}},
	})
	require.NoError(t, err)

	dup := sampleEntries()
	dup[1].ID = dup[0].ID
	err = svc.ReplaceSnapshot(context.Background(), user, &budget.Snapshot{InitialAmount: "0", Actual: dup})
	assert.ErrorIs(t, err, budget.ErrInvalidEntry)

	err = svc.ReplaceSnapshot(context.Background(), user, &budget.Snapshot{InitialAmount: "lots"})
	assert.ErrorIs(t, err, budget.ErrInvalidEntry)
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := budget.NewMockStore(ctrl)
	svc := budget.NewService(store, time.UTC, 0)

	store.EXPECT().Read(gomock.Any(), user).Return(&budget.Snapshot{
		InitialAmount: "1000",
		Planned: []budget.Entry{
			oneTime(budget.KindIncome, "100", date(2024, 1, 5)),
			recurring(budget.KindExpense, "50", date(2024, 1, 1), budget.PeriodicityMonthly),
		},
		Actual: []budget.Entry{
			oneTime(budget.KindExpense, "55", date(2024, 1, 2)),
			recurring(budget.KindIncome, "1", date(2024, 1, 1), budget.PeriodicityDaily),
		},
	}, nil)

	got := svc.Summary(context.Background(), user, date(2024, 3, 1))

	assert.Equal(t, "100", got.PlannedIncome.String())
	assert.Equal(t, "150", got.PlannedExpense.String())
	assert.Equal(t, "950", got.PlannedBalance.String())
	assert.Equal(t, "1", got.ActualIncome.String())
	assert.Equal(t, "55", got.ActualExpense.String())
	assert.Equal(t, "946", got.ActualBalance.String())
}

func TestService_Series(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := budget.NewMockStore(ctrl)
	svc := budget.NewService(store, time.UTC, 31)

	store.EXPECT().Read(gomock.Any(), user).Return(&budget.Snapshot{
		InitialAmount: "0",
		Planned:       []budget.Entry{recurring(budget.KindIncome, "10", date(2024, 1, 1), budget.PeriodicityDaily)},
	}, nil)

	points, err := svc.Series(context.Background(), user, date(2024, 1, 1), date(2024, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "20", "30"}, balances(points, true))

	_, err = svc.Series(context.Background(), user, date(2024, 1, 1), date(2024, 3, 1))
	assert.ErrorIs(t, err, budget.ErrRangeTooLarge)
}

func TestService_SeriesUsesLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := time.FixedZone("UTC+3", 3*60*60)
	store := budget.NewMockStore(ctrl)
	svc := budget.NewService(store, loc, 0)

	// 22:30 UTC on the 1st is already the 2nd at UTC+3.
	store.EXPECT().Read(gomock.Any(), user).Return(&budget.Snapshot{
		Actual: []budget.Entry{oneTime(budget.KindIncome, "5", time.Date(2024, 1, 1, 22, 30, 0, 0, time.UTC))},
	}, nil)

	points, err := svc.Series(context.Background(), user, date(2024, 1, 1), date(2024, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "5"}, balances(points, false))
}
