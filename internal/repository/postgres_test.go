package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/model"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepositoryFromDB(sqlx.NewDb(db, "postgres")), mock
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS extraction_logs")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogExtraction(t *testing.T) {
	repo, mock := newMockRepo(t)
	spec := &model.SpecJSON{
		BudgetMin:         0,
		BudgetMax:         2100,
		WorkAddress:       "downtown",
		Bedrooms:          1,
		Priorities:        []model.Priority{model.PriorityShortCommute},
		MaxCommuteMinutes: 45,
		TransportMode:     model.TransportTransit,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO extraction_logs")).
		WithArgs("7b0c2d5e-1111-4c1f-9c55-3d1d2c4b5a6f", "near downtown", false, model.OutcomeSuccess, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.LogExtraction(context.Background(), &model.ExtractionLog{
		ExtractionID: "7b0c2d5e-1111-4c1f-9c55-3d1d2c4b5a6f",
		Message:      "near downtown",
		Outcome:      model.OutcomeSuccess,
		Spec:         spec,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogExtraction_Error(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO extraction_logs")).
		WillReturnError(errors.New("connection reset"))

	err := repo.LogExtraction(context.Background(), &model.ExtractionLog{
		ExtractionID: "id",
		Message:      "I like pizza",
		Outcome:      model.OutcomeMissingAnchor,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to log extraction")
}

func TestGetExtraction(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, 1, 18, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "extraction_id", "message", "pinned", "outcome", "spec", "created_at"}).
		AddRow(int64(3), "abc", "near uOttawa", false, model.OutcomeSuccess,
			[]byte(`{"budget_min":0,"budget_max":3000,"work_address":"uOttawa","bedrooms":1,"priorities":["short_commute","low_price"],"max_commute_minutes":45,"transport_mode":"transit"}`),
			created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM extraction_logs")).WithArgs("abc").WillReturnRows(rows)

	entry, err := repo.GetExtraction(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.NotNil(t, entry.Spec)

	assert.Equal(t, "uOttawa", entry.Spec.WorkAddress)
	assert.Equal(t, []model.Priority{model.PriorityShortCommute, model.PriorityLowPrice}, entry.Spec.Priorities)
	assert.Equal(t, created, entry.CreatedAt)
}

func TestGetExtraction_MissingAnchorHasNoSpec(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"id", "extraction_id", "message", "pinned", "outcome", "spec", "created_at"}).
		AddRow(int64(4), "def", "I like pizza", false, model.OutcomeMissingAnchor, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM extraction_logs")).WithArgs("def").WillReturnRows(rows)

	entry, err := repo.GetExtraction(context.Background(), "def")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Nil(t, entry.Spec)
	assert.Equal(t, model.OutcomeMissingAnchor, entry.Outcome)
}

func TestGetExtraction_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM extraction_logs")).WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	entry, err := repo.GetExtraction(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, entry)
}
