package migration

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"onlinemaid-backend/internal/schema"
)

func newMockRunner(t *testing.T) (*Runner, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	r, err := NewRunner(gormDB, zaptest.NewLogger(t))
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return r, mock
}

func TestRunner_ApplyStepCommitsDDLWithMarker(t *testing.T) {
	r, mock := newMockRunner(t)
	assert.Equal(t, "postgres", r.dialect.Name())

	stmts, _, err := stepAgency.render(r.dialect, schema.NewState())
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "agencies"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "schema_migrations" ("group_name", "name", "applied_at")`)).
		WithArgs("agency", "0001_initial", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, r.applyStep(context.Background(), stepAgency, stmts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_ApplyStepRollsBackOnFailure(t *testing.T) {
	r, mock := newMockRunner(t)

	stmts := []string{
		`CREATE TABLE "maids" ("id" bigserial PRIMARY KEY)`,
		`ALTER TABLE "maids" ADD COLUMN "agency_id" bigint`,
	}
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(stmts[0])).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(stmts[1])).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := r.applyStep(context.Background(), stepMaid, stmts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maid.0001_initial")
	// No marker insert was attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_MarkerFailureRollsBackDDL(t *testing.T) {
	r, mock := newMockRunner(t)

	stmt := `CREATE TABLE "agencies" ("id" bigserial PRIMARY KEY)`
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "schema_migrations"`)).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := r.applyStep(context.Background(), stepAgency, []string{stmt})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record applied marker")
	assert.NoError(t, mock.ExpectationsWereMet())
}
