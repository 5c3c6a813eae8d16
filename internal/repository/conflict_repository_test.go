package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ekastn/mamc-sub001/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockRepo(t *testing.T) (ConflictRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewConflictRepository(db), mock
}

func TestGormConflictRepository_UpdateStatus(t *testing.T) {
	repo, mock := setupMockRepo(t)

	// The status write must carry the expected previous statuses in the
	// WHERE clause; an unconditional UPDATE would let two moderators race.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `conflicts` SET `status`=?,`updated_at`=? WHERE id = ? AND status IN (?)")).
		WithArgs("ESCALATED", sqlmock.AnyArg(), 7, "OPEN").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(7,
		[]models.ConflictStatus{models.ConflictOpen}, models.ConflictEscalated)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormConflictRepository_UpdateStatus_StatusChanged(t *testing.T) {
	repo, mock := setupMockRepo(t)

	// Zero rows matched: the conflict left the expected status between the
	// caller's read and this write. The statement itself succeeds, so the
	// wrapping transaction still commits.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `conflicts` SET `status`=?,`updated_at`=? WHERE id = ? AND status IN (?,?)")).
		WithArgs("DISMISSED", sqlmock.AnyArg(), 7, "OPEN", "ESCALATED").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(7,
		[]models.ConflictStatus{models.ConflictOpen, models.ConflictEscalated},
		models.ConflictDismissed)
	require.ErrorIs(t, err, ErrStatusChanged)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormConflictRepository_ResolveWithRecord_StatusChanged(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `conflicts` SET `status`=?,`updated_at`=? WHERE id = ? AND status IN (?,?)")).
		WithArgs("RESOLVED", sqlmock.AnyArg(), 7, "OPEN", "ESCALATED").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	resolution := &models.ConflictResolution{
		ConflictID:     7,
		ModeratorID:    3,
		ResolutionType: models.ResolutionMutualAgreement,
	}
	err := repo.ResolveWithRecord(resolution,
		[]models.ConflictStatus{models.ConflictOpen, models.ConflictEscalated})
	require.ErrorIs(t, err, ErrStatusChanged)
	require.NoError(t, mock.ExpectationsWereMet())
}
