package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda/backend/internal/domain/address"
)

func TestGormAddressRepository_SaveAsPrimary(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormAddressRepository(db)

	userID := uuid.New()
	addr, err := address.NewAddress(userID, "76001", address.ViaCalle, "5", "36-08")
	require.NoError(t, err)
	addr.MarkPrimary()

	// save and demote run inside one transaction
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "addresses" SET .+ WHERE "id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "addresses" SET "is_primary"=\$1,"updated_at"=\$2 WHERE user_id = \$3 AND is_primary = \$4 AND id <> \$5`).
		WithArgs(false, sqlmock.AnyArg(), userID, true, addr.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.SaveAsPrimary(context.Background(), addr)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormAddressRepository_FindPrimaryByUser(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormAddressRepository(db)

	userID := uuid.New()
	addrID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "user_id", "municipality_code", "via_type", "via_number", "plate_number", "is_primary"}).
		AddRow(addrID, userID, "76001", "CL", "5", "36-08", true)

	mock.ExpectQuery(`SELECT \* FROM "addresses" WHERE user_id = \$1 AND is_primary = \$2 ORDER BY .* LIMIT .*`).
		WithArgs(userID, true, 1).
		WillReturnRows(rows)

	addr, err := repo.FindPrimaryByUser(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, addrID, addr.ID)
	assert.True(t, addr.IsPrimary)
	assert.NoError(t, mock.ExpectationsWereMet())
}
