package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safartaxi/trip-match-backend/internal/models"
)

func TestProfileUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProfileRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Driver", func(t *testing.T) {
		now := time.Now()
		model, color, plate := "Cobalt", "White", "01A123BC"
		profile := &models.Profile{
			UserID:   101,
			Role:     models.RoleDriver,
			FullName: "Aziz Karimov",
			Phone:    "+998901234567",
			CarModel: &model,
			CarColor: &color,
			CarPlate: &plate,
		}

		mock.ExpectQuery(`INSERT INTO profiles`).
			WithArgs(profile.UserID, profile.Role, profile.FullName, profile.Phone,
				profile.CarModel, profile.CarColor, profile.CarPlate).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.Upsert(profile)
		require.NoError(t, err)
		assert.Equal(t, now, profile.CreatedAt)
		assert.Equal(t, now, profile.UpdatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		profile := &models.Profile{
			UserID:   101,
			Role:     models.RolePassenger,
			FullName: "Aziz Karimov",
			Phone:    "+998901234567",
		}

		mock.ExpectQuery(`INSERT INTO profiles`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Upsert(profile)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upsert profile")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileGetByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProfileRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM profiles`).
			WithArgs(int64(101)).
			WillReturnRows(profileRows().AddRow(
				101, "passenger", "Aziz Karimov", "+998901234567",
				nil, nil, nil, now, now,
			))

		profile, err := repo.GetByUser(101)
		require.NoError(t, err)
		assert.Equal(t, int64(101), profile.UserID)
		assert.Equal(t, models.RolePassenger, profile.Role)
		assert.Nil(t, profile.CarPlate)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM profiles`).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		profile, err := repo.GetByUser(404)
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, models.ErrProfileNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProfileRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Removes Profile And Trip", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM profiles`).
			WithArgs(int64(101)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM trips`).
			WithArgs(int64(101)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		removed, err := repo.Delete(101)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown User", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM profiles`).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM trips`).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		removed, err := repo.Delete(404)
		require.NoError(t, err)
		assert.Equal(t, 0, removed)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProfileRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WillReturnRows(sqlmock.NewRows([]string{"total", "drivers", "passengers"}).
				AddRow(42, 15, 27))

		stats, err := repo.Stats()
		require.NoError(t, err)
		assert.Equal(t, 42, stats.Total)
		assert.Equal(t, 15, stats.Drivers)
		assert.Equal(t, 27, stats.Passengers)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileListUserIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProfileRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Everyone", func(t *testing.T) {
		mock.ExpectQuery(`SELECT user_id FROM profiles`).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(101).AddRow(102))

		ids, err := repo.ListUserIDs(nil)
		require.NoError(t, err)
		assert.Equal(t, []int64{101, 102}, ids)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Drivers Only", func(t *testing.T) {
		role := models.RoleDriver

		mock.ExpectQuery(`SELECT user_id FROM profiles WHERE role`).
			WithArgs(role).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(101))

		ids, err := repo.ListUserIDs(&role)
		require.NoError(t, err)
		assert.Equal(t, []int64{101}, ids)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "role", "full_name", "phone",
		"car_model", "car_color", "car_plate", "created_at", "updated_at",
	})
}
