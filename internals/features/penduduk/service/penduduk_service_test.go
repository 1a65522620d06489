package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"pendudukku_backend/internals/features/penduduk/dto"
)

func setupServiceMock(t *testing.T) (*PendudukService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
		WithoutReturning:     true,
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	return NewPendudukService(gdb), mock
}

func strPtr(s string) *string { return &s }

func validCreateReq() dto.CreatePendudukRequest {
	return dto.CreatePendudukRequest{
		Nama:         "Budi",
		JenisKelamin: "Laki-laki",
		Email:        "budi@x.com",
		Password:     "password1",
	}
}

/* ==========================
   CREATE
========================== */

func TestCreate_FieldValidationCollectsAllViolations(t *testing.T) {
	svc, mock := setupServiceMock(t)

	// semua field wajib kosong + nik salah panjang + password pendek
	_, err := svc.Create(context.Background(), dto.CreatePendudukRequest{
		NIK:      strPtr("123"),
		Email:    "bukan-email",
		Password: "pendek",
	}, nil)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "nama")
	assert.Contains(t, ve.Errors, "jenis_kelamin")
	assert.Contains(t, ve.Errors, "email")
	assert.Contains(t, ve.Errors, "password")
	assert.Contains(t, ve.Errors, "nik")

	// tidak boleh ada query/insert sama sekali
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmailPersistsNothing(t *testing.T) {
	svc, mock := setupServiceMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WithArgs("budi@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Create(context.Background(), validCreateReq(), nil)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "email")
	// tidak ada BEGIN/INSERT yang diharapkan → tidak ada mutasi
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateNIK(t *testing.T) {
	svc, mock := setupServiceMock(t)

	req := validCreateReq()
	req.NIK = strPtr("1234567890123456")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WithArgs("budi@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "penduduks"`).
		WithArgs("1234567890123456").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Create(context.Background(), req, nil)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "nik")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SuccessAppliesDefaults(t *testing.T) {
	svc, mock := setupServiceMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WithArgs("budi@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// akun + penduduk satu transaksi
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "penduduks"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// audit entry setelahnya (di luar transaksi mutasi)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "activity_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), validCreateReq(), nil)
	require.NoError(t, err)

	assert.Nil(t, resp.NIK)
	assert.Equal(t, "Indonesia", resp.Kewarganegaraan)
	assert.Equal(t, "budi@x.com", resp.Email)
	assert.Equal(t, "Budi", resp.Nama)
	assert.NotEmpty(t, resp.RegistrationDate)
	assert.NotEmpty(t, resp.RegistrationDateFormatted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RecordInsertFailureRollsBackAccount(t *testing.T) {
	svc, mock := setupServiceMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WithArgs("budi@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "penduduks"`).
		WillReturnError(errors.New("insert penduduk gagal"))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validCreateReq(), nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ==========================
   UPDATE
========================== */

func TestUpdate_NotFound(t *testing.T) {
	svc, mock := setupServiceMock(t)

	mock.ExpectQuery(`SELECT \* FROM "penduduks"`).
		WillReturnError(gorm.ErrRecordNotFound)

	err := svc.Update(context.Background(), uuid.New(), dto.UpdatePendudukRequest{
		Nama:         "Budi",
		JenisKelamin: "Laki-laki",
	}, nil)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_SameNIKExcludesSelf(t *testing.T) {
	svc, mock := setupServiceMock(t)

	id := uuid.New()
	userID := uuid.New()
	nik := "1234567890123456"

	mock.ExpectQuery(`SELECT \* FROM "penduduks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "nik", "nama", "jenis_kelamin", "kewarganegaraan"}).
			AddRow(id, userID, nik, "Budi", "Laki-laki", "Indonesia"))

	// cek unik NIK harus mengecualikan baris ini sendiri
	mock.ExpectQuery(`SELECT count\(\*\) FROM "penduduks"`).
		WithArgs(nik, id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "penduduks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "activity_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Update(context.Background(), id, dto.UpdatePendudukRequest{
		NIK:          &nik,
		Nama:         "Budi",
		JenisKelamin: "Laki-laki",
	}, nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ValidationLeavesDataUntouched(t *testing.T) {
	svc, mock := setupServiceMock(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "penduduks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "nama", "jenis_kelamin"}).
			AddRow(id, uuid.New(), "Budi", "Laki-laki"))

	err := svc.Update(context.Background(), id, dto.UpdatePendudukRequest{
		Nama:         "",
		JenisKelamin: "lainnya",
	}, nil)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "nama")
	assert.Contains(t, ve.Errors, "jenis_kelamin")
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ==========================
   DELETE
========================== */

func TestDelete_NotFound(t *testing.T) {
	svc, mock := setupServiceMock(t)

	mock.ExpectQuery(`SELECT \* FROM "penduduks"`).
		WillReturnError(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Audit entry WAJIB tercatat sebelum DELETE users dieksekusi
// (ekspektasi sqlmock bersifat ordered, jadi urutan ikut terverifikasi).
func TestDelete_WritesAuditBeforeDelete(t *testing.T) {
	svc, mock := setupServiceMock(t)

	id := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "penduduks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "nik", "nama", "jenis_kelamin"}).
			AddRow(id, userID, "1234567890123456", "Budi", "Laki-laki"))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "activity_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), id, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Kalau audit gagal ditulis, delete TIDAK boleh jalan.
func TestDelete_AbortsWhenAuditFails(t *testing.T) {
	svc, mock := setupServiceMock(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "penduduks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "nama", "jenis_kelamin"}).
			AddRow(id, uuid.New(), "Budi", "Laki-laki"))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "activity_logs"`).
		WillReturnError(errors.New("disk penuh"))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), id, nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ==========================
   LIST
========================== */

func TestList_SearchMatchesNamaOrEmail(t *testing.T) {
	svc, mock := setupServiceMock(t)

	id := uuid.New()
	userID := uuid.New()
	registered := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "penduduks" JOIN users`).
		WithArgs("%budi%", "%budi%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT penduduks\.\*, users\.email AS email, users\.created_at AS user_created_at FROM "penduduks" JOIN users`).
		WithArgs("%budi%", "%budi%").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "nama", "jenis_kelamin", "kewarganegaraan",
			"tanggal_lahir", "created_at", "email", "user_created_at",
		}).AddRow(id, userID, "Budi", "Laki-laki", "Indonesia",
			registered, registered, "budi@x.com", registered))

	rows, pagination, err := svc.List(context.Background(), ListQuery{
		Search:  "budi",
		Page:    1,
		PerPage: 10,
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Budi", rows[0].Nama)
	assert.Equal(t, "budi@x.com", rows[0].Email)
	assert.Equal(t, "2025-03-01 10:00:00", rows[0].RegistrationDate)
	assert.Contains(t, rows[0].RegistrationDateFormatted, "yang lalu")
	assert.Equal(t, int64(1), pagination.Total)
	assert.Equal(t, 1, pagination.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_WithoutSearchSkipsFilter(t *testing.T) {
	svc, mock := setupServiceMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "penduduks" JOIN users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT penduduks\.\*, users\.email AS email, users\.created_at AS user_created_at FROM "penduduks" JOIN users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, pagination, err := svc.List(context.Background(), ListQuery{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int64(0), pagination.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ==========================
   GET BY ID
========================== */

func TestGetByID_NotFound(t *testing.T) {
	svc, mock := setupServiceMock(t)

	mock.ExpectQuery(`SELECT penduduks\.\*, users\.email AS email, users\.created_at AS user_created_at FROM "penduduks" JOIN users`).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_EnrichesWithAccountData(t *testing.T) {
	svc, mock := setupServiceMock(t)

	id := uuid.New()
	registered := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT penduduks\.\*, users\.email AS email, users\.created_at AS user_created_at FROM "penduduks" JOIN users`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "nama", "jenis_kelamin", "kewarganegaraan", "email", "user_created_at",
		}).AddRow(id, uuid.New(), "Budi", "Laki-laki", "Indonesia", "budi@x.com", registered))

	resp, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "budi@x.com", resp.Email)
	assert.Equal(t, "2025-03-01 10:00:00", resp.RegistrationDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
