package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pendudukku_backend/internals/configs"
	"pendudukku_backend/internals/constants"
	activityService "pendudukku_backend/internals/features/activity_logs/service"
	"pendudukku_backend/internals/features/penduduk/dto"
	"pendudukku_backend/internals/features/penduduk/model"
	authHelper "pendudukku_backend/internals/features/users/auth/helper"
	userModel "pendudukku_backend/internals/features/users/user/model"
	helpers "pendudukku_backend/internals/helpers"
)

type PendudukService struct {
	DB  *gorm.DB
	Log *activityService.ActivityLogService
}

func NewPendudukService(db *gorm.DB) *PendudukService {
	return &PendudukService{
		DB:  db,
		Log: activityService.NewActivityLogService(db),
	}
}

type ListQuery struct {
	Search  string
	Page    int
	PerPage int
}

// row hasil join penduduks + users
type pendudukJoinRow struct {
	model.PendudukModel
	Email         string    `gorm:"column:email"`
	UserCreatedAt time.Time `gorm:"column:user_created_at"`
}

/* ==========================
   LIST (search + pagination)
========================== */

// List mengembalikan satu halaman penduduk, registrasi terbaru dulu.
// Search mencocokkan nama penduduk ATAU email akun (case-insensitive).
func (s *PendudukService) List(ctx context.Context, q ListQuery) ([]dto.PendudukResponse, helpers.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 10
	}

	base := s.DB.WithContext(ctx).
		Model(&model.PendudukModel{}).
		Joins("JOIN users ON users.id = penduduks.user_id")

	if search := strings.TrimSpace(q.Search); search != "" {
		like := "%" + search + "%"
		base = base.Where("penduduks.nama ILIKE ? OR users.email ILIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, helpers.Pagination{}, err
	}

	var rows []pendudukJoinRow
	if err := base.
		Select("penduduks.*, users.email AS email, users.created_at AS user_created_at").
		Order("penduduks.created_at DESC").
		Limit(q.PerPage).
		Offset((q.Page - 1) * q.PerPage).
		Scan(&rows).Error; err != nil {
		return nil, helpers.Pagination{}, err
	}

	now := time.Now()
	out := make([]dto.PendudukResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toResponse(r, now))
	}

	pagination := helpers.BuildPaginationFromPage(total, q.Page, q.PerPage)
	pagination.Count = len(out)
	return out, pagination, nil
}

/* ==========================
   GET BY ID
========================== */

func (s *PendudukService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PendudukResponse, error) {
	var row pendudukJoinRow
	err := s.DB.WithContext(ctx).
		Model(&model.PendudukModel{}).
		Joins("JOIN users ON users.id = penduduks.user_id").
		Select("penduduks.*, users.email AS email, users.created_at AS user_created_at").
		Where("penduduks.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resp := toResponse(row, time.Now())
	return &resp, nil
}

/* ==========================
   CREATE (akun + penduduk, satu transaksi)
========================== */

func (s *PendudukService) Create(ctx context.Context, req dto.CreatePendudukRequest, actorID *uuid.UUID) (*dto.PendudukResponse, error) {
	fieldErrs := dto.ValidateStruct(req)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Cek unik hanya kalau bentuk field-nya sudah benar,
	// supaya semua pelanggaran terkumpul dalam satu response.
	if len(fieldErrs["email"]) == 0 {
		taken, err := s.emailTaken(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			addFieldError(fieldErrs, "email", "Email sudah terdaftar.")
		}
	}
	if req.NIK != nil && len(fieldErrs["nik"]) == 0 {
		taken, err := s.nikTaken(ctx, *req.NIK, nil)
		if err != nil {
			return nil, err
		}
		if taken {
			addFieldError(fieldErrs, "nik", "NIK sudah terdaftar.")
		}
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Errors: fieldErrs}
	}

	passwordHash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := userModel.UserModel{
		ID:        uuid.New(),
		Name:      req.Nama,
		Email:     email,
		Password:  passwordHash,
		Role:      constants.RolePenduduk,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	penduduk := model.PendudukModel{
		ID:               uuid.New(),
		UserID:           user.ID,
		NIK:              req.NIK,
		Nama:             req.Nama,
		Alamat:           req.Alamat,
		JenisKelamin:     req.JenisKelamin,
		TempatLahir:      req.TempatLahir,
		TanggalLahir:     parseTanggalLahir(req.TanggalLahir, now),
		Agama:            req.Agama,
		StatusPerkawinan: req.StatusPerkawinan,
		Pekerjaan:        req.Pekerjaan,
		Kewarganegaraan:  defaultKewarganegaraan(req.Kewarganegaraan),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Akun + penduduk harus jadi satu kesatuan: gagal insert penduduk
	// → insert user ikut di-rollback.
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&penduduk).Error
	})
	if err != nil {
		// Race dengan request lain: unique constraint DB tetap jadi pagar terakhir
		if helpers.IsUniqueViolation(err) {
			return nil, &ValidationError{Errors: map[string][]string{
				"email": {"Email atau NIK sudah terdaftar."},
			}}
		}
		return nil, err
	}

	if err := s.Log.LogPendudukActivity(ctx, actorID, "create_penduduk",
		"Menambahkan penduduk baru: "+penduduk.Nama, penduduk.ID,
		map[string]any{"nama": penduduk.Nama, "email": user.Email},
	); err != nil {
		log.Printf("[WARN] gagal tulis activity log create_penduduk: %v", err)
	}

	resp := toResponse(pendudukJoinRow{
		PendudukModel: penduduk,
		Email:         user.Email,
		UserCreatedAt: user.CreatedAt,
	}, now)
	return &resp, nil
}

/* ==========================
   UPDATE (sinkron nama akun, satu transaksi)
========================== */

func (s *PendudukService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePendudukRequest, actorID *uuid.UUID) error {
	var existing model.PendudukModel
	if err := s.DB.WithContext(ctx).Take(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	fieldErrs := dto.ValidateStruct(req)

	// Cek unik NIK dengan pengecualian baris ini sendiri
	if req.NIK != nil && len(fieldErrs["nik"]) == 0 {
		taken, err := s.nikTaken(ctx, *req.NIK, &id)
		if err != nil {
			return err
		}
		if taken {
			addFieldError(fieldErrs, "nik", "NIK sudah terdaftar.")
		}
	}

	if len(fieldErrs) > 0 {
		return &ValidationError{Errors: fieldErrs}
	}

	now := time.Now()
	updates := map[string]any{
		"nik":               req.NIK,
		"nama":              req.Nama,
		"alamat":            req.Alamat,
		"jenis_kelamin":     req.JenisKelamin,
		"tempat_lahir":      req.TempatLahir,
		"agama":             req.Agama,
		"status_perkawinan": req.StatusPerkawinan,
		"pekerjaan":         req.Pekerjaan,
		"kewarganegaraan":   defaultKewarganegaraan(req.Kewarganegaraan),
		"updated_at":        now,
	}
	if req.TanggalLahir != nil {
		updates["tanggal_lahir"] = parseTanggalLahir(req.TanggalLahir, now)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Nama akun dijaga tetap sinkron dengan nama penduduk
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", existing.UserID).
			Update("name", req.Nama).Error; err != nil {
			return err
		}
		return tx.Model(&model.PendudukModel{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
	if err != nil {
		if helpers.IsUniqueViolation(err) {
			return &ValidationError{Errors: map[string][]string{
				"nik": {"NIK sudah terdaftar."},
			}}
		}
		return err
	}

	var nik any
	if req.NIK != nil {
		nik = *req.NIK
	}
	if err := s.Log.LogPendudukActivity(ctx, actorID, "update_penduduk",
		"Memperbarui data penduduk: "+req.Nama, id,
		map[string]any{"nama": req.Nama, "nik": nik},
	); err != nil {
		log.Printf("[WARN] gagal tulis activity log update_penduduk: %v", err)
	}

	return nil
}

/* ==========================
   DELETE (audit dulu, baru hapus akun → cascade)
========================== */

func (s *PendudukService) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	var existing model.PendudukModel
	if err := s.DB.WithContext(ctx).Take(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Audit HARUS tercatat sebelum delete yang irreversible dieksekusi,
	// supaya jejaknya selamat walau proses mati di tengah jalan.
	var nik any
	if existing.NIK != nil {
		nik = *existing.NIK
	}
	if err := s.Log.LogPendudukActivity(ctx, actorID, "delete_penduduk",
		"Menghapus penduduk: "+existing.Nama, existing.ID,
		map[string]any{"nama": existing.Nama, "nik": nik},
	); err != nil {
		return err
	}

	// Hapus user → baris penduduk ikut terhapus via FK cascade
	return s.DB.WithContext(ctx).
		Delete(&userModel.UserModel{}, "id = ?", existing.UserID).Error
}

/* ==========================
   Helpers
========================== */

func (s *PendudukService) emailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("email = ?", email).
		Count(&n).Error
	return n > 0, err
}

// nikTaken cek unik NIK; excludeID mengecualikan baris penduduk itu
// sendiri (assign ulang NIK yang sama ke record yang sama itu sah).
func (s *PendudukService) nikTaken(ctx context.Context, nik string, excludeID *uuid.UUID) (bool, error) {
	q := s.DB.WithContext(ctx).
		Model(&model.PendudukModel{}).
		Where("nik = ?", nik)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func parseTanggalLahir(raw *string, fallback time.Time) time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*raw))
	if err != nil {
		return fallback
	}
	return t
}

func defaultKewarganegaraan(raw *string) string {
	if raw != nil && strings.TrimSpace(*raw) != "" {
		return strings.TrimSpace(*raw)
	}
	if configs.DefaultNationality != "" {
		return configs.DefaultNationality
	}
	return "Indonesia"
}

func toResponse(r pendudukJoinRow, now time.Time) dto.PendudukResponse {
	return dto.PendudukResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		NIK:              r.NIK,
		Nama:             r.Nama,
		Alamat:           r.Alamat,
		JenisKelamin:     r.JenisKelamin,
		TempatLahir:      r.TempatLahir,
		TanggalLahir:     r.TanggalLahir,
		Agama:            r.Agama,
		StatusPerkawinan: r.StatusPerkawinan,
		Pekerjaan:        r.Pekerjaan,
		Kewarganegaraan:  r.Kewarganegaraan,
		CreatedAt:        r.CreatedAt,

		Email:                     r.Email,
		RegistrationDate:          helpers.FormatRegistrationDate(r.UserCreatedAt),
		RegistrationDateFormatted: helpers.TimeAgo(r.UserCreatedAt, now),
	}
}
