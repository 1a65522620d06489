package dto

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validator instance (pakai nama field dari json tag biar error map
// langsung cocok dengan input form di frontend)
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreatePendudukRequest payload tambah penduduk (admin):
// akun user + data penduduk dibuat sebagai satu kesatuan.
type CreatePendudukRequest struct {
	NIK              *string `json:"nik" validate:"omitempty,len=16"`
	Nama             string  `json:"nama" validate:"required,max=255"`
	Alamat           *string `json:"alamat"`
	JenisKelamin     string  `json:"jenis_kelamin" validate:"required,oneof=Laki-laki Perempuan"`
	TempatLahir      *string `json:"tempat_lahir" validate:"omitempty,max=255"`
	TanggalLahir     *string `json:"tanggal_lahir" validate:"omitempty,datetime=2006-01-02"`
	Agama            *string `json:"agama" validate:"omitempty,max=255"`
	StatusPerkawinan *string `json:"status_perkawinan" validate:"omitempty,max=255"`
	Pekerjaan        *string `json:"pekerjaan" validate:"omitempty,max=255"`
	Kewarganegaraan  *string `json:"kewarganegaraan" validate:"omitempty,max=255"`
	Email            string  `json:"email" validate:"required,email,max=255"`
	Password         string  `json:"password" validate:"required,min=8"`
}

// UpdatePendudukRequest payload ubah penduduk: sama dengan create
// minus email/password (akun tidak diganti lewat form ini).
type UpdatePendudukRequest struct {
	NIK              *string `json:"nik" validate:"omitempty,len=16"`
	Nama             string  `json:"nama" validate:"required,max=255"`
	Alamat           *string `json:"alamat"`
	JenisKelamin     string  `json:"jenis_kelamin" validate:"required,oneof=Laki-laki Perempuan"`
	TempatLahir      *string `json:"tempat_lahir" validate:"omitempty,max=255"`
	TanggalLahir     *string `json:"tanggal_lahir" validate:"omitempty,datetime=2006-01-02"`
	Agama            *string `json:"agama" validate:"omitempty,max=255"`
	StatusPerkawinan *string `json:"status_perkawinan" validate:"omitempty,max=255"`
	Pekerjaan        *string `json:"pekerjaan" validate:"omitempty,max=255"`
	Kewarganegaraan  *string `json:"kewarganegaraan" validate:"omitempty,max=255"`
}

// PendudukResponse baris tabel admin: data penduduk + email akun +
// tanggal registrasi (absolut dan relatif) dari users.created_at.
type PendudukResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	NIK              *string   `json:"nik"`
	Nama             string    `json:"nama"`
	Alamat           *string   `json:"alamat"`
	JenisKelamin     string    `json:"jenis_kelamin"`
	TempatLahir      *string   `json:"tempat_lahir"`
	TanggalLahir     time.Time `json:"tanggal_lahir"`
	Agama            *string   `json:"agama"`
	StatusPerkawinan *string   `json:"status_perkawinan"`
	Pekerjaan        *string   `json:"pekerjaan"`
	Kewarganegaraan  string    `json:"kewarganegaraan"`
	CreatedAt        time.Time `json:"created_at"`

	Email                     string `json:"email"`
	RegistrationDate          string `json:"registration_date"`
	RegistrationDateFormatted string `json:"registration_date_formatted"`
}

// ValidateStruct jalankan validator dan kembalikan map error per field
// (kunci = nama json, nilai = daftar pesan Bahasa Indonesia).
func ValidateStruct(s any) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return map[string][]string{}
	}

	out := map[string][]string{}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"Format tidak valid."}
		return out
	}

	for _, fieldErr := range validationErrs {
		field := fieldErr.Field()
		var msg string
		switch fieldErr.Tag() {
		case "required":
			msg = "Kolom " + field + " wajib diisi."
		case "email":
			msg = "Format email tidak valid."
		case "min":
			msg = "Kolom " + field + " harus minimal " + fieldErr.Param() + " karakter."
		case "max":
			msg = "Kolom " + field + " harus kurang dari " + fieldErr.Param() + " karakter."
		case "len":
			msg = "Kolom " + field + " harus tepat " + fieldErr.Param() + " karakter."
		case "oneof":
			msg = "Kolom " + field + " harus salah satu dari: " + fieldErr.Param() + "."
		case "datetime":
			msg = "Format tanggal tidak valid (YYYY-MM-DD)."
		default:
			msg = "Format tidak valid."
		}
		out[field] = append(out[field], msg)
	}
	return out
}
