package penduduk

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pendudukku_backend/internals/constants"
	"pendudukku_backend/internals/features/penduduk/model"
	authHelper "pendudukku_backend/internals/features/users/auth/helper"
	userModel "pendudukku_backend/internals/features/users/user/model"
)

type PendudukSeed struct {
	Nama             string  `json:"nama"`
	NIK              *string `json:"nik"`
	JenisKelamin     string  `json:"jenis_kelamin"`
	TempatLahir      *string `json:"tempat_lahir"`
	TanggalLahir     string  `json:"tanggal_lahir"` // YYYY-MM-DD
	Alamat           *string `json:"alamat"`
	Agama            *string `json:"agama"`
	StatusPerkawinan *string `json:"status_perkawinan"`
	Pekerjaan        *string `json:"pekerjaan"`
	Kewarganegaraan  string  `json:"kewarganegaraan"`
	Email            string  `json:"email"`
	Password         string  `json:"password"`
}

func SeedPenduduksFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file penduduk:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []PendudukSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing userModel.UserModel
		if err := db.Where("email = ?", data.Email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Penduduk dengan email '%s' sudah ada, dilewati.", data.Email)
			continue
		}

		hashedPassword, err := authHelper.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", data.Email, err)
			continue
		}

		tanggalLahir, err := time.Parse("2006-01-02", data.TanggalLahir)
		if err != nil {
			tanggalLahir = time.Now()
		}
		kewarganegaraan := data.Kewarganegaraan
		if kewarganegaraan == "" {
			kewarganegaraan = "Indonesia"
		}

		now := time.Now()
		newUser := userModel.UserModel{
			ID:        uuid.New(),
			Name:      data.Nama,
			Email:     data.Email,
			Password:  hashedPassword,
			Role:      constants.RolePenduduk,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		newPenduduk := model.PendudukModel{
			ID:               uuid.New(),
			UserID:           newUser.ID,
			NIK:              data.NIK,
			Nama:             data.Nama,
			Alamat:           data.Alamat,
			JenisKelamin:     data.JenisKelamin,
			TempatLahir:      data.TempatLahir,
			TanggalLahir:     tanggalLahir,
			Agama:            data.Agama,
			StatusPerkawinan: data.StatusPerkawinan,
			Pekerjaan:        data.Pekerjaan,
			Kewarganegaraan:  kewarganegaraan,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		// akun + penduduk satu transaksi, sama seperti alur create admin
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&newUser).Error; err != nil {
				return err
			}
			return tx.Create(&newPenduduk).Error
		})
		if err != nil {
			log.Printf("❌ Gagal insert penduduk '%s': %v", data.Email, err)
		} else {
			log.Printf("✅ Berhasil insert penduduk '%s'", data.Email)
		}
	}
}
