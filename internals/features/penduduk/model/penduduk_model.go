package model

import (
	"time"

	"github.com/google/uuid"

	userModel "pendudukku_backend/internals/features/users/user/model"
)

// PendudukModel merepresentasikan tabel penduduks.
// Satu akun user maksimal punya satu baris penduduk (user_id unique);
// hapus user → baris penduduk ikut terhapus (FK ON DELETE CASCADE,
// dideklarasikan eksplisit di migration).
type PendudukModel struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`

	User *userModel.UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	NIK              *string   `gorm:"column:nik;size:16;unique" json:"nik,omitempty"`
	Nama             string    `gorm:"size:255;not null" json:"nama"`
	Alamat           *string   `gorm:"type:text" json:"alamat,omitempty"`
	JenisKelamin     string    `gorm:"size:20;not null" json:"jenis_kelamin"`
	TempatLahir      *string   `gorm:"size:255" json:"tempat_lahir,omitempty"`
	TanggalLahir     time.Time `gorm:"type:date;not null" json:"tanggal_lahir"`
	Agama            *string   `gorm:"size:255" json:"agama,omitempty"`
	StatusPerkawinan *string   `gorm:"size:255" json:"status_perkawinan,omitempty"`
	Pekerjaan        *string   `gorm:"size:255" json:"pekerjaan,omitempty"`
	Kewarganegaraan  string    `gorm:"size:255;not null;default:'Indonesia'" json:"kewarganegaraan"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (PendudukModel) TableName() string {
	return "penduduks"
}
