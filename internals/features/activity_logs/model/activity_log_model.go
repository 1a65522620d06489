package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLogModel merepresentasikan tabel activity_logs (append-only).
// Baris tidak pernah di-update atau dihapus oleh aplikasi.
type ActivityLogModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      *uuid.UUID     `gorm:"type:uuid" json:"user_id,omitempty"` // aktor (null = sistem)
	Action      string         `gorm:"size:100;not null" json:"action"`
	Description string         `gorm:"type:text;not null" json:"description"`
	SubjectID   *uuid.UUID     `gorm:"type:uuid" json:"subject_id,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
