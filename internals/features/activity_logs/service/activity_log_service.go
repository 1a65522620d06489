package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pendudukku_backend/internals/features/activity_logs/model"
)

type ActivityLogService struct {
	DB *gorm.DB
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{DB: db}
}

// LogPendudukActivity mencatat satu aksi admin atas data penduduk.
// Catatan: insert log TIDAK dibungkus transaksi yang sama dengan mutasinya,
// jadi kalau proses mati di antara keduanya, log dan data bisa tidak sinkron.
func (s *ActivityLogService) LogPendudukActivity(
	ctx context.Context,
	actorID *uuid.UUID,
	action string,
	description string,
	pendudukID uuid.UUID,
	metadata map[string]any,
) error {
	var payload datatypes.JSON
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(raw)
	}

	entry := model.ActivityLogModel{
		ID:          uuid.New(),
		UserID:      actorID,
		Action:      action,
		Description: description,
		SubjectID:   &pendudukID,
		Metadata:    payload,
		CreatedAt:   time.Now(),
	}
	return s.DB.WithContext(ctx).Create(&entry).Error
}
