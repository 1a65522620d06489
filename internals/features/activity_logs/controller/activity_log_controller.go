package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pendudukku_backend/internals/features/activity_logs/model"
	helpers "pendudukku_backend/internals/helpers"
)

type ActivityLogController struct {
	DB *gorm.DB
}

func NewActivityLogController(db *gorm.DB) *ActivityLogController {
	return &ActivityLogController{DB: db}
}

// GetAll menampilkan audit trail untuk admin (terbaru dulu, filter ?action=)
func (ctrl *ActivityLogController) GetAll(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 20, 100)
	action := strings.TrimSpace(c.Query("action"))

	base := ctrl.DB.WithContext(c.UserContext()).Model(&model.ActivityLogModel{})
	if action != "" {
		base = base.Where("action = ?", action)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil activity log")
	}

	var logs []model.ActivityLogModel
	if err := base.
		Order("created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&logs).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil activity log")
	}

	pagination := helpers.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(logs)
	return helpers.JsonList(c, "ok", logs, pagination)
}
