// file: internals/features/activity_logs/route/admin_route.go
package route

import (
	controller "pendudukku_backend/internals/features/activity_logs/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRoutes dipasang di bawah group admin (sudah lewat Auth + RoleCheck)
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewActivityLogController(db)

	admin.Get("/activity-logs", ctrl.GetAll)
}
