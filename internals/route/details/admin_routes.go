package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pendudukku_backend/internals/constants"
	activityLogRoute "pendudukku_backend/internals/features/activity_logs/route"
	pendudukRoute "pendudukku_backend/internals/features/penduduk/route"
	authMiddleware "pendudukku_backend/internals/middlewares/auth"
)

// AdminRoutes: semua endpoint manajemen di bawah /api/a,
// digate JWT + role admin.
func AdminRoutes(app *fiber.App, db *gorm.DB) {
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(
			constants.RoleErrorAdmin("manajemen penduduk"),
			constants.RoleAdmin,
		),
	)

	pendudukRoute.AdminRoutes(admin, db)
	activityLogRoute.AdminRoutes(admin, db)
}
