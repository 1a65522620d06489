// file: internals/features/penduduk/route/admin_route.go
package route

import (
	controller "pendudukku_backend/internals/features/penduduk/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRoutes dipasang di bawah group admin (sudah lewat Auth + RoleCheck)
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPendudukController(db)

	admin.Get("/penduduk", ctrl.GetAll)
	admin.Post("/penduduk", ctrl.Create)
	admin.Get("/penduduk/:id", ctrl.GetByID)
	admin.Put("/penduduk/:id", ctrl.Update)
	admin.Delete("/penduduk/:id", ctrl.Delete)
}
