package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pendudukku_backend/internals/features/penduduk/dto"
	"pendudukku_backend/internals/features/penduduk/service"
	helpers "pendudukku_backend/internals/helpers"
)

type PendudukController struct {
	Service *service.PendudukService
}

func NewPendudukController(db *gorm.DB) *PendudukController {
	return &PendudukController{Service: service.NewPendudukService(db)}
}

// GetAll menampilkan daftar penduduk (search + pagination)
func (ctrl *PendudukController) GetAll(c *fiber.Ctx) error {
	paging := helpers.ResolvePaging(c, 10, 100)

	data, pagination, err := ctrl.Service.List(c.UserContext(), service.ListQuery{
		Search:  c.Query("search"),
		Page:    paging.Page,
		PerPage: paging.PerPage,
	})
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data penduduk")
	}

	return helpers.JsonList(c, "ok", data, pagination)
}

// GetByID menampilkan satu penduduk
func (ctrl *PendudukController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	data, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Penduduk tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data penduduk")
	}

	return helpers.JsonOK(c, "ok", data)
}

// Create menambahkan penduduk baru (akun + data penduduk)
func (ctrl *PendudukController) Create(c *fiber.Ctx) error {
	var req dto.CreatePendudukRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	data, err := ctrl.Service.Create(c.UserContext(), req, actorID(c))
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return helpers.JsonValidationError(c, ve.Errors)
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menambahkan penduduk")
	}

	return helpers.JsonCreated(c, "Penduduk berhasil ditambahkan.", data)
}

// Update memperbarui data penduduk (nama akun ikut sinkron)
func (ctrl *PendudukController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdatePendudukRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := ctrl.Service.Update(c.UserContext(), id, req, actorID(c)); err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return helpers.JsonValidationError(c, ve.Errors)
		}
		if errors.Is(err, service.ErrNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Penduduk tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui penduduk")
	}

	return helpers.JsonUpdated(c, "Penduduk berhasil diperbarui.", nil)
}

// Delete menghapus penduduk (hapus akun → cascade ke data penduduk)
func (ctrl *PendudukController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.Service.Delete(c.UserContext(), id, actorID(c)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Penduduk tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus penduduk")
	}

	return helpers.JsonDeleted(c, "Penduduk berhasil dihapus.", fiber.Map{
		"deleted_id": id,
	})
}

// actorID ambil user_id admin dari Locals (diisi auth middleware)
func actorID(c *fiber.Ctx) *uuid.UUID {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
