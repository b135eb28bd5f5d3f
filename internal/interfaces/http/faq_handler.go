package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// FAQHandler maneja las peticiones HTTP para FAQ (lectura pública, mutaciones solo admin).
type FAQHandler struct {
	uc *usecase.FAQUseCase
}

// NewFAQHandler construye el handler.
func NewFAQHandler(uc *usecase.FAQUseCase) *FAQHandler {
	return &FAQHandler{uc: uc}
}

// Create godoc
// @Summary      Crear FAQ (solo admin)
// @Tags         faqs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FAQRequest  true  "title, description"
// @Success      201   {object}  dto.FAQResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/faqs [post]
func (h *FAQHandler) Create(c *fiber.Ctx) error {
	var in dto.FAQRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title y description son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar FAQs
// @Tags         faqs
// @Produce      json
// @Success      200  {array}  dto.FAQResponse
// @Router       /api/faqs [get]
func (h *FAQHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"faqs": out})
}

// Update godoc
// @Summary      Actualizar FAQ (solo admin)
// @Tags         faqs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la FAQ"
// @Param        body  body  dto.FAQRequest  true  "title, description"
// @Success      200   {object}  dto.FAQResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/faqs/{id} [put]
func (h *FAQHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.FAQRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title y description son requeridos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "FAQ no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar FAQ (solo admin)
// @Tags         faqs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la FAQ"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/faqs/{id} [delete]
func (h *FAQHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "FAQ no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "FAQ eliminada"})
}
