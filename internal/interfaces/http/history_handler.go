package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// HistoryHandler consultas del libro de movimientos (protegido; listado global y reporte solo admin).
type HistoryHandler struct {
	uc *usecase.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        productID  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Límite"
// @Param        offset     query  int     false  "Offset"
// @Success      200  {array}  dto.HistoryResponse
// @Router       /api/history/product/{productID} [get]
func (h *HistoryHandler) ListByProduct(c *fiber.Ctx) error {
	productID := c.Params("productID")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productID es requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.ListByProduct(productID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"history": out, "total": len(out)})
}

// List godoc
// @Summary      Historial global de movimientos (solo admin)
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Fecha inicial (RFC 3339 o 2006-01-02)"
// @Param        to      query  string  false  "Fecha final (RFC 3339 o 2006-01-02)"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.HistoryListResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	from, to, err := dateRangeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "formato de fecha inválido"})
	}
	out, err := h.uc.List(from, to, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF del historial de movimientos (solo admin)
// @Tags         history
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Fecha inicial"
// @Param        to    query  string  false  "Fecha final"
// @Success      200  {file}  binary
// @Router       /api/history/report [get]
func (h *HistoryHandler) Report(c *fiber.Ctx) error {
	from, to, err := dateRangeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "formato de fecha inválido"})
	}
	pdfBytes, err := h.uc.Report(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.pdf"`)
	return c.Send(pdfBytes)
}

// dateRangeQuery parsea from/to aceptando RFC 3339 o fecha simple (2006-01-02).
func dateRangeQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	parse := func(s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t, nil
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	if from, err = parse(c.Query("from")); err != nil {
		return nil, nil, err
	}
	if to, err = parse(c.Query("to")); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
