package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// AlertsHandler vistas de stock bajo y vencimientos, exportaciones y avisos.
type AlertsHandler struct {
	uc  *inventory.AlertsUseCase
	log *logger.Logger
}

func NewAlertsHandler(uc *inventory.AlertsUseCase, log *logger.Logger) *AlertsHandler {
	return &AlertsHandler{uc: uc, log: log}
}

// LowStock godoc
// @Summary      Productos con cantidad <= mínimo
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        warehouse  query  string  false  "ID de bodega"
// @Success      200  {object}  dto.LowStockResponse
// @Router       /api/alerts/low-stock [get]
func (h *AlertsHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), c.Query("warehouse"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportLowStock godoc
// @Summary      Exportar stock bajo
// @Tags         alerts
// @Security     Bearer
// @Produce      octet-stream
// @Param        warehouse  query  string  false  "ID de bodega"
// @Param        format     query  string  false  "csv | xlsx"  default(csv)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/low-stock/export [get]
func (h *AlertsHandler) ExportLowStock(c *fiber.Ctx) error {
	var q dto.ExportQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	exp, err := h.uc.ExportLowStock(c.UserContext(), c.Query("warehouse"), q.Format)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendExport(c, exp)
}

// Expiry godoc
// @Summary      Lotes vencidos o por vencer
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        warehouse  query  string  false  "ID de bodega"
// @Success      200  {object}  dto.ExpiryResponse
// @Router       /api/alerts/expiry [get]
func (h *AlertsHandler) Expiry(c *fiber.Ctx) error {
	out, err := h.uc.Expiry(c.UserContext(), c.Query("warehouse"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportExpiry godoc
// @Summary      Exportar vencimientos
// @Tags         alerts
// @Security     Bearer
// @Produce      octet-stream
// @Param        warehouse  query  string  false  "ID de bodega"
// @Param        format     query  string  false  "csv | xlsx"  default(csv)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/alerts/expiry/export [get]
func (h *AlertsHandler) ExportExpiry(c *fiber.Ctx) error {
	var q dto.ExportQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	exp, err := h.uc.ExportExpiry(c.UserContext(), c.Query("warehouse"), q.Format)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendExport(c, exp)
}

// NotifyExpiry godoc
// @Summary      Generar avisos de vencimiento para el usuario
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        warehouse  query  string  false  "ID de bodega"
// @Success      200  {object}  dto.NotifyResponse
// @Router       /api/alerts/expiry/notify [post]
func (h *AlertsHandler) NotifyExpiry(c *fiber.Ctx) error {
	out, err := h.uc.NotifyExpiry(c.UserContext(), GetUserID(c), c.Query("warehouse"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func sendExport(c *fiber.Ctx, exp *inventory.Export) error {
	c.Set(fiber.HeaderContentType, exp.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, exp.Filename))
	return c.Send(exp.Content)
}
