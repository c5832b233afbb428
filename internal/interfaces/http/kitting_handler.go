package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
)

// KittingHandler factibilidad y armado de kits (protegido).
type KittingHandler struct {
	uc *inventory.KittingUseCase
}

// NewKittingHandler construye el handler.
func NewKittingHandler(uc *inventory.KittingUseCase) *KittingHandler {
	return &KittingHandler{uc: uc}
}

// Options godoc
// @Summary      Kits armables por producto
// @Description  Se recalcula en cada consulta contra el stock vigente.
// @Tags         kitting
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.KittingOptionDTO
// @Router       /api/kitting/options [get]
func (h *KittingHandler) Options(c *fiber.Ctx) error {
	out, err := h.uc.OptionsResponse(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Execute godoc
// @Summary      Armar kits
// @Description  Consume los componentes y luego ingresa el producto terminado. No revierte consumos:
//
//	el campo status (success | warning | failure) resume el resultado por pasos.
//
// @Tags         kitting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExecuteKitRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.KitExecutionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kitting/execute [post]
func (h *KittingHandler) Execute(c *fiber.Ctx) error {
	var in dto.ExecuteKitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ExecuteFromRequest(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
