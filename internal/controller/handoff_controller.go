package controller

import (
	"mindwel-be/internal/dto"
	"mindwel-be/internal/pkg/serverutils"
	"mindwel-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IHandoffController exposes the counselor-facing handoff operations. The
// live feed runs over websocket and is registered by the handoff handler,
// not here.
type IHandoffController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
}

type handoffController struct {
	handoffService service.IHandoffService
}

func NewHandoffController(handoffService service.IHandoffService) IHandoffController {
	return &handoffController{
		handoffService: handoffService,
	}
}

func (c *handoffController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/handoff/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id/status", c.UpdateStatus)
}

func (c *handoffController) List(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	res, err := c.handoffService.List(ctx.Context(), status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Handoffs", res))
}

func (c *handoffController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid handoff ID"))
	}

	res, err := c.handoffService.GetById(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Handoff not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Handoff details", res))
}

func (c *handoffController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid handoff ID"))
	}

	var req dto.UpdateHandoffStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.handoffService.UpdateStatus(ctx.Context(), id, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Handoff not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Handoff updated", res))
}
