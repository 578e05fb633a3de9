package controller

import (
	"niv-scholar-be/internal/dto"
	"niv-scholar-be/internal/pkg/serverutils"
	"niv-scholar-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInsightController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type insightController struct {
	service service.IInsightService
}

func NewInsightController(service service.IInsightService) IInsightController {
	return &insightController{service: service}
}

func (c *insightController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/insights")
	h.Use(serverutils.ClientIDMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
}

func (c *insightController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext(), serverutils.ClientID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get insights", res))
}

func (c *insightController) Create(ctx *fiber.Ctx) error {
	var req dto.SaveInsightRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrInvalidBody
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.VerseContext != nil {
		if err := req.VerseContext.Validate(); err != nil {
			return &serverutils.ValidationError{Field: "VerseContext", Tag: "verse", Message: err.Error()}
		}
	}

	res, err := c.service.Save(ctx.UserContext(), serverutils.ClientID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Insight saved to your study notebook", res))
}
