package controller

import (
	"niv-scholar-be/internal/pkg/serverutils"
	"niv-scholar-be/internal/service"
	"niv-scholar-be/pkg/scholar/preference"

	"github.com/gofiber/fiber/v2"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type preferenceController struct {
	service service.IPreferenceService
}

func NewPreferenceController(service service.IPreferenceService) IPreferenceController {
	return &preferenceController{service: service}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/preferences")
	h.Use(serverutils.ClientIDMiddleware)
	h.Get("", c.Show)
	h.Put("", c.Update)
}

func (c *preferenceController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.UserContext(), serverutils.ClientID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get preferences", res))
}

func (c *preferenceController) Update(ctx *fiber.Ctx) error {
	var req preference.Preferences
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ErrInvalidBody
	}

	res, err := c.service.Update(ctx.UserContext(), serverutils.ClientID(ctx), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update preferences", res))
}
