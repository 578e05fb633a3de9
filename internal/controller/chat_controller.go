package controller

import (
	"niv-scholar-be/internal/dto"
	"niv-scholar-be/internal/pkg/serverutils"
	"niv-scholar-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.All("/chat", c.Chat)
}

// Chat proxies one completion request. Checks run in a fixed order: method,
// then credential, then body.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	if ctx.Method() != fiber.MethodPost {
		ctx.Set(fiber.HeaderAllow, fiber.MethodPost)
		return fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed")
	}

	if err := c.service.Ready(); err != nil {
		return err
	}

	var req dto.ChatRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return serverutils.ErrInvalidBody
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.VerseContext != nil {
		if err := req.VerseContext.Validate(); err != nil {
			return &serverutils.ValidationError{Field: "VerseContext", Tag: "verse", Message: err.Error()}
		}
	}

	res, err := c.service.Chat(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
