package serverutils

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
)

const (
	ClientIDHeader  = "X-Client-ID"
	ClientIDLocal   = "client_id"
	AnonymousClient = "anonymous"
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ClientIDMiddleware resolves the opaque browser id that namespaces stored
// data. The header wins over the client_id query parameter; anything missing
// or malformed falls back to the shared anonymous namespace.
func ClientIDMiddleware(ctx *fiber.Ctx) error {
	id := ctx.Get(ClientIDHeader)
	if id == "" {
		id = ctx.Query("client_id")
	}
	if !clientIDPattern.MatchString(id) {
		id = AnonymousClient
	}
	ctx.Locals(ClientIDLocal, id)
	return ctx.Next()
}

func ClientID(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals(ClientIDLocal).(string); ok && id != "" {
		return id
	}
	return AnonymousClient
}
