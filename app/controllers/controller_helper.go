package controllers

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/pikamon/PikaShop/internal/pkg/usercontext"
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(usercontext.KeyFromProtected); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if userNameValue := c.Locals(usercontext.KeyUsername); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// generateAccessToken mints the opaque bearer token handed to the checkout
// functions. The functions trust the gateway in front of them, so the token
// only needs to be unguessable, not verifiable.
func generateAccessToken(size int) (string, error) {
	if size < 16 {
		size = 16
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// renderPage wraps c.Render with the flash message and the shared layout
// bindings every page needs.
func renderPage(c *fiber.Ctx, template string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["FromProtected"] = isLoggedIn(c)
	bind["Username"] = ExtractUsername(c)
	bind["Msg"] = flash.Get(c)
	return c.Render(template, bind, "layouts/main")
}
