package controllers

import (
	"github.com/gofiber/fiber/v2"
)

func HandleHome(c *fiber.Ctx) error {
	return renderPage(c, "index", fiber.Map{
		"Page": "PikaShop",
	})
}
