package apiv1

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pikamon/PikaShop/app/repository"
	"github.com/pikamon/PikaShop/internal/pkg/catalog"
	"github.com/pikamon/PikaShop/internal/pkg/middleware"
	"github.com/pikamon/PikaShop/internal/pkg/usercontext"
)

// APIServer serves the JSON surface of the storefront. It reads the same
// catalog and projection repositories as the HTML controllers.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers attaches all v1 routes to the given router group.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Get("/products", s.GetProducts)

	// Projection reads are scoped to the session user.
	router.Get("/orders", middleware.RequireAPISessionAuth, s.GetOrders)
	router.Get("/orders/:session_id", middleware.RequireAPISessionAuth, s.GetOrderBySession)
	router.Get("/subscription", middleware.RequireAPISessionAuth, s.GetSubscription)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// GetProducts returns the fixed product catalog.
func (s *APIServer) GetProducts(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"products": catalog.Products(),
	})
}

// GetOrders returns the caller's most recent orders.
func (s *APIServer) GetOrders(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	rows, err := repository.GetGlobalFactory().GetOrderRepository().ListUserOrders(userID, 20)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_error",
			"message": "could not load orders",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"orders": rows})
}

// GetOrderBySession returns one order by checkout session id. A session the
// webhook has not mirrored yet answers 200 with pending=true, not 404; only
// a session id the caller never started would stay pending forever.
func (s *APIServer) GetOrderBySession(c *fiber.Ctx) error {
	sessionID := strings.TrimSpace(c.Params("session_id"))
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "session_id missing",
		})
	}

	userID := usercontext.GetUserID(c)
	row, err := repository.GetGlobalFactory().GetOrderRepository().
		GetUserOrderBySession(userID, sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_error",
			"message": "could not load order",
		})
	}
	if row == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"pending": true})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"pending": false, "order": row})
}

// GetSubscription returns the caller's subscription row, or an explicit
// empty state when none exists.
func (s *APIServer) GetSubscription(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	row, err := repository.GetGlobalFactory().GetSubscriptionRepository().
		GetUserSubscription(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_error",
			"message": "could not load subscription",
		})
	}
	if row == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"subscription": nil})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"subscription": row})
}
