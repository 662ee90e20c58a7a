package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/pikamon/PikaShop/app/controllers"
	"github.com/pikamon/PikaShop/internal/pkg/constants"
	"github.com/pikamon/PikaShop/internal/pkg/middleware"
	"github.com/pikamon/PikaShop/internal/pkg/oauth"
	"github.com/pikamon/PikaShop/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
	h.registerProtectedRoutes(app)
	h.registerFunctionRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get(constants.HomeRoute, controllers.HandleHome)
	app.Get(constants.ProductsRoute, controllers.HandleProductsIndex)

	// Auth
	app.Get(constants.LoginRoute, controllers.HandleAuthLogin)
	app.Post(constants.LoginRoute, controllers.HandleAuthLogin)
	app.Get(constants.RegisterRoute, controllers.HandleAuthRegister)
	app.Post(constants.RegisterRoute, controllers.HandleAuthRegister)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Provider webhooks (no session, signature-verified in controller)
	app.Post(constants.StripeWebhookRoute, controllers.HandleStripeWebhook)
}

func (h HttpRouter) registerProtectedRoutes(app *fiber.App) {
	app.Post(constants.ProductsRoute+"/:id/checkout", middleware.RequireAuth, controllers.HandleProductCheckout)
	app.Get(constants.SuccessRoute, middleware.RequireAuth, controllers.HandleSuccess)
	app.Get(constants.SubscriptionRoute, middleware.RequireAuth, controllers.HandleSubscription)

	app.Get("/grading", middleware.RequireAuth, controllers.HandleGradingIndex)
	app.Post("/grading", middleware.RequireAuth, controllers.HandleGradingSubmit)
	app.Post("/grading/:uuid/pay", middleware.RequireAuth, controllers.HandleGradingPay)
}

// registerFunctionRoutes wires the cross-origin payment functions. They do
// their own CORS handling and never touch the app session.
func (h HttpRouter) registerFunctionRoutes(app *fiber.App) {
	app.Options(constants.CheckoutSessionFunctionRoute, controllers.HandleCheckoutPreflight)
	app.Post(constants.CheckoutSessionFunctionRoute, controllers.HandleCheckoutSession)

	app.Options(constants.CheckoutFunctionRoute, controllers.HandleCheckoutPreflight)
	app.Post(constants.CheckoutFunctionRoute, controllers.HandleCheckout)
}
