package routes

import (
	"github.com/gofiber/fiber/v2"

	"hausverwaltung-backend/controllers"
	"hausverwaltung-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Gateway notifications (the gateway authenticates via its signature,
	// not a portal token)
	api.Post("/payments/gateway/webhook", controllers.GatewayWebhook)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Payout batch engine (admin). Mounted BEFORE RequestTx: every id in a
	// batch must commit or fail independently.
	payouts := protected.Group("/payouts", middlewares.RequireRole("admin"))
	payouts.Get("/eligible", controllers.ListEligiblePayments)
	payouts.Get("/export", controllers.ExportEligiblePayments)
	payouts.Post("/mark", controllers.MarkInPayout)
	payouts.Post("/disburse", controllers.InitiateDisbursement)
	payouts.Post("/complete", controllers.CompletePayout)

	// Everything below runs inside a per-request transaction.
	tx := protected.Group("", middlewares.RequestTx())

	// Properties, units, rates, leases (landlord)
	landlord := tx.Group("", middlewares.RequireRole("landlord", "admin"))
	landlord.Post("/property", controllers.CreateProperty)
	landlord.Get("/properties", controllers.GetProperties)
	landlord.Put("/property/:id", controllers.UpdateProperty)
	landlord.Post("/unit", controllers.CreateUnit)
	landlord.Get("/units", controllers.GetUnits)
	landlord.Post("/rate", controllers.CreateRate)
	landlord.Post("/lease", controllers.CreateLease)

	// Bills
	landlord.Post("/bill", controllers.CreateBill)
	tx.Get("/bills", controllers.GetBillingHistory)
	tx.Get("/bill/:id/receipt", controllers.GetBillReceipt)

	// Payments
	tx.Post("/payment", controllers.CreatePayment)
	tx.Get("/payments", controllers.ListPayments)
	tx.Post("/payment/:id/checkout", controllers.InitiateCheckout)
	tx.Put("/payment/:id/status", middlewares.RequireRole("landlord", "admin"), controllers.UpdatePaymentStatus)
}
