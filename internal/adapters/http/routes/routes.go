package routes

import (
	"lexcase/internal/adapters/http/handlers"
	"lexcase/internal/adapters/http/middleware"
	"lexcase/internal/adapters/persistence/repositories"
	"lexcase/internal/adapters/realtime"
	"lexcase/internal/config"
	"lexcase/internal/core/services"

	_ "lexcase/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

// Services groups the long lived services the server owns beyond the
// request scope
type Services struct {
	Reminder *services.ReminderService
	Hub      *realtime.Hub
}

// Setup wires repositories, services and handlers onto the app and
// returns the background services for the server to manage
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *Services {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	pendingRepo := repositories.NewPendingUserRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	caseRepo := repositories.NewCaseRepository(db)
	hearingRepo := repositories.NewHearingRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Services
	hub := realtime.NewHub()
	notificationSvc := services.NewNotificationService(notificationRepo, hub)
	emailSvc := services.NewEmailService(cfg.Mail)
	gatewaySvc := services.NewGatewayService(cfg.Gateway)
	caseSvc := services.NewCaseService(caseRepo, hearingRepo, userRepo, profileRepo, notificationSvc, cfg.Policy)
	hearingSvc := services.NewHearingService(hearingRepo, caseRepo, profileRepo, notificationSvc)
	documentSvc := services.NewDocumentService(documentRepo, caseRepo, cfg.Storage.DocumentDir)
	paymentSvc := services.NewPaymentService(paymentRepo, caseRepo, profileRepo, userRepo, notificationSvc, gatewaySvc, cfg.Policy, cfg.BaseURL)
	registrationSvc := services.NewRegistrationService(pendingRepo, userRepo, profileRepo, emailSvc, notificationSvc)
	authSvc := services.NewAuthService(userRepo, profileRepo, resetRepo, emailSvc, cfg.JWT, cfg.BaseURL)
	userSvc := services.NewUserService(userRepo, profileRepo, caseRepo, emailSvc)
	reportSvc := services.NewReportService(caseRepo, paymentRepo, pendingRepo, userRepo)
	invoiceSvc := services.NewInvoiceService(caseRepo, paymentRepo, profileRepo)
	reminderSvc := services.NewReminderService(hearingRepo, userRepo, profileRepo, notificationSvc, emailSvc)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authSvc, userSvc)
	registrationHandler := handlers.NewRegistrationHandler(registrationSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	caseHandler := handlers.NewCaseHandler(caseSvc)
	hearingHandler := handlers.NewHearingHandler(hearingSvc)
	documentHandler := handlers.NewDocumentHandler(documentSvc, userSvc)
	paymentHandler := handlers.NewPaymentHandler(paymentSvc)
	reportHandler := handlers.NewReportHandler(reportSvc, invoiceSvc)
	notificationHandler := handlers.NewNotificationHandler(notificationSvc)

	// Public routes
	app.Get("/health", healthHandler.Check)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), registrationHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/forgot-password", middleware.StrictRateLimiter(), authHandler.ForgotPassword)
	auth.Post("/reset-password", middleware.StrictRateLimiter(), authHandler.ResetPassword)

	// Gateway callbacks are posted by the payment processor, not by a
	// signed in user
	callbacks := api.Group("/payments/callback")
	callbacks.Post("/success", paymentHandler.CallbackSuccess)
	callbacks.Post("/fail", paymentHandler.CallbackFail)
	callbacks.Post("/cancel", paymentHandler.CallbackCancel)

	// Everything below requires a valid token
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/change-password", authHandler.ChangePassword)
	protected.Put("/profile", userHandler.UpdateProfile)
	protected.Get("/dashboard", reportHandler.Dashboard)
	protected.Get("/reports", middleware.RoleMiddleware("Admin", "Lawyer"), reportHandler.FinancialReport)
	protected.Get("/lawyers", userHandler.ListLawyers)

	cases := protected.Group("/cases")
	cases.Get("/fees", caseHandler.FeeSchedule)
	cases.Post("", middleware.AdminOnly(), caseHandler.Create)
	cases.Get("", caseHandler.List)
	cases.Get("/:id", caseHandler.Get)
	cases.Post("/:id/accept", middleware.LawyerOnly(), caseHandler.Accept)
	cases.Post("/:id/reject", middleware.LawyerOnly(), caseHandler.Reject)
	cases.Patch("/:id/status", middleware.RoleMiddleware("Admin", "Lawyer"), caseHandler.UpdateStatus)
	cases.Get("/:id/invoice", reportHandler.Invoice)

	cases.Get("/:id/hearings", hearingHandler.ListByCase)
	cases.Post("/:id/hearings", middleware.RoleMiddleware("Admin", "Lawyer"), hearingHandler.Add)
	protected.Put("/hearings/:id", middleware.RoleMiddleware("Admin", "Lawyer"), hearingHandler.Edit)
	protected.Delete("/hearings/:id", middleware.RoleMiddleware("Admin", "Lawyer"), hearingHandler.Delete)

	cases.Get("/:id/documents", documentHandler.ListByCase)
	cases.Post("/:id/documents", documentHandler.Upload)
	protected.Get("/documents/:id", documentHandler.Download)
	protected.Delete("/documents/:id", middleware.RoleMiddleware("Admin", "Lawyer"), documentHandler.Delete)

	cases.Get("/:id/payable", paymentHandler.GetPayable)
	cases.Post("/:id/payments", middleware.ClientOnly(), paymentHandler.Initiate)
	cases.Get("/:id/payments", paymentHandler.ListByCase)
	protected.Get("/payments", paymentHandler.List)

	notifications := protected.Group("/notifications")
	notifications.Get("", notificationHandler.List)
	notifications.Get("/unread", notificationHandler.UnreadCount)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	admin := protected.Group("/admin", middleware.AdminOnly())
	admin.Get("/registrations", registrationHandler.ListPending)
	admin.Post("/registrations/:id/approve", registrationHandler.Approve)
	admin.Post("/registrations/:id/reject", registrationHandler.Reject)
	admin.Post("/lawyers", userHandler.CreateLawyer)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id/profile", userHandler.GetProfile)
	admin.Put("/users/:id/profile", userHandler.AdminUpdateUser)
	admin.Patch("/users/:id/active", userHandler.SetActive)
	admin.Delete("/users/:id", userHandler.Delete)

	// Live notification stream
	protected.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	protected.Get("/ws", websocket.New(hub.Handler()))

	return &Services{
		Reminder: reminderSvc,
		Hub:      hub,
	}
}
