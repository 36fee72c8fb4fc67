package routes

import (
	"topspot/internal/adapter/http/handlers"
	"topspot/internal/adapter/http/middleware"
	"topspot/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth       = "/auth"
	PathUsers      = "/users"
	PathServices   = "/services"
	PathQuotes     = "/quotes"
	PathPayments   = "/payments"
	PathContractor = "/contractor"
	PathAdmin      = "/admin"
)

func addAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/signin", h.SignIn)
		auth.GET("/verify-account", h.VerifyAccount)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

// addWebhookRoutes is unauthenticated; the handler never trusts the payload.
func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/webhook", h.Webhook)
	}
}

func addUserRoutes(rg *gin.RouterGroup, h *handlers.UserHandler) {
	users := rg.Group(PathUsers)
	{
		users.GET("/me", h.Me)
		users.PATCH("/me", h.UpdateProfile)
		users.PUT("/me/avatar", h.UpdateAvatar)
		users.POST("/me/signout", h.SignOut)
		users.DELETE("/me", h.Deactivate)
		users.GET("/me/quotes", h.MyQuotes)
		users.GET("/:id", h.GetUser)
	}
}

func addServiceRoutes(rg *gin.RouterGroup, services *handlers.ServiceHandler, quotes *handlers.QuoteHandler, payments *handlers.PaymentHandler) {
	svc := rg.Group(PathServices)
	{
		svc.GET("/:id", services.GetService)
		svc.GET("/:id/quotes", quotes.ListServiceQuotes)
		svc.GET("/:id/payments", payments.ListPayments)
	}

	posters := rg.Group(PathServices, middleware.RequireRoles(entities.RoleOwner, entities.RoleTenant))
	{
		posters.POST("", services.CreateService)
		posters.GET("", services.ListServices)
		posters.PATCH("/:id", services.EditService)
		posters.POST("/:id/media", services.AttachMedia)
		posters.POST("/:id/complete", services.CompleteService)
		posters.POST("/:id/cancel", services.CancelService)
		posters.POST("/:id/contractor", services.AssignContractor)
		posters.POST("/:id/quotes", quotes.CreateQuote)
		posters.POST("/:id/checkout", payments.InitiateCheckout)
		posters.DELETE("/:id/checkout", payments.CancelCheckout)
	}
}

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("/:id", h.GetQuote)
	}

	posters := rg.Group(PathQuotes, middleware.RequireRoles(entities.RoleOwner, entities.RoleTenant))
	{
		posters.POST("/:id/approve", h.ApproveQuote)
		posters.POST("/:id/decline", h.DeclineQuote)
		posters.POST("/:id/disapprove", h.DisapproveQuote)
	}
}

func addContractorRoutes(rg *gin.RouterGroup, services *handlers.ServiceHandler, quotes *handlers.QuoteHandler, users *handlers.UserHandler) {
	contractor := rg.Group(PathContractor, middleware.RequireRoles(entities.RoleContractor))
	{
		contractor.GET("/services", services.ContractorServices)
		contractor.GET("/services/search", services.SearchServices)
		contractor.POST("/services/:id/quotes", quotes.CreateQuote)
		contractor.GET("/quotes", users.MyQuotes)
		contractor.POST("/quotes/:id/approve", quotes.ContractorApproveQuote)
		contractor.POST("/quotes/:id/decline", quotes.DeclineQuote)
	}
}

func addAdminRoutes(rg *gin.RouterGroup, admin *handlers.AdminHandler, services *handlers.ServiceHandler, quotes *handlers.QuoteHandler) {
	adm := rg.Group(PathAdmin, middleware.RequireRoles(entities.RoleAdmin))
	{
		adm.GET("/users", admin.ListUsers)
		adm.GET("/contractors", admin.ListContractors)
		adm.PATCH("/users/:id/verify", admin.VerifyUser)
		adm.PATCH("/users/:id/role", admin.ChangeRole)
		adm.PATCH("/contractors/:id/status", admin.SetContractorStatus)

		adm.GET("/services", services.AdminListServices)
		adm.POST("/services/:id/contractor", services.AssignContractor)
		adm.GET("/services/:id/quotes", quotes.ListServiceQuotes)

		adm.POST("/quotes/:id/counter-offer", quotes.CounterOffer)
		adm.POST("/quotes/:id/approve", quotes.AdminApproveQuote)
	}
}
