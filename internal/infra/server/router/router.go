// Package router sets up the HTTP routing for the application.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
)

// Options configures the engine built by Setup.
type Options struct {
	Environment      string
	AllowedOrigins   []string
	UploadsDir       string
	UploadsPublicDir string
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	userController        *controller.UserController
	accountController     *controller.AccountController
	billController        *controller.BillController
	expenseController     *controller.ExpenseController
	goalController        *controller.GoalController
	transactionController *controller.TransactionController
	authRateLimiter       *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	userController *controller.UserController,
	accountController *controller.AccountController,
	billController *controller.BillController,
	expenseController *controller.ExpenseController,
	goalController *controller.GoalController,
	transactionController *controller.TransactionController,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		userController:        userController,
		accountController:     accountController,
		billController:        billController,
		expenseController:     expenseController,
		goalController:        goalController,
		transactionController: transactionController,
		authRateLimiter:       authRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(opts Options) *gin.Engine {
	switch opts.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()
	r.engine.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.setupHealthRoutes()
	if opts.UploadsDir != "" && opts.UploadsPublicDir != "" {
		r.engine.Static(opts.UploadsPublicDir, opts.UploadsDir)
	}
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	api := r.engine.Group("/api")
	authenticated := r.authMiddleware.Authenticate()

	users := api.Group("/users")
	{
		users.POST("/register", r.userController.Register)
		users.POST("/login", r.authRateLimiter.Middleware(), r.userController.Login)
		users.POST("/reset", r.authRateLimiter.Middleware(), r.userController.ForgotPassword)
		users.POST("/reset/:token", r.userController.ResetPassword)
		users.GET("/me", authenticated, r.userController.Me)
		users.PUT("/update", authenticated, r.userController.Update)
		users.PUT("/change-password", authenticated, r.userController.ChangePassword)
	}

	accounts := api.Group("/accounts", authenticated)
	{
		accounts.GET("", r.accountController.List)
		accounts.POST("", r.accountController.Create)
		accounts.GET("/:id", r.accountController.Get)
		accounts.PUT("/:id", r.accountController.Update)
		accounts.DELETE("/:id", r.accountController.Delete)
	}

	bills := api.Group("/bills", authenticated)
	{
		bills.GET("", r.billController.List)
		bills.POST("", r.billController.Create)
		bills.GET("/:id", r.billController.Get)
		bills.PUT("/:id", r.billController.Update)
		bills.DELETE("/:id", r.billController.Delete)
	}

	expenses := api.Group("/expenses", authenticated)
	{
		expenses.GET("", r.expenseController.List)
		expenses.POST("", r.expenseController.Create)
		expenses.GET("/analytics/comparison", r.expenseController.Comparison)
		expenses.GET("/analytics/breakdown", r.expenseController.Breakdown)
		expenses.GET("/:id", r.expenseController.Get)
		expenses.PUT("/:id", r.expenseController.Update)
		expenses.DELETE("/:id", r.expenseController.Delete)
	}

	goals := api.Group("/goals", authenticated)
	{
		goals.GET("", r.goalController.List)
		goals.POST("", r.goalController.Create)
		goals.GET("/:id", r.goalController.Get)
		goals.PUT("/:id", r.goalController.Update)
		goals.DELETE("/:id", r.goalController.Delete)
	}

	transactions := api.Group("/transactions", authenticated)
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.GET("/summary", r.transactionController.Summary)
		transactions.GET("/:id", r.transactionController.Get)
		transactions.PUT("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
