// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/application/usecase/account"
	"github.com/finance-tracker/dashboard/internal/application/usecase/analytics"
	"github.com/finance-tracker/dashboard/internal/application/usecase/auth"
	"github.com/finance-tracker/dashboard/internal/application/usecase/bill"
	"github.com/finance-tracker/dashboard/internal/application/usecase/expense"
	"github.com/finance-tracker/dashboard/internal/application/usecase/goal"
	"github.com/finance-tracker/dashboard/internal/application/usecase/reminder"
	"github.com/finance-tracker/dashboard/internal/application/usecase/transaction"
	"github.com/finance-tracker/dashboard/internal/application/usecase/user"
	"github.com/finance-tracker/dashboard/internal/infra/server/router"
	"github.com/finance-tracker/dashboard/internal/integration/adapters"
	"github.com/finance-tracker/dashboard/internal/integration/cache"
	"github.com/finance-tracker/dashboard/internal/integration/email"
	"github.com/finance-tracker/dashboard/internal/integration/email/templates"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/dashboard/internal/integration/persistence"
	"github.com/finance-tracker/dashboard/internal/integration/storage"
)

// Infrastructure holds the connections the injector wires into repositories and services.
// Cache and EmailSender are optional; nil selects the no-op cache and the provider chosen by config.
type Infrastructure struct {
	DB          *gorm.DB
	DBHealth    controller.HealthCheck
	Cache       adapter.AnalyticsCache
	CacheHealth controller.HealthCheck
	EmailSender adapter.EmailSender
}

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	DB              *gorm.DB
	Router          *router.Router
	AuthRateLimiter *middleware.RateLimiter
	BillReminders   *reminder.SendBillRemindersUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, infra Infrastructure) (*Injector, error) {
	db := infra.DB

	analyticsCache := infra.Cache
	if analyticsCache == nil {
		analyticsCache = cache.NoopAnalyticsCache{}
	}

	sender := infra.EmailSender
	if sender == nil {
		sender = email.NewSender(cfg.Email.ResendAPIKey, email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromName:  cfg.Email.FromName,
			FromEmail: cfg.Email.FromEmail,
		})
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailService := email.NewService(sender, renderer)

	fileStorage := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPath, cfg.Uploads.MaxBytes)

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	billRepo := persistence.NewBillRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(adapters.DefaultBcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.SessionExpiry)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)

	// Create auth and profile use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)
	getProfileUseCase := user.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := user.NewUpdateProfileUseCase(userRepo, fileStorage)
	changePasswordUseCase := user.NewChangePasswordUseCase(userRepo, passwordService)

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	getAccountUseCase := account.NewGetAccountUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo)

	// Create bill use cases
	listBillsUseCase := bill.NewListBillsUseCase(billRepo)
	createBillUseCase := bill.NewCreateBillUseCase(billRepo, fileStorage)
	getBillUseCase := bill.NewGetBillUseCase(billRepo)
	updateBillUseCase := bill.NewUpdateBillUseCase(billRepo, fileStorage)
	deleteBillUseCase := bill.NewDeleteBillUseCase(billRepo, fileStorage)

	// Create expense use cases
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, analyticsCache)
	getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, analyticsCache)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, analyticsCache)
	comparisonUseCase := analytics.NewGetExpenseComparisonUseCase(expenseRepo, analyticsCache)
	breakdownUseCase := analytics.NewGetExpenseBreakdownUseCase(expenseRepo, analyticsCache)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, analyticsCache)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, analyticsCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, accountRepo, analyticsCache)
	summaryUseCase := analytics.NewGetTransactionSummaryUseCase(transactionRepo, analyticsCache)

	billRemindersUseCase := reminder.NewSendBillRemindersUseCase(billRepo, userRepo, emailService, cfg.Jobs.BillReminderLeadDays)

	// Create controllers
	healthController := controller.NewHealthController(infra.DBHealth, infra.CacheHealth)

	userController := controller.NewUserController(
		registerUseCase,
		loginUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
		getProfileUseCase,
		updateProfileUseCase,
		changePasswordUseCase,
		controller.SessionCookie{Name: cfg.JWT.CookieName, Secure: cfg.JWT.CookieSecure},
	)

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		createAccountUseCase,
		getAccountUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
	)

	billController := controller.NewBillController(
		listBillsUseCase,
		createBillUseCase,
		getBillUseCase,
		updateBillUseCase,
		deleteBillUseCase,
	)

	expenseController := controller.NewExpenseController(
		listExpensesUseCase,
		createExpenseUseCase,
		getExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
		comparisonUseCase,
		breakdownUseCase,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		getTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		summaryUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var authRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		authRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		authRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, cfg.JWT.CookieName)

	// Create router
	r := router.NewRouter(
		healthController,
		userController,
		accountController,
		billController,
		expenseController,
		goalController,
		transactionController,
		authRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		AuthRateLimiter: authRateLimiter,
		BillReminders:   billRemindersUseCase,
	}, nil
}

// RouterOptions derives the router options from the configuration.
func (i *Injector) RouterOptions() router.Options {
	return router.Options{
		Environment:      i.Config.Server.Environment,
		AllowedOrigins:   i.Config.Server.AllowedOrigins,
		UploadsDir:       i.Config.Uploads.Dir,
		UploadsPublicDir: i.Config.Uploads.PublicPath,
	}
}
