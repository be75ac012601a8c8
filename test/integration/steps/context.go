//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/application/adapter"
	infracache "github.com/finance-tracker/dashboard/internal/infra/cache"
	"github.com/finance-tracker/dashboard/internal/infra/dependency"
	"github.com/finance-tracker/dashboard/internal/integration/adapters"
	"github.com/finance-tracker/dashboard/internal/integration/cache"
	"github.com/finance-tracker/dashboard/internal/integration/email"
	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
	"github.com/finance-tracker/dashboard/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// suite holds the resources shared by every scenario of a run.
type suite struct {
	db            *mock.Db
	redis         *mock.Redis
	emailProvider *mock.ApiMock
	server        *httptest.Server
	tokens        adapter.TokenService
	uploadsDir    string
}

var shared *suite

type testContext struct {
	*suite

	uri          string
	headers      map[string]string
	client       *http.Client
	response     *response
	accessToken  string
	ids          map[string]string
	resetToken   string
	expiredToken string
}

type response struct {
	status  int
	body    any
	cookies []*http.Cookie
}

// InitializeTestSuite starts the API with its stand-in dependencies before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		s, err := startSuite()
		if err != nil {
			panic(err)
		}
		shared = s
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.emailProvider.Close()
		shared.redis.Server.Close()
		_ = os.RemoveAll(shared.uploadsDir)
	})
}

func startSuite() (*suite, error) {
	uploadsDir, err := os.MkdirTemp("", "dashboard-uploads-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	_ = os.Setenv("ENV", "test")
	_ = os.Setenv("JWT_SECRET", testJWTSecret)
	_ = os.Setenv("UPLOADS_DIR", uploadsDir)
	cfg := config.Load()

	s := &suite{
		db:            mock.NewDb(tables()),
		redis:         mock.NewRedis(),
		emailProvider: mock.NewApiServer(),
		tokens:        adapters.NewTokenService(testJWTSecret, cfg.JWT.SessionExpiry),
		uploadsDir:    uploadsDir,
	}
	s.emailProvider.Start()

	providerURL, err := url.Parse(s.emailProvider.GetUrl())
	if err != nil {
		return nil, fmt.Errorf("failed to parse email provider url: %w", err)
	}

	injector, err := dependency.NewInjector(cfg, dependency.Infrastructure{
		DB:          s.db.DbConn,
		DBHealth:    s.db.HealthCheck,
		Cache:       cache.NewRedisAnalyticsCache(s.redis.Client, time.Minute),
		CacheHealth: infracache.HealthCheck(s.redis.Client),
		EmailSender: email.NewResendClient("re_test_key", cfg.Email.FromName, cfg.Email.FromEmail,
			email.WithResendBaseURL(providerURL)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build injector: %w", err)
	}

	s.server = httptest.NewServer(injector.Router.Setup(injector.RouterOptions()))
	return s, nil
}

func tables() map[string]any {
	return map[string]any{
		"users":                 &model.UserModel{},
		"password_reset_tokens": &model.PasswordResetTokenModel{},
		"accounts":              &model.AccountModel{},
		"transactions":          &model.TransactionModel{},
		"bills":                 &model.BillModel{},
		"expenses":              &model.ExpenseModel{},
		"goals":                 &model.GoalModel{},
	}
}

func (t *testContext) before() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}

	t.suite = shared
	t.uri = shared.server.URL
	t.client = &http.Client{Timeout: 10 * time.Second, Jar: jar}
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.ids = make(map[string]string)
	t.resetToken = ""
	t.expiredToken = ""

	t.emailProvider.Clear()
	t.emailProvider.SetResponse(http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": "email-test-id"})
	if err := t.redis.Clear(); err != nil {
		return err
	}
	return t.db.ClearDB()
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^an account "([^"]*)" exists with balance "([^"]*)"$`, test.anAccountExistsWithBalance)
	ctx.Given(`^an account "([^"]*)" of "([^"]*)" exists with balance "([^"]*)"$`, test.anAccountOfUserExistsWithBalance)
	ctx.Given(`^an expense "([^"]*)" of "([^"]*)" in "([^"]*)" was spent (\d+) days ago$`, test.anExpenseWasSpentDaysAgo)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, test.aPasswordResetTokenExistsFor)
	ctx.Given(`^an expired password reset token exists for "([^"]*)"$`, test.anExpiredPasswordResetTokenExistsFor)
	ctx.Given(`^the email provider is failing$`, test.theEmailProviderIsFailing)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send a multipart "([^"]*)" request to "([^"]*)" with fields:$`, test.iSendAMultipartRequestToWithFields)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response should set the session cookie$`, test.theResponseShouldSetTheSessionCookie)

	// Side effect assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceivedEmails)
	ctx.Then(`^the last email should be sent to "([^"]*)"$`, test.theLastEmailShouldBeSentTo)
	ctx.Then(`^the cache should contain (\d+) keys? matching "([^"]*)"$`, test.theCacheShouldContainKeysMatching)
}
