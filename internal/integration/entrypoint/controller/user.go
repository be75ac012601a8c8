package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/application/usecase/auth"
	"github.com/finance-tracker/dashboard/internal/application/usecase/user"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
)

// SessionCookie configures the cookie that carries the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

// UserController handles authentication and profile endpoints.
type UserController struct {
	registerUseCase       *auth.RegisterUserUseCase
	loginUseCase          *auth.LoginUserUseCase
	forgotPasswordUseCase *auth.ForgotPasswordUseCase
	resetPasswordUseCase  *auth.ResetPasswordUseCase
	getProfileUseCase     *user.GetProfileUseCase
	updateProfileUseCase  *user.UpdateProfileUseCase
	changePasswordUseCase *user.ChangePasswordUseCase
	cookie                SessionCookie
	now                   func() time.Time
}

// NewUserController creates a new user controller instance.
func NewUserController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	forgotPasswordUseCase *auth.ForgotPasswordUseCase,
	resetPasswordUseCase *auth.ResetPasswordUseCase,
	getProfileUseCase *user.GetProfileUseCase,
	updateProfileUseCase *user.UpdateProfileUseCase,
	changePasswordUseCase *user.ChangePasswordUseCase,
	cookie SessionCookie,
) *UserController {
	return &UserController{
		registerUseCase:       registerUseCase,
		loginUseCase:          loginUseCase,
		forgotPasswordUseCase: forgotPasswordUseCase,
		resetPasswordUseCase:  resetPasswordUseCase,
		getProfileUseCase:     getProfileUseCase,
		updateProfileUseCase:  updateProfileUseCase,
		changePasswordUseCase: changePasswordUseCase,
		cookie:                cookie,
		now:                   time.Now,
	}
}

// Register handles POST /users/register requests.
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Please provide name, email and password", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, output.Session)
	ctx.JSON(http.StatusCreated, dto.UserEnvelope{User: dto.ToUserResponse(output.User)})
}

// Login handles POST /users/login requests.
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Please provide email and password", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, output.Session)
	ctx.JSON(http.StatusOK, dto.UserEnvelope{User: dto.ToUserResponse(output.User)})
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.getProfileUseCase.Execute(ctx.Request.Context(), user.GetProfileInput{UserID: userID})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserEnvelope{User: dto.ToUserResponse(output.User)})
}

// Update handles PUT /users/update requests. The body is multipart with an optional avatar file.
func (c *UserController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	avatar, closer, err := formFile(ctx, "avatar")
	if err != nil {
		badRequest(ctx, "Invalid avatar upload: "+err.Error(), string(domainerror.ErrCodeInvalidAvatar))
		return
	}
	defer closeUpload(closer)

	output, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), user.UpdateProfileInput{
		UserID: userID,
		Name:   optionalFormValue(ctx, "name"),
		Phone:  optionalFormValue(ctx, "phone"),
		Avatar: avatar,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserEnvelope{User: dto.ToUserResponse(output.User)})
}

// ChangePassword handles PUT /users/change-password requests.
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Please provide the current and the new password", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.changePasswordUseCase.Execute(ctx.Request.Context(), user.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// ForgotPassword handles POST /users/reset requests.
// The reply is the same whether or not the email is registered.
func (c *UserController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Please provide an email", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.forgotPasswordUseCase.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{
		Email: req.Email,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// ResetPassword handles POST /users/reset/:token requests.
func (c *UserController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Please provide a new password", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.resetPasswordUseCase.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       ctx.Param("token"),
		NewPassword: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

func (c *UserController) setSessionCookie(ctx *gin.Context, session *adapter.SessionToken) {
	maxAge := int(session.ExpiresAt.Sub(c.now()).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.Name, session.Token, maxAge, "/", "", c.cookie.Secure, true)
}

// handleAuthError handles auth errors and returns appropriate HTTP responses.
func (c *UserController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(c.getStatusCodeForAuthError(authErr.Code), dto.ErrorResponse{
			Message: authErr.Message,
			Code:    string(authErr.Code),
		})
		return
	}

	internalError(ctx)
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func (c *UserController) getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidResetToken,
		domainerror.ErrCodeInvalidPhone,
		domainerror.ErrCodeIncorrectPassword,
		domainerror.ErrCodeInvalidAvatar:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
