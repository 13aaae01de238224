package auth

import (
	"errors"
	"net/http"

	"scheduling/internal/middleware"
	"scheduling/internal/pkg/response"
	"scheduling/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts register and login behind the given rate limiter.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, limiter gin.HandlerFunc) {
	authGroup := v1.Group("/auth", limiter)
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup, limiter gin.HandlerFunc) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.Me)
		authGroup.POST("/password", h.ChangePassword)
		authGroup.POST("/verify/email/request", limiter, h.RequestEmailVerification)
		authGroup.POST("/verify/email/confirm", limiter, h.ConfirmEmailVerification)
		authGroup.POST("/verify/phone/request", limiter, h.RequestPhoneVerification)
		authGroup.POST("/verify/phone/confirm", limiter, h.ConfirmPhoneVerification)
	}
}

// Register creates a customer account.
// @Summary		Register a customer
// @Description	Creates a CUSTOMER user with an empty customer profile, sends an email verification code and returns a JWT.
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"first_name, last_name, email, optional phone (E.164), password"
// @Success		201	{object}	response.Envelope	"Registered, token in envelope"
// @Failure		400	{object}	response.Envelope	"Missing or invalid properties"
// @Failure		409	{object}	response.Envelope	"Email or phone already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.WithToken(c, http.StatusCreated, "Registered", res.User, res.Token)
}

// Login authenticates by email and password.
// @Summary		Log in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"email, password"
// @Success		200	{object}	response.Envelope	"Token in envelope"
// @Failure		401	{object}	response.Envelope	"Invalid email or password"
// @Failure		403	{object}	response.Envelope	"Account disabled"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.WithToken(c, http.StatusOK, "Logged in", res.User, res.Token)
}

// Me returns the authenticated user.
// @Summary		Current user
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	response.Envelope
// @Failure		401	{object}	response.Envelope
// @Router		/auth/me [GET]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), middleware.CurrentActor(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", user)
}

// ChangePassword replaces the password after checking the current one.
// @Summary		Change password
// @Tags		Auth
// @Security	BearerAuth
// @Param		request	body	ChangePasswordRequest	true	"current_password, new_password"
// @Success		200	{object}	response.Envelope
// @Failure		401	{object}	response.Envelope	"Current password is wrong"
// @Router		/auth/password [POST]
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), middleware.CurrentActor(c).UserID, req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Password changed", nil)
}

// RequestEmailVerification sends a 6-digit code to the user's email.
// @Summary		Request email verification code
// @Tags		Verification
// @Security	BearerAuth
// @Success		202	{object}	response.Envelope
// @Failure		409	{object}	response.Envelope	"Already verified"
// @Failure		429	{object}	response.Envelope	"Resend cooldown"
// @Failure		502	{object}	response.Envelope	"Email provider failure"
// @Router		/auth/verify/email/request [POST]
func (h *Handler) RequestEmailVerification(c *gin.Context) {
	res, err := h.service.RequestEmailVerification(c.Request.Context(), middleware.CurrentActor(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, "Verification code sent", res)
}

// ConfirmEmailVerification checks the emailed code.
// @Summary		Confirm email
// @Tags		Verification
// @Security	BearerAuth
// @Param		request	body	ConfirmCodeRequest	true	"6-digit code"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope	"Invalid or expired code"
// @Failure		429	{object}	response.Envelope	"Too many attempts"
// @Router		/auth/verify/email/confirm [POST]
func (h *Handler) ConfirmEmailVerification(c *gin.Context) {
	var req ConfirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	if err := h.service.ConfirmEmailVerification(c.Request.Context(), middleware.CurrentActor(c).UserID, req.Code); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Email verified", gin.H{"email_verified": true})
}

// RequestPhoneVerification asks the SMS provider to send a one-time code.
// @Summary		Request phone verification code
// @Tags		Verification
// @Security	BearerAuth
// @Success		202	{object}	response.Envelope	"Provider status in data"
// @Failure		400	{object}	response.Envelope	"No phone on the account"
// @Failure		502	{object}	response.Envelope	"SMS provider failure"
// @Router		/auth/verify/phone/request [POST]
func (h *Handler) RequestPhoneVerification(c *gin.Context) {
	res, err := h.service.RequestPhoneVerification(c.Request.Context(), middleware.CurrentActor(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, "Verification code sent", res)
}

// ConfirmPhoneVerification checks the SMS code with the provider.
// @Summary		Confirm phone
// @Tags		Verification
// @Security	BearerAuth
// @Param		request	body	ConfirmCodeRequest	true	"6-digit code"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope	"Code not approved"
// @Failure		502	{object}	response.Envelope	"SMS provider failure"
// @Router		/auth/verify/phone/confirm [POST]
func (h *Handler) ConfirmPhoneVerification(c *gin.Context) {
	var req ConfirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, validator.Describe(err))
		return
	}

	res, err := h.service.ConfirmPhoneVerification(c.Request.Context(), middleware.CurrentActor(c).UserID, req.Code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Phone verified", res)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, ErrAccountDisabled):
		response.Forbidden(c, "Account is disabled")
	case errors.Is(err, ErrAlreadyRegistered):
		response.Conflict(c, response.CodeAlreadyRegistered, "Email or phone is already registered")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, ErrAlreadyVerified):
		response.Conflict(c, response.CodeConflict, "Already verified")
	case errors.Is(err, ErrInvalidCode):
		response.BadRequest(c, "Invalid verification code")
	case errors.Is(err, ErrCodeExpired):
		response.BadRequest(c, "Verification code expired, request a new one")
	case errors.Is(err, ErrPhoneMissing):
		response.BadRequest(c, "Add a phone number to your profile first")
	case errors.Is(err, ErrTooManyAttempts):
		response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many attempts, request a new code")
	case errors.Is(err, ErrResendCooldown):
		response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "Code recently sent, try again later")
	case errors.Is(err, ErrProviderFailure):
		_ = c.Error(err)
		response.Error(c, http.StatusBadGateway, response.CodeProviderError, "Verification provider unavailable")
	default:
		response.Internal(c, err)
	}
}
