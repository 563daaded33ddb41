package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/david-solomon-henshaw/app/domain"
)

// AuthHandlers handles the two-step login flow
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OTPVerifyRequest represents OTP verification request
type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// Login handles the credential check and OTP dispatch. The response
// carries the resolved role so the client can route the OTP screen; no
// token is issued here.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		case domain.ErrOTPResendLimit:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "OTP already sent, please wait before retrying"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent to your email",
		"role":    result.Role,
	})
}

// VerifyOTP completes the second factor and returns the session token
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case domain.ErrNoPendingOTP:
			c.JSON(http.StatusBadRequest, gin.H{"error": "No OTP request found"})
		case domain.ErrOTPExpired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired"})
		case domain.ErrOTPInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		case domain.ErrOTPMaxAttempts:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, request a new OTP"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      result.Token,
		"expires_in": result.ExpiresIn,
		"user": gin.H{
			"id":    result.Account.Ref.ID,
			"email": result.Account.Email,
			"role":  result.Account.Ref.Role,
		},
	})
}
