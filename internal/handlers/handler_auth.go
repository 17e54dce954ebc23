package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/mini_bank_api/internal/core/ports/services"
	"github.com/SscSPs/mini_bank_api/internal/dto"
	"github.com/SscSPs/mini_bank_api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvc
}

// registerAuthRoutes sets up the public authentication routes. Login is rate
// limited per client IP.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvc, loginLimiter *limiter.Limiter) {
	RegisterValidators()
	h := &authHandler{authService: authService}

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
	}
}

// register godoc
// @Summary Register a user
// @Description Creates a STANDARD user.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Credentials"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := decodeStrictJSON(c, &req); err != nil {
		abortWithValidation(c, err)
		return
	}

	out, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token. expiresIn is in milliseconds.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := decodeStrictJSON(c, &req); err != nil {
		abortWithValidation(c, err)
		return
	}

	out, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, out)
}
