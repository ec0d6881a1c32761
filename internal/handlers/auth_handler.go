package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"digisanchar/internal/models"
	"digisanchar/internal/services"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// @Summary      Register a new account
// @Description  Creates an unverified user account and sends a verification email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        registration  body      models.RegisterRequest  true  "Registration data"
// @Success      201    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Message})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		case errors.Is(err, services.ErrPhoneTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Phone number already registered"})
		default:
			log.Printf("[auth][register] error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed. Please try again."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully. Please check your email for verification.",
		"userId":  user.ID,
	})
}

// @Summary      Log in
// @Description  Authenticates a user and returns a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Login credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, token, err := h.userService.Login(req.Email, req.Password, req.Remember)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		case errors.Is(err, services.ErrAccountDeactivated):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Account is deactivated"})
		default:
			log.Printf("[auth][login] error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"token":        token,
		"user":         user.Snapshot(),
		"redirect_url": "/dashboard.html",
	})
}

// @Summary      Verify email address
// @Description  Consumes a verification token sent by email
// @Tags         Auth
// @Produce      json
// @Param        token  path      string  true  "Verification token"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /verify/{token} [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	if err := h.userService.VerifyEmail(token); err != nil {
		if errors.Is(err, services.ErrInvalidVerifyToken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid verification token"})
			return
		}
		log.Printf("[auth][verify] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// @Summary      Get own profile
// @Description  Returns the authenticated user's profile
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
		return
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("[auth][profile] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Snapshot()})
}

// Logout is stateless: the session token stays valid until its natural
// expiry, there is no server-side invalidation.
//
// @Summary      Log out
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
