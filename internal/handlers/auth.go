package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Users UserStore
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Cfg: cfg}
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"omitempty,oneof=patient doctor admin"`
	Specialty  string `json:"specialty"`
	Experience string `json:"experience"`
}

// AuthResponse represents the response body for successful registration or login.
type AuthResponse struct {
	Token string               `json:"token"`
	User  models.UserSanitized `json:"user"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// Check if user already exists
	if _, err := h.Users.FindByEmail(req.Email); err == nil {
		utils.Conflict(c, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RolePatient
	}

	user := models.User{
		Name:       req.Name,
		Email:      req.Email,
		Role:       role,
		Specialty:  req.Specialty,
		Experience: req.Experience,
		IsActive:   true,
	}

	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.Users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "User with this email already exists")
			return
		}
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	token, err := utils.GenerateToken(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Created(c, "User registered successfully", AuthResponse{
		Token: token,
		User:  user.Sanitize(),
	})
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles user login. An unknown email and a wrong password produce the
// same response, so callers cannot enumerate accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid credentials")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.IsActive || !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", AuthResponse{
		Token: token,
		User:  user.Sanitize(),
	})
}

// Logout handles user logout. Sessions are stateless server-side; the client
// drops its token and the token ages out at expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.Success(c, "Logged out successfully", nil)
}

// RefreshToken issues a fresh token to an authenticated caller.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	token, err := utils.GenerateToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Token refreshed successfully", AuthResponse{
		Token: token,
		User:  user.Sanitize(),
	})
}

// GetProfile handles fetching the currently authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}

// UpdateProfileRequest represents the request body for updating user profile.
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" binding:"omitempty,email"`
	Specialty  string `json:"specialty"`
	Experience string `json:"experience"`
}

// UpdateProfile handles updating the currently authenticated user's profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		// Check if new email is already taken
		if existing, err := h.Users.FindByEmail(req.Email); err == nil && existing.ID != user.ID {
			utils.Conflict(c, "New email is already in use")
			return
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
		user.Email = req.Email
	}
	if req.Specialty != "" {
		user.Specialty = req.Specialty
	}
	if req.Experience != "" {
		user.Experience = req.Experience
	}

	if err := h.Users.Save(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "New email is already in use")
			return
		}
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile updated successfully", user.Sanitize())
}

// UpdatePasswordRequest represents the request body for a password change.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdatePassword handles changing the authenticated user's password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdatePasswordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !user.CheckPassword(req.OldPassword) {
		utils.BadRequest(c, "Invalid old password")
		return
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.Users.Save(user); err != nil {
		utils.InternalServerError(c, "Failed to update password: "+err.Error())
		return
	}

	utils.Success(c, "Password updated successfully", nil)
}

// DeleteAccount deactivates the authenticated user's account. Records that
// reference the account are kept; the account simply stops authenticating.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	user.IsActive = false
	if err := h.Users.Save(user); err != nil {
		utils.InternalServerError(c, "Failed to deactivate account: "+err.Error())
		return
	}

	utils.Success(c, "Account deactivated successfully", nil)
}
