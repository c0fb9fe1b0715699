package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new customer account. There is no self-service path
// to an admin role.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Store.UserByEmail(req.Email); err == nil {
		fail(c, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Role:          models.RoleCustomer,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
	if err := h.Store.CreateUser(&user); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := middleware.GenerateToken(&user, h.Cfg.JWTSecret)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respond(c, http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login authenticates a user and returns a JWT alongside the user record.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Store.UserByEmail(req.Email)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := middleware.GenerateToken(user, h.Cfg.JWTSecret)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respond(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated user's profile. Clients call this on
// startup to restore a session from a stored token.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Store.UserByID(middleware.GetUserID(c))
	if err != nil {
		failFor(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, user)
}

// UpdateProfile applies partial profile fields and returns the new record.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.Store.UpdateUser(middleware.GetUserID(c), fields)
	if err != nil {
		failFor(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, user)
}
