package handlers

import (
	"fmt"
	"net/http"

	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gin-gonic/gin"
)

// Register handles POST /users/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindAndValidate(c, &req, "All fields are required"); err != nil {
		h.writeError(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), &models.Registration{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		ResumeURL: req.ResumeURL,
		Bio:       req.Bio,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    toUserView(user),
	})
}

// Login handles POST /users/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindAndValidate(c, &req, "Email and password are required"); err != nil {
		h.writeError(c, err)
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    toUserView(user),
	})
}

// Protected handles GET /protected and echoes the caller's identity.
func (h *Handler) Protected(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Hello %s, you have access to this protected route!", identity.Name),
		"user":    identityView(identity),
	})
}
