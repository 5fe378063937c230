package controllers

import (
	"net/http"
	"strings"

	"github.com/Laib363/E-Commerce-Project/flash"
	"github.com/Laib363/E-Commerce-Project/logger"
	"github.com/Laib363/E-Commerce-Project/middleware"
	"github.com/Laib363/E-Commerce-Project/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// RegisterForm renders the signup form.
func (ac *AuthController) RegisterForm(c *gin.Context) {
	render(c, "register.html", nil)
}

// Register creates the account, logs the new user in and redirects to the
// listing index. Any failure re-shows the form with a flashed message.
func (ac *AuthController) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if username == "" || email == "" || password == "" {
		flash.Error(c, "Username, email and password are all required")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	user, err := ac.auth.Register(c, username, email, password)
	if err != nil {
		flash.Error(c, userMessage(err))
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if err := middleware.EstablishSession(c, user); err != nil {
		logger.Error(c, "Failed to establish session after registration", err,
			zap.String("username", username))
		flash.Error(c, "Registration succeeded but login failed, please log in")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	logger.Info(c, "User registered", zap.String("username", username))
	flash.Success(c, "Welcome! You are now logged in.")
	c.Redirect(http.StatusFound, "/listings")
}

// LoginForm renders the login form.
func (ac *AuthController) LoginForm(c *gin.Context) {
	render(c, "login.html", nil)
}

// Login verifies credentials and establishes the session.
func (ac *AuthController) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := ac.auth.Authenticate(c, username, password)
	if err != nil {
		flash.Error(c, userMessage(err))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := middleware.EstablishSession(c, user); err != nil {
		logger.Error(c, "Failed to establish session", err, zap.String("username", username))
		flash.Error(c, "Login failed, please try again")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	flash.Success(c, "Welcome back!")
	c.Redirect(http.StatusFound, "/listings")
}

// Logout drops the session's authentication. Always succeeds.
func (ac *AuthController) Logout(c *gin.Context) {
	middleware.DestroySession(c)
	flash.Success(c, "Logged out successfully.")
	c.Redirect(http.StatusFound, "/listings")
}
