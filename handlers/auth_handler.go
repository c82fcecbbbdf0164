package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/hr-console-go/dto"
	"github.com/linskybing/hr-console-go/hrapi"
	"github.com/linskybing/hr-console-go/response"
	"github.com/linskybing/hr-console-go/session"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	client *hrapi.Client
	store  session.Store
}

// Login godoc
// @Summary Log in against the HR service and store the token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param input body dto.LoginInput true "Credentials"
// @Success 200 {object} response.LoginResponse
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 401 {object} response.ErrorResponse "Invalid username or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	if _, err := h.client.Login(c.Request.Context(), input.Username, input.Password); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.LoginResponse{
		Message:  "Logged in successfully",
		Username: input.Username,
	})
}

// Register godoc
// @Summary Register a new account, then log it in
// @Tags auth
// @Accept json
// @Produce json
// @Param input body dto.RegisterInput true "Registration info"
// @Success 201 {object} response.LoginResponse
// @Failure 400 {object} response.ErrorResponse "Validation failure"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	// These checks run before any network call so validation failures
	// surface inline without a round trip.
	if input.Name == "" || input.Email == "" || input.Password == "" || input.ConfirmPassword == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "All fields are required"})
		return
	}
	if !emailPattern.MatchString(input.Email) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Please enter a valid email address"})
		return
	}
	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Password must be at least 6 characters"})
		return
	}
	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Passwords do not match"})
		return
	}

	username := input.Email[:strings.Index(input.Email, "@")]
	firstName, lastName, _ := strings.Cut(input.Name, " ")

	err := h.client.Register(c.Request.Context(), hrapi.RegisterInput{
		Username:  username,
		Email:     input.Email,
		Password:  input.Password,
		Password2: input.ConfirmPassword,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if _, err := h.client.Login(c.Request.Context(), username, input.Password); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.LoginResponse{
		Message:  "Account created successfully",
		Username: username,
	})
}

// ChangePassword godoc
// @Summary Change the logged-in account's password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body dto.ChangePasswordInput true "Passwords"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "Validation failure"
// @Failure 401 {object} response.ErrorResponse "Session expired"
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var input dto.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	if len(input.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Password must be at least 6 characters"})
		return
	}
	if input.NewPassword != input.NewPassword2 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Passwords do not match"})
		return
	}

	err := h.client.ChangePassword(c.Request.Context(), input.OldPassword, input.NewPassword, input.NewPassword2)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Message: "Password changed successfully"})
}

// Logout godoc
// @Summary Clear the stored session
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.store.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logged out"})
}

// Status godoc
// @Summary Report whether a session is stored
// @Tags auth
// @Produce json
// @Success 200 {object} response.StatusResponse
// @Router /auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, response.StatusResponse{Authenticated: h.store.Tokens().Valid()})
}
