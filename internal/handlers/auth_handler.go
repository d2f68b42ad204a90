package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/services"
)

// AuthHandler handles HTTP requests for authentication and the profile.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers login/register publicly and the profile behind
// the token middleware.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/login", h.HandleLogin)
	router.Post("/register", h.HandleRegister)
	router.Get("/profile", auth, h.HandleProfile)
}

// PersonRequest is the profile part of a registration.
type PersonRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	LastName string `json:"last_name" validate:"required,max=150"`
	DNI      string `json:"dni" validate:"required,max=40"`
	CityID   string `json:"city_id"`
}

// RegisterRequest is the registration payload. New accounts always get the
// visitor role.
type RegisterRequest struct {
	Username string         `json:"username" validate:"required,min=3,max=100"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Persona  *PersonRequest `json:"persona" validate:"omitempty"`
}

// HandleRegister creates a visitor account and returns its first token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	var person *models.Person
	if req.Persona != nil {
		person = &models.Person{
			Name:     req.Persona.Name,
			LastName: req.Persona.LastName,
			DNI:      req.Persona.DNI,
			CityID:   req.Persona.CityID,
		}
	}

	token, err := h.authService.Register(user, person)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":    token,
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFail(c, err)
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"token":    token,
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// HandleProfile returns the authenticated user's account and profile.
func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	user, person, err := h.authService.Profile(principal)
	if err != nil {
		return fail(c, err)
	}

	body := fiber.Map{
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	}
	if person != nil {
		body["persona"] = person
	}
	return c.JSON(body)
}
