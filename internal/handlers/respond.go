package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tienda/internal/apperrors"
)

// fail maps an error to its HTTP status and a machine-readable body of the
// form {"error": <kind>, "message": <text>}. Internal errors are logged and
// returned without their cause.
func fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error":   string(apperrors.KindInternal),
			"message": "An internal error occurred",
		})
	}

	message := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	return c.Status(status).JSON(fiber.Map{
		"error":   string(apperrors.KindOf(err)),
		"message": message,
	})
}

// badRequest reports a malformed body or query parameter.
func badRequest(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{
		"error":   string(apperrors.KindValidation),
		"message": message,
	}
	if err != nil {
		body["detail"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// validationFail turns validator errors into a per-field error map.
func validationFail(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return badRequest(c, "Validation failed", err)
	}

	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   string(apperrors.KindValidation),
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
