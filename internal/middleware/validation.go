package middleware

import (
	"mcq-checker/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedThemeKey is the fiber.Ctx locals key holding the checked theme ID.
const ValidatedThemeKey = "validated_theme"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateTheme validates the :theme path parameter
func (vm *ValidationMiddleware) ValidateTheme() fiber.Handler {
	return func(c *fiber.Ctx) error {
		theme := c.Params("theme")

		if errors := vm.validator.ValidateThemeID(theme); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(ValidatedThemeKey, theme)
		return c.Next()
	}
}
