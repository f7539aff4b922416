package dto

import (
	"github.com/edujournal/journal_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires the role and mediatype binding validators
// used by the request DTOs. Call once before routes are served.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseRole(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseMediaType(fl.Field().String())
		return ok
	})
}
