// Package validation registers the binding tags the request DTOs use.
package validation

import (
	"court-booking/internal/domain/schedule"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register adds "clock" (HH:MM) and "slotkey" (HH:MM-HH:MM) to gin's validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("clock", validateClock); err != nil {
		return err
	}
	return v.RegisterValidation("slotkey", validateSlotKey)
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := schedule.ParseClock(fl.Field().String())
	return err == nil
}

func validateSlotKey(fl validator.FieldLevel) bool {
	_, err := schedule.ParseSlotKey(fl.Field().String())
	return err == nil
}
