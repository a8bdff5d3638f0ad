package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tagPattern matches a full-length asset tag before normalization
var tagPattern = regexp.MustCompile(`^[A-Za-z0-9]{24}$`)

// RegisterValidators installs the custom binding validations used by the
// request DTOs. Must be called once before the router starts serving.
func RegisterValidators() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return engine.RegisterValidation("assettag", validAssetTag)
}

func validAssetTag(fl validator.FieldLevel) bool {
	return tagPattern.MatchString(fl.Field().String())
}
