package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var zoneCodeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,7}$`)

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("zonecode", validateZoneCode)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180.0 && lng <= 180.0
}

// Short campus lot codes like "N1" or "SE12".
func validateZoneCode(fl validator.FieldLevel) bool {
	return zoneCodeRe.MatchString(fl.Field().String())
}
