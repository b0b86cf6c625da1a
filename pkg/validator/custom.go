package validator

import "github.com/go-playground/validator/v10"

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("map_lat", validateMapLat)
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180.0 && lng <= 180.0
}

// Web mercator tiles cut off at ±85, so does the map's click surface.
func validateMapLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -85.0 && lat <= 85.0
}
