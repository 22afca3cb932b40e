package config

import (
	"EnvWatchAPI/internal/constant"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("report_status", validateReportStatus)
	_ = v.RegisterValidation("report_category", validateReportCategory)
	return v
}

func validateReportStatus(fl validator.FieldLevel) bool {
	return constant.ValidStatus(fl.Field().String())
}

func validateReportCategory(fl validator.FieldLevel) bool {
	return constant.ValidCategory(fl.Field().String())
}
