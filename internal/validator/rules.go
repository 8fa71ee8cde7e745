package validator

import (
	"log"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/rgrams-coder/mmles/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// startup misconfiguration
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("member-status", validateMemberStatus)
	mustRegister("submission-status", validateSubmissionStatus)
	mustRegister("username", validateUsername)
}

// Empty values pass; 'required' handles them.

func validateMemberStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.MemberCategory(value).IsValid()
}

func validateSubmissionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.SubmissionStatus(value).IsValid()
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return usernamePattern.MatchString(value)
}
