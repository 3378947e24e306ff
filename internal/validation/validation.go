// Package validation implements the booking-form field checks with the
// per-field French messages the web client displays.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// French mobile and landline numbers, separators stripped before match.
var phoneRegex = regexp.MustCompile(`^(?:\+33|0)[1-9][0-9]{8}$`)

var phoneSeparators = strings.NewReplacer(" ", "", ".", "", "-", "")

// FieldErrors maps field names to user-facing messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return fmt.Sprintf("validation failed: [%s]", strings.Join(parts, "; "))
}

// BookingForm is the customer-facing part of a booking submission.
type BookingForm struct {
	FirstName string `validate:"required,min=2"`
	LastName  string `validate:"required,min=2"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,frphone"`
	Address   string `validate:"required,min=10"`
	Notes     string `validate:"max=500"`
}

// CarForm is a new car added standalone or inline with a booking.
type CarForm struct {
	Make  string `validate:"required,max=50"`
	Model string `validate:"required,max=50"`
	Plate string `validate:"required,max=20"`
}

// FormValidator wraps the struct validator with the French message
// translation.
type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator creates a new form validator
func NewFormValidator() *FormValidator {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("frphone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	return &FormValidator{validate: v}
}

// ValidPhone reports whether the number is a valid French phone number
// once spacing and separators are removed.
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(phoneSeparators.Replace(phone))
}

// ValidateBookingForm returns the per-field errors of the customer
// block, or nil when everything passes.
func (fv *FormValidator) ValidateBookingForm(form BookingForm) FieldErrors {
	err := fv.validate.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrors := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["form"] = "Formulaire invalide"
		return fieldErrors
	}

	for _, fe := range verrs {
		switch fe.StructField() {
		case "FirstName":
			if fe.Tag() == "required" {
				fieldErrors["firstName"] = "Le prénom est requis"
			} else {
				fieldErrors["firstName"] = "Le prénom doit contenir au moins 2 caractères"
			}
		case "LastName":
			if fe.Tag() == "required" {
				fieldErrors["lastName"] = "Le nom est requis"
			} else {
				fieldErrors["lastName"] = "Le nom doit contenir au moins 2 caractères"
			}
		case "Email":
			if fe.Tag() == "required" {
				fieldErrors["email"] = "L'email est requis"
			} else {
				fieldErrors["email"] = "Veuillez entrer un email valide"
			}
		case "Phone":
			if fe.Tag() == "required" {
				fieldErrors["phone"] = "Le téléphone est requis"
			} else {
				fieldErrors["phone"] = "Veuillez entrer un numéro de téléphone français valide"
			}
		case "Address":
			if fe.Tag() == "required" {
				fieldErrors["address"] = "L'adresse est requise"
			} else {
				fieldErrors["address"] = "Veuillez entrer une adresse complète"
			}
		case "Notes":
			fieldErrors["notes"] = "Les notes ne peuvent pas dépasser 500 caractères"
		}
	}
	return fieldErrors
}

// ValidateCarForm returns the per-field errors of a new car.
func (fv *FormValidator) ValidateCarForm(form CarForm) FieldErrors {
	err := fv.validate.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrors := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["form"] = "Formulaire invalide"
		return fieldErrors
	}

	for _, fe := range verrs {
		switch fe.StructField() {
		case "Make":
			fieldErrors["make"] = "La marque est requise"
		case "Model":
			fieldErrors["model"] = "Le modèle est requis"
		case "Plate":
			fieldErrors["plate"] = "La plaque d'immatriculation est requise"
		}
	}
	return fieldErrors
}
