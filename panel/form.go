package panel

import (
	"regexp"
	"strings"

	"faculty_directory_go/services/i18n"
)

// Form field names, also used as focus targets
const (
	FieldName        = "name"
	FieldInitials    = "initials"
	FieldDesignation = "designation"
	FieldPhone       = "phone"
	FieldEmail       = "email"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormFields is the add-faculty form; its JSON is the add request body
type FormFields struct {
	Name        string `json:"name"`
	Initials    string `json:"initials"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// Trimmed returns the fields with surrounding whitespace removed
func (f FormFields) Trimmed() FormFields {
	return FormFields{
		Name:        strings.TrimSpace(f.Name),
		Initials:    strings.TrimSpace(f.Initials),
		Designation: strings.TrimSpace(f.Designation),
		Phone:       strings.TrimSpace(f.Phone),
		Email:       strings.TrimSpace(f.Email),
	}
}

// ValidateForm checks trimmed fields in form order and reports the first
// failure. It returns nil when the form can be submitted.
func ValidateForm(f FormFields, lang string) *ValidationError {
	f = f.Trimmed()

	required := []struct {
		field string
		value string
		key   string
	}{
		{FieldName, f.Name, "panel.validation.name_required"},
		{FieldInitials, f.Initials, "panel.validation.initials_required"},
		{FieldDesignation, f.Designation, "panel.validation.designation_required"},
		{FieldPhone, f.Phone, "panel.validation.phone_required"},
		{FieldEmail, f.Email, "panel.validation.email_required"},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field, Message: i18n.Translate(lang, r.key)}
		}
	}

	if !ValidEmail(f.Email) {
		return &ValidationError{Field: FieldEmail, Message: i18n.Translate(lang, "panel.validation.email_invalid")}
	}
	return nil
}

// ValidEmail applies the loose "x@y.z" shape check
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeInitialsInput upper-cases initials as they are typed
func NormalizeInitialsInput(s string) string {
	return strings.ToUpper(s)
}
