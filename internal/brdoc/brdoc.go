// Package brdoc validates and normalizes Brazilian billing documents.
package brdoc

import (
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed profile validation.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation error"
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid profile: " + strings.Join(names, ", ")
}

// Digits strips every non-digit rune.
func Digits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF reports whether the value is a well-formed CPF, including
// both verification digits.
func ValidCPF(value string) bool {
	cpf := Digits(value)
	if len(cpf) != 11 {
		return false
	}

	allEqual := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	if int(cpf[9]-'0') != cpfCheckDigit(cpf, 9) {
		return false
	}
	return int(cpf[10]-'0') == cpfCheckDigit(cpf, 10)
}

func cpfCheckDigit(cpf string, length int) int {
	sum := 0
	for i := 0; i < length; i++ {
		sum += int(cpf[i]-'0') * (length + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// ValidPhone accepts Brazilian landline and mobile numbers, with or
// without the leading country code.
func ValidPhone(value string) bool {
	phone := Digits(value)
	if strings.HasPrefix(phone, "55") && len(phone) > 11 {
		phone = phone[2:]
	}
	return len(phone) == 10 || len(phone) == 11
}

// NormalizePhone returns the digits-only local number without country code.
func NormalizePhone(value string) string {
	phone := Digits(value)
	if strings.HasPrefix(phone, "55") && len(phone) > 11 {
		phone = phone[2:]
	}
	return phone
}

// ValidPostalCode accepts an 8-digit CEP.
func ValidPostalCode(value string) bool {
	return len(Digits(value)) == 8
}

// Profile is the subset of a billing profile that the payment provider
// requires before a customer can be created.
type Profile struct {
	Name  string
	Email string
	CPF   string
	Phone string
}

// ValidateProfile checks the profile and returns a *ValidationError
// listing every missing or malformed field.
func ValidateProfile(p Profile) error {
	var fields []FieldError

	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Code: "required", Message: "name is required"})
	}
	email := strings.TrimSpace(p.Email)
	if email == "" {
		fields = append(fields, FieldError{Field: "email", Code: "required", Message: "email is required"})
	} else if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		fields = append(fields, FieldError{Field: "email", Code: "invalid_email", Message: "email is malformed"})
	}
	if strings.TrimSpace(p.CPF) == "" {
		fields = append(fields, FieldError{Field: "cpf", Code: "required", Message: "cpf is required"})
	} else if !ValidCPF(p.CPF) {
		fields = append(fields, FieldError{Field: "cpf", Code: "invalid_cpf", Message: "cpf checksum failed"})
	}
	if strings.TrimSpace(p.Phone) == "" {
		fields = append(fields, FieldError{Field: "phone", Code: "required", Message: "phone is required"})
	} else if !ValidPhone(p.Phone) {
		fields = append(fields, FieldError{Field: "phone", Code: "invalid_phone", Message: "phone is malformed"})
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
