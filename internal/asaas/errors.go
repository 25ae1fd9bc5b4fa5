package asaas

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorItem struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Error is a failed provider call. StatusCode is the HTTP status the
// provider answered with; Items carries its error list when present.
type Error struct {
	StatusCode int
	Items      []ErrorItem
}

func (e *Error) Error() string {
	if e == nil {
		return "asaas: request failed"
	}
	if len(e.Items) == 0 {
		return fmt.Sprintf("asaas: request failed with status %d", e.StatusCode)
	}
	descriptions := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		descriptions = append(descriptions, item.Description)
	}
	return fmt.Sprintf("asaas: %s (status %d)", strings.Join(descriptions, "; "), e.StatusCode)
}

// IsNotFound reports whether the provider answered 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound
}

// IsDuplicateCustomer reports whether customer creation failed because a
// customer with the same tax id already exists at the provider.
func IsDuplicateCustomer(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, item := range apiErr.Items {
		code := strings.ToLower(strings.TrimSpace(item.Code))
		if code == "invalid_cpfcnpj" || code == "duplicate_customer" {
			return true
		}
		if strings.Contains(strings.ToLower(item.Description), "already") ||
			strings.Contains(strings.ToLower(item.Description), "cadastrado") {
			return true
		}
	}
	return false
}
