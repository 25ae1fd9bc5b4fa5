package brdoc_test

import (
	"errors"
	"testing"

	"github.com/turmapay/turmapay/internal/brdoc"
)

func TestValidCPF(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{"known good", "529.982.247-25", true},
		{"known good digits only", "52998224725", true},
		{"bad check digit", "529.982.247-24", false},
		{"all same digits", "111.111.111-11", false},
		{"too short", "5299822472", false},
		{"empty", "", false},
		{"letters", "aaa.bbb.ccc-dd", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := brdoc.ValidCPF(tc.value); got != tc.want {
				t.Fatalf("ValidCPF(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestValidPhone(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"(11) 98765-4321", true},
		{"11987654321", true},
		{"1133334444", true},
		{"+55 11 98765-4321", true},
		{"987654", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := brdoc.ValidPhone(tc.value); got != tc.want {
			t.Fatalf("ValidPhone(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := brdoc.NormalizePhone("+55 (11) 98765-4321"); got != "11987654321" {
		t.Fatalf("expected 11987654321, got %s", got)
	}
}

func TestValidateProfileListsEveryBadField(t *testing.T) {
	err := brdoc.ValidateProfile(brdoc.Profile{
		Name:  "Maria Souza",
		Email: "maria",
		CPF:   "123",
		Phone: "",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var vErr *brdoc.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(vErr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d", len(vErr.Fields))
	}

	fields := map[string]bool{}
	for _, f := range vErr.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"email", "cpf", "phone"} {
		if !fields[want] {
			t.Fatalf("expected field %s in validation error", want)
		}
	}
}

func TestValidateProfileOK(t *testing.T) {
	err := brdoc.ValidateProfile(brdoc.Profile{
		Name:  "Maria Souza",
		Email: "maria@example.com",
		CPF:   "529.982.247-25",
		Phone: "11987654321",
	})
	if err != nil {
		t.Fatalf("expected valid profile, got %v", err)
	}
}
