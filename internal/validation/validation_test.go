package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("nom", "  ", v)
	if v["nom"] != "required" {
		t.Fatalf("expected required, got %q", v["nom"])
	}
	v = Violations{}
	Required("nom", "Dupont", v)
	if !v.Empty() {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		code  string
	}{
		{"jean@x.fr", ""},
		{"jean.dupont@example.co.uk", ""},
		{"", "required"},
		{"jean@", "invalid_email"},
		{"jean dupont@x.fr", "invalid_email"},
		{"@x.fr", "invalid_email"},
	}
	for _, tt := range tests {
		v := Violations{}
		Email("email", tt.value, v)
		if v["email"] != tt.code {
			t.Errorf("Email(%q) = %q, want %q", tt.value, v["email"], tt.code)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		value string
		code  string
	}{
		{"0612345678", ""},
		{"06 12 34 56 78", ""},
		{"+33612345678", ""},
		{"", "required"},
		{"12345", "invalid_phone"},
		{"0012345678", "invalid_phone"},
	}
	for _, tt := range tests {
		v := Violations{}
		Phone("telephone", tt.value, v)
		if v["telephone"] != tt.code {
			t.Errorf("Phone(%q) = %q, want %q", tt.value, v["telephone"], tt.code)
		}
	}
}

func TestPostalCode(t *testing.T) {
	v := Violations{}
	PostalCode("code_postal", "95000", v)
	if !v.Empty() {
		t.Fatalf("valid code flagged: %v", v)
	}
	v = Violations{}
	PostalCode("code_postal", "9500", v)
	if v["code_postal"] != "invalid_postal_code" {
		t.Fatalf("expected invalid_postal_code, got %q", v["code_postal"])
	}
}

func TestOneOf(t *testing.T) {
	allowed := []string{"neuf", "renovation", "extension"}
	v := Violations{}
	OneOf("type_projet", "neuf", allowed, v)
	if !v.Empty() {
		t.Fatalf("valid choice flagged: %v", v)
	}
	v = Violations{}
	OneOf("type_projet", "demolition", allowed, v)
	if v["type_projet"] != "invalid_choice" {
		t.Fatalf("expected invalid_choice, got %q", v["type_projet"])
	}
}

func TestMaxLen(t *testing.T) {
	v := Violations{}
	long := make([]rune, 2001)
	for i := range long {
		long[i] = 'a'
	}
	MaxLen("commentaire", string(long), 2000, v)
	if v["commentaire"] != "too_long" {
		t.Fatalf("expected too_long, got %q", v["commentaire"])
	}
}
