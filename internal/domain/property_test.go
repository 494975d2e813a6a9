package domain_test

import (
	"testing"

	"github.com/ZaidAr98/PropTrack/internal/domain"
)

func validProperty() domain.Property {
	return domain.Property{
		Title:       "Sunny flat",
		Description: "Two bedroom flat with a balcony",
		Price:       250000,
		Type:        domain.PropertySale,
		Location:    "Dubai Marina",
		Bedrooms:    2,
		Bathrooms:   1,
		Area:        95,
	}
}

func TestPropertyValidate(t *testing.T) {
	p := validProperty()
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	missing := validProperty()
	missing.Title = "   "
	if err := missing.Validate(); err == nil || err.Error() != "All required fields must be provided" {
		t.Fatalf("got %v, want required-fields error", err)
	}

	badType := validProperty()
	badType.Type = "lease"
	if err := badType.Validate(); !domain.IsValidation(err) {
		t.Fatalf("got %v, want validation error for bad type", err)
	}

	negative := validProperty()
	negative.Price = -1
	if err := negative.Validate(); !domain.IsValidation(err) {
		t.Fatalf("got %v, want validation error for negative price", err)
	}
}

func TestParsePropertyType(t *testing.T) {
	if got, ok := domain.ParsePropertyType("rent"); !ok || got != domain.PropertyRent {
		t.Fatalf("rent: got %q ok=%v", got, ok)
	}
	if _, ok := domain.ParsePropertyType("Rent"); ok {
		t.Fatal("type enum must be case sensitive")
	}
	if _, ok := domain.ParsePropertyType(""); ok {
		t.Fatal("empty type must be rejected")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := domain.NormalizeEmail("  John@Example.COM "); got != "john@example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestValidEmail(t *testing.T) {
	for _, e := range []string{"a@b.co", "john.doe@example.com", " padded@example.com "} {
		if !domain.ValidEmail(e) {
			t.Fatalf("expected %q valid", e)
		}
	}
	for _, e := range []string{"", "plain", "a@b", "a b@c.d", "@example.com"} {
		if domain.ValidEmail(e) {
			t.Fatalf("expected %q invalid", e)
		}
	}
}
