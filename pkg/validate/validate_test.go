package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modacart/catalog/pkg/validate"
)

func fp(v float64) *float64 { return &v }
func sp(s string) *string   { return &s }

func TestIsObjectID(t *testing.T) {
	assert.True(t, validate.IsObjectID("64b7f9a1c2d3e4f506172839"))
	assert.True(t, validate.IsObjectID("AAAAAAAAAAAAAAAAAAAAAAAA"))
	assert.False(t, validate.IsObjectID(""))
	assert.False(t, validate.IsObjectID("64b7f9a1c2d3e4f50617283"))   // 23 chars
	assert.False(t, validate.IsObjectID("64b7f9a1c2d3e4f5061728399")) // 25 chars
	assert.False(t, validate.IsObjectID("zzb7f9a1c2d3e4f506172839"))  // non-hex
}

func TestStructRequired(t *testing.T) {
	type in struct {
		Title string `json:"title" validate:"required"`
	}

	errs := validate.Struct(in{})
	assert.Contains(t, errs, "title")

	errs = validate.Struct(in{Title: "   "})
	assert.Contains(t, errs, "title", "whitespace-only counts as empty")

	errs = validate.Struct(in{Title: "ok"})
	assert.False(t, validate.HasErrors(errs))
}

func TestStructNullableSkipsRules(t *testing.T) {
	type in struct {
		Category *string `json:"category" validate:"nullable,objectid"`
		ImageURL string  `json:"imageUrl" validate:"nullable,url"`
	}

	// Empty nullable fields pass untouched.
	assert.Empty(t, validate.Struct(in{}))

	// Present values still hit the remaining rules.
	errs := validate.Struct(in{Category: sp("nope"), ImageURL: "not a url"})
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "imageUrl")

	errs = validate.Struct(in{
		Category: sp("64b7f9a1c2d3e4f506172839"),
		ImageURL: "https://cdn.example.com/a.png",
	})
	assert.Empty(t, errs)
}

func TestStructNumericBounds(t *testing.T) {
	type in struct {
		Price *float64 `json:"price" validate:"nullable,gte=0"`
		Stock int      `json:"stock" validate:"required,gte=1,lte=100"`
	}

	errs := validate.Struct(in{Price: fp(-1), Stock: 5})
	assert.Contains(t, errs, "price")

	errs = validate.Struct(in{Price: fp(0), Stock: 101})
	assert.NotContains(t, errs, "price")
	assert.Contains(t, errs, "stock")

	errs = validate.Struct(in{Price: fp(9.99), Stock: 100})
	assert.Empty(t, errs)
}

func TestStructStringLengths(t *testing.T) {
	type in struct {
		Title    string `json:"title" validate:"required,min=2,max=5"`
		Currency string `json:"currency" validate:"required,between=3,3"`
	}

	errs := validate.Struct(in{Title: "a", Currency: "USD"})
	assert.Contains(t, errs, "title")

	errs = validate.Struct(in{Title: "toolong", Currency: "USD"})
	assert.Contains(t, errs, "title")

	errs = validate.Struct(in{Title: "ok", Currency: "US"})
	assert.Contains(t, errs, "currency")

	errs = validate.Struct(in{Title: "ok", Currency: "USD"})
	assert.Empty(t, errs)
}

func TestStructInRuleWithCommaParams(t *testing.T) {
	type in struct {
		Currency string `json:"currency" validate:"required,in=USD,EUR,INR"`
	}

	assert.Empty(t, validate.Struct(in{Currency: "EUR"}))
	assert.Contains(t, validate.Struct(in{Currency: "GBP"}), "currency")
}

func TestStructInFollowedByAnotherRule(t *testing.T) {
	type in struct {
		Kind string `json:"kind" validate:"in=select,text,min=1"`
	}

	// The rule splitter must not swallow "min=1" into the in-list.
	assert.Empty(t, validate.Struct(in{Kind: "text"}))
	assert.Contains(t, validate.Struct(in{Kind: "color"}), "kind")
}

func TestStructAlphaDash(t *testing.T) {
	type in struct {
		Code string `json:"code" validate:"required,alpha_dash"`
	}

	assert.Empty(t, validate.Struct(in{Code: "shoe-size_42"}))
	assert.Contains(t, validate.Struct(in{Code: "shoe size"}), "code")
}

func TestStructFirstFailingRulePerField(t *testing.T) {
	type in struct {
		Title string `json:"title" validate:"required,min=2"`
	}

	errs := validate.Struct(in{})
	assert.Equal(t, "The title field is required.", errs["title"])
}

func TestStructNonStructInput(t *testing.T) {
	assert.Empty(t, validate.Struct(42))
	assert.Empty(t, validate.Struct("x"))
}
