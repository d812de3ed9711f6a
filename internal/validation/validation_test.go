package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"toyshop/internal/models"
	"toyshop/internal/validation"
)

func floatPtr(f float64) *float64 { return &f }

func validCommand() models.ToyCommand {
	return models.ToyCommand{
		Name:        "Car",
		Description: "Red toy car",
		Price:       floatPtr(19.99),
		TypeToy:     models.ToyTypePlush,
	}
}

func TestStruct_ValidCommand(t *testing.T) {
	errs := validation.Struct(validCommand())
	assert.Nil(t, errs)
}

func TestStruct_PriceRange(t *testing.T) {
	for _, price := range []float64{0, 0.5, 10000} {
		cmd := validCommand()
		cmd.Price = floatPtr(price)

		errs := validation.Struct(cmd)
		assert.Contains(t, errs, "price", "price=%v should be rejected", price)
		assert.Contains(t, errs["price"], "The price must be between 1 and 9999")
	}

	// Boundaries are inclusive.
	for _, price := range []float64{1, 9999} {
		cmd := validCommand()
		cmd.Price = floatPtr(price)
		assert.Nil(t, validation.Struct(cmd), "price=%v should be accepted", price)
	}
}

func TestStruct_TypeToyEnum(t *testing.T) {
	cmd := validCommand()
	cmd.TypeToy = models.ToyType(9)

	errs := validation.Struct(cmd)
	assert.Contains(t, errs, "typeToy")
	assert.Contains(t, errs["typeToy"], "The type must have values from TypeToy (Ex:1,2,3,4)")
}

func TestStruct_LengthLimits(t *testing.T) {
	cmd := validCommand()
	cmd.Name = strings.Repeat("a", 101)
	cmd.Description = strings.Repeat("b", 301)

	errs := validation.Struct(cmd)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "description")
	assert.NotContains(t, errs, "price")
}

// All fields are checked independently; one bad field never hides another.
func TestStruct_AggregatesAllFields(t *testing.T) {
	errs := validation.Struct(models.ToyCommand{})
	for _, field := range []string{"name", "description", "price", "typeToy"} {
		assert.Contains(t, errs, field)
	}
}

func TestStruct_FieldNamesAreJSONNames(t *testing.T) {
	errs := validation.Struct(models.RegisterCommand{})
	assert.Contains(t, errs, "confirmPassword")
	assert.NotContains(t, errs, "ConfirmPassword")
}
