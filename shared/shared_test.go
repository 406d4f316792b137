package shared_test

import (
	"testing"
	"time"

	"furk/shared"
	"furk/shared/constant"
	"furk/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestConvertStringToBool(t *testing.T) {
	truthy := []string{"true", "1", "t", "T", "TRUE"}
	falsy := []string{"false", "0", "f", "F", "FALSE"}

	for _, input := range truthy {
		t.Run("truthy "+input, func(t *testing.T) {
			result := shared.ConvertStringToBool(input)

			if assert.NotNil(t, result) {
				assert.True(t, *result)
			}
		})
	}

	for _, input := range falsy {
		t.Run("falsy "+input, func(t *testing.T) {
			result := shared.ConvertStringToBool(input)

			if assert.NotNil(t, result) {
				assert.False(t, *result)
			}
		})
	}

	t.Run("empty string returns nil", func(t *testing.T) {
		assert.Nil(t, shared.ConvertStringToBool(""))
	})

	t.Run("unparseable string returns nil", func(t *testing.T) {
		assert.Nil(t, shared.ConvertStringToBool("verified"))
	})
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "single booking", total: 1, limit: 10, expected: 1},
		{name: "limit equals total", total: 10, limit: 10, expected: 1},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
		{name: "large catalog", total: 1000000, limit: 7, expected: 142858},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type promoPatch struct {
		Code       string `db:"code"`
		MaxUses    int    `db:"max_uses"`
		Notes      string `db:"notes"`
		Internal   string
		IgnoredTag string `db:"-"`
		NoTagField string `db:""`
	}

	t.Run("populated fields only", func(t *testing.T) {
		patch := promoPatch{
			Code:       "PUPPY10",
			MaxUses:    50,
			Notes:      "",
			Internal:   "dropped",
			NoTagField: "dropped",
		}

		result := shared.TransformFields(patch, "admin@furk.dev")

		assert.Equal(t, "PUPPY10", result["code"])
		assert.Equal(t, 50, result["max_uses"])
		assert.NotContains(t, result, "notes")
		assert.NotContains(t, result, "")
	})

	t.Run("zero struct still stamps audit fields", func(t *testing.T) {
		result := shared.TransformFields(promoPatch{}, "admin@furk.dev")

		assert.Equal(t, "admin@furk.dev", result[constant.FieldModifiedBy])
		assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])

		delete(result, constant.FieldModifiedAt)
		delete(result, constant.FieldModifiedBy)
		assert.Empty(t, result)
	})

	t.Run("partial patch", func(t *testing.T) {
		result := shared.TransformFields(promoPatch{Code: "GROOM20"}, "ops@furk.dev")

		assert.Equal(t, "GROOM20", result["code"])
		assert.NotContains(t, result, "max_uses")
		assert.Equal(t, "ops@furk.dev", result[constant.FieldModifiedBy])
	})
}

// Pointer fields are included whenever non-nil; a pointer to a zero value is
// a deliberate write, not an omitted field.
func TestTransformFieldsWithPointers(t *testing.T) {
	type servicePatch struct {
		Price           *int    `db:"price"`
		Title           *string `db:"title"`
		DurationMinutes *int    `db:"duration_minutes"`
	}

	title := "Nail trim"
	zeroDuration := 0

	result := shared.TransformFields(servicePatch{
		Price:           intPtr(15000),
		Title:           &title,
		DurationMinutes: &zeroDuration,
	}, "merchant@furk.dev")

	assert.Equal(t, intPtr(15000), result["price"])
	assert.Equal(t, &title, result["title"])
	assert.Equal(t, &zeroDuration, result["duration_minutes"])
}

func TestFilterByID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		fieldID string
		table   string
	}{
		{name: "booking by id", id: "550e8400-e29b-41d4-a716-446655440000", fieldID: "id", table: "bookings"},
		{name: "promo by merchant scope", id: "123", fieldID: "merchant_id", table: "promos"},
		{name: "empty table", id: "456", fieldID: "id", table: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.FilterByID(tt.id, tt.fieldID, tt.table)

			if !assert.Len(t, result.Filters, 1) {
				return
			}

			filter, ok := result.Filters[0].(dto.Filter)

			assert.True(t, ok)
			assert.Equal(t, tt.fieldID, filter.Field)
			assert.Equal(t, tt.id, filter.Value)
			assert.Equal(t, dto.FilterOperatorEq, filter.Operator)
			assert.Equal(t, tt.table, filter.Table)
		})
	}
}

func intPtr(i int) *int {
	return &i
}
