package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeFilters(t *testing.T) {
	t.Run("patch overwrites and adds", func(t *testing.T) {
		current := FilterSet{FilterKeyStatus: "in_stock", FilterKeyCategory: "hydraulics"}
		patch := FilterSet{FilterKeyStatus: "rented", FilterKeySource: "tenant"}

		result := MergeFilters(current, patch, false)

		assert.Equal(t, FilterSet{
			FilterKeyStatus:   "rented",
			FilterKeyCategory: "hydraulics",
			FilterKeySource:   "tenant",
		}, result)
	})

	t.Run("empty value removes the key", func(t *testing.T) {
		current := FilterSet{FilterKeyStatus: "in_stock", FilterKeySearch: "pump"}

		result := MergeFilters(current, FilterSet{FilterKeySearch: ""}, false)

		assert.Equal(t, FilterSet{FilterKeyStatus: "in_stock"}, result)
	})

	t.Run("nil and nil string pointer count as empty", func(t *testing.T) {
		current := FilterSet{FilterKeyStatus: "in_stock", FilterKeyCategory: "hydraulics"}
		var nilStr *string

		result := MergeFilters(current, FilterSet{
			FilterKeyStatus:   nil,
			FilterKeyCategory: nilStr,
		}, false)

		assert.Empty(t, result)
	})

	t.Run("replace discards the current set", func(t *testing.T) {
		current := FilterSet{FilterKeyStatus: "in_stock", FilterKeyCategory: "hydraulics"}
		patch := FilterSet{FilterKeySearch: "pump", FilterKeyStatus: ""}

		result := MergeFilters(current, patch, true)

		assert.Equal(t, FilterSet{FilterKeySearch: "pump"}, result)
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		current := FilterSet{FilterKeyStatus: "in_stock"}
		patch := FilterSet{FilterKeyStatus: "", FilterKeySearch: "pump"}

		_ = MergeFilters(current, patch, false)

		assert.Equal(t, FilterSet{FilterKeyStatus: "in_stock"}, current)
		assert.Equal(t, FilterSet{FilterKeyStatus: "", FilterKeySearch: "pump"}, patch)
	})
}
