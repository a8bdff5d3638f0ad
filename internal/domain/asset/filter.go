package asset

// Filter set keys accepted by the list endpoint and the merge function.
const (
	FilterKeySearch           = "search"
	FilterKeySource           = "source"
	FilterKeyTenantID         = "tenantId"
	FilterKeyAssignedTenantID = "assignedTenantId"
	FilterKeyModelID          = "modelId"
	FilterKeyStatus           = "status"
	FilterKeyCategory         = "category"
	FilterKeyRentalFlag       = "rentalFlag"
	FilterKeyActive           = "active"
)

// FilterSet is the caller-facing representation of list criteria: a plain
// key/value set that can be merged incrementally as a UI narrows a search.
type FilterSet map[string]any

// MergeFilters combines an existing filter set with a patch and returns a
// new set; neither input is mutated. An empty patch value (nil or "")
// removes the key, any other value overwrites it. With replace set, the
// patch becomes the whole result (minus its empty values).
func MergeFilters(current, patch FilterSet, replace bool) FilterSet {
	next := make(FilterSet, len(current)+len(patch))
	if !replace {
		for k, v := range current {
			next[k] = v
		}
	}
	for k, v := range patch {
		if isEmptyFilterValue(v) {
			delete(next, k)
			continue
		}
		next[k] = v
	}
	return next
}

func isEmptyFilterValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	if p, ok := v.(*string); ok {
		return p == nil || *p == ""
	}
	return false
}
