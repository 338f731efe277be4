package domain

import "sort"

// SortField represents a field to sort by
type SortField string

const (
	SortByPriority SortField = "priority"
	SortByUpdated  SortField = "updated"
	SortByTitle    SortField = "title"
)

// SortOrder represents sort direction
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Sort represents sorting state for cards within a lane. Position inside a
// lane is not stored anywhere; it is always derived from this ordering.
type Sort struct {
	Field SortField
	Order SortOrder
}

// DefaultSort orders cards by priority, most urgent first.
func DefaultSort() Sort {
	return Sort{Field: SortByPriority, Order: SortAsc}
}

// Toggle toggles the sort field or direction
// If field is different, sets new field with ascending order
// If field is same, toggles between ascending and descending
func (s *Sort) Toggle(field SortField) {
	if s.Field == field {
		if s.Order == SortAsc {
			s.Order = SortDesc
		} else {
			s.Order = SortAsc
		}
		return
	}
	s.Field = field
	s.Order = SortAsc
}

// Apply sorts a copy of tasks. Ties fall back to ID so the order is total.
func (s Sort) Apply(tasks []Task) []Task {
	if len(tasks) == 0 {
		return tasks
	}

	result := make([]Task, len(tasks))
	copy(result, tasks)

	less := func(a, b Task) int {
		switch s.Field {
		case SortByUpdated:
			switch {
			case a.UpdatedAt.Before(b.UpdatedAt):
				return -1
			case a.UpdatedAt.After(b.UpdatedAt):
				return 1
			}
		case SortByTitle:
			switch {
			case a.Title < b.Title:
				return -1
			case a.Title > b.Title:
				return 1
			}
		default:
			switch {
			case a.Priority < b.Priority:
				return -1
			case a.Priority > b.Priority:
				return 1
			}
		}
		return 0
	}

	sort.SliceStable(result, func(i, j int) bool {
		c := less(result[i], result[j])
		if c == 0 {
			return result[i].ID < result[j].ID
		}
		if s.Order == SortDesc {
			return c > 0
		}
		return c < 0
	})

	return result
}
