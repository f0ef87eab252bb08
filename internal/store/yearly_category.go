package store

import (
	"context"
	"time"

	"github.com/ledgerly/backend/internal/client"
	"github.com/ledgerly/backend/internal/models"
	"github.com/ledgerly/backend/internal/summary"
)

// CreateCategory creates a yearly category. The placeholder is built exactly
// the way the server will build the real one: twelve zero-amount, unpaid
// entries, and insertion into the parent's children list when a parent is
// given. Only one level of nesting is allowed.
func (st *YearlyStore) CreateCategory(ctx context.Context, data client.YearlyCategoryCreate) (models.YearlyCategory, error) {
	if data.ParentID != nil {
		var parentIsChild bool
		var parentMissing bool
		st.s.read(func(state *yearlyState) {
			parent := findYearlyCategory(state, *data.ParentID)
			if parent == nil {
				parentMissing = true
				return
			}
			parentIsChild = parent.ParentID != nil
		})
		if parentMissing || parentIsChild {
			err := models.ErrCategoryNestingTooDeep
			st.s.setError(err.Error())
			return models.YearlyCategory{}, err
		}
	}

	tempID := st.temp.Next()

	placeholder := models.YearlyCategory{
		Model:      models.Model{ID: tempID, Timestamps: freshTimestamps()},
		Name:       data.Name,
		OrderIndex: data.OrderIndex,
		SectionID:  data.SectionID,
		ParentID:   data.ParentID,
		Entries:    make([]models.CategoryEntry, 0, 12),
		Children:   []models.YearlyCategory{},
	}
	for month := 1; month <= 12; month++ {
		placeholder.Entries = append(placeholder.Entries, models.CategoryEntry{
			Model:      models.Model{ID: st.temp.Next(), Timestamps: freshTimestamps()},
			Month:      month,
			CategoryID: tempID,
		})
	}

	return run(ctx, &st.s, mutation[*yearlyState, models.YearlyCategory]{
		op:     OperationCreate,
		entity: EntityYearlyCategory,
		tempID: tempID,
		apply: func(state *yearlyState) {
			if data.ParentID != nil {
				parent := findYearlyCategory(state, *data.ParentID)
				if parent != nil {
					parent.Children = append(parent.Children, placeholder)
				}
				return
			}

			section := findSection(state, data.SectionID)
			if section != nil {
				section.Categories = append(section.Categories, placeholder)
			}
		},
		call: func(ctx context.Context) (models.YearlyCategory, error) {
			return st.api.CreateYearlyCategory(ctx, data)
		},
		reconcile: func(state *yearlyState, created models.YearlyCategory) {
			replaceYearlyCategory(state, tempID, created)
		},
	})
}

func (st *YearlyStore) UpdateCategory(ctx context.Context, id int64, data client.YearlyCategoryUpdate) (models.YearlyCategory, error) {
	return run(ctx, &st.s, mutation[*yearlyState, models.YearlyCategory]{
		op:     OperationUpdate,
		entity: EntityYearlyCategory,
		realID: id,
		apply: func(state *yearlyState) {
			category := findYearlyCategory(state, id)
			if category == nil {
				return
			}
			patch(&category.Name, data.Name)
			patch(&category.OrderIndex, data.OrderIndex)
			category.UpdatedAt = time.Now().In(time.UTC)
		},
		call: func(ctx context.Context) (models.YearlyCategory, error) {
			return st.api.UpdateYearlyCategory(ctx, id, data)
		},
		reconcile: func(state *yearlyState, updated models.YearlyCategory) {
			category := findYearlyCategory(state, id)
			if category == nil {
				return
			}
			// The update response carries no relations, the optimistic
			// entries and children stay.
			updated.Entries = category.Entries
			updated.Children = category.Children
			*category = updated
		},
	})
}

// DeleteCategory removes a category and, for parents, all children it
// structurally contains.
func (st *YearlyStore) DeleteCategory(ctx context.Context, id int64) error {
	_, err := run(ctx, &st.s, mutation[*yearlyState, struct{}]{
		op:     OperationDelete,
		entity: EntityYearlyCategory,
		realID: id,
		apply: func(state *yearlyState) {
			removeYearlyCategory(state, id)
		},
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, st.api.DeleteYearlyCategory(ctx, id)
		},
	})
	return err
}

func (st *YearlyStore) UpdateCategoryEntry(ctx context.Context, id int64, data client.CategoryEntryUpdate) (models.CategoryEntry, error) {
	return run(ctx, &st.s, mutation[*yearlyState, models.CategoryEntry]{
		op:     OperationUpdate,
		entity: EntityCategoryEntry,
		realID: id,
		apply: func(state *yearlyState) {
			entry := findCategoryEntry(state, id)
			if entry == nil {
				return
			}
			patch(&entry.Amount, data.Amount)
			patch(&entry.IsPaid, data.IsPaid)
			entry.UpdatedAt = time.Now().In(time.UTC)
		},
		call: func(ctx context.Context) (models.CategoryEntry, error) {
			return st.api.UpdateCategoryEntry(ctx, id, data)
		},
		reconcile: func(state *yearlyState, updated models.CategoryEntry) {
			entry := findCategoryEntry(state, id)
			if entry != nil {
				*entry = updated
			}
		},
	})
}

// TogglePaid flips the paid flag of one category entry.
func (st *YearlyStore) TogglePaid(ctx context.Context, entryID int64, isPaid bool) (models.CategoryEntry, error) {
	return st.UpdateCategoryEntry(ctx, entryID, client.CategoryEntryUpdate{IsPaid: &isPaid})
}

// Sections returns a copy of the sections of the current budget.
func (st *YearlyStore) Sections() []models.Section {
	var sections []models.Section
	st.s.read(func(state *yearlyState) {
		if state.Current == nil {
			return
		}
		sections = make([]models.Section, len(state.Current.Sections))
		for i := range state.Current.Sections {
			sections[i] = *state.Current.Sections[i].Clone()
		}
	})
	return sections
}

// SectionByType returns a copy of the section of the given type, or nil.
func (st *YearlyStore) SectionByType(sectionType models.SectionType) *models.Section {
	var section *models.Section
	st.s.read(func(state *yearlyState) {
		if state.Current == nil {
			return
		}
		for i := range state.Current.Sections {
			if state.Current.Sections[i].Type == sectionType {
				section = state.Current.Sections[i].Clone()
				return
			}
		}
	})
	return section
}

// SectionTotalForMonth returns the contributing entry total of one section
// for one calendar month.
func (st *YearlyStore) SectionTotalForMonth(sectionID int64, month int) int64 {
	var total int64
	st.s.read(func(state *yearlyState) {
		section := findSection(state, sectionID)
		if section != nil {
			total = summary.SectionTotal(section, month)
		}
	})
	return total
}

// TotalExpensesForMonth returns the total of all sections for one calendar
// month.
func (st *YearlyStore) TotalExpensesForMonth(month int) int64 {
	var total int64
	st.s.read(func(state *yearlyState) {
		if state.Current == nil {
			return
		}
		for i := range state.Current.Sections {
			total += summary.SectionTotal(&state.Current.Sections[i], month)
		}
	})
	return total
}

// CategoryEntry returns a copy of the entry of a category for a month, or
// nil.
func (st *YearlyStore) CategoryEntry(categoryID int64, month int) *models.CategoryEntry {
	var found *models.CategoryEntry
	st.s.read(func(state *yearlyState) {
		category := findYearlyCategory(state, categoryID)
		if category == nil {
			return
		}
		for _, entry := range category.Entries {
			if entry.Month == month {
				e := entry
				found = &e
				return
			}
		}
	})
	return found
}

// findYearlyCategory walks the section tree, top-level categories first,
// then one level of children.
func findYearlyCategory(state *yearlyState, id int64) *models.YearlyCategory {
	if state.Current == nil {
		return nil
	}
	for i := range state.Current.Sections {
		categories := state.Current.Sections[i].Categories
		for j := range categories {
			if categories[j].ID == id {
				return &categories[j]
			}
			for k := range categories[j].Children {
				if categories[j].Children[k].ID == id {
					return &categories[j].Children[k]
				}
			}
		}
	}
	return nil
}

func replaceYearlyCategory(state *yearlyState, id int64, replacement models.YearlyCategory) {
	category := findYearlyCategory(state, id)
	if category == nil {
		return
	}
	if replacement.Entries == nil {
		replacement.Entries = category.Entries
	}
	if replacement.Children == nil {
		replacement.Children = []models.YearlyCategory{}
	}
	*category = replacement
}

func removeYearlyCategory(state *yearlyState, id int64) {
	if state.Current == nil {
		return
	}
	for i := range state.Current.Sections {
		section := &state.Current.Sections[i]

		categories := section.Categories[:0]
		for _, category := range section.Categories {
			if category.ID == id {
				continue
			}

			children := category.Children[:0]
			for _, child := range category.Children {
				if child.ID != id {
					children = append(children, child)
				}
			}
			category.Children = children

			categories = append(categories, category)
		}
		section.Categories = categories
	}
}

func findCategoryEntry(state *yearlyState, id int64) *models.CategoryEntry {
	if state.Current == nil {
		return nil
	}
	for i := range state.Current.Sections {
		categories := state.Current.Sections[i].Categories
		for j := range categories {
			if entry := entryByID(categories[j].Entries, id); entry != nil {
				return entry
			}
			for k := range categories[j].Children {
				if entry := entryByID(categories[j].Children[k].Entries, id); entry != nil {
					return entry
				}
			}
		}
	}
	return nil
}

func entryByID(entries []models.CategoryEntry, id int64) *models.CategoryEntry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}
