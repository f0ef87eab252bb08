package models

import "errors"

var ErrCategoryNestingTooDeep = errors.New("categories can only be nested one level deep")

// YearlyCategory is an expense category inside a section. A category with a
// non-nil ParentID is a child; children own no further children. Every
// category owns exactly twelve CategoryEntry rows, one per calendar month,
// created atomically with the category.
//
// Once a category has children, its own entries no longer contribute to
// section totals; only the children's entries do.
type YearlyCategory struct {
	Model
	Name       string `json:"name"`
	OrderIndex int    `json:"orderIndex"`
	SectionID  int64  `json:"sectionId"`
	ParentID   *int64 `json:"parentId"`

	Entries  []CategoryEntry  `json:"entries" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Children []YearlyCategory `json:"children" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

// Clone returns a deep copy sharing no references with the receiver.
func (c *YearlyCategory) Clone() *YearlyCategory {
	clone := *c

	if c.ParentID != nil {
		parentID := *c.ParentID
		clone.ParentID = &parentID
	}

	clone.Entries = make([]CategoryEntry, len(c.Entries))
	copy(clone.Entries, c.Entries)

	clone.Children = make([]YearlyCategory, len(c.Children))
	for i, child := range c.Children {
		clone.Children[i] = *child.Clone()
	}

	return &clone
}

// CategoryEntry is the planned amount of one category for one calendar
// month, with a paid flag.
type CategoryEntry struct {
	Model
	Month      int   `json:"month"` // Calendar month, 1-12
	Amount     int64 `json:"amount"`
	IsPaid     bool  `json:"isPaid"`
	CategoryID int64 `json:"categoryId"`
}
