package models

// Month is the root of the monthly transaction aggregate. All amounts are in
// minor units.
type Month struct {
	Model
	Name      string `json:"name"`
	Year      int    `json:"year"`
	Month     int    `json:"month"` // Calendar month, 1-12
	Income    int64  `json:"income"`
	ProfileID int64  `json:"-"`

	FixedPayments []FixedPayment `json:"fixedPayments" gorm:"constraint:OnDelete:CASCADE"`
	Categories    []Category     `json:"categories" gorm:"constraint:OnDelete:CASCADE"`
}

// Clone returns a deep copy sharing no references with the receiver.
func (m *Month) Clone() *Month {
	if m == nil {
		return nil
	}

	c := *m

	c.FixedPayments = make([]FixedPayment, len(m.FixedPayments))
	copy(c.FixedPayments, m.FixedPayments)

	c.Categories = make([]Category, len(m.Categories))
	for i, category := range m.Categories {
		c.Categories[i] = *category.Clone()
	}

	return &c
}
