package models

// Category is a monthly budget category with an allocated amount. It owns the
// transactions booked against it.
type Category struct {
	Model
	Name       string `json:"name"`
	Allocated  int64  `json:"allocatedAmount"`
	OrderIndex int    `json:"orderIndex"`
	MonthID    int64  `json:"monthId"`

	Transactions []Transaction `json:"transactions" gorm:"constraint:OnDelete:CASCADE"`
}

// Clone returns a deep copy sharing no references with the receiver.
func (c *Category) Clone() *Category {
	clone := *c

	clone.Transactions = make([]Transaction, len(c.Transactions))
	copy(clone.Transactions, c.Transactions)

	return &clone
}
