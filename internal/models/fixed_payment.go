package models

// FixedPayment is a recurring payment that leaves the monthly income before
// any category allocation happens.
type FixedPayment struct {
	Model
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	OrderIndex int    `json:"orderIndex"`
	MonthID    int64  `json:"monthId"`
}
