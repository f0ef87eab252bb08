package models

import "time"

// Transaction is a single expense booked against a monthly category.
type Transaction struct {
	Model
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
	CategoryID  int64     `json:"categoryId"`
}
