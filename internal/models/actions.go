package models

// Action is one recorded collection attempt on a debt (call, letter, visit).
type Action struct {
	ID     string
	DebtID *string
}
