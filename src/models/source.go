package models

import "time"

type Source struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Icon           string    `json:"icon"`
	Color          string    `json:"color"`
	InitialBalance float64   `json:"initialBalance"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
