package models

import "time"

type Transaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Description   *string   `json:"description"`
	RelatedPerson *string   `json:"relatedPerson"`
	IsUrgent      bool      `json:"isUrgent"`
	ReceiptPath   *string   `json:"receiptPath"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type SourceSplit struct {
	ID            string  `json:"id"`
	TransactionID string  `json:"transactionId"`
	SourceID      string  `json:"sourceId"`
	Amount        float64 `json:"amount"`
}

// SplitInput is a caller-supplied allocation before it has been persisted.
type SplitInput struct {
	SourceID string  `json:"sourceId"`
	Amount   float64 `json:"amount"`
}

// TransactionWithSplits is the shape every transaction endpoint returns: the
// row joined with its full (possibly empty) split set.
type TransactionWithSplits struct {
	Transaction
	Sources []SourceSplit `json:"sources"`
}

type TransactionStats struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpense     float64 `json:"totalExpense"`
	Balance          float64 `json:"balance"`
	TransactionCount int     `json:"transactionCount"`
}

// TransactionFilters narrows list/stats queries. Nil time bounds mean
// unbounded; empty type/category mean no filter.
type TransactionFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
	Category  string
}
