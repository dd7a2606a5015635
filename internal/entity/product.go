package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Features    []string  `json:"features,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewProduct(name string, price float64, description string, features []string) *Product {
	return &Product{
		ID:          uuid.New().String(),
		Name:        name,
		Price:       price,
		Description: description,
		Features:    features,
		CreatedAt:   time.Now(),
	}
}
