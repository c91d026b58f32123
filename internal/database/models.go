package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// MenuItem is a catalog entry. available=false hides it from the storefront
// without deleting it.
type MenuItem struct {
	ID          uuid.UUID
	Name        string
	Price       pgtype.Numeric
	Category    string
	VegType     string
	Available   bool
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemLine is a denormalized menu-item snapshot embedded in an order.
// Order integrity never depends on the menu staying unchanged after
// placement: later catalog edits do not touch these copies.
type ItemLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	VegType  string `json:"vegType"`
}

// Order is created once on submission and immutable afterwards except for
// status (staff transitions) and is never deleted in normal operation.
type Order struct {
	ID            uuid.UUID
	OrderNumber   pgtype.Int8
	Items         []ItemLine
	TotalPrice    pgtype.Numeric
	Status        string
	PaymentStatus string
	CreatedAt     time.Time
}

// SystemConfig is the singleton gating/payment configuration document.
// AcceptingOrders is nullable: an absent value means ordering is open;
// only an explicit false closes it.
type SystemConfig struct {
	AcceptingOrders pgtype.Bool
	UpiID           string
	PayeeName       string
	UpdatedAt       time.Time
}

type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	FullName       string
	Role           string
	CreatedAt      time.Time
}
