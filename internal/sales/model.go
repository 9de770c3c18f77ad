package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

// Roles recognised across the sales organization.
const (
	RoleSalesman     = "salesman"
	RoleSalesManager = "sales_manager"
	RoleDirector     = "director"
)

// Salesman is a field salesman assigned to one state.
type Salesman struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	State     string    `json:"state,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	ManagerID *string   `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SalesManager supervises salesmen, typically one per region.
type SalesManager struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	State     string    `json:"state,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Director has organization-wide admin access.
type Director struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Dealer buys stock through an assigned salesman.
type Dealer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	State       string          `json:"state,omitempty"`
	SalesmanID  *string         `json:"salesman_id,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Profile is the identity payload behind GET /orders/me.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	State   string `json:"state,omitempty"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
}

// SalesmanInput carries admin create/update payloads for salesmen.
type SalesmanInput struct {
	UID       string  `json:"uid"`
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone"`
	State     string  `json:"state"`
	IsAdmin   bool    `json:"is_admin"`
	ManagerID *string `json:"manager_id"`
}

// ManagerInput carries admin create/update payloads for sales managers.
type ManagerInput struct {
	UID   string `json:"uid"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
	State string `json:"state"`
}

// DirectorInput carries admin create/update payloads for directors.
type DirectorInput struct {
	UID   string `json:"uid"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// DealerInput carries admin create/update payloads for dealers. The
// credit limit tolerates any numeric shape the console sends.
type DealerInput struct {
	Name        string        `json:"name" validate:"required"`
	Phone       string        `json:"phone"`
	State       string        `json:"state"`
	SalesmanID  *string       `json:"salesman_id"`
	CreditLimit pricing.Value `json:"credit_limit"`
}
