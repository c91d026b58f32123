package enum

// ── Group A: State machines (CHECK constrained in DB) ──

const (
	OrderStatusPending   = "pending"
	OrderStatusServed    = "served"
	OrderStatusCancelled = "cancelled"
)

// Payment status is a label, not a verified payment state. Nothing moves
// awaiting_verification to a confirmed value automatically.
const (
	PaymentStatusCash     = "cash"
	PaymentStatusAwaiting = "awaiting_verification"
)

// ── Group C: Borderline (CHECK constrained in DB) ──

const (
	UserRoleAdmin = "ADMIN"
	UserRoleStaff = "STAFF"
)

const (
	PaymentModeCash = "CASH"
	PaymentModeUPI  = "UPI"
)

const (
	VegTypeVeg    = "Veg"
	VegTypeNonVeg = "Non-Veg"
)

// ── Group B: Configurable labels (no DB constraint) ──

const (
	CategoryDips        = "Dips"
	CategoryPancakes    = "Pancakes"
	CategoryBurgers     = "Burgers"
	CategoryPizzas      = "Pizzas"
	CategoryCombos      = "Combos"
	CategoryCheesecakes = "Cheesecakes"
	CategorySpecials    = "Specials"
)

// Categories lists the menu categories in storefront display order.
var Categories = []string{
	CategorySpecials,
	CategoryCombos,
	CategoryBurgers,
	CategoryPizzas,
	CategoryPancakes,
	CategoryCheesecakes,
	CategoryDips,
}
