// Package catalog holds the default opening-day menu, shared by the seed
// command and the admin seeding endpoint.
package catalog

import "github.com/elysian-cafe/api/internal/enum"

// Item is one default catalog entry. Prices are whole rupees.
type Item struct {
	Name        string
	Price       int64
	Category    string
	VegType     string
	Description string
}

// Default is the opening-day catalog.
var Default = []Item{
	{"Strawberry Dip", 79, enum.CategoryDips, enum.VegTypeVeg, "Fresh strawberries paired with a rich chocolate dip."},
	{"Strawberry Thangulu", 69, enum.CategoryDips, enum.VegTypeVeg, "Crunchy candied strawberries on a stick."},
	{"Marshmallow Dip", 89, enum.CategoryDips, enum.VegTypeVeg, "Fluffy marshmallows with a side of warm chocolate sauce."},
	{"Marshmallow Toasted (5pcs)", 79, enum.CategoryDips, enum.VegTypeVeg, "Perfectly toasted golden-brown marshmallows."},
	{"Biscuit Marshmallow (5pcs)", 69, enum.CategoryDips, enum.VegTypeVeg, "Marshmallows sandwiched between crispy biscuits."},
	{"Pancakes (Plain)", 39, enum.CategoryPancakes, enum.VegTypeVeg, "Fluffy, golden pancakes served with butter."},
	{"Pancakes + Honey", 49, enum.CategoryPancakes, enum.VegTypeVeg, "Classic pancakes drizzled with pure honey."},
	{"Pancakes + Honey & Fruits", 59, enum.CategoryPancakes, enum.VegTypeVeg, "Pancakes topped with honey and fresh seasonal fruits."},
	{"Pancakes + Nutella", 79, enum.CategoryPancakes, enum.VegTypeVeg, "Indulgent pancakes smothered in Nutella."},
	{"Veg Burger", 79, enum.CategoryBurgers, enum.VegTypeVeg, "Classic vegetable patty burger with fresh lettuce and mayo."},
	{"Burger Cheese Veg", 89, enum.CategoryBurgers, enum.VegTypeVeg, "Veg burger loaded with a slice of melting cheese."},
	{"Burger Non-Veg", 99, enum.CategoryBurgers, enum.VegTypeNonVeg, "Juicy chicken patty burger with special sauce."},
	{"Burger Cheese Non-Veg", 109, enum.CategoryBurgers, enum.VegTypeNonVeg, "Chicken burger topped with premium cheese."},
	{"Mini Pizzas Veg", 59, enum.CategoryPizzas, enum.VegTypeVeg, "Bite-sized pizzas with fresh veggie toppings."},
	{"Mini Pizzas Non-Veg", 69, enum.CategoryPizzas, enum.VegTypeNonVeg, "Mini pizzas topped with savory chicken chunks."},
	{"Pancakes + Strawberry Dip", 99, enum.CategoryCombos, enum.VegTypeVeg, "Fluffy pancakes served with our signature strawberry dip."},
	{"Marshmallows Dip + Nutella Pancake", 129, enum.CategoryCombos, enum.VegTypeVeg, "The ultimate sweet combo of dips and pancakes."},
	{"Burger + Mini Pizza (Veg)", 119, enum.CategoryCombos, enum.VegTypeVeg, "A satisfying combo of a veg burger and mini pizza."},
	{"Burger + Mini Pizza (Non-Veg)", 139, enum.CategoryCombos, enum.VegTypeNonVeg, "A hearty meal with a chicken burger and mini pizza."},
	{"Biscoff Cheesecake", 149, enum.CategoryCheesecakes, enum.VegTypeVeg, "Rich and creamy Biscoff cheesecake."},
	{"Blueberry Cheesecake", 139, enum.CategoryCheesecakes, enum.VegTypeVeg, "Classic cheesecake with blueberry topping."},
	{"Chocolate Cheesecake", 139, enum.CategoryCheesecakes, enum.VegTypeVeg, "Decadent chocolate cheesecake."},
	{"Chocopops", 99, enum.CategorySpecials, enum.VegTypeVeg, "Delicious bite-sized chocolate pops."},
}
