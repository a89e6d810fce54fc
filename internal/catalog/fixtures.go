package catalog

import "frylyle/internal/cart"

var restaurants = []Restaurant{
	{
		ID:           "burger-palace",
		Name:         "Burger Palace",
		Cuisine:      "American",
		Rating:       4.6,
		DeliveryTime: "20-30 min",
		Fee:          "$1.99",
		Image:        "https://images.unsplash.com/photo-1568901346375-23c9450c58cd",
	},
	{
		ID:           "sushi-master",
		Name:         "Sushi Master",
		Cuisine:      "Japanese",
		Rating:       4.8,
		DeliveryTime: "30-40 min",
		Fee:          "$2.49",
		Image:        "https://images.unsplash.com/photo-1579871494447-9811cf80d66c",
	},
	{
		ID:           "pizza-heaven",
		Name:         "Pizza Heaven",
		Cuisine:      "Italian",
		Rating:       4.5,
		DeliveryTime: "25-35 min",
		Fee:          "$0.99",
		Image:        "https://images.unsplash.com/photo-1604382355076-af4b0eb60143",
	},
}

var menus = map[string][]MenuItem{
	"burger-palace": {
		{
			ID:          "classic-burger",
			Name:        "Classic Burger",
			Description: "Fresh beef patty with lettuce, tomato, onions, and our special sauce",
			Price:       12.99,
			Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd",
			Category:    "Burgers",
			Popular:     true,
			Allergens:   []string{"gluten", "dairy"},
		},
		{
			ID:          "double-cheese-burger",
			Name:        "Double Cheese Burger",
			Description: "Two beef patties with double cheese, pickles, and burger sauce",
			Price:       15.99,
			Image:       "https://images.unsplash.com/photo-1553979459-d2229ba7433b",
			Category:    "Burgers",
			Popular:     true,
			Allergens:   []string{"gluten", "dairy"},
		},
		{
			ID:          "veggie-burger",
			Name:        "Veggie Supreme",
			Description: "Plant-based patty with avocado, roasted peppers, and vegan mayo",
			Price:       13.99,
			Image:       "https://images.unsplash.com/photo-1585238342024-78d387f4a707",
			Category:    "Burgers",
			Vegetarian:  true,
			Allergens:   []string{"gluten"},
		},
	},
	"sushi-master": {
		{
			ID:          "california-roll",
			Name:        "California Roll",
			Description: "Crab meat, avocado, cucumber wrapped in sushi rice and seaweed",
			Price:       14.99,
			Image:       "https://images.unsplash.com/photo-1579871494447-9811cf80d66c",
			Category:    "Rolls",
			Popular:     true,
			Allergens:   []string{"shellfish"},
		},
		{
			ID:          "spicy-tuna",
			Name:        "Spicy Tuna Roll",
			Description: "Fresh tuna with spicy mayo and cucumber",
			Price:       16.99,
			Image:       "https://images.unsplash.com/photo-1579584425555-c3ce17fd4351",
			Category:    "Rolls",
			Popular:     true,
			Spicy:       true,
			Allergens:   []string{"fish"},
		},
	},
	"pizza-heaven": {
		{
			ID:          "margherita-pizza",
			Name:        "Margherita Pizza",
			Description: "San Marzano tomatoes, fresh mozzarella, and basil",
			Price:       14.99,
			Image:       "https://images.unsplash.com/photo-1604382355076-af4b0eb60143",
			Category:    "Pizza",
			Popular:     true,
			Vegetarian:  true,
			Allergens:   []string{"gluten", "dairy"},
		},
		{
			ID:          "pepperoni-pizza",
			Name:        "Pepperoni Pizza",
			Description: "Double pepperoni with mozzarella and oregano",
			Price:       16.49,
			Image:       "https://images.unsplash.com/photo-1628840042765-356cda07504e",
			Category:    "Pizza",
			Allergens:   []string{"gluten", "dairy"},
		},
	},
}

var categories = []Category{
	{ID: "burgers", Name: "Burgers", Description: "Juicy burgers and sandwiches"},
	{ID: "pizza", Name: "Pizza", Description: "Fresh-baked pizzas"},
	{ID: "sushi", Name: "Sushi", Description: "Fresh sushi and Japanese cuisine"},
	{ID: "salads", Name: "Salads", Description: "Fresh and healthy salads"},
	{ID: "soups", Name: "Soups", Description: "Warming soups and bowls"},
	{ID: "desserts", Name: "Desserts", Description: "Ice cream and sweet treats"},
}

// DemoCart is the demo seed the original client pre-filled empty carts
// with. Enabled by the storefront.demo_seed config flag, off by default.
func DemoCart() []cart.LineItem {
	return []cart.LineItem{
		{
			ID:         "test-burger-1",
			Name:       "Classic Burger",
			Price:      12.99,
			Quantity:   1,
			Image:      "https://images.unsplash.com/photo-1568901346375-23c9450c58cd",
			Restaurant: "Burger Palace",
		},
		{
			ID:         "test-pizza-1",
			Name:       "Margherita Pizza",
			Price:      14.99,
			Quantity:   2,
			Image:      "https://images.unsplash.com/photo-1604382355076-af4b0eb60143",
			Restaurant: "Pizza Heaven",
		},
		{
			ID:         "test-sushi-1",
			Name:       "Sushi Roll",
			Price:      16.99,
			Quantity:   1,
			Image:      "https://images.unsplash.com/photo-1579871494447-9811cf80d66c",
			Restaurant: "Sushi Master",
		},
	}
}
