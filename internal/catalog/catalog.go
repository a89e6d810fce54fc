// Package catalog serves the restaurant directory, menus and categories
// the storefront browses. Data is a static fixture set; a real deployment
// would source it from the document store.
package catalog

import (
	"sort"
	"strings"
)

type Restaurant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Cuisine      string  `json:"cuisine"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"delivery_time"`
	Fee          string  `json:"fee"`
	Image        string  `json:"image,omitempty"`
}

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category"`
	Popular     bool     `json:"popular"`
	Spicy       bool     `json:"spicy"`
	Vegetarian  bool     `json:"vegetarian"`
	Allergens   []string `json:"allergens,omitempty"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog is a read-only lookup over the fixture data.
type Catalog struct {
	restaurants []Restaurant
	menus       map[string][]MenuItem
	categories  []Category
}

func New() *Catalog {
	return &Catalog{
		restaurants: restaurants,
		menus:       menus,
		categories:  categories,
	}
}

// Restaurants returns the directory sorted by name.
func (c *Catalog) Restaurants() []Restaurant {
	out := append([]Restaurant(nil), c.restaurants...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Restaurant looks up one restaurant by id.
func (c *Catalog) Restaurant(id string) (Restaurant, bool) {
	for _, r := range c.restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return Restaurant{}, false
}

// Menu returns the menu for a restaurant id, nil when unknown.
func (c *Catalog) Menu(restaurantID string) []MenuItem {
	return append([]MenuItem(nil), c.menus[restaurantID]...)
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Search matches restaurants and menu items by case-insensitive substring.
func (c *Catalog) Search(query string) ([]Restaurant, []MenuItem) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	var rs []Restaurant
	for _, r := range c.restaurants {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Cuisine), q) {
			rs = append(rs, r)
		}
	}
	var items []MenuItem
	for _, menu := range c.menus {
		for _, it := range menu {
			if strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.Description), q) {
				items = append(items, it)
			}
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return rs, items
}
