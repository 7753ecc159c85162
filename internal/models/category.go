package models

// Category is an entry of the storefront's category listing.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StoreCategories is the fixed category listing served to clients. The counts
// are fixed values, not derived from the live catalog.
var StoreCategories = []Category{
	{Name: "Men", Count: 15},
	{Name: "Women", Count: 15},
	{Name: "Kids", Count: 15},
	{Name: "Accessories", Count: 15},
}
