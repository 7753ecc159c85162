package catalog

// SizeOptions and ColorOptions are the choices offered by the catalog filter
// panel.
var (
	SizeOptions  = []string{"XS", "S", "M", "L", "XL", "XXL"}
	ColorOptions = []string{"Black", "White", "Navy", "Gray", "Red", "Blue", "Green", "Pink", "Purple", "Yellow", "Orange", "Brown"}
)

// SortOptions lists every sort in display order.
var SortOptions = []SortOption{SortFeatured, SortPriceLow, SortPriceHigh, SortNewest, SortBestSellers}
