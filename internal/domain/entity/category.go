package entity

// DefaultCategories categorías con las que arranca el inventario.
var DefaultCategories = []string{"Electronics", "Footwear", "Clothing", "Home & Kitchen"}
