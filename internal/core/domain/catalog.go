package domain

// Product is a read-only catalog entry. The core only consumes these to
// construct cart lines; where they come from is irrelevant to the contract.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
}

// CartLine builds a cart line for this product with the given quantity.
func (p Product) CartLine(qty int) CartItem {
	return CartItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.Price,
		Quantity:    qty,
		ImageURL:    p.ImageURL,
	}
}
