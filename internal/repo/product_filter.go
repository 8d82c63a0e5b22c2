package repo

type ProductFilter struct {
	Name       string
	Category   string
	SupplierID *int
	MinPrice   *float64
	MaxPrice   *float64
	MinQty     *int
	MaxQty     *int
	LowStock   *bool
	Active     *bool
	Offset     *int
	Limit      *int
}
