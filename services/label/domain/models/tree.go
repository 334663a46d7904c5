package models

// TreeLine is one component line of a product tree. Quantity is the amount of
// the child consumed per unit of the parent.
type TreeLine struct {
	ItemCode ItemCode
	ItemName string
	Quantity float64
}

// Tree is the product tree (BOM) of one item.
type Tree struct {
	Code        ItemCode
	Description string
	Lines       []TreeLine
}
