package models

import "sort"

// LeafUsage is the absolute quantity of one raw material consumed to produce
// one unit of the root item, summed over every path that reaches it.
type LeafUsage struct {
	Ingredient *Item
	Quantity   float64
}

// SkippedBranch is a tree line the explosion could not follow.
type SkippedBranch struct {
	ItemCode ItemCode
	Quantity float64
	Err      error
}

// Explosion is the result of exploding one root item.
type Explosion struct {
	Root    ItemCode
	Leaves  []LeafUsage
	Skipped []SkippedBranch
}

// SortLeavesByCode sorts leaves by ingredient item code in place.
func SortLeavesByCode(leaves []LeafUsage) {
	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].Ingredient.Code < leaves[j].Ingredient.Code
	})
}
