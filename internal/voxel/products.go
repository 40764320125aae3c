package voxel

import (
	"errors"
	"fmt"
	"strings"
)

// Product names one of the rasters the engine can produce.
type Product string

const (
	Count     Product = "count"
	Intensity Product = "intensity"
	CHM       Product = "chm"
)

// AllProducts lists every product in output order.
var AllProducts = []Product{Count, Intensity, CHM}

// Products is the set of requested products, resolved once before binning.
type Products struct {
	Count, Intensity, CHM bool
}

// ParseProducts builds a product set from names like "count" or "chm".
func ParseProducts(names []string) (Products, error) {
	var p Products
	for _, name := range names {
		switch Product(strings.ToLower(strings.TrimSpace(name))) {
		case Count:
			p.Count = true
		case Intensity:
			p.Intensity = true
		case CHM:
			p.CHM = true
		default:
			return Products{}, fmt.Errorf("unknown voxel product %q", name)
		}
	}
	if p.Empty() {
		return Products{}, errors.New("no voxel products requested")
	}
	return p, nil
}

// Empty reports whether no product is requested.
func (p Products) Empty() bool {
	return !p.Count && !p.Intensity && !p.CHM
}

// Has reports whether product is requested.
func (p Products) Has(product Product) bool {
	switch product {
	case Count:
		return p.Count
	case Intensity:
		return p.Intensity
	case CHM:
		return p.CHM
	}
	return false
}

// List returns the requested products in output order.
func (p Products) List() []Product {
	var list []Product
	for _, product := range AllProducts {
		if p.Has(product) {
			list = append(list, product)
		}
	}
	return list
}

func (p Products) String() string {
	names := make([]string, 0, 3)
	for _, product := range p.List() {
		names = append(names, string(product))
	}
	return strings.Join(names, " ")
}
