package metrics

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultFeatureSetOrder is the canonical display order of the known feature
// set configurations: single sources, then pairs, then all three.
var DefaultFeatureSetOrder = []string{
	"baseline-only",
	"advanced-only",
	"fourier-only",
	"baseline-and-advanced",
	"baseline-and-fourier",
	"advanced-and-fourier",
	"baseline-advanced-and-fourier",
}

// UnknownRank is the rank given to names missing from the order list.
const UnknownRank = -1

// Placement controls where unknown feature sets land.
type Placement string

const (
	// PlaceFirst sorts unknown names before every known one (rank -1).
	PlaceFirst Placement = "first"
	// PlaceLast sorts unknown names after every known one.
	PlaceLast Placement = "last"
)

// ParsePlacement accepts "first" or "last" (case-insensitive); empty means first.
func ParsePlacement(s string) (Placement, error) {
	switch Placement(strings.ToLower(strings.TrimSpace(s))) {
	case "", PlaceFirst:
		return PlaceFirst, nil
	case PlaceLast:
		return PlaceLast, nil
	default:
		return "", fmt.Errorf("unknown placement %q (want %q or %q)", s, PlaceFirst, PlaceLast)
	}
}

// Orderer ranks feature set names against a fixed priority list.
type Orderer struct {
	ranks     map[string]int
	placement Placement
}

// NewOrderer builds an Orderer. A nil or empty order uses DefaultFeatureSetOrder.
// Duplicate names keep their first position.
func NewOrderer(order []string, placement Placement) *Orderer {
	if len(order) == 0 {
		order = DefaultFeatureSetOrder
	}
	if placement == "" {
		placement = PlaceFirst
	}
	ranks := make(map[string]int, len(order))
	for i, name := range order {
		if _, seen := ranks[name]; !seen {
			ranks[name] = i
		}
	}
	return &Orderer{ranks: ranks, placement: placement}
}

// Rank returns the position of name in the priority list, or UnknownRank.
func (o *Orderer) Rank(name string) int {
	if r, ok := o.ranks[name]; ok {
		return r
	}
	return UnknownRank
}

// sortKey maps unknown names to either end depending on placement.
func (o *Orderer) sortKey(name string) int {
	r := o.Rank(name)
	if r == UnknownRank && o.placement == PlaceLast {
		return len(o.ranks)
	}
	return r
}

// SortRows stable-sorts rows by feature set rank. Rows with equal rank keep
// their relative order.
func (o *Orderer) SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return o.sortKey(rows[i].FeatureSet) < o.sortKey(rows[j].FeatureSet)
	})
}

// SortNames stable-sorts feature set names in place.
func (o *Orderer) SortNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return o.sortKey(names[i]) < o.sortKey(names[j])
	})
}
