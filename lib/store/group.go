// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"sort"
	"strings"

	"github.com/folionotes/folio/lib/api"
)

// CardGroup is one category's worth of cards, in their original
// relative order.
type CardGroup struct {
	Category string
	Cards    []api.Card
}

// GroupCardsByCategory buckets cards for the grid: named categories
// sort lexicographically ascending, the default bucket always sorts
// last, and cards keep their original relative order within each
// group. Idempotent and order-stable: regrouping the same slice
// yields the same result.
func GroupCardsByCategory(cards []api.Card) []CardGroup {
	buckets := make(map[string][]api.Card)
	var order []string
	for _, card := range cards {
		category := card.Category
		if category == "" {
			// Defense in depth: the api package defaults this at the
			// decode boundary, but cards constructed elsewhere (tests,
			// local inserts) may not have passed through it.
			category = api.DefaultCategory
		}
		if _, seen := buckets[category]; !seen {
			order = append(order, category)
		}
		buckets[category] = append(buckets[category], card)
	}

	sort.Slice(order, func(left, right int) bool {
		if order[left] == api.DefaultCategory {
			return false
		}
		if order[right] == api.DefaultCategory {
			return true
		}
		return strings.Compare(order[left], order[right]) < 0
	})

	groups := make([]CardGroup, len(order))
	for index, category := range order {
		groups[index] = CardGroup{Category: category, Cards: buckets[category]}
	}
	return groups
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
