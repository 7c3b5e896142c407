package nav

import "strconv"

// Item is one selectable row. Key is what a selection returns, Label is
// what the user sees.
type Item struct {
	Key   string
	Label string
}

// Items builds items from alternating key, label pairs. A trailing key
// without a label is labelled with itself.
func Items(pairs ...string) []Item {
	items := make([]Item, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		item := Item{Key: pairs[i], Label: pairs[i]}
		if i+1 < len(pairs) {
			item.Label = pairs[i+1]
		}
		items = append(items, item)
	}
	return items
}

// ItemsFromLabels keys each label by its position, starting at "0".
func ItemsFromLabels(labels ...string) []Item {
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{Key: strconv.Itoa(i), Label: label}
	}
	return items
}
