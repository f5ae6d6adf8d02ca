package domain

import (
	"sort"
	"time"
)

// Item is a sellable catalog item.
type Item struct {
	ID   string
	Name string

	// VariationIDs holds the sellable variations in deterministic order.
	VariationIDs []string

	// ModifierListIDs holds the modifier lists bound to this item.
	ModifierListIDs []string
}

// Variation is a concrete, independently priced orderable form of an item.
type Variation struct {
	ID         string
	ItemID     string
	ItemName   string
	Name       string
	PriceCents int64
	Ordinal    int

	// Label is "{ItemName} - {Name}", the primary exact-match key.
	Label string

	// LabelKey and ItemKey are the normalised Label and ItemName.
	LabelKey string
	ItemKey  string
}

// ModifierList groups modifiers that can be bound to items.
type ModifierList struct {
	ID        string
	Name      string
	Modifiers []Modifier
}

// Modifier is an optional add-on belonging to exactly one modifier list.
type Modifier struct {
	ID     string
	ListID string
	Name   string
}

// ModifierBinding maps a normalised modifier phrase (full name and base word)
// to a modifier ID. Only modifiers from lists bound to the item are present.
type ModifierBinding map[string]string

// Snapshot is an immutable, point-in-time materialisation of the catalog.
// It is never modified after it is built; a refresh builds a new one.
type Snapshot struct {
	BuiltAt time.Time

	Items         map[string]Item
	Variations    map[string]Variation
	ModifierLists map[string]ModifierList
	Modifiers     map[string]Modifier

	// Bindings holds the per-item modifier lookup keyed by item ID.
	Bindings map[string]ModifierBinding

	// LabelIndex maps a normalised label to a variation ID.
	LabelIndex map[string]string

	// NameIndex maps a normalised item name to an item ID.
	NameIndex map[string]string

	// Order lists every sellable variation ID in deterministic order.
	Order []string
}

// NewSnapshot returns an empty snapshot with all indices allocated.
func NewSnapshot(builtAt time.Time) *Snapshot {
	return &Snapshot{
		BuiltAt:       builtAt,
		Items:         make(map[string]Item),
		Variations:    make(map[string]Variation),
		ModifierLists: make(map[string]ModifierList),
		Modifiers:     make(map[string]Modifier),
		Bindings:      make(map[string]ModifierBinding),
		LabelIndex:    make(map[string]string),
		NameIndex:     make(map[string]string),
	}
}

// Variation looks up a variation by ID.
func (s *Snapshot) Variation(id string) (Variation, bool) {
	v, ok := s.Variations[id]
	return v, ok
}

// ItemVariations returns the sellable variations of an item in order.
func (s *Snapshot) ItemVariations(itemID string) []Variation {
	item, ok := s.Items[itemID]
	if !ok {
		return nil
	}
	out := make([]Variation, 0, len(item.VariationIDs))
	for _, id := range item.VariationIDs {
		if v, ok := s.Variations[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

// OrderedVariations returns all sellable variations in deterministic order.
func (s *Snapshot) OrderedVariations() []Variation {
	out := make([]Variation, 0, len(s.Order))
	for _, id := range s.Order {
		out = append(out, s.Variations[id])
	}
	return out
}

// Binding returns the modifier lookup for an item, or nil if none.
func (s *Snapshot) Binding(itemID string) ModifierBinding {
	return s.Bindings[itemID]
}

// Stats summarises the size of the snapshot.
func (s *Snapshot) Stats() SnapshotStats {
	return SnapshotStats{
		Items:         len(s.Items),
		Variations:    len(s.Variations),
		ModifierLists: len(s.ModifierLists),
		Modifiers:     len(s.Modifiers),
	}
}

// Menu lists every sellable variation sorted by label.
func (s *Snapshot) Menu() []MenuEntry {
	entries := make([]MenuEntry, 0, len(s.Variations))
	for _, v := range s.OrderedVariations() {
		entries = append(entries, MenuEntry{
			ItemID:      v.ItemID,
			Name:        v.ItemName,
			VariationID: v.ID,
			PriceCents:  v.PriceCents,
			Label:       v.Label,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// SnapshotStats counts the objects in a snapshot.
type SnapshotStats struct {
	Items         int `json:"items"`
	Variations    int `json:"variations"`
	ModifierLists int `json:"modifier_lists"`
	Modifiers     int `json:"modifiers"`
}

// MenuEntry is one row of the menu listing boundary.
type MenuEntry struct {
	ItemID      string `json:"itemId"`
	Name        string `json:"name"`
	VariationID string `json:"variationId"`
	PriceCents  int64  `json:"priceCents"`
	Price       string `json:"price"`
	Label       string `json:"label"`
}

// CatalogStatus reports the state of the catalog cache.
type CatalogStatus struct {
	Built      bool
	BuiltAt    time.Time
	Age        time.Duration
	Stats      SnapshotStats
	Refreshing bool
	LastError  string
}
