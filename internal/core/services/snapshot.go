package services

import (
	"sort"
	"time"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// BuildSnapshot normalises a complete, already-paginated set of catalog
// objects into an immutable snapshot.
//
// Items and modifier lists are indexed first, then modifiers (which need
// their list), then variations (which need their item's name). Objects that
// cannot be placed - deleted, missing data, dangling references, variations
// without a price - are dropped silently: a single catalog object is never
// allowed to break the whole snapshot.
func BuildSnapshot(objects []domain.CatalogObject, builtAt time.Time) *domain.Snapshot {
	snap := domain.NewSnapshot(builtAt)

	items := make(map[string]*domain.ItemData)
	var itemOrder []string

	// Pass 1: items and modifier lists.
	for i := range objects {
		obj := &objects[i]
		if obj.Deleted || obj.ID == "" {
			continue
		}
		switch obj.Type {
		case domain.ObjectItem:
			if obj.Item == nil || obj.Item.Name == "" {
				continue
			}
			if _, dup := items[obj.ID]; dup {
				continue
			}
			items[obj.ID] = obj.Item
			itemOrder = append(itemOrder, obj.ID)
		case domain.ObjectModifierList:
			if obj.ModifierList == nil {
				continue
			}
			if _, dup := snap.ModifierLists[obj.ID]; dup {
				continue
			}
			snap.ModifierLists[obj.ID] = domain.ModifierList{ID: obj.ID, Name: obj.ModifierList.Name}
		}
	}

	// Pass 2: modifiers.
	modifierOrdinals := make(map[string]int)
	for i := range objects {
		obj := &objects[i]
		if obj.Deleted || obj.ID == "" || obj.Type != domain.ObjectModifier || obj.Modifier == nil {
			continue
		}
		if obj.Modifier.Name == "" {
			continue
		}
		list, ok := snap.ModifierLists[obj.Modifier.ModifierListID]
		if !ok {
			continue
		}
		if _, dup := snap.Modifiers[obj.ID]; dup {
			continue
		}
		mod := domain.Modifier{ID: obj.ID, ListID: list.ID, Name: obj.Modifier.Name}
		snap.Modifiers[obj.ID] = mod
		modifierOrdinals[obj.ID] = obj.Modifier.Ordinal
		list.Modifiers = append(list.Modifiers, mod)
		snap.ModifierLists[list.ID] = list
	}
	for id, list := range snap.ModifierLists {
		sort.SliceStable(list.Modifiers, func(a, b int) bool {
			return modifierOrdinals[list.Modifiers[a].ID] < modifierOrdinals[list.Modifiers[b].ID]
		})
		snap.ModifierLists[id] = list
	}

	// Pass 3: variations, labels and per-item modifier bindings.
	itemVariations := make(map[string][]domain.Variation)
	for i := range objects {
		obj := &objects[i]
		if obj.Deleted || obj.ID == "" || obj.Type != domain.ObjectVariation || obj.Variation == nil {
			continue
		}
		data := obj.Variation
		item, ok := items[data.ItemID]
		if !ok || data.PriceCents == nil {
			continue
		}
		if _, dup := snap.Variations[obj.ID]; dup {
			continue
		}
		v := domain.Variation{
			ID:         obj.ID,
			ItemID:     data.ItemID,
			ItemName:   item.Name,
			Name:       data.Name,
			PriceCents: *data.PriceCents,
			Ordinal:    data.Ordinal,
			Label:      variationLabel(item.Name, data.Name),
		}
		v.LabelKey = Normalize(v.Label)
		v.ItemKey = Normalize(item.Name)
		snap.Variations[v.ID] = v
		itemVariations[v.ItemID] = append(itemVariations[v.ItemID], v)

		if _, bound := snap.Bindings[v.ItemID]; !bound {
			snap.Bindings[v.ItemID] = bindModifiers(snap, item.ModifierListIDs)
		}
	}

	for _, itemID := range itemOrder {
		data := items[itemID]
		ordered := orderVariations(data.VariationIDs, itemVariations[itemID])
		ids := make([]string, len(ordered))
		for i, v := range ordered {
			ids[i] = v.ID
		}
		snap.Items[itemID] = domain.Item{
			ID:              itemID,
			Name:            data.Name,
			VariationIDs:    ids,
			ModifierListIDs: data.ModifierListIDs,
		}
		if len(ids) == 0 {
			continue
		}
		key := Normalize(data.Name)
		if _, taken := snap.NameIndex[key]; !taken {
			snap.NameIndex[key] = itemID
		}
	}

	snap.Order = make([]string, 0, len(snap.Variations))
	for id := range snap.Variations {
		snap.Order = append(snap.Order, id)
	}
	sort.Slice(snap.Order, func(a, b int) bool {
		va, vb := snap.Variations[snap.Order[a]], snap.Variations[snap.Order[b]]
		if va.LabelKey != vb.LabelKey {
			return va.LabelKey < vb.LabelKey
		}
		return va.ID < vb.ID
	})
	for _, id := range snap.Order {
		key := snap.Variations[id].LabelKey
		if _, taken := snap.LabelIndex[key]; !taken {
			snap.LabelIndex[key] = id
		}
	}

	return snap
}

func variationLabel(itemName, variationName string) string {
	if variationName == "" {
		return itemName
	}
	return itemName + " - " + variationName
}

// orderVariations sorts an item's variations by catalog-declared position,
// then ordinal, then ID. Variations missing from the declared list sort last.
func orderVariations(declared []string, vars []domain.Variation) []domain.Variation {
	position := make(map[string]int, len(declared))
	for i, id := range declared {
		if _, seen := position[id]; !seen {
			position[id] = i
		}
	}
	pos := func(id string) int {
		if p, ok := position[id]; ok {
			return p
		}
		return len(declared)
	}
	out := append([]domain.Variation(nil), vars...)
	sort.SliceStable(out, func(a, b int) bool {
		pa, pb := pos(out[a].ID), pos(out[b].ID)
		if pa != pb {
			return pa < pb
		}
		if out[a].Ordinal != out[b].Ordinal {
			return out[a].Ordinal < out[b].Ordinal
		}
		return out[a].ID < out[b].ID
	})
	return out
}

// bindModifiers builds the phrase lookup for one item from its declared
// modifier lists. Full names win over base words on collision; within each
// kind the first list declared wins.
func bindModifiers(snap *domain.Snapshot, listIDs []string) domain.ModifierBinding {
	binding := make(domain.ModifierBinding)
	for _, listID := range listIDs {
		for _, mod := range snap.ModifierLists[listID].Modifiers {
			key := Normalize(mod.Name)
			if _, taken := binding[key]; !taken && key != "" {
				binding[key] = mod.ID
			}
		}
	}
	for _, listID := range listIDs {
		for _, mod := range snap.ModifierLists[listID].Modifiers {
			base := baseWord(Normalize(mod.Name))
			if _, taken := binding[base]; !taken && base != "" {
				binding[base] = mod.ID
			}
		}
	}
	return binding
}
