package services

import (
	"time"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

func cents(v int64) *int64 { return &v }

func itemObj(id, name string, variations, lists []string) domain.CatalogObject {
	return domain.CatalogObject{
		Type: domain.ObjectItem,
		ID:   id,
		Item: &domain.ItemData{Name: name, VariationIDs: variations, ModifierListIDs: lists},
	}
}

func variationObj(id, itemID, name string, price *int64, ordinal int) domain.CatalogObject {
	return domain.CatalogObject{
		Type:      domain.ObjectVariation,
		ID:        id,
		Variation: &domain.VariationData{ItemID: itemID, Name: name, PriceCents: price, Ordinal: ordinal},
	}
}

func listObj(id, name string) domain.CatalogObject {
	return domain.CatalogObject{
		Type:         domain.ObjectModifierList,
		ID:           id,
		ModifierList: &domain.ModifierListData{Name: name},
	}
}

func modifierObj(id, listID, name string, ordinal int) domain.CatalogObject {
	return domain.CatalogObject{
		Type:     domain.ObjectModifier,
		ID:       id,
		Modifier: &domain.ModifierData{ModifierListID: listID, Name: name, Ordinal: ordinal},
	}
}

// testCatalogObjects returns a small diner catalog, deliberately out of
// dependency order so the builder's passes are exercised.
func testCatalogObjects() []domain.CatalogObject {
	return []domain.CatalogObject{
		modifierObj("MOD_CHEESE", "ML_TOPPINGS", "Cheese", 1),
		modifierObj("MOD_BACON", "ML_TOPPINGS", "Extra Bacon", 2),
		modifierObj("MOD_SALAD_CHEESE", "ML_SALAD", "Cheese", 1),
		modifierObj("MOD_CROUTONS", "ML_SALAD", "Croutons", 2),
		modifierObj("MOD_ORPHAN", "ML_MISSING", "Ghost", 1),
		variationObj("VAR_BURGER_LARGE", "ITEM_BURGER", "Large", cents(1099), 2),
		variationObj("VAR_BURGER_REGULAR", "ITEM_BURGER", "Regular", cents(899), 1),
		variationObj("VAR_SODA_SMALL", "ITEM_SODA", "Small", cents(150), 1),
		variationObj("VAR_SODA_LARGE", "ITEM_SODA", "Large", cents(250), 2),
		variationObj("VAR_FRIES_REGULAR", "ITEM_FRIES", "Regular", cents(399), 1),
		variationObj("VAR_SHAKE_CHOC", "ITEM_SHAKE", "Chocolate", cents(499), 1),
		variationObj("VAR_SHAKE_VAN", "ITEM_SHAKE", "Vanilla", cents(499), 2),
		variationObj("VAR_SALAD_REGULAR", "ITEM_SALAD", "Regular", cents(699), 1),
		variationObj("VAR_PIZZA_OPEN", "ITEM_PIZZA", "Market Price", nil, 1),
		variationObj("VAR_DANGLING", "ITEM_MISSING", "Regular", cents(100), 1),
		itemObj("ITEM_BURGER", "Burger", []string{"VAR_BURGER_REGULAR", "VAR_BURGER_LARGE"}, []string{"ML_TOPPINGS"}),
		itemObj("ITEM_SODA", "Soda", []string{"VAR_SODA_SMALL", "VAR_SODA_LARGE"}, nil),
		itemObj("ITEM_FRIES", "Fries", []string{"VAR_FRIES_REGULAR"}, nil),
		itemObj("ITEM_SHAKE", "Milkshake", []string{"VAR_SHAKE_CHOC", "VAR_SHAKE_VAN"}, nil),
		itemObj("ITEM_SALAD", "Garden Salad", []string{"VAR_SALAD_REGULAR"}, []string{"ML_SALAD"}),
		itemObj("ITEM_PIZZA", "Pizza", []string{"VAR_PIZZA_OPEN"}, nil),
		listObj("ML_TOPPINGS", "Toppings"),
		listObj("ML_SALAD", "Salad Extras"),
	}
}

func testSnapshot() *domain.Snapshot {
	return BuildSnapshot(testCatalogObjects(), time.Unix(1700000000, 0))
}

func testSynonyms() []domain.SynonymRule {
	return []domain.SynonymRule{
		{Pattern: "cheeseburger", Item: "Burger", Modifiers: []string{"add cheese"}},
		{Pattern: "Coke", Item: "Soda"},
		{Pattern: "chocolate shake", Item: "shake", Hint: "chocolate"},
	}
}
