package domain

// CatalogObjectType identifies the kind of a raw catalog object.
type CatalogObjectType string

// Catalog object kinds consumed by the snapshot builder.
const (
	ObjectItem         CatalogObjectType = "ITEM"
	ObjectVariation    CatalogObjectType = "ITEM_VARIATION"
	ObjectModifierList CatalogObjectType = "MODIFIER_LIST"
	ObjectModifier     CatalogObjectType = "MODIFIER"
)

// AllObjectTypes returns the object kinds requested from the catalog.
func AllObjectTypes() []CatalogObjectType {
	return []CatalogObjectType{ObjectItem, ObjectVariation, ObjectModifierList, ObjectModifier}
}

// IsValid returns true if the object type is recognised.
func (t CatalogObjectType) IsValid() bool {
	switch t {
	case ObjectItem, ObjectVariation, ObjectModifierList, ObjectModifier:
		return true
	default:
		return false
	}
}

// CatalogObject is one typed object as returned by the catalog collaborator.
// Exactly one of the data pointers matching Type is expected to be set;
// objects missing their data are skipped by the snapshot builder.
type CatalogObject struct {
	// Type is the object kind.
	Type CatalogObjectType `json:"type"`

	// ID is the catalog-assigned identifier.
	ID string `json:"id"`

	// Deleted marks tombstoned objects, which are never sellable.
	Deleted bool `json:"is_deleted,omitempty"`

	Item         *ItemData         `json:"item_data,omitempty"`
	Variation    *VariationData    `json:"item_variation_data,omitempty"`
	ModifierList *ModifierListData `json:"modifier_list_data,omitempty"`
	Modifier     *ModifierData     `json:"modifier_data,omitempty"`
}

// ItemData carries the fields of an ITEM object.
type ItemData struct {
	// Name is the display and matching key of the item.
	Name string `json:"name"`

	// VariationIDs lists the item's variations in catalog-declared order.
	VariationIDs []string `json:"variation_ids,omitempty"`

	// ModifierListIDs lists the modifier lists enabled for this item.
	ModifierListIDs []string `json:"modifier_list_ids,omitempty"`
}

// VariationData carries the fields of an ITEM_VARIATION object.
type VariationData struct {
	ItemID  string `json:"item_id"`
	Name    string `json:"name"`
	Ordinal int    `json:"ordinal,omitempty"`

	// PriceCents is nil for variable-priced variations, which are unsellable here.
	PriceCents *int64 `json:"price_cents,omitempty"`
}

// ModifierListData carries the fields of a MODIFIER_LIST object.
type ModifierListData struct {
	Name string `json:"name"`
}

// ModifierData carries the fields of a MODIFIER object.
type ModifierData struct {
	ModifierListID string `json:"modifier_list_id"`
	Name           string `json:"name"`
	Ordinal        int    `json:"ordinal,omitempty"`
}

// CatalogPage is one page of a paginated catalog listing.
// An empty Cursor marks the final page.
type CatalogPage struct {
	Objects []CatalogObject
	Cursor  string
}
