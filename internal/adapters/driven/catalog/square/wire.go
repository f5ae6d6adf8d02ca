package square

import (
	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// listResponse is the body of GET /v2/catalog/list.
type listResponse struct {
	Objects []catalogObject `json:"objects"`
	Cursor  string          `json:"cursor"`
	Errors  []apiError      `json:"errors"`
}

type apiError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

type catalogObject struct {
	Type             string            `json:"type"`
	ID               string            `json:"id"`
	IsDeleted        bool              `json:"is_deleted"`
	ItemData         *itemData         `json:"item_data,omitempty"`
	VariationData    *variationData    `json:"item_variation_data,omitempty"`
	ModifierListData *modifierListData `json:"modifier_list_data,omitempty"`
	ModifierData     *modifierData     `json:"modifier_data,omitempty"`
}

type itemData struct {
	Name             string             `json:"name"`
	Variations       []catalogObject    `json:"variations"`
	ModifierListInfo []modifierListInfo `json:"modifier_list_info"`
}

type modifierListInfo struct {
	ModifierListID string `json:"modifier_list_id"`
	Enabled        *bool  `json:"enabled,omitempty"`
}

type variationData struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	Ordinal    int    `json:"ordinal"`
	PriceMoney *money `json:"price_money,omitempty"`
}

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type modifierListData struct {
	Name      string          `json:"name"`
	Modifiers []catalogObject `json:"modifiers"`
}

type modifierData struct {
	Name           string `json:"name"`
	Ordinal        int    `json:"ordinal"`
	ModifierListID string `json:"modifier_list_id"`
}

// flatten converts one page of wire objects to domain objects. Nested
// variations and modifiers become standalone objects with their parent
// reference filled in. Repeats of the same type and ID keep the first.
func flatten(objects []catalogObject) []domain.CatalogObject {
	out := make([]domain.CatalogObject, 0, len(objects))
	seen := make(map[string]bool)

	add := func(obj domain.CatalogObject) {
		key := string(obj.Type) + "/" + obj.ID
		if obj.ID == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, obj)
	}

	for _, wo := range objects {
		obj := domain.CatalogObject{
			Type:    domain.CatalogObjectType(wo.Type),
			ID:      wo.ID,
			Deleted: wo.IsDeleted,
		}
		switch obj.Type {
		case domain.ObjectItem:
			if wo.ItemData == nil {
				continue
			}
			obj.Item = &domain.ItemData{Name: wo.ItemData.Name}
			for _, info := range wo.ItemData.ModifierListInfo {
				if info.ModifierListID == "" || (info.Enabled != nil && !*info.Enabled) {
					continue
				}
				obj.Item.ModifierListIDs = append(obj.Item.ModifierListIDs, info.ModifierListID)
			}
			for _, nested := range wo.ItemData.Variations {
				obj.Item.VariationIDs = append(obj.Item.VariationIDs, nested.ID)
			}
			add(obj)
			for _, nested := range wo.ItemData.Variations {
				if v, ok := variationObject(nested, wo.ID); ok {
					add(v)
				}
			}
		case domain.ObjectVariation:
			if v, ok := variationObject(wo, ""); ok {
				add(v)
			}
		case domain.ObjectModifierList:
			if wo.ModifierListData == nil {
				continue
			}
			obj.ModifierList = &domain.ModifierListData{Name: wo.ModifierListData.Name}
			add(obj)
			for _, nested := range wo.ModifierListData.Modifiers {
				if m, ok := modifierObject(nested, wo.ID); ok {
					add(m)
				}
			}
		case domain.ObjectModifier:
			if m, ok := modifierObject(wo, ""); ok {
				add(m)
			}
		}
	}
	return out
}

func variationObject(wo catalogObject, parentID string) (domain.CatalogObject, bool) {
	if wo.VariationData == nil {
		return domain.CatalogObject{}, false
	}
	data := &domain.VariationData{
		ItemID:  wo.VariationData.ItemID,
		Name:    wo.VariationData.Name,
		Ordinal: wo.VariationData.Ordinal,
	}
	if data.ItemID == "" {
		data.ItemID = parentID
	}
	if wo.VariationData.PriceMoney != nil {
		amount := wo.VariationData.PriceMoney.Amount
		data.PriceCents = &amount
	}
	return domain.CatalogObject{
		Type:      domain.ObjectVariation,
		ID:        wo.ID,
		Deleted:   wo.IsDeleted,
		Variation: data,
	}, true
}

func modifierObject(wo catalogObject, parentID string) (domain.CatalogObject, bool) {
	if wo.ModifierData == nil {
		return domain.CatalogObject{}, false
	}
	data := &domain.ModifierData{
		ModifierListID: wo.ModifierData.ModifierListID,
		Name:           wo.ModifierData.Name,
		Ordinal:        wo.ModifierData.Ordinal,
	}
	if data.ModifierListID == "" {
		data.ModifierListID = parentID
	}
	return domain.CatalogObject{
		Type:     domain.ObjectModifier,
		ID:       wo.ID,
		Deleted:  wo.IsDeleted,
		Modifier: data,
	}, true
}
