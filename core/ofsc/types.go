package ofsc

import (
	"strings"

	"equipment-validator/core/utils"
	"equipment-validator/core/validation"
)

// Property is a metadata property. Rule configuration lives in its XSLT transformation.
type Property struct {
	Label          string          `json:"label"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Transformation *Transformation `json:"transformation"`
}

// Transformation carries the property's XSLT text.
type Transformation struct {
	Xslt string `json:"xslt"`
}

// InventoryItem is an inventory row. Numeric fields arrive as numbers or strings
// depending on the property type, so they are decoded loosely.
type InventoryItem struct {
	InventoryID   any    `json:"inventoryId"`
	InventoryType string `json:"inventoryType"`
	Status        string `json:"status"`
	EquipmentType string `json:"XI_EQUIPMENTTYPE"`
	MaterialType  string `json:"XI_MATERIALTYPE"`
	SerialNumber  any    `json:"serialNumber"`
	Quantity      any    `json:"quantity"`
}

// ToRaw converts the row to the validation input shape.
func (i InventoryItem) ToRaw() validation.RawItem {
	return validation.RawItem{
		InventoryType: i.InventoryType,
		EquipmentType: strings.TrimSpace(i.EquipmentType),
		MaterialType:  strings.TrimSpace(i.MaterialType),
		SerialNumber:  utils.ToString(i.SerialNumber),
		InventoryID:   utils.ToInt64(i.InventoryID),
		Quantity:      utils.ToInt(i.Quantity),
	}
}

// InventoryList is the collection envelope of inventory endpoints.
type InventoryList struct {
	Items []InventoryItem `json:"items"`
}

// Translation is a localized enumeration name.
type Translation struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

// EnumerationItem is one value of an enumeration property.
type EnumerationItem struct {
	Label        string        `json:"label"`
	Active       bool          `json:"active"`
	Translations []Translation `json:"translations"`
}

// EnumerationPage is a page of an enumeration listing.
type EnumerationPage struct {
	Items   []EnumerationItem `json:"items"`
	HasMore bool              `json:"hasMore"`
	Offset  int               `json:"offset"`
	Limit   int               `json:"limit"`
}

// User is the subset of user fields the service reads.
type User struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	UserType string `json:"userType"`
}
