package validation

import "fmt"

// Classify expands raw inventory rows into candidates of the given kind.
// Rows whose type identifier is not in allowed are dropped silently.
//
// Sources with quantity N become N units. Controls with a serial number become
// exactly one unit keyed by the serial; unserialized controls replicate like
// sources and are flagged Replicated. Equipment never replicates.
func Classify(raw []RawItem, allowed TypeSet, kind Kind, origin Origin) []Candidate {
	var out []Candidate

	for index, item := range raw {
		typeID := item.MaterialType
		if kind == KindEquipment {
			typeID = item.EquipmentType
		}
		if typeID == "" || !allowed.Has(typeID) {
			continue
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		base := Candidate{
			Kind:         kind,
			TypeID:       typeID,
			SerialNumber: item.SerialNumber,
			Quantity:     quantity,
			InventoryID:  item.InventoryID,
			Origin:       origin,
		}

		switch {
		case kind == KindEquipment:
			base.UniqueID = fmt.Sprintf("%s-%d", typeID, index)
			out = append(out, base)

		case kind == KindControl && item.SerialNumber != "":
			base.UniqueID = fmt.Sprintf("%s-%s", typeID, item.SerialNumber)
			out = append(out, base)

		default:
			for i := 0; i < quantity; i++ {
				unit := base
				unit.UniqueID = fmt.Sprintf("%s-%d-%d", typeID, index, i)
				unit.Replicated = kind == KindControl
				out = append(out, unit)
			}
		}
	}

	return out
}
