package rules

import (
	"time"

	"equipment-validator/core/validation"
)

// TableName is the rule overrides table.
const TableName = "equipment_rules"

// EquipmentRule is one stored rule. Lists are kept as comma separated text.
type EquipmentRule struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Position      int       `gorm:"column:position;not null;index" json:"position"`
	EquipmentType string    `gorm:"column:equipment_type;type:varchar(64);not null;index" json:"skuequipo"`
	Description   string    `gorm:"column:description;type:varchar(255)" json:"descripcion"`
	Sources       string    `gorm:"column:sources;type:text" json:"fuentes"`
	Controls      string    `gorm:"column:controls;type:text" json:"controles"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName implements gorm's tabler.
func (EquipmentRule) TableName() string {
	return TableName
}

// ToRule converts the row to a validation rule.
func (m EquipmentRule) ToRule() validation.Rule {
	return validation.Rule{
		EquipmentType: m.EquipmentType,
		Description:   m.Description,
		Sources:       validation.SplitList(m.Sources),
		Controls:      validation.SplitList(m.Controls),
	}
}

// FromRule converts a rule to a row at the given load position.
func FromRule(r validation.Rule, position int) EquipmentRule {
	return EquipmentRule{
		Position:      position,
		EquipmentType: r.EquipmentType,
		Description:   r.Description,
		Sources:       validation.NormalizeList(r.Sources).String(),
		Controls:      validation.NormalizeList(r.Controls).String(),
	}
}
