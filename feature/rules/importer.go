package rules

import (
	"context"
	"fmt"
	"io"
	"strings"

	"equipment-validator/core/storage"
	"equipment-validator/core/validation"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Workbook column headers.
const (
	ColumnEquipment   = "skuequipo"
	ColumnDescription = "descripcion"
	ColumnSources     = "skufuente"
	ColumnControls    = "skucontrol"
)

// ImportResult describes what an import read and where it was written.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Targets  []string `json:"targets"`
}

// ReadWorkbook reads rules from the first sheet of an .xlsx workbook.
// The first row is the header. Rows without an equipment type are skipped.
func ReadWorkbook(r io.Reader) ([]validation.Rule, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: cannot open workbook: %v", validation.ErrMalformedRules, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("%w: workbook has no sheets", validation.ErrMalformedRules)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("%w: cannot read sheet %s: %v", validation.ErrMalformedRules, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("%w: sheet %s is empty", validation.ErrMalformedRules, sheets[0])
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	equipmentCol, ok := index[ColumnEquipment]
	if !ok {
		return nil, 0, fmt.Errorf("%w: missing %s column", validation.ErrMalformedRules, ColumnEquipment)
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []validation.Rule
	skipped := 0
	for _, row := range rows[1:] {
		if equipmentCol >= len(row) || strings.TrimSpace(row[equipmentCol]) == "" {
			skipped++
			continue
		}
		out = append(out, validation.Rule{
			EquipmentType: strings.TrimSpace(row[equipmentCol]),
			Description:   cell(row, ColumnDescription),
			Sources:       validation.SplitList(cell(row, ColumnSources)),
			Controls:      validation.SplitList(cell(row, ColumnControls)),
		})
	}
	return out, skipped, nil
}

// ReplaceRules swaps the overrides table contents in one transaction.
func ReplaceRules(ctx context.Context, db *gorm.DB, list []validation.Rule) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&EquipmentRule{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", TableName, err)
		}
		if len(list) == 0 {
			return nil
		}
		rows := make([]EquipmentRule, 0, len(list))
		for i, r := range list {
			rows = append(rows, FromRule(r, i))
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			return fmt.Errorf("failed to insert %s: %w", TableName, err)
		}
		return nil
	})
}

// PublishSnapshot writes the rules as the JSON snapshot object, creating the bucket if needed.
func PublishSnapshot(ctx context.Context, client storage.Client, bucket, object string, list []validation.Rule) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	if list == nil {
		list = []validation.Rule{}
	}
	_, err = storage.PutJSON(ctx, client, bucket, object, list)
	return err
}
