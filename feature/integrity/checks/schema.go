package checks

import (
	"fmt"
	"reflect"
	"strings"

	"equipment-validator/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the comparison of a table with its gorm model.
type SchemaReport struct {
	Table          string   `json:"table"`
	Exists         bool     `json:"exists"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Errors         []string `json:"errors"`
}

// CheckSchema compares the live table with the columns declared on the model.
// model must be a struct implementing TableName.
func CheckSchema(db *gorm.DB, model any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	val := reflect.TypeOf(model)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model %T is not a struct", model)
	}
	tabler, ok := reflect.New(val).Interface().(interface{ TableName() string })
	if !ok {
		return nil, fmt.Errorf("model %s does not implement TableName", val.Name())
	}

	report := &SchemaReport{
		Table:          tabler.TableName(),
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Errors:         []string{},
	}

	actual, err := database.GetTableColumns(db, report.Table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", report.Table, err))
		report.Matched = false
		return report, nil
	}
	report.Exists = len(actual) > 0
	columns := database.ColumnSet(actual)

	for i := 0; i < val.NumField(); i++ {
		tag := val.Field(i).Tag.Get("gorm")
		col := parseGormColumn(tag)
		if col == "" {
			continue
		}

		got, exists := columns[col]
		if !exists {
			report.MissingColumns = append(report.MissingColumns, col)
			report.Matched = false
			continue
		}

		// Only explicit type: tags are compared, loosely.
		if want := strings.ToLower(parseGormType(tag)); want != "" && !strings.Contains(got.Type, want) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", col, want, got.Type))
			report.Matched = false
		}
	}

	return report, nil
}

func parseGormColumn(tag string) string {
	return gormSetting(tag, "column:")
}

func parseGormType(tag string) string {
	return gormSetting(tag, "type:")
}

func gormSetting(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, key) {
			return strings.TrimPrefix(p, key)
		}
	}
	return ""
}
