// Package database handles the optional rule database connection and schema inspection.
//
// Connect opens MySQL (production) or SQLite (local files and tests) through GORM.
// The inspector reads live column definitions so the integrity checks can compare
// them with the expected rule table model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Rule database unavailable", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "equipment_rules")
package database
