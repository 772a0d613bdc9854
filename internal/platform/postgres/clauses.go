package postgres

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Contains matches rows whose column contains value, case-sensitively. LIKE
// folds case on sqlite, so both dialects use a position function instead.
func Contains(db *gorm.DB, column, value string) clause.Expr {
	if IsPostgres(db) {
		return gorm.Expr("strpos("+column+", ?) > 0", value)
	}
	return gorm.Expr("instr("+column+", ?) > 0", value)
}

// AnyInt64 matches rows whose column is one of ids. PostgreSQL gets a single
// array parameter so the statement text does not depend on len(ids).
func AnyInt64(db *gorm.DB, column string, ids []int64) clause.Expr {
	if IsPostgres(db) {
		return gorm.Expr(column+" = ANY(?)", pq.Array(ids))
	}
	return gorm.Expr(column+" IN ?", ids)
}
