package postgres

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

const queryCounterName = "shop:query_counter"

type counterKey struct{}

// QueryCounter tallies SQL statements issued on contexts derived from WithQueryCounter.
type QueryCounter struct {
	n atomic.Int64
}

// Count returns the number of statements seen so far.
func (c *QueryCounter) Count() int {
	if c == nil {
		return 0
	}
	return int(c.n.Load())
}

// WithQueryCounter attaches a fresh counter to ctx.
func WithQueryCounter(ctx context.Context) (context.Context, *QueryCounter) {
	c := &QueryCounter{}
	return context.WithValue(ctx, counterKey{}, c), c
}

// QueryCounterFrom returns the counter attached to ctx, if any.
func QueryCounterFrom(ctx context.Context) *QueryCounter {
	c, _ := ctx.Value(counterKey{}).(*QueryCounter)
	return c
}

// RegisterQueryCounter installs callbacks that count every statement GORM runs.
// Registering twice on the same DB is a no-op.
func RegisterQueryCounter(db *gorm.DB) error {
	if db.Callback().Query().Get(queryCounterName) != nil {
		return nil
	}
	statements, err := otel.Meter("shop/platform/postgres").Int64Counter(
		"db.statements",
		metric.WithDescription("SQL statements issued through GORM"),
	)
	if err != nil {
		return err
	}
	count := func(kind string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			if tx.Statement == nil {
				return
			}
			ctx := tx.Statement.Context
			if ctx == nil {
				return
			}
			if c := QueryCounterFrom(ctx); c != nil {
				c.n.Add(1)
			}
			statements.Add(ctx, 1, metric.WithAttributes(attribute.String("db.operation", kind)))
		}
	}
	cb := db.Callback()
	if err := cb.Query().After("gorm:query").Register(queryCounterName, count("select")); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register(queryCounterName, count("row")); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register(queryCounterName, count("raw")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register(queryCounterName, count("insert")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register(queryCounterName, count("update")); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register(queryCounterName, count("delete"))
}
