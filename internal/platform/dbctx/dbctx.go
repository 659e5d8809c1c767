package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries the request context and, inside a unit of work, the open transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// DB returns the transaction when set, otherwise fallback, bound to Ctx.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	db := c.Tx
	if db == nil {
		db = fallback
	}
	if db == nil {
		return nil
	}
	if c.Ctx != nil {
		return db.WithContext(c.Ctx)
	}
	return db
}
