package db

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key carrying the transaction handle.
type txKey struct{}

// FromContext returns the transaction bound to ctx, or fallback when the
// call is not running inside a transaction. Adapters route every query
// through this so repository code is identical in and out of transactions.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// TxManager runs functions inside a single GORM transaction, carrying the
// transaction handle through the context.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new TxManager on the given connection.
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// InTx executes fn inside one transaction. Either every write made with
// the callback's context commits, or none do. Nested calls join the
// surrounding transaction instead of opening a new one.
func (m *TxManager) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
