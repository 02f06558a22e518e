package repo

import (
	"context"

	"gorm.io/gorm"

	"go-catalog-api/internal/domain"
)

// TxManager 把产品写与审计追加放进同一个 gorm 事务
type TxManager struct{ db *gorm.DB }

func NewTxManager(db *gorm.DB) *TxManager { return &TxManager{db: db} }

func (m *TxManager) InTx(ctx context.Context, fn func(products domain.ProductRepository, audits domain.AuditRepository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewProductRepo(tx), NewAuditRepo(tx))
	})
}
