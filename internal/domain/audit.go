package domain

import (
	"context"
	"time"
)

const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionRestore = "restore"
)

// AuditLog 只追加，永不修改/删除。自增 ID 用于 timestamp 相同时按写入顺序排序。
// actor_email 冗余存储，演员被删后记录仍可读；product_id 弱引用，不级联。
type AuditLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Action      string    `gorm:"size:16;not null" json:"action"`
	ActorEmail  string    `gorm:"size:255;not null" json:"user_email"`
	ProductID   *string   `gorm:"size:32;index" json:"product_id,omitempty"`
	ProductName string    `gorm:"size:100" json:"product_name,omitempty"`
	Details     string    `gorm:"type:text" json:"details,omitempty"`
	Timestamp   time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (AuditLog) TableName() string { return "audit_logs" }

type AuditRepository interface {
	Append(ctx context.Context, e *AuditLog) error
	List(ctx context.Context, offset, limit int) ([]AuditLog, int64, error)
}

// TxManager 把产品写与审计追加包进同一事务：审计失败则回滚产品变更
type TxManager interface {
	InTx(ctx context.Context, fn func(products ProductRepository, audits AuditRepository) error) error
}
