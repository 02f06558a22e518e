package repo

import (
	"context"

	"gorm.io/gorm"

	"go-catalog-api/internal/domain"
)

type AuditRepo struct{ db *gorm.DB }

func NewAuditRepo(db *gorm.DB) *AuditRepo { return &AuditRepo{db: db} }

func (r *AuditRepo) Append(ctx context.Context, e *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// List 按 timestamp 倒序，同一时刻按自增 id 倒序（写入顺序）
func (r *AuditRepo) List(ctx context.Context, offset, limit int) ([]domain.AuditLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var logs []domain.AuditLog
	err := r.db.WithContext(ctx).
		Order("timestamp desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}
