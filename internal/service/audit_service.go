package service

import (
	"context"

	"go-catalog-api/internal/domain"
)

type AuditService struct {
	audits domain.AuditRepository
}

func NewAuditService(audits domain.AuditRepository) *AuditService {
	return &AuditService{audits: audits}
}

func (s *AuditService) Logs(ctx context.Context, page, limit int) (Page[domain.AuditLog], error) {
	page = clampPage(page)
	limit = clampLimit(limit, 20)

	logs, total, err := s.audits.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return Page[domain.AuditLog]{}, err
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}
	return Page[domain.AuditLog]{Data: logs, Pagination: NewPagination(page, limit, total)}, nil
}
