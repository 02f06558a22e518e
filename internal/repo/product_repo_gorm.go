package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-catalog-api/internal/domain"
)

// 排序字段白名单，防止把用户输入拼进 ORDER BY
var sortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
}

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// UpdateActive 条件写：只命中未软删的行。命中 0 行说明行不存在或已被并发软删，
// 由调用方重查区分。
func (r *ProductRepo) UpdateActive(ctx context.Context, id string, fields map[string]any) (int64, error) {
	fields["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// SetDeleted 软删/恢复的 compare-and-swap：WHERE 带上期望的当前状态，
// 两个并发 delete 只有一个能命中。
func (r *ProductRepo) SetDeleted(ctx context.Context, id string, deleted bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND is_deleted = ?", id, !deleted).
		Updates(map[string]any{
			"is_deleted": deleted,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *ProductRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("is_deleted = ?", f.DeletedOnly)

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "desc"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "asc"
	}

	var items []domain.Product
	err := q.Order(col + " " + dir).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&items).Error
	return items, total, err
}
