package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string    `gorm:"size:255" json:"image_url,omitempty"`
	IsDeleted   bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedBy   string    `gorm:"size:32;not null" json:"created_by"` // users.id，创建后不变
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Creator *User `gorm:"foreignKey:CreatedBy;references:ID" json:"creator,omitempty"`
}

func (Product) TableName() string { return "products" }

// ListFilter 列表查询条件。DeletedOnly 为 true 时只返回软删行（管理员查回收站）
type ListFilter struct {
	Search      string
	SortBy      string // name / price / created_at
	SortOrder   string // asc / desc
	DeletedOnly bool
	Page        int
	Limit       int
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	// FindByID 返回 (nil, nil) 表示不存在
	FindByID(ctx context.Context, id string) (*Product, error)
	// UpdateActive 只更新未软删的行，返回命中行数
	UpdateActive(ctx context.Context, id string, fields map[string]any) (int64, error)
	// SetDeleted 条件写：WHERE id = ? AND is_deleted = ?，返回命中行数
	SetDeleted(ctx context.Context, id string, deleted bool) (int64, error)
	List(ctx context.Context, f ListFilter) ([]Product, int64, error)
}
