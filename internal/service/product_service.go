package service

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-catalog-api/internal/core/cache"
	"go-catalog-api/internal/domain"
	"go-catalog-api/pkg/utils"
)

const maxNameLen = 100

// Actor 执行变更的已认证身份，email 冗余写进审计日志
type Actor struct {
	ID    string
	Email string
}

type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	ImageURL    string
}

// UpdateProductInput 指针字段区分“未提供”与“提供了零值”
type UpdateProductInput struct {
	Name        *string
	Price       *float64
	Description *string
	ImageURL    *string
}

type ListQuery struct {
	Page           int
	Limit          int
	Search         string
	SortBy         string
	SortOrder      string
	IncludeDeleted bool
}

// ProductService 产品生命周期状态机（active ⇄ deleted），
// 每次成功变更与恰好一条审计记录在同一事务里落库。
type ProductService struct {
	products domain.ProductRepository
	tx       domain.TxManager
	cache    *cache.Cache // 可为 nil（未配置 redis）
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewProductService(products domain.ProductRepository, tx domain.TxManager, c *cache.Cache, ttl time.Duration, log *zap.Logger) *ProductService {
	return &ProductService{products: products, tx: tx, cache: c, cacheTTL: ttl, log: log}
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput, actor Actor) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == 0 {
		return "", domain.ErrInvalidInput
	}
	if len(name) > maxNameLen {
		return "", domain.ErrInvalidInput
	}
	if in.Price <= 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return "", domain.ErrInvalidPrice
	}

	p := &domain.Product{
		ID:          utils.NewID(),
		Name:        name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsDeleted:   false,
		CreatedBy:   actor.ID,
	}

	err := s.tx.InTx(ctx, func(products domain.ProductRepository, audits domain.AuditRepository) error {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
		return audits.Append(ctx, &domain.AuditLog{
			Action:      domain.ActionCreate,
			ActorEmail:  actor.Email,
			ProductID:   &p.ID,
			ProductName: p.Name,
			Details:     "Product created: " + p.Name,
		})
	})
	if err != nil {
		return "", err
	}
	s.log.Info("product created", zap.String("id", p.ID), zap.String("actor", actor.Email))
	return p.ID, nil
}

// Get 非管理员看不到软删行，按不存在处理（404），不暴露删除痕迹
func (s *ProductService) Get(ctx context.Context, id string, viewerIsAdmin bool) (*domain.Product, error) {
	p, err := s.findCached(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.IsDeleted && !viewerIsAdmin {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput, actor Actor) error {
	fields := map[string]any{}
	var changed []string

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > maxNameLen {
			return domain.ErrInvalidInput
		}
		fields["name"] = name
		changed = append(changed, "name")
	}
	if in.Price != nil {
		if *in.Price <= 0 || math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0) {
			return domain.ErrInvalidPrice
		}
		fields["price"] = *in.Price
		changed = append(changed, "price")
	}
	if in.Description != nil {
		fields["description"] = *in.Description
		changed = append(changed, "description")
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
		changed = append(changed, "image_url")
	}
	if len(fields) == 0 {
		return domain.ErrNoFieldsToUpdate
	}

	err := s.tx.InTx(ctx, func(products domain.ProductRepository, audits domain.AuditRepository) error {
		existing, err := products.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if existing.IsDeleted {
			return domain.ErrDeletedProduct
		}
		rows, err := products.UpdateActive(ctx, id, fields)
		if err != nil {
			return err
		}
		if rows == 0 {
			// 并发软删抢先，当作改到了已删行
			return domain.ErrDeletedProduct
		}
		return audits.Append(ctx, &domain.AuditLog{
			Action:      domain.ActionUpdate,
			ActorEmail:  actor.Email,
			ProductID:   &id,
			ProductName: existing.Name,
			Details:     "Product updated: " + strings.Join(changed, ", "),
		})
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string, actor Actor) error {
	err := s.tx.InTx(ctx, func(products domain.ProductRepository, audits domain.AuditRepository) error {
		existing, err := products.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if existing.IsDeleted {
			return domain.ErrAlreadyDeleted
		}
		rows, err := products.SetDeleted(ctx, id, true)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrAlreadyDeleted
		}
		return audits.Append(ctx, &domain.AuditLog{
			Action:      domain.ActionDelete,
			ActorEmail:  actor.Email,
			ProductID:   &id,
			ProductName: existing.Name,
			Details:     "Product soft deleted",
		})
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) Restore(ctx context.Context, id string, actor Actor) error {
	err := s.tx.InTx(ctx, func(products domain.ProductRepository, audits domain.AuditRepository) error {
		existing, err := products.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if !existing.IsDeleted {
			return domain.ErrNotDeleted
		}
		rows, err := products.SetDeleted(ctx, id, false)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotDeleted
		}
		return audits.Append(ctx, &domain.AuditLog{
			Action:      domain.ActionRestore,
			ActorEmail:  actor.Email,
			ProductID:   &id,
			ProductName: existing.Name,
			Details:     "Product restored from deleted state",
		})
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// List includeDeleted 仅管理员生效，且生效时结果只含软删行（回收站语义）
func (s *ProductService) List(ctx context.Context, q ListQuery, viewerIsAdmin bool) (Page[domain.Product], error) {
	page := clampPage(q.Page)
	limit := clampLimit(q.Limit, 10)

	items, total, err := s.products.List(ctx, domain.ListFilter{
		Search:      q.Search,
		SortBy:      q.SortBy,
		SortOrder:   q.SortOrder,
		DeletedOnly: viewerIsAdmin && q.IncludeDeleted,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return Page[domain.Product]{}, err
	}
	if items == nil {
		items = []domain.Product{}
	}
	return Page[domain.Product]{Data: items, Pagination: NewPagination(page, limit, total)}, nil
}

func (s *ProductService) findCached(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache == nil {
		return s.products.FindByID(ctx, id)
	}
	return cache.GetOrLoadJSON[domain.Product](s.cache, ctx, productKey(id), s.cacheTTL, func(ctx context.Context) (*domain.Product, error) {
		return s.products.FindByID(ctx, id)
	})
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, productKey(id))
	}
}

func productKey(id string) string { return "product:" + id }
