package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-catalog-api/internal/domain"
)

// 内存版仓储，实现 domain 接口，专用于 service 层测试

type memProductRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{rows: map[string]*domain.Product{}}
}

func (r *memProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	cp := *p
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.rows[p.ID] = &cp
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *memProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) UpdateActive(_ context.Context, id string, fields map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok || p.IsDeleted {
		return 0, nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "price":
			p.Price = v.(float64)
		case "description":
			p.Description = v.(string)
		case "image_url":
			p.ImageURL = v.(string)
		case "updated_at":
			p.UpdatedAt = v.(time.Time)
		}
	}
	return 1, nil
}

func (r *memProductRepo) SetDeleted(_ context.Context, id string, deleted bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok || p.IsDeleted == deleted {
		return 0, nil
	}
	p.IsDeleted = deleted
	p.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *memProductRepo) List(_ context.Context, f domain.ListFilter) ([]domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []domain.Product
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range r.rows {
		if p.IsDeleted != f.DeletedOnly {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		items = append(items, *p)
	}

	asc := strings.EqualFold(f.SortOrder, "asc")
	sort.Slice(items, func(i, j int) bool {
		var less bool
		switch f.SortBy {
		case "name":
			less = items[i].Name < items[j].Name
		case "price":
			less = items[i].Price < items[j].Price
		default:
			less = items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(items))
	start := (f.Page - 1) * f.Limit
	if start >= len(items) {
		return nil, total, nil
	}
	end := start + f.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}

type memAuditRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   []domain.AuditLog
	fail   error // 非 nil 时 Append 失败，用于回滚测试
}

func newMemAuditRepo() *memAuditRepo { return &memAuditRepo{nextID: 1} }

func (r *memAuditRepo) Append(_ context.Context, e *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	cp := *e
	cp.ID = r.nextID
	cp.Timestamp = time.Now().UTC()
	r.nextID++
	r.rows = append(r.rows, cp)
	return nil
}

func (r *memAuditRepo) List(_ context.Context, offset, limit int) ([]domain.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditLog, len(r.rows))
	copy(out, r.rows)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *memAuditRepo) byAction(action string) []domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuditLog
	for _, e := range r.rows {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// memTx 事务语义：fn 出错时恢复写入前的快照
type memTx struct {
	products *memProductRepo
	audits   *memAuditRepo
}

func (m *memTx) InTx(ctx context.Context, fn func(products domain.ProductRepository, audits domain.AuditRepository) error) error {
	m.products.mu.Lock()
	snapRows := make(map[string]*domain.Product, len(m.products.rows))
	for k, v := range m.products.rows {
		cp := *v
		snapRows[k] = &cp
	}
	m.products.mu.Unlock()

	m.audits.mu.Lock()
	snapAudits := make([]domain.AuditLog, len(m.audits.rows))
	copy(snapAudits, m.audits.rows)
	snapNext := m.audits.nextID
	m.audits.mu.Unlock()

	if err := fn(m.products, m.audits); err != nil {
		m.products.mu.Lock()
		m.products.rows = snapRows
		m.products.mu.Unlock()
		m.audits.mu.Lock()
		m.audits.rows = snapAudits
		m.audits.nextID = snapNext
		m.audits.mu.Unlock()
		return err
	}
	return nil
}

type memUserRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.User // key = id
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{rows: map[string]*domain.User{}} }

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.Email == u.Email {
			return errDuplicate
		}
	}
	now := time.Now().UTC()
	cp := *u
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.rows[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.rows {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type constErr string

func (e constErr) Error() string { return string(e) }

const errDuplicate = constErr("duplicate key value violates unique constraint")
