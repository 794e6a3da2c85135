package usecase_test

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/stocktrack-api/internal/domain/entity"
	"github.com/tu-usuario/stocktrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	categories    map[int64]*entity.Category
	productCounts map[int64]int
	nextID        int64
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{
		categories:    make(map[int64]*entity.Category),
		productCounts: make(map[int64]int),
	}
	for _, c := range categories {
		r.categories[c.ID] = c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.nextID++
	c.ID = r.nextID
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	return r.categories[id], nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for id := int64(1); id <= r.nextID; id++ {
		c, ok := r.categories[id]
		if !ok {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, c)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCategoryRepo) CountProducts(_ context.Context, categoryID int64) (int, error) {
	return r.productCounts[categoryID], nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	delete(r.categories, id)
	return nil
}

type fakeProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[int64]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(_ context.Context, id int64) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id int64, stock int) error {
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for id := int64(1); id <= r.nextID; id++ {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Count(ctx context.Context, filter repository.ProductFilter) (int, error) {
	list, _ := r.List(ctx, filter)
	return len(list), nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	m.ID = int64(len(r.movements) + 1)
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID int64, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movements[i].ProductID == productID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListRecent(_ context.Context, limit int) ([]repository.MovementDetail, error) {
	var out []repository.MovementDetail
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, repository.MovementDetail{StockMovement: *r.movements[i]})
	}
	return out, nil
}

func (r *fakeMovementRepo) ListSince(_ context.Context, since time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if !m.Date.Before(since) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListForReport(_ context.Context, _ *int64, start, endExclusive *time.Time) ([]repository.MovementDetail, error) {
	var out []repository.MovementDetail
	for _, m := range r.movements {
		if start != nil && m.Date.Before(*start) {
			continue
		}
		if endExclusive != nil && !m.Date.Before(*endExclusive) {
			continue
		}
		out = append(out, repository.MovementDetail{StockMovement: *m})
	}
	return out, nil
}

func (r *fakeMovementRepo) CountByProduct(_ context.Context, productID int64) (int, error) {
	count := 0
	for _, m := range r.movements {
		if m.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMovementRepo) DeleteByProduct(_ context.Context, productID int64) (int64, error) {
	var kept []*entity.StockMovement
	var deleted int64
	for _, m := range r.movements {
		if m.ProductID == productID {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.movements = kept
	return deleted, nil
}

// fakeTxRunner ejecuta el callback directamente, sin transacción real.
type fakeTxRunner struct {
	productRepo  *fakeProductRepo
	movementRepo *fakeMovementRepo
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(tx.productRepo, tx.movementRepo)
}
