package handler

import (
	"context"
	"sort"
	"strings"

	"github.com/iliyamo/ecommerce-api/internal/model"
	"github.com/iliyamo/ecommerce-api/internal/repository"
)

// In-memory store fakes. They mirror the repository semantics the
// handlers rely on: sentinel not-found errors, duplicate detection and
// newest-first ordering.

type fakeCategoryStore struct {
	nextID     uint64
	categories map[uint64]*model.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{nextID: 1, categories: map[uint64]*model.Category{}}
}

func (s *fakeCategoryStore) add(name, slug string) *model.Category {
	c := &model.Category{ID: s.nextID, Name: name, Slug: slug}
	s.categories[c.ID] = c
	s.nextID++
	return c
}

func (s *fakeCategoryStore) Create(_ context.Context, c *model.Category) error {
	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return repository.ErrCategoryExists
		}
	}
	c.ID = s.nextID
	s.categories[c.ID] = c
	s.nextID++
	return nil
}

func (s *fakeCategoryStore) GetByID(_ context.Context, id uint64) (*model.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, repository.ErrCategoryNotFound
}

func (s *fakeCategoryStore) GetByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (s *fakeCategoryStore) GetBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (s *fakeCategoryStore) List(_ context.Context) ([]*model.Category, error) {
	out := make([]*model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCategoryStore) Update(_ context.Context, id uint64, name, slug string) (*model.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	c.Name, c.Slug = name, slug
	return c, nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

type fakeProductStore struct {
	nextID   uint64
	products []*model.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{nextID: 1}
}

func (s *fakeProductStore) add(p *model.Product) *model.Product {
	p.ID = s.nextID
	s.nextID++
	s.products = append(s.products, p)
	return p
}

func (s *fakeProductStore) find(id uint64) *model.Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *fakeProductStore) Create(_ context.Context, p *model.Product) error {
	s.add(p)
	return nil
}

func (s *fakeProductStore) Update(_ context.Context, p *model.Product) error {
	existing := s.find(p.ID)
	if existing == nil {
		return repository.ErrProductNotFound
	}
	existing.Name = p.Name
	existing.Slug = p.Slug
	existing.Description = p.Description
	existing.Price = p.Price
	existing.Quantity = p.Quantity
	existing.CategoryID = p.CategoryID
	existing.Shipping = p.Shipping
	return nil
}

func (s *fakeProductStore) UpdatePhoto(_ context.Context, id uint64, photo []byte, contentType string) error {
	p := s.find(id)
	if p == nil {
		return repository.ErrProductNotFound
	}
	p.Photo = photo
	p.PhotoContentType = contentType
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id uint64) error {
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (s *fakeProductStore) GetBySlug(_ context.Context, slug string) (*model.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (s *fakeProductStore) Photo(_ context.Context, id uint64) ([]byte, string, error) {
	p := s.find(id)
	if p == nil {
		return nil, "", repository.ErrProductNotFound
	}
	return p.Photo, p.PhotoContentType, nil
}

func (s *fakeProductStore) newestFirst() []*model.Product {
	out := make([]*model.Product, len(s.products))
	copy(out, s.products)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *fakeProductStore) List(_ context.Context, limit int) ([]*model.Product, error) {
	out := s.newestFirst()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeProductStore) Page(_ context.Context, page int) ([]*model.Product, error) {
	out := s.newestFirst()
	start := (page - 1) * repository.PageSize
	if start >= len(out) {
		return []*model.Product{}, nil
	}
	end := start + repository.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (s *fakeProductStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.products)), nil
}

func (s *fakeProductStore) CountByCategory(_ context.Context, categoryID uint64) (int64, error) {
	var n int64
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (s *fakeProductStore) ByCategory(_ context.Context, categoryID uint64) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range s.newestFirst() {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) Filter(_ context.Context, q repository.FilterQuery) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range s.newestFirst() {
		if len(q.CategoryIDs) > 0 {
			match := false
			for _, id := range q.CategoryIDs {
				if p.CategoryID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if q.HasPrice && (p.Price < q.PriceMin || p.Price > q.PriceMax) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeProductStore) Search(_ context.Context, keyword string) ([]*model.Product, error) {
	kw := strings.ToLower(keyword)
	var out []*model.Product
	for _, p := range s.newestFirst() {
		if strings.Contains(strings.ToLower(p.Name), kw) ||
			strings.Contains(strings.ToLower(p.Description), kw) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) Related(_ context.Context, productID, categoryID uint64, limit int) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range s.newestFirst() {
		if p.ID == productID || p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeUserStore struct {
	nextID uint64
	users  map[uint64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[uint64]*model.User{}}
}

func (s *fakeUserStore) add(u *model.User) *model.User {
	u.ID = s.nextID
	s.users[u.ID] = u
	s.nextID++
	return u
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrEmailExists
		}
	}
	s.add(u)
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByEmailAndAnswer(_ context.Context, email, answer string) (*model.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) && u.Answer == answer {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id uint64, name, passwordHash, phone, address string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Name, u.PasswordHash, u.Phone, u.Address = name, passwordHash, phone, address
	return u, nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeOrderStore struct {
	nextID        uint64
	orders        []*model.Order
	productCounts map[uint64]int64
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{nextID: 1, productCounts: map[uint64]int64{}}
}

func (s *fakeOrderStore) add(o *model.Order) *model.Order {
	o.ID = s.nextID
	s.nextID++
	s.orders = append(s.orders, o)
	return o
}

func (s *fakeOrderStore) CountByProduct(_ context.Context, productID uint64) (int64, error) {
	return s.productCounts[productID], nil
}

func (s *fakeOrderStore) ListByBuyer(_ context.Context, buyerID uint64) ([]*model.Order, error) {
	out := []*model.Order{}
	for _, o := range s.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListAll(_ context.Context) ([]*model.Order, error) {
	out := make([]*model.Order, len(s.orders))
	copy(out, s.orders)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, orderID uint64, status string) (*model.Order, error) {
	for _, o := range s.orders {
		if o.ID == orderID {
			o.Status = status
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}
