package handler

import (
	"context"

	"github.com/iliyamo/ecommerce-api/internal/model"
	"github.com/iliyamo/ecommerce-api/internal/repository"
)

// The handlers depend on narrow store interfaces instead of concrete
// repositories so that the read-check and write steps of every
// lifecycle stay separately callable and injectable; a stricter
// implementation can compose them transactionally without changing
// the handler contract, and tests can run against in-memory fakes.

// CategoryStore is the persistence surface of the category lifecycle.
type CategoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id uint64) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Update(ctx context.Context, id uint64, name, slug string) (*model.Category, error)
	Delete(ctx context.Context, id uint64) error
}

// ProductStore is the persistence surface of the product lifecycle and
// the query/filter engine.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	UpdatePhoto(ctx context.Context, id uint64, photo []byte, contentType string) error
	Delete(ctx context.Context, id uint64) error
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	Photo(ctx context.Context, id uint64) ([]byte, string, error)
	List(ctx context.Context, limit int) ([]*model.Product, error)
	Page(ctx context.Context, page int) ([]*model.Product, error)
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID uint64) (int64, error)
	ByCategory(ctx context.Context, categoryID uint64) ([]*model.Product, error)
	Filter(ctx context.Context, q repository.FilterQuery) ([]*model.Product, error)
	Search(ctx context.Context, keyword string) ([]*model.Product, error)
	Related(ctx context.Context, productID, categoryID uint64, limit int) ([]*model.Product, error)
}

// UserStore is the persistence surface of registration, login and
// profile updates.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByEmailAndAnswer(ctx context.Context, email, answer string) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint64, name, passwordHash, phone, address string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
}

// OrderStore is the persistence surface of order listings, the status
// update and the product delete guard.
type OrderStore interface {
	CountByProduct(ctx context.Context, productID uint64) (int64, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint64, status string) (*model.Order, error)
}
