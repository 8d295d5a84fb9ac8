package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/shopadmin/internal/catalog/domain"
	"gorm.io/gorm"
)

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint, opts domain.QueryOptions) (*domain.Category, error) {
	q := r.db.WithContext(ctx)
	if opts.IncludeDeleted {
		q = q.Unscoped()
	}
	for _, rel := range opts.EagerLoad {
		q = q.Preload(rel)
	}
	var c domain.Category
	err := q.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context, opts domain.QueryOptions) ([]*domain.Category, error) {
	q := r.db.WithContext(ctx)
	if opts.IncludeDeleted {
		q = q.Unscoped()
	}
	for _, rel := range opts.EagerLoad {
		q = q.Preload(rel)
	}
	var categories []*domain.Category
	err := q.Order("id").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Category, error) {
	like := "%" + query + "%"
	var categories []*domain.Category
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR slug LIKE ?", like, like).
		Limit(limit).Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Category{}, id).Error
}
