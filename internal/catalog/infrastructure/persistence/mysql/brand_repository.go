package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/shopadmin/internal/catalog/domain"
	"gorm.io/gorm"
)

type brandRepository struct{ db *gorm.DB }

func NewBrandRepository(db *gorm.DB) domain.BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Save(ctx context.Context, brand *domain.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *brandRepository) GetByID(ctx context.Context, id uint) (*domain.Brand, error) {
	var b domain.Brand
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBrandNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepository) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	var b domain.Brand
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBrandNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	var brands []*domain.Brand
	err := r.db.WithContext(ctx).Order("name").Find(&brands).Error
	return brands, err
}
