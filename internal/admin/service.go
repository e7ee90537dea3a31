package admin

import (
	"context"
	"errors"

	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
)

// StatsDTO carries the dashboard counters.
type StatsDTO struct {
	TotalUsers      int64 `json:"total_users"`
	TotalProducts   int64 `json:"total_products"`
	TotalCategories int64 `json:"total_categories"`
}

// Counter is implemented by every repository that can report its row count.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Service aggregates dashboard statistics for superusers.
type Service interface {
	Stats(ctx context.Context) (*StatsDTO, error)
}

type service struct {
	users      Counter
	products   Counter
	categories Counter
}

func NewService(users, products, categories Counter) (Service, error) {
	if users == nil || products == nil || categories == nil {
		return nil, errors.New("all counters are required")
	}
	return &service{users: users, products: products, categories: categories}, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count users")
	}
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	categoryCount, err := s.categories.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count categories")
	}
	return &StatsDTO{
		TotalUsers:      userCount,
		TotalProducts:   productCount,
		TotalCategories: categoryCount,
	}, nil
}
