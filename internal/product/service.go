package product

import "github.com/vzeeee/Qkart-Backend2/internal/apperr"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Product, error) {
	products, err := s.repo.List()
	if err != nil {
		return nil, apperr.Infrastructure("could not list products", err)
	}
	return products, nil
}

func (s *Service) GetByID(id int) (Product, error) {
	p, err := s.repo.GetByID(id)
	if err == ErrNotFound {
		return Product{}, apperr.NotFound("product not found")
	}
	if err != nil {
		return Product{}, apperr.Infrastructure("could not load product", err)
	}
	return p, nil
}

func (s *Service) Search(value string) ([]Product, error) {
	products, err := s.repo.Search(value)
	if err != nil {
		return nil, apperr.Infrastructure("could not search products", err)
	}
	return products, nil
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	products, err := s.repo.ListByIDs(ids)
	if err != nil {
		return nil, apperr.Infrastructure("could not list products", err)
	}
	return products, nil
}
