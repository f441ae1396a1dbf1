package services

import (
	"okpups/entities"
	"okpups/repository"
)

type CategoryService struct {
	cr repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return CategoryService{
		cr: categoryRepo,
	}
}

// ListCategories returns all categories, optionally only one type
// ("animal" or "product").
func (cas *CategoryService) ListCategories(typeFilter string) (cats []entities.Category, err error) {
	cats, err = cas.cr.ListCategories(typeFilter)
	return
}
