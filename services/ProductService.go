package services

import (
	"database/sql"
	"fmt"
	"log"
	"mime/multipart"

	"okpups/entities"
	"okpups/models"
	"okpups/repository"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProductService struct {
	pr repository.ProductRepository
	or repository.OrderRepository
	ir repository.ImageRepository
	v  *validatorv10.Validate
}

func NewProductService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository, imageRepo repository.ImageRepository, v *validatorv10.Validate) ProductService {
	return ProductService{
		pr: productRepo,
		or: orderRepo,
		ir: imageRepo,
		v:  v,
	}
}

func (ps *ProductService) GetProductById(id string) (product entities.Product, err error) {
	pModel, exists, err := ps.pr.GetProductById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	product = productEntity(pModel)
	return
}

func (ps *ProductService) ListProducts(q string, categorySlug string) (prods []entities.ProductPreview, err error) {
	prods, err = ps.pr.ListProducts(q, categorySlug)
	return
}

func (ps *ProductService) AdminList() (prods []entities.Product, err error) {
	list, err := ps.pr.ListAllProducts()
	if err != nil {
		return
	}
	for _, pModel := range list {
		prods = append(prods, productEntity(pModel))
	}
	return
}

func (ps *ProductService) TopByOrders(limit int) (top []entities.TopEntry, err error) {
	top, err = ps.or.TopProductsByOrders(limit)
	return
}

func (ps *ProductService) CreateProduct(form models.ProductForm, files []*multipart.FileHeader) (product entities.Product, err error) {
	if err = ps.v.Struct(form); err != nil {
		log.Printf("CreateProduct: %v", err)
		err = fmt.Errorf("%w: %v", models.ErrBadRequest, err)
		return
	}
	if len(files) > maxListingImages {
		err = fmt.Errorf("%w: at most %d images", models.ErrBadRequest, maxListingImages)
		return
	}
	images, err := ps.ir.SaveImages(files)
	if err != nil {
		return
	}
	pModel := productModel(uuid.NewString(), form)
	pModel.Images = images
	if err = ps.pr.CreateProduct(pModel); err != nil {
		ps.ir.RemoveImages(images)
		return
	}
	product = productEntity(pModel)
	return
}

func (ps *ProductService) UpdateProduct(id string, form models.ProductForm, removeImages []string, files []*multipart.FileHeader) (product entities.Product, err error) {
	existing, exists, err := ps.pr.GetProductById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	if err = ps.v.Struct(form); err != nil {
		log.Printf("UpdateProduct: %v", err)
		err = fmt.Errorf("%w: %v", models.ErrBadRequest, err)
		return
	}

	kept, dropped := splitImages(existing.Images, removeImages)
	if len(kept)+len(files) > maxListingImages {
		err = fmt.Errorf("%w: at most %d images", models.ErrBadRequest, maxListingImages)
		return
	}
	added, err := ps.ir.SaveImages(files)
	if err != nil {
		return
	}

	pModel := productModel(id, form)
	pModel.Images = append(kept, added...)
	if err = ps.pr.UpdateProduct(pModel); err != nil {
		ps.ir.RemoveImages(added)
		return
	}
	ps.ir.RemoveImages(dropped)
	product = productEntity(pModel)
	return
}

func (ps *ProductService) DeleteProduct(id string) (err error) {
	existing, exists, err := ps.pr.GetProductById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	if err = ps.pr.DeleteProduct(id); err != nil {
		return
	}
	ps.ir.RemoveImages(existing.Images)
	return
}

func productModel(id string, form models.ProductForm) models.Product_db {
	return models.Product_db{
		Id:                  id,
		CategoryId:          sql.NullString{String: form.CategoryId, Valid: form.CategoryId != ""},
		Name:                form.Name,
		Brand:               form.Brand,
		Price:               form.Price,
		Stock:               form.Stock,
		AvailabilityStatus:  form.AvailabilityStatus,
		SpeciesSuitability:  form.SpeciesSuitability,
		AgeSuitability:      form.AgeSuitability,
		Purpose:             form.Purpose,
		FeedingInstructions: form.FeedingInstructions,
		NutritionHighlights: form.NutritionHighlights,
		VetApproved:         form.VetApproved,
		Specs:               form.Specs,
	}
}

func productEntity(pModel models.Product_db) entities.Product {
	return entities.Product{
		Id:                  pModel.Id,
		CategoryId:          pModel.CategoryId.String,
		Name:                pModel.Name,
		Brand:               pModel.Brand,
		Price:               pModel.Price,
		Stock:               pModel.Stock,
		AvailabilityStatus:  pModel.AvailabilityStatus,
		SpeciesSuitability:  pModel.SpeciesSuitability,
		AgeSuitability:      pModel.AgeSuitability,
		Purpose:             pModel.Purpose,
		FeedingInstructions: pModel.FeedingInstructions,
		NutritionHighlights: pModel.NutritionHighlights,
		VetApproved:         pModel.VetApproved,
		Specs: entities.ProductSpecs{
			Weight:         pModel.Specs.Weight,
			ProteinPercent: pModel.Specs.ProteinPercent,
			FatPercent:     pModel.Specs.FatPercent,
			FiberPercent:   pModel.Specs.FiberPercent,
			Ingredients:    pModel.Specs.Ingredients,
		},
		Images: pModel.Images,
	}
}
