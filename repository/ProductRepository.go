package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"okpups/entities"
	"okpups/models"

	"github.com/lib/pq"
)

type ProductRepository interface {
	GetProductById(id string) (pModel models.Product_db, exists bool, err error)
	ListProducts(q string, categorySlug string) (prods []entities.ProductPreview, err error)
	ListAllProducts() (prods []models.Product_db, err error)
	SearchProducts(q string, limit int) (prods []entities.ProductPreview, err error)
	CreateProduct(pModel models.Product_db) (err error)
	UpdateProduct(pModel models.Product_db) (err error)
	DeleteProduct(id string) (err error)
}

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepository(conn *sql.DB) (ProductRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &ProductRepo{
		db: conn,
	}, nil
}

const productColumns = "Id, CategoryId, Name, Brand, Price, Stock, AvailabilityStatus, SpeciesSuitability, AgeSuitability, Purpose, FeedingInstructions, NutritionHighlights, VetApproved, SpecWeight, SpecProteinPercent, SpecFatPercent, SpecFiberPercent, SpecIngredients, Images"

func scanProduct(row interface{ Scan(...any) error }) (pModel models.Product_db, err error) {
	err = row.Scan(&pModel.Id, &pModel.CategoryId, &pModel.Name, &pModel.Brand,
		&pModel.Price, &pModel.Stock, &pModel.AvailabilityStatus,
		pq.Array(&pModel.SpeciesSuitability), pq.Array(&pModel.AgeSuitability),
		pq.Array(&pModel.Purpose), &pModel.FeedingInstructions,
		&pModel.NutritionHighlights, &pModel.VetApproved,
		&pModel.Specs.Weight, &pModel.Specs.ProteinPercent, &pModel.Specs.FatPercent,
		&pModel.Specs.FiberPercent, &pModel.Specs.Ingredients, pq.Array(&pModel.Images))
	return
}

func (p *ProductRepo) GetProductById(id string) (pModel models.Product_db, exists bool, err error) {
	row := p.db.QueryRow("SELECT "+productColumns+" FROM Products WHERE Id = $1", id)
	pModel, err = scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetProductById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (p *ProductRepo) ListProducts(q string, categorySlug string) (prods []entities.ProductPreview, err error) {
	query := "SELECT Products.Id, Products.Name, Products.Brand, Products.Price, Products.AvailabilityStatus, Products.Images FROM Products"
	where := ""
	queryParams := make([]any, 0, 2)
	if categorySlug != "" {
		query = query + " JOIN Categories ON Categories.Id = Products.CategoryId"
		queryParams = append(queryParams, categorySlug)
		where = " WHERE Categories.Slug = $1"
	}
	if q != "" {
		queryParams = append(queryParams, "%"+q+"%")
		n := len(queryParams)
		cond := fmt.Sprintf("(Products.Name ILIKE $%d OR Products.Brand ILIKE $%d)", n, n)
		if where == "" {
			where = " WHERE " + cond
		} else {
			where = where + " AND " + cond
		}
	}
	rows, e := p.db.Query(query+where+" ORDER BY Products.Name", queryParams...)
	if e != nil {
		log.Printf("ListProducts[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		prev := entities.ProductPreview{}
		var images []string
		err = rows.Scan(&prev.Id, &prev.Name, &prev.Brand, &prev.Price, &prev.AvailabilityStatus, pq.Array(&images))
		if err != nil {
			log.Printf("ListProducts[2]: %v", err)
			err = models.ErrServerError
			return
		}
		prev.Image = entities.PickImage(images)
		prods = append(prods, prev)
	}
	return
}

func (p *ProductRepo) ListAllProducts() (prods []models.Product_db, err error) {
	rows, e := p.db.Query("SELECT " + productColumns + " FROM Products ORDER BY Name")
	if e != nil {
		log.Printf("ListAllProducts[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		var pModel models.Product_db
		pModel, err = scanProduct(rows)
		if err != nil {
			log.Printf("ListAllProducts[2]: %v", err)
			err = models.ErrServerError
			return
		}
		prods = append(prods, pModel)
	}
	return
}

func (p *ProductRepo) SearchProducts(q string, limit int) (prods []entities.ProductPreview, err error) {
	rows, e := p.db.Query(
		"SELECT Id, Name, Brand, Price, AvailabilityStatus, Images FROM Products WHERE Name ILIKE $1 OR Brand ILIKE $1 ORDER BY Name LIMIT $2",
		"%"+q+"%", limit)
	if e != nil {
		log.Printf("SearchProducts[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		prev := entities.ProductPreview{}
		var images []string
		err = rows.Scan(&prev.Id, &prev.Name, &prev.Brand, &prev.Price, &prev.AvailabilityStatus, pq.Array(&images))
		if err != nil {
			log.Printf("SearchProducts[2]: %v", err)
			err = models.ErrServerError
			return
		}
		prev.Image = entities.PickImage(images)
		prods = append(prods, prev)
	}
	return
}

func (p *ProductRepo) CreateProduct(pModel models.Product_db) (err error) {
	_, e := p.db.Exec(
		"INSERT INTO Products ("+productColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)",
		pModel.Id, pModel.CategoryId, pModel.Name, pModel.Brand, pModel.Price,
		pModel.Stock, pModel.AvailabilityStatus, pq.Array(pModel.SpeciesSuitability),
		pq.Array(pModel.AgeSuitability), pq.Array(pModel.Purpose),
		pModel.FeedingInstructions, pModel.NutritionHighlights, pModel.VetApproved,
		pModel.Specs.Weight, pModel.Specs.ProteinPercent, pModel.Specs.FatPercent,
		pModel.Specs.FiberPercent, pModel.Specs.Ingredients, pq.Array(pModel.Images))
	if e != nil {
		log.Printf("CreateProduct: %v", e)
		err = models.ErrServerError
	}
	return
}

func (p *ProductRepo) UpdateProduct(pModel models.Product_db) (err error) {
	_, e := p.db.Exec(
		"UPDATE Products SET CategoryId = $2, Name = $3, Brand = $4, Price = $5, Stock = $6, AvailabilityStatus = $7, SpeciesSuitability = $8, AgeSuitability = $9, Purpose = $10, FeedingInstructions = $11, NutritionHighlights = $12, VetApproved = $13, SpecWeight = $14, SpecProteinPercent = $15, SpecFatPercent = $16, SpecFiberPercent = $17, SpecIngredients = $18, Images = $19 WHERE Id = $1",
		pModel.Id, pModel.CategoryId, pModel.Name, pModel.Brand, pModel.Price,
		pModel.Stock, pModel.AvailabilityStatus, pq.Array(pModel.SpeciesSuitability),
		pq.Array(pModel.AgeSuitability), pq.Array(pModel.Purpose),
		pModel.FeedingInstructions, pModel.NutritionHighlights, pModel.VetApproved,
		pModel.Specs.Weight, pModel.Specs.ProteinPercent, pModel.Specs.FatPercent,
		pModel.Specs.FiberPercent, pModel.Specs.Ingredients, pq.Array(pModel.Images))
	if e != nil {
		log.Printf("UpdateProduct: %v", e)
		err = models.ErrServerError
	}
	return
}

func (p *ProductRepo) DeleteProduct(id string) (err error) {
	_, e := p.db.Exec("DELETE FROM Products WHERE Id = $1", id)
	if e != nil {
		log.Printf("DeleteProduct: %v", e)
		err = models.ErrServerError
	}
	return
}
