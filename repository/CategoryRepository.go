package repository

import (
	"database/sql"
	"errors"
	"log"

	"okpups/entities"
	"okpups/models"
)

type CategoryRepository interface {
	ListCategories(typeFilter string) (cats []entities.Category, err error)
	GetCategoryById(id string) (cat entities.Category, exists bool, err error)
}

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepository(conn *sql.DB) (CategoryRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &CategoryRepo{
		db: conn,
	}, nil
}

func (c *CategoryRepo) ListCategories(typeFilter string) (cats []entities.Category, err error) {
	query := "SELECT Id, Name, Slug, Type FROM Categories"
	queryParams := make([]any, 0, 1)
	if typeFilter != "" {
		query = query + " WHERE Type = $1"
		queryParams = append(queryParams, typeFilter)
	}
	rows, e := c.db.Query(query+" ORDER BY Name", queryParams...)
	if e != nil {
		log.Printf("ListCategories[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		cat := entities.Category{}
		err = rows.Scan(&cat.Id, &cat.Name, &cat.Slug, &cat.Type)
		if err != nil {
			log.Printf("ListCategories[2]: %v", err)
			err = models.ErrServerError
			return
		}
		cats = append(cats, cat)
	}
	return
}

func (c *CategoryRepo) GetCategoryById(id string) (cat entities.Category, exists bool, err error) {
	row := c.db.QueryRow("SELECT Id, Name, Slug, Type FROM Categories WHERE Id = $1", id)
	err = row.Scan(&cat.Id, &cat.Name, &cat.Slug, &cat.Type)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetCategoryById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}
