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

type AnimalRepository interface {
	GetAnimalById(id string) (aModel models.Animal_db, exists bool, err error)
	ListAnimals(q string, categorySlug string) (animals []entities.AnimalPreview, err error)
	ListAllAnimals() (animals []models.Animal_db, err error)
	SearchAnimals(q string, limit int) (animals []entities.AnimalPreview, err error)
	CreateAnimal(aModel models.Animal_db) (err error)
	UpdateAnimal(aModel models.Animal_db) (err error)
	DeleteAnimal(id string) (err error)
}

type AnimalRepo struct {
	db *sql.DB
}

func NewAnimalRepository(conn *sql.DB) (AnimalRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &AnimalRepo{
		db: conn,
	}, nil
}

const animalColumns = "Id, CategoryId, Name, Species, Breed, AgeWeeks, Sex, Price, QuantityAvailable, Purpose, Temperament, ExperienceLevel, LivingSpace, ExpectedAdultSize, AvailabilityStatus, Location, Images"

func scanAnimal(row interface{ Scan(...any) error }) (aModel models.Animal_db, err error) {
	err = row.Scan(&aModel.Id, &aModel.CategoryId, &aModel.Name, &aModel.Species,
		&aModel.Breed, &aModel.AgeWeeks, &aModel.Sex, &aModel.Price,
		&aModel.QuantityAvailable, pq.Array(&aModel.Purpose), &aModel.Temperament,
		&aModel.ExperienceLevel, &aModel.LivingSpace, &aModel.ExpectedAdultSize,
		&aModel.AvailabilityStatus, &aModel.Location, pq.Array(&aModel.Images))
	return
}

func (a *AnimalRepo) GetAnimalById(id string) (aModel models.Animal_db, exists bool, err error) {
	row := a.db.QueryRow("SELECT "+animalColumns+" FROM Animals WHERE Id = $1", id)
	aModel, err = scanAnimal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetAnimalById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (a *AnimalRepo) ListAnimals(q string, categorySlug string) (animals []entities.AnimalPreview, err error) {
	query := "SELECT Animals.Id, Animals.Name, Animals.Species, Animals.Breed, Animals.Price, Animals.AvailabilityStatus, Animals.Images FROM Animals"
	where := ""
	queryParams := make([]any, 0, 2)
	if categorySlug != "" {
		query = query + " JOIN Categories ON Categories.Id = Animals.CategoryId"
		queryParams = append(queryParams, categorySlug)
		where = " WHERE Categories.Slug = $1"
	}
	if q != "" {
		queryParams = append(queryParams, "%"+q+"%")
		n := len(queryParams)
		cond := fmt.Sprintf("(Animals.Name ILIKE $%d OR Animals.Species ILIKE $%d OR Animals.Breed ILIKE $%d)", n, n, n)
		if where == "" {
			where = " WHERE " + cond
		} else {
			where = where + " AND " + cond
		}
	}
	rows, e := a.db.Query(query+where+" ORDER BY Animals.Name", queryParams...)
	if e != nil {
		log.Printf("ListAnimals[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		prev := entities.AnimalPreview{}
		var images []string
		err = rows.Scan(&prev.Id, &prev.Name, &prev.Species, &prev.Breed, &prev.Price, &prev.AvailabilityStatus, pq.Array(&images))
		if err != nil {
			log.Printf("ListAnimals[2]: %v", err)
			err = models.ErrServerError
			return
		}
		prev.Image = entities.PickImage(images)
		animals = append(animals, prev)
	}
	return
}

func (a *AnimalRepo) ListAllAnimals() (animals []models.Animal_db, err error) {
	rows, e := a.db.Query("SELECT " + animalColumns + " FROM Animals ORDER BY Name")
	if e != nil {
		log.Printf("ListAllAnimals[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		var aModel models.Animal_db
		aModel, err = scanAnimal(rows)
		if err != nil {
			log.Printf("ListAllAnimals[2]: %v", err)
			err = models.ErrServerError
			return
		}
		animals = append(animals, aModel)
	}
	return
}

func (a *AnimalRepo) SearchAnimals(q string, limit int) (animals []entities.AnimalPreview, err error) {
	rows, e := a.db.Query(
		"SELECT Id, Name, Species, Breed, Price, AvailabilityStatus, Images FROM Animals WHERE Name ILIKE $1 OR Species ILIKE $1 OR Breed ILIKE $1 ORDER BY Name LIMIT $2",
		"%"+q+"%", limit)
	if e != nil {
		log.Printf("SearchAnimals[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		prev := entities.AnimalPreview{}
		var images []string
		err = rows.Scan(&prev.Id, &prev.Name, &prev.Species, &prev.Breed, &prev.Price, &prev.AvailabilityStatus, pq.Array(&images))
		if err != nil {
			log.Printf("SearchAnimals[2]: %v", err)
			err = models.ErrServerError
			return
		}
		prev.Image = entities.PickImage(images)
		animals = append(animals, prev)
	}
	return
}

func (a *AnimalRepo) CreateAnimal(aModel models.Animal_db) (err error) {
	_, e := a.db.Exec(
		"INSERT INTO Animals ("+animalColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)",
		aModel.Id, aModel.CategoryId, aModel.Name, aModel.Species, aModel.Breed,
		aModel.AgeWeeks, aModel.Sex, aModel.Price, aModel.QuantityAvailable,
		pq.Array(aModel.Purpose), aModel.Temperament, aModel.ExperienceLevel,
		aModel.LivingSpace, aModel.ExpectedAdultSize, aModel.AvailabilityStatus,
		aModel.Location, pq.Array(aModel.Images))
	if e != nil {
		log.Printf("CreateAnimal: %v", e)
		err = models.ErrServerError
	}
	return
}

func (a *AnimalRepo) UpdateAnimal(aModel models.Animal_db) (err error) {
	_, e := a.db.Exec(
		"UPDATE Animals SET CategoryId = $2, Name = $3, Species = $4, Breed = $5, AgeWeeks = $6, Sex = $7, Price = $8, QuantityAvailable = $9, Purpose = $10, Temperament = $11, ExperienceLevel = $12, LivingSpace = $13, ExpectedAdultSize = $14, AvailabilityStatus = $15, Location = $16, Images = $17 WHERE Id = $1",
		aModel.Id, aModel.CategoryId, aModel.Name, aModel.Species, aModel.Breed,
		aModel.AgeWeeks, aModel.Sex, aModel.Price, aModel.QuantityAvailable,
		pq.Array(aModel.Purpose), aModel.Temperament, aModel.ExperienceLevel,
		aModel.LivingSpace, aModel.ExpectedAdultSize, aModel.AvailabilityStatus,
		aModel.Location, pq.Array(aModel.Images))
	if e != nil {
		log.Printf("UpdateAnimal: %v", e)
		err = models.ErrServerError
	}
	return
}

func (a *AnimalRepo) DeleteAnimal(id string) (err error) {
	_, e := a.db.Exec("DELETE FROM Animals WHERE Id = $1", id)
	if e != nil {
		log.Printf("DeleteAnimal: %v", e)
		err = models.ErrServerError
	}
	return
}
