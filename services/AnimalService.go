package services

import (
	"database/sql"
	"fmt"
	"log"
	"mime/multipart"
	"sort"

	"okpups/entities"
	"okpups/models"
	"okpups/repository"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxListingImages = 6

type AnimalService struct {
	ar repository.AnimalRepository
	lr repository.LikeRepository
	or repository.OrderRepository
	ir repository.ImageRepository
	v  *validatorv10.Validate
}

func NewAnimalService(animalRepo repository.AnimalRepository, likeRepo repository.LikeRepository, orderRepo repository.OrderRepository, imageRepo repository.ImageRepository, v *validatorv10.Validate) AnimalService {
	return AnimalService{
		ar: animalRepo,
		lr: likeRepo,
		or: orderRepo,
		ir: imageRepo,
		v:  v,
	}
}

func (as *AnimalService) GetAnimalById(id string) (animal entities.Animal, err error) {
	aModel, exists, err := as.ar.GetAnimalById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	animal = animalEntity(aModel)
	return
}

func (as *AnimalService) ListAnimals(q string, categorySlug string) (animals []entities.AnimalPreview, err error) {
	animals, err = as.ar.ListAnimals(q, categorySlug)
	return
}

func (as *AnimalService) AdminList() (animals []entities.Animal, err error) {
	list, err := as.ar.ListAllAnimals()
	if err != nil {
		return
	}
	for _, aModel := range list {
		animals = append(animals, animalEntity(aModel))
	}
	return
}

func (as *AnimalService) Stats(id string) (stats entities.AnimalStats, err error) {
	_, exists, err := as.ar.GetAnimalById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	stats.LikesCount, err = as.lr.LikesCount(id)
	if err != nil {
		return
	}
	stats.OrdersCount, err = as.or.CountItemOrders(id)
	return
}

// Like records one like per client id. A repeat from the same client is
// reported through alreadyLiked and does not change the count.
func (as *AnimalService) Like(id string, clientId string) (already bool, stats entities.AnimalStats, err error) {
	_, exists, err := as.ar.GetAnimalById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	already, err = as.lr.AddLike(id, clientId)
	if err != nil {
		return
	}
	stats.LikesCount, err = as.lr.LikesCount(id)
	if err != nil {
		return
	}
	stats.OrdersCount, err = as.or.CountItemOrders(id)
	return
}

// TopByLikes ranks animals by their like-set size for the dashboard.
func (as *AnimalService) TopByLikes(limit int) (top []entities.TopEntry, err error) {
	list, err := as.ar.ListAllAnimals()
	if err != nil {
		return
	}
	for _, aModel := range list {
		var n int
		n, err = as.lr.LikesCount(aModel.Id)
		if err != nil {
			return
		}
		top = append(top, entities.TopEntry{Id: aModel.Id, Name: aModel.Name, Count: n})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return
}

func (as *AnimalService) CreateAnimal(form models.AnimalForm, files []*multipart.FileHeader) (animal entities.Animal, err error) {
	if err = as.v.Struct(form); err != nil {
		log.Printf("CreateAnimal: %v", err)
		err = fmt.Errorf("%w: %v", models.ErrBadRequest, err)
		return
	}
	if len(files) > maxListingImages {
		err = fmt.Errorf("%w: at most %d images", models.ErrBadRequest, maxListingImages)
		return
	}
	images, err := as.ir.SaveImages(files)
	if err != nil {
		return
	}
	aModel := animalModel(uuid.NewString(), form)
	aModel.Images = images
	if err = as.ar.CreateAnimal(aModel); err != nil {
		as.ir.RemoveImages(images)
		return
	}
	animal = animalEntity(aModel)
	return
}

// UpdateAnimal replaces the form fields, drops the images listed in
// removeImages and appends the newly uploaded ones, within the image cap.
func (as *AnimalService) UpdateAnimal(id string, form models.AnimalForm, removeImages []string, files []*multipart.FileHeader) (animal entities.Animal, err error) {
	existing, exists, err := as.ar.GetAnimalById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	if err = as.v.Struct(form); err != nil {
		log.Printf("UpdateAnimal: %v", err)
		err = fmt.Errorf("%w: %v", models.ErrBadRequest, err)
		return
	}

	kept, dropped := splitImages(existing.Images, removeImages)
	if len(kept)+len(files) > maxListingImages {
		err = fmt.Errorf("%w: at most %d images", models.ErrBadRequest, maxListingImages)
		return
	}
	added, err := as.ir.SaveImages(files)
	if err != nil {
		return
	}

	aModel := animalModel(id, form)
	aModel.Images = append(kept, added...)
	if err = as.ar.UpdateAnimal(aModel); err != nil {
		as.ir.RemoveImages(added)
		return
	}
	as.ir.RemoveImages(dropped)
	animal = animalEntity(aModel)
	return
}

func (as *AnimalService) DeleteAnimal(id string) (err error) {
	existing, exists, err := as.ar.GetAnimalById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	if err = as.ar.DeleteAnimal(id); err != nil {
		return
	}
	as.ir.RemoveImages(existing.Images)
	return
}

func splitImages(existing []string, remove []string) (kept []string, dropped []string) {
	drop := make(map[string]bool, len(remove))
	for _, u := range remove {
		drop[u] = true
	}
	for _, u := range existing {
		if drop[u] {
			dropped = append(dropped, u)
		} else {
			kept = append(kept, u)
		}
	}
	return
}

func animalModel(id string, form models.AnimalForm) models.Animal_db {
	return models.Animal_db{
		Id:                 id,
		CategoryId:         sql.NullString{String: form.CategoryId, Valid: form.CategoryId != ""},
		Name:               form.Name,
		Species:            form.Species,
		Breed:              form.Breed,
		AgeWeeks:           form.AgeWeeks,
		Sex:                form.Sex,
		Price:              form.Price,
		QuantityAvailable:  form.QuantityAvailable,
		Purpose:            form.Purpose,
		Temperament:        form.Temperament,
		ExperienceLevel:    form.ExperienceLevel,
		LivingSpace:        form.LivingSpace,
		ExpectedAdultSize:  form.ExpectedAdultSize,
		AvailabilityStatus: form.AvailabilityStatus,
		Location:           form.Location,
	}
}

func animalEntity(aModel models.Animal_db) entities.Animal {
	return entities.Animal{
		Id:                 aModel.Id,
		CategoryId:         aModel.CategoryId.String,
		Name:               aModel.Name,
		Species:            aModel.Species,
		Breed:              aModel.Breed,
		AgeWeeks:           aModel.AgeWeeks,
		Sex:                aModel.Sex,
		Price:              aModel.Price,
		QuantityAvailable:  aModel.QuantityAvailable,
		Purpose:            aModel.Purpose,
		Temperament:        aModel.Temperament,
		ExperienceLevel:    aModel.ExperienceLevel,
		LivingSpace:        aModel.LivingSpace,
		ExpectedAdultSize:  aModel.ExpectedAdultSize,
		AvailabilityStatus: aModel.AvailabilityStatus,
		Location:           aModel.Location,
		Images:             aModel.Images,
	}
}
