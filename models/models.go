package models

import (
	"database/sql"
	"errors"
	"time"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnautorized = errors.New("unautorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CartRequest is the body of cart mutations. Identity key is (Id, ItemType).
type CartRequest struct {
	Id       string  `json:"id" validate:"required"`
	ItemType string  `json:"itemType" validate:"required,oneof=animal product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price" validate:"gte=0"`
	Qty      int     `json:"qty" validate:"gte=0"`
}

// CheckoutRequest carries the contact info collected in the checkout step.
type CheckoutRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type OrderItemRequest struct {
	ItemType string  `json:"itemType" validate:"required,oneof=animal product"`
	ItemId   string  `json:"itemId" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Qty      int     `json:"qty" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	CustomerName     string             `json:"customerName" validate:"required,min=2"`
	CustomerWhatsApp string             `json:"customerWhatsApp" validate:"required,min=5"`
	Currency         string             `json:"currency" validate:"omitempty,len=3"`
	Items            []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// AnimalForm mirrors the admin create/edit multipart form for animals.
type AnimalForm struct {
	CategoryId         string  `validate:"omitempty,uuid4"`
	Name               string  `validate:"required,min=2,max=60"`
	Species            string  `validate:"required,min=2,max=40"`
	Breed              string  `validate:"max=60"`
	AgeWeeks           int     `validate:"gte=0"`
	Sex                string  `validate:"oneof=male female unknown"`
	Price              float64 `validate:"gt=0"`
	QuantityAvailable  int     `validate:"gte=0"`
	Purpose            []string
	Temperament        string `validate:"max=120"`
	ExperienceLevel    string `validate:"oneof=beginner intermediate expert"`
	LivingSpace        string `validate:"oneof=apartment house farm"`
	ExpectedAdultSize  string `validate:"oneof=small medium large giant"`
	AvailabilityStatus string `validate:"oneof=available reserved sold"`
	Location           string `validate:"max=120"`
}

type Specs struct {
	Weight         string `json:"weight"`
	ProteinPercent string `json:"proteinPercent"`
	FatPercent     string `json:"fatPercent"`
	FiberPercent   string `json:"fiberPercent"`
	Ingredients    string `json:"ingredients"`
}

// ProductForm mirrors the admin create/edit multipart form for products.
type ProductForm struct {
	CategoryId          string  `validate:"omitempty,uuid4"`
	Name                string  `validate:"required,min=2,max=60"`
	Brand               string  `validate:"max=60"`
	Price               float64 `validate:"gt=0"`
	Stock               int     `validate:"gte=0"`
	AvailabilityStatus  string  `validate:"oneof=in_stock out_of_stock preorder"`
	SpeciesSuitability  []string
	AgeSuitability      []string
	Purpose             []string
	FeedingInstructions string
	NutritionHighlights string
	VetApproved         bool
	Specs               Specs
}

type Animal_db struct {
	Id                 string
	CategoryId         sql.NullString
	Name               string
	Species            string
	Breed              string
	AgeWeeks           int
	Sex                string
	Price              float64
	QuantityAvailable  int
	Purpose            []string
	Temperament        string
	ExperienceLevel    string
	LivingSpace        string
	ExpectedAdultSize  string
	AvailabilityStatus string
	Location           string
	Images             []string
}

type Product_db struct {
	Id                  string
	CategoryId          sql.NullString
	Name                string
	Brand               string
	Price               float64
	Stock               int
	AvailabilityStatus  string
	SpeciesSuitability  []string
	AgeSuitability      []string
	Purpose             []string
	FeedingInstructions string
	NutritionHighlights string
	VetApproved         bool
	Specs               Specs
	Images              []string
}

type Category_db struct {
	Id   string
	Name string
	Slug string
	Type string
}

type Order_db struct {
	Id               string
	CustomerName     string
	CustomerWhatsApp string
	Currency         string
	Status           string
	Subtotal         float64
	Date             time.Time
}

type OrderItem_db struct {
	OrderId  string
	ItemType string
	ItemId   string
	Name     string
	Price    float64
	Qty      int
}

type Admin_db struct {
	Id       string
	Email    string
	Password string
	Name     string
}
