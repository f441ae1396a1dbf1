package entities

import (
	"strings"
	"time"
)

const (
	ItemTypeAnimal  = "animal"
	ItemTypeProduct = "product"
)

// CartItem is one line of a cart. (Id, ItemType) is the identity key:
// adding the same key again merges quantities instead of appending.
type CartItem struct {
	Id       string  `json:"id"`
	ItemType string  `json:"itemType"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
}

// Cart keeps items in insertion order. The order is for display only.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c Cart) Subtotal() (sum float64) {
	for _, it := range c.Items {
		sum = sum + it.Price*float64(it.Qty)
	}
	return
}

func (c Cart) Count() (n int) {
	for _, it := range c.Items {
		n = n + it.Qty
	}
	return
}

type CartResponse struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

type Animal struct {
	Id                 string   `json:"id"`
	CategoryId         string   `json:"categoryId,omitempty"`
	Name               string   `json:"name"`
	Species            string   `json:"species"`
	Breed              string   `json:"breed"`
	AgeWeeks           int      `json:"ageWeeks"`
	Sex                string   `json:"sex"`
	Price              float64  `json:"price"`
	QuantityAvailable  int      `json:"quantityAvailable"`
	Purpose            []string `json:"purpose"`
	Temperament        string   `json:"temperament"`
	ExperienceLevel    string   `json:"experienceLevel"`
	LivingSpace        string   `json:"livingSpace"`
	ExpectedAdultSize  string   `json:"expectedAdultSize"`
	AvailabilityStatus string   `json:"availabilityStatus"`
	Location           string   `json:"location"`
	Images             []string `json:"images"`
}

type AnimalPreview struct {
	Id                 string  `json:"id"`
	Name               string  `json:"name"`
	Species            string  `json:"species"`
	Breed              string  `json:"breed"`
	Price              float64 `json:"price"`
	AvailabilityStatus string  `json:"availabilityStatus"`
	Image              string  `json:"image,omitempty"`
}

type ProductSpecs struct {
	Weight         string `json:"weight"`
	ProteinPercent string `json:"proteinPercent"`
	FatPercent     string `json:"fatPercent"`
	FiberPercent   string `json:"fiberPercent"`
	Ingredients    string `json:"ingredients"`
}

type Product struct {
	Id                  string       `json:"id"`
	CategoryId          string       `json:"categoryId,omitempty"`
	Name                string       `json:"name"`
	Brand               string       `json:"brand"`
	Price               float64      `json:"price"`
	Stock               int          `json:"stock"`
	AvailabilityStatus  string       `json:"availabilityStatus"`
	SpeciesSuitability  []string     `json:"speciesSuitability"`
	AgeSuitability      []string     `json:"ageSuitability"`
	Purpose             []string     `json:"purpose"`
	FeedingInstructions string       `json:"feedingInstructions"`
	NutritionHighlights string       `json:"nutritionHighlights"`
	VetApproved         bool         `json:"vetApproved"`
	Specs               ProductSpecs `json:"specs"`
	Images              []string     `json:"images"`
}

type ProductPreview struct {
	Id                 string  `json:"id"`
	Name               string  `json:"name"`
	Brand              string  `json:"brand"`
	Price              float64 `json:"price"`
	AvailabilityStatus string  `json:"availabilityStatus"`
	Image              string  `json:"image,omitempty"`
}

type Category struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Type string `json:"type"`
}

type OrderItem struct {
	ItemType string  `json:"itemType"`
	ItemId   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
}

type Order struct {
	Id               string      `json:"id"`
	CustomerName     string      `json:"customerName"`
	CustomerWhatsApp string      `json:"customerWhatsApp"`
	Currency         string      `json:"currency"`
	Status           string      `json:"status"`
	Subtotal         float64     `json:"subtotal"`
	Date             time.Time   `json:"date"`
	Items            []OrderItem `json:"items"`
}

type AnimalStats struct {
	LikesCount  int `json:"likesCount"`
	OrdersCount int `json:"ordersCount"`
}

// Suggestion is one row of the nav search dropdown.
type Suggestion struct {
	Type  string  `json:"type"`
	Id    string  `json:"id"`
	Name  string  `json:"name"`
	Extra string  `json:"extra,omitempty"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// DetailPath is the storefront route a selected suggestion navigates to.
func (s Suggestion) DetailPath() string {
	if s.Type == ItemTypeProduct {
		return "/products/" + s.Id
	}
	return "/animals/" + s.Id
}

type TopEntry struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Admin struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PickImage chooses the listing image the way the storefront does:
// CDN-hosted first, then any absolute https url, then whatever is first.
func PickImage(images []string) string {
	for _, u := range images {
		if strings.Contains(u, "cloudinary") {
			return u
		}
	}
	for _, u := range images {
		if strings.HasPrefix(u, "https://") {
			return u
		}
	}
	if len(images) > 0 {
		return images[0]
	}
	return ""
}
