package models

import "testing"

func validAnimalForm() AnimalForm {
	return AnimalForm{
		Name:               "Bella",
		Species:            "Dog",
		Breed:              "Labrador",
		AgeWeeks:           12,
		Sex:                "female",
		Price:              300,
		QuantityAvailable:  1,
		ExperienceLevel:    "beginner",
		LivingSpace:        "house",
		ExpectedAdultSize:  "large",
		AvailabilityStatus: "available",
	}
}

func TestAnimalFormValidation(t *testing.T) {
	v := NewValidator()

	if err := v.Struct(validAnimalForm()); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*AnimalForm)
	}{
		{"missing name", func(f *AnimalForm) { f.Name = "" }},
		{"bad sex", func(f *AnimalForm) { f.Sex = "other" }},
		{"zero price", func(f *AnimalForm) { f.Price = 0 }},
		{"bad availability", func(f *AnimalForm) { f.AvailabilityStatus = "gone" }},
		{"bad category id", func(f *AnimalForm) { f.CategoryId = "not-a-uuid" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := validAnimalForm()
			c.mutate(&f)
			if err := v.Struct(f); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestProductFormValidation(t *testing.T) {
	v := NewValidator()

	f := ProductForm{
		Name:               "Puppy Chow",
		Brand:              "Purina",
		Price:              10,
		Stock:              5,
		AvailabilityStatus: "in_stock",
	}
	if err := v.Struct(f); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	f.AvailabilityStatus = "sold"
	if err := v.Struct(f); err == nil {
		t.Error("animal availability values must not pass for products")
	}
}

func TestCartRequestValidation(t *testing.T) {
	v := NewValidator()

	ok := CartRequest{Id: "p1", ItemType: "product", Name: "Food", Price: 10, Qty: 1}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := ok
	bad.ItemType = "toy"
	if err := v.Struct(bad); err == nil {
		t.Error("unknown item type must be rejected")
	}

	bad = ok
	bad.Id = ""
	if err := v.Struct(bad); err == nil {
		t.Error("missing id must be rejected")
	}
}

func TestCreateOrderRequestValidation(t *testing.T) {
	v := NewValidator()

	ok := CreateOrderRequest{
		CustomerName:     "Jane Doe",
		CustomerWhatsApp: "2348012345678",
		Currency:         "USD",
		Items: []OrderItemRequest{
			{ItemType: "product", ItemId: "p1", Name: "Food", Price: 10, Qty: 2},
		},
	}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{"short name", func(r *CreateOrderRequest) { r.CustomerName = "J" }},
		{"short phone", func(r *CreateOrderRequest) { r.CustomerWhatsApp = "123" }},
		{"bad currency", func(r *CreateOrderRequest) { r.Currency = "DOLLARS" }},
		{"no items", func(r *CreateOrderRequest) { r.Items = nil }},
		{"zero qty item", func(r *CreateOrderRequest) { r.Items[0].Qty = 0 }},
		{"bad item type", func(r *CreateOrderRequest) { r.Items[0].ItemType = "toy" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := ok
			r.Items = append([]OrderItemRequest(nil), ok.Items...)
			c.mutate(&r)
			if err := v.Struct(r); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
