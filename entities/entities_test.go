package entities

import "testing"

func TestCartSubtotalAndCount(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Id: "p1", ItemType: ItemTypeProduct, Price: 10, Qty: 2},
		{Id: "a1", ItemType: ItemTypeAnimal, Price: 300, Qty: 1},
	}}
	if got := cart.Subtotal(); got != 320 {
		t.Errorf("Subtotal() = %g, want 320", got)
	}
	if got := cart.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestPickImage(t *testing.T) {
	cases := []struct {
		name   string
		images []string
		want   string
	}{
		{"cloudinary wins", []string{"https://example.com/a.jpg", "https://res.cloudinary.com/x/b.jpg"}, "https://res.cloudinary.com/x/b.jpg"},
		{"https over relative", []string{"/uploads/a.jpg", "https://example.com/b.jpg"}, "https://example.com/b.jpg"},
		{"first as fallback", []string{"/uploads/a.jpg", "/uploads/b.jpg"}, "/uploads/a.jpg"},
		{"empty", nil, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PickImage(c.images); got != c.want {
				t.Errorf("PickImage(%v) = %q, want %q", c.images, got, c.want)
			}
		})
	}
}

func TestSuggestionDetailPath(t *testing.T) {
	p := Suggestion{Type: ItemTypeProduct, Id: "p1"}
	if got := p.DetailPath(); got != "/products/p1" {
		t.Errorf("product path = %q", got)
	}
	a := Suggestion{Type: ItemTypeAnimal, Id: "a1"}
	if got := a.DetailPath(); got != "/animals/a1" {
		t.Errorf("animal path = %q", got)
	}
}
