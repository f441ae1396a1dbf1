package services

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"okpups/entities"
	"okpups/models"
	"okpups/repository"
)

func seedCart(cr *memCartRepo, cartSessionId string, items ...entities.CartItem) {
	cr.SetCart(cartSessionId, entities.Cart{Items: items})
}

func TestBeginRequiresItems(t *testing.T) {
	cr := newMemCartRepo()
	cks := NewCheckoutService(cr, newFakeOrderRepo(), "+234 801 234 5678")

	if err := cks.Begin("s1"); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}

	seedCart(cr, "s1", entities.CartItem{Id: "p1", ItemType: entities.ItemTypeProduct, Name: "Food", Price: 10, Qty: 1})
	if err := cks.Begin("s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cks.State("s1"); got != repository.FlowStateCheckout {
		t.Errorf("expected checkout state, got %q", got)
	}
}

func TestBackAndResetReturnToCart(t *testing.T) {
	cr := newMemCartRepo()
	cks := NewCheckoutService(cr, newFakeOrderRepo(), "+2348012345678")
	seedCart(cr, "s1", entities.CartItem{Id: "p1", ItemType: entities.ItemTypeProduct, Name: "Food", Price: 10, Qty: 1})

	cks.Begin("s1")
	cks.Back("s1")
	if got := cks.State("s1"); got != repository.FlowStateCart {
		t.Errorf("after Back: expected cart state, got %q", got)
	}

	cks.Begin("s1")
	cks.Reset("s1")
	if got := cks.State("s1"); got != repository.FlowStateCart {
		t.Errorf("after Reset: expected cart state, got %q", got)
	}
	// the cart itself is untouched
	if got := len(cr.GetCart("s1").Items); got != 1 {
		t.Errorf("expected cart to keep its item, got %d", got)
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	or := newFakeOrderRepo()
	cr := newMemCartRepo()
	cks := NewCheckoutService(cr, or, "+2348012345678")

	// empty cart wins over every other problem
	if _, err := cks.Submit("s1", "", ""); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if len(or.orders) != 0 {
		t.Fatal("no order must be created for an empty cart")
	}

	seedCart(cr, "s1", entities.CartItem{Id: "p1", ItemType: entities.ItemTypeProduct, Name: "Food", Price: 10, Qty: 1})

	if _, err := cks.Submit("s1", " J ", "2348012345678"); !errors.Is(err, ErrNameTooShort) {
		t.Errorf("expected ErrNameTooShort, got %v", err)
	}
	if _, err := cks.Submit("s1", "Jane Doe", " 123 "); !errors.Is(err, ErrPhoneTooShort) {
		t.Errorf("expected ErrPhoneTooShort, got %v", err)
	}

	unconfigured := NewCheckoutService(cr, or, "")
	if _, err := unconfigured.Submit("s1", "Jane Doe", "2348012345678"); !errors.Is(err, ErrNumberConfigured) {
		t.Errorf("expected ErrNumberConfigured, got %v", err)
	}
	if len(or.orders) != 0 {
		t.Fatal("no order must be created while validation fails")
	}
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	or := newFakeOrderRepo()
	or.createErr = models.ErrServerError
	cr := newMemCartRepo()
	cks := NewCheckoutService(cr, or, "+2348012345678")
	seedCart(cr, "s1", entities.CartItem{Id: "p1", ItemType: entities.ItemTypeProduct, Name: "Food", Price: 10, Qty: 2})
	cks.Begin("s1")

	_, err := cks.Submit("s1", "Jane Doe", "2348012345678")
	if !errors.Is(err, models.ErrServerError) {
		t.Fatalf("expected server error, got %v", err)
	}
	if got := len(cr.GetCart("s1").Items); got != 1 {
		t.Errorf("cart must survive a failed submit, got %d items", got)
	}
	if got := cks.State("s1"); got != repository.FlowStateCheckout {
		t.Errorf("flow must stay at checkout, got %q", got)
	}
}

func TestSubmitSuccess(t *testing.T) {
	or := newFakeOrderRepo()
	cr := newMemCartRepo()
	cks := NewCheckoutService(cr, or, "+234 801 234 5678")
	seedCart(cr, "s1",
		entities.CartItem{Id: "p1", ItemType: entities.ItemTypeProduct, Name: "Puppy Food", Price: 10, Qty: 2},
		entities.CartItem{Id: "a1", ItemType: entities.ItemTypeAnimal, Name: "Bella", Price: 300, Qty: 1},
	)
	cks.Begin("s1")

	res, err := cks.Submit("s1", " Jane Doe ", "2348012345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(or.orders) != 1 {
		t.Fatalf("expected one order, got %d", len(or.orders))
	}
	o := or.orders[0]
	if o.Id != res.OrderId {
		t.Errorf("result order id %q != stored %q", res.OrderId, o.Id)
	}
	if o.CustomerName != "Jane Doe" {
		t.Errorf("expected trimmed name, got %q", o.CustomerName)
	}
	if o.Subtotal != 320 {
		t.Errorf("expected subtotal 320, got %g", o.Subtotal)
	}
	if o.Status != "created" || o.Currency != "USD" {
		t.Errorf("unexpected order defaults: %+v", o)
	}
	if got := len(or.items[o.Id]); got != 2 {
		t.Errorf("expected 2 order items, got %d", got)
	}

	// only now is the cart gone and the flow back at the cart step
	if got := len(cr.GetCart("s1").Items); got != 0 {
		t.Errorf("expected cleared cart, got %d items", got)
	}
	if got := cks.State("s1"); got != repository.FlowStateCart {
		t.Errorf("expected cart state, got %q", got)
	}

	if !strings.HasPrefix(res.RedirectURL, "https://wa.me/2348012345678?text=") {
		t.Errorf("unexpected redirect url %q", res.RedirectURL)
	}
	if !strings.Contains(res.RedirectURL, url.QueryEscape("my name is Jane Doe")) {
		t.Errorf("greeting missing from redirect url %q", res.RedirectURL)
	}
	if res.RedirectAfter != 1200*time.Millisecond {
		t.Errorf("expected 1200ms redirect delay, got %v", res.RedirectAfter)
	}
}
