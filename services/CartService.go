package services

import (
	"log"

	"okpups/entities"
	"okpups/repository"
)

// CartService owns the session cart. Every mutation persists the whole item
// list synchronously; a failed write is logged and swallowed, so for that
// session the cart simply behaves as unpersisted.
type CartService struct {
	cr repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) CartService {
	return CartService{
		cr: cartRepo,
	}
}

// AddItem merges on the (id, itemType) identity key: an existing entry gets
// its quantity incremented, a new one is appended. Quantity defaults to 1
// and has no upper bound.
func (cs *CartService) AddItem(cartSessionId string, item entities.CartItem) {
	if item.Qty <= 0 {
		item.Qty = 1
	}
	cart := cs.cr.GetCart(cartSessionId)
	merged := false
	for i := range cart.Items {
		if cart.Items[i].Id == item.Id && cart.Items[i].ItemType == item.ItemType {
			cart.Items[i].Qty = cart.Items[i].Qty + item.Qty
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}
	cs.persist(cartSessionId, cart)
}

// RemoveItem deletes the entry matching both id and itemType; removing a
// key that is not present is a no-op.
func (cs *CartService) RemoveItem(cartSessionId string, id string, itemType string) {
	cart := cs.cr.GetCart(cartSessionId)
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.Id == id && it.ItemType == itemType {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) == len(cart.Items) {
		return
	}
	cart.Items = kept
	cs.persist(cartSessionId, cart)
}

func (cs *CartService) Clear(cartSessionId string) {
	cs.persist(cartSessionId, entities.Cart{})
}

func (cs *CartService) Cart(cartSessionId string) entities.Cart {
	return cs.cr.GetCart(cartSessionId)
}

func (cs *CartService) persist(cartSessionId string, cart entities.Cart) {
	if err := cs.cr.SetCart(cartSessionId, cart); err != nil {
		log.Printf("persist cart: %v", err)
	}
}
