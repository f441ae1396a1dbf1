package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"okpups/entities"
	"okpups/models"
	"okpups/repository"

	"github.com/google/uuid"
)

// Inline checkout errors, in the order Submit checks them.
var (
	ErrCartEmpty        = fmt.Errorf("%w: your cart is empty", models.ErrBadRequest)
	ErrNameTooShort     = fmt.Errorf("%w: please enter your name", models.ErrBadRequest)
	ErrPhoneTooShort    = fmt.Errorf("%w: please enter your whatsapp number", models.ErrBadRequest)
	ErrNumberConfigured = fmt.Errorf("%w: whatsapp payment number is not configured", models.ErrServerError)
)

// Pause before the storefront follows the deep link, long enough for the
// thank-you toast to be seen.
const redirectDelay = 1200 * time.Millisecond

type CheckoutResult struct {
	OrderId       string
	RedirectURL   string
	RedirectAfter time.Duration
}

// CheckoutService drives the cart → checkout → terminal flow of a cart
// session. The current step lives next to the cart blob so the flow
// survives page loads; the terminal step clears the cart and hands the
// caller a WhatsApp redirect.
type CheckoutService struct {
	cr       repository.CartRepository
	or       repository.OrderRepository
	waNumber string
}

func NewCheckoutService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository, waNumber string) CheckoutService {
	return CheckoutService{
		cr:       cartRepo,
		or:       orderRepo,
		waNumber: CleanWhatsAppNumber(waNumber),
	}
}

func (cks *CheckoutService) State(cartSessionId string) string {
	return cks.cr.GetFlowState(cartSessionId)
}

// Begin moves the flow to the checkout step. An empty cart blocks the
// transition.
func (cks *CheckoutService) Begin(cartSessionId string) (err error) {
	cart := cks.cr.GetCart(cartSessionId)
	if len(cart.Items) == 0 {
		err = ErrCartEmpty
		return
	}
	err = cks.cr.SetFlowState(cartSessionId, repository.FlowStateCheckout)
	return
}

// Back returns to the cart step. Nothing is lost; contact info is the
// caller's local state, not ours.
func (cks *CheckoutService) Back(cartSessionId string) (err error) {
	err = cks.cr.SetFlowState(cartSessionId, repository.FlowStateCart)
	return
}

// Reset is the drawer-close transition: back to the cart step, inline
// errors forgotten.
func (cks *CheckoutService) Reset(cartSessionId string) (err error) {
	err = cks.cr.SetFlowState(cartSessionId, repository.FlowStateCart)
	return
}

// Submit validates in a fixed order (cart, name, phone, configured
// destination number), then creates the order. Only a successful creation
// clears the cart and produces the redirect; any failure leaves the cart
// and the checkout step untouched so the user can correct and resubmit.
func (cks *CheckoutService) Submit(cartSessionId string, name string, phone string) (res CheckoutResult, err error) {
	cart := cks.cr.GetCart(cartSessionId)
	if len(cart.Items) == 0 {
		err = ErrCartEmpty
		return
	}
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		err = ErrNameTooShort
		return
	}
	phone = strings.TrimSpace(phone)
	if len([]rune(phone)) < 5 {
		err = ErrPhoneTooShort
		return
	}
	if cks.waNumber == "" {
		err = ErrNumberConfigured
		return
	}

	oModel := models.Order_db{
		Id:               uuid.NewString(),
		CustomerName:     name,
		CustomerWhatsApp: phone,
		Currency:         "USD",
		Status:           "created",
		Subtotal:         cart.Subtotal(),
		Date:             time.Now().UTC(),
	}
	items := make([]models.OrderItem_db, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, models.OrderItem_db{
			OrderId:  oModel.Id,
			ItemType: it.ItemType,
			ItemId:   it.Id,
			Name:     it.Name,
			Price:    it.Price,
			Qty:      it.Qty,
		})
	}
	err = cks.or.CreateOrder(oModel, items)
	if err != nil {
		return
	}

	if e := cks.cr.SetCart(cartSessionId, entities.Cart{}); e != nil {
		log.Printf("Submit: clear cart: %v", e)
	}
	if e := cks.cr.SetFlowState(cartSessionId, repository.FlowStateCart); e != nil {
		log.Printf("Submit: reset flow: %v", e)
	}
	res = CheckoutResult{
		OrderId:       oModel.Id,
		RedirectURL:   WhatsAppLink(cks.waNumber, CustomerGreeting(name)),
		RedirectAfter: redirectDelay,
	}
	return
}
