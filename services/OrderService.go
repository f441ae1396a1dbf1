package services

import (
	"fmt"
	"log"
	"time"

	"okpups/entities"
	"okpups/models"
	"okpups/repository"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrderService struct {
	or repository.OrderRepository
	v  *validatorv10.Validate
}

func NewOrderService(orderRepo repository.OrderRepository, v *validatorv10.Validate) OrderService {
	return OrderService{
		or: orderRepo,
		v:  v,
	}
}

// CreateOrder accepts the storefront's order payload. The order is owned
// by the store once created; only its status may change afterwards.
func (ors *OrderService) CreateOrder(req models.CreateOrderRequest) (order entities.Order, err error) {
	if err = ors.v.Struct(req); err != nil {
		log.Printf("CreateOrder: %v", err)
		err = fmt.Errorf("%w: %v", models.ErrBadRequest, err)
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	oModel := models.Order_db{
		Id:               uuid.NewString(),
		CustomerName:     req.CustomerName,
		CustomerWhatsApp: req.CustomerWhatsApp,
		Currency:         currency,
		Status:           "created",
		Date:             time.Now().UTC(),
	}
	items := make([]models.OrderItem_db, 0, len(req.Items))
	for _, it := range req.Items {
		oModel.Subtotal = oModel.Subtotal + it.Price*float64(it.Qty)
		items = append(items, models.OrderItem_db{
			OrderId:  oModel.Id,
			ItemType: it.ItemType,
			ItemId:   it.ItemId,
			Name:     it.Name,
			Price:    it.Price,
			Qty:      it.Qty,
		})
	}
	if err = ors.or.CreateOrder(oModel, items); err != nil {
		return
	}
	order, _, err = ors.or.GetOrderById(oModel.Id)
	return
}

func (ors *OrderService) GetOrderById(id string) (order entities.Order, err error) {
	order, exists, err := ors.or.GetOrderById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
	}
	return
}

func (ors *OrderService) ListOrders() (orders []entities.Order, err error) {
	orders, err = ors.or.ListOrders()
	return
}

func (ors *OrderService) SetOrderStatus(id string, status string) (err error) {
	err = ors.or.SetOrderStatus(id, status)
	return
}

// ConfirmationLink builds the admin-side WhatsApp deep link asking the
// customer to confirm their order. number overrides the number stored on
// the order when non-empty.
func (ors *OrderService) ConfirmationLink(id string, number string) (link string, message string, err error) {
	order, exists, err := ors.or.GetOrderById(id)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	if number == "" {
		number = order.CustomerWhatsApp
	}
	digits := CleanWhatsAppNumber(number)
	if !IsValidWhatsAppNumber(digits) {
		err = fmt.Errorf("%w: please enter a valid international phone number", models.ErrBadRequest)
		return
	}
	message = OrderConfirmationMessage(order, digits)
	link = WhatsAppLink(digits, message)
	return
}
