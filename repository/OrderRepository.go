package repository

import (
	"database/sql"
	"errors"
	"log"

	"okpups/entities"
	"okpups/models"
)

type OrderRepository interface {
	CreateOrder(oModel models.Order_db, items []models.OrderItem_db) (err error)
	GetOrderById(id string) (order entities.Order, exists bool, err error)
	ListOrders() (orders []entities.Order, err error)
	SetOrderStatus(id string, status string) (err error)
	CountItemOrders(itemId string) (count int, err error)
	TopProductsByOrders(limit int) (top []entities.TopEntry, err error)
}

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepository(conn *sql.DB) (OrderRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &OrderRepo{
		db: conn,
	}, nil
}

// CreateOrder writes the order and its line items in one transaction so a
// half-written order never becomes visible to the admin list.
func (o *OrderRepo) CreateOrder(oModel models.Order_db, items []models.OrderItem_db) (err error) {
	tx, e := o.db.Begin()
	if e != nil {
		log.Printf("CreateOrder[1]: %v", e)
		err = models.ErrServerError
		return
	}
	_, e = tx.Exec(
		"INSERT INTO Orders (Id, CustomerName, CustomerWhatsApp, Currency, Status, Subtotal, Date) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		oModel.Id, oModel.CustomerName, oModel.CustomerWhatsApp, oModel.Currency,
		oModel.Status, oModel.Subtotal, oModel.Date)
	if e != nil {
		tx.Rollback()
		log.Printf("CreateOrder[2]: %v", e)
		err = models.ErrServerError
		return
	}
	for _, it := range items {
		_, e = tx.Exec(
			"INSERT INTO OrderItems (OrderId, ItemType, ItemId, Name, Price, Qty) VALUES ($1, $2, $3, $4, $5, $6)",
			oModel.Id, it.ItemType, it.ItemId, it.Name, it.Price, it.Qty)
		if e != nil {
			tx.Rollback()
			log.Printf("CreateOrder[3]: %v", e)
			err = models.ErrServerError
			return
		}
	}
	if e = tx.Commit(); e != nil {
		log.Printf("CreateOrder[4]: %v", e)
		err = models.ErrServerError
	}
	return
}

func (o *OrderRepo) GetOrderById(id string) (order entities.Order, exists bool, err error) {
	row := o.db.QueryRow("SELECT Id, CustomerName, CustomerWhatsApp, Currency, Status, Subtotal, Date FROM Orders WHERE Id = $1", id)
	err = row.Scan(&order.Id, &order.CustomerName, &order.CustomerWhatsApp,
		&order.Currency, &order.Status, &order.Subtotal, &order.Date)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetOrderById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	order.Items, err = o.orderItems(id)
	if err != nil {
		return
	}
	exists = true
	return
}

func (o *OrderRepo) orderItems(orderId string) (items []entities.OrderItem, err error) {
	rows, e := o.db.Query("SELECT ItemType, ItemId, Name, Price, Qty FROM OrderItems WHERE OrderId = $1", orderId)
	if e != nil {
		log.Printf("orderItems[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		it := entities.OrderItem{}
		err = rows.Scan(&it.ItemType, &it.ItemId, &it.Name, &it.Price, &it.Qty)
		if err != nil {
			log.Printf("orderItems[2]: %v", err)
			err = models.ErrServerError
			return
		}
		items = append(items, it)
	}
	return
}

func (o *OrderRepo) ListOrders() (orders []entities.Order, err error) {
	rows, e := o.db.Query("SELECT Id, CustomerName, CustomerWhatsApp, Currency, Status, Subtotal, Date FROM Orders ORDER BY Date DESC")
	if e != nil {
		log.Printf("ListOrders[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		order := entities.Order{}
		err = rows.Scan(&order.Id, &order.CustomerName, &order.CustomerWhatsApp,
			&order.Currency, &order.Status, &order.Subtotal, &order.Date)
		if err != nil {
			log.Printf("ListOrders[2]: %v", err)
			err = models.ErrServerError
			return
		}
		orders = append(orders, order)
	}
	for i := range orders {
		orders[i].Items, err = o.orderItems(orders[i].Id)
		if err != nil {
			return
		}
	}
	return
}

func (o *OrderRepo) SetOrderStatus(id string, status string) (err error) {
	res, e := o.db.Exec("UPDATE Orders SET Status = $1 WHERE Id = $2", status, id)
	if e != nil {
		log.Printf("SetOrderStatus: %v", e)
		err = models.ErrServerError
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = models.ErrNotFoundError
	}
	return
}

func (o *OrderRepo) CountItemOrders(itemId string) (count int, err error) {
	row := o.db.QueryRow("SELECT COUNT(DISTINCT OrderId) FROM OrderItems WHERE ItemId = $1", itemId)
	err = row.Scan(&count)
	if err != nil {
		log.Printf("CountItemOrders: %v", err)
		err = models.ErrServerError
	}
	return
}

func (o *OrderRepo) TopProductsByOrders(limit int) (top []entities.TopEntry, err error) {
	rows, e := o.db.Query(
		"SELECT ItemId, MIN(Name), COUNT(DISTINCT OrderId) AS cnt FROM OrderItems WHERE ItemType = 'product' GROUP BY ItemId ORDER BY cnt DESC LIMIT $1",
		limit)
	if e != nil {
		log.Printf("TopProductsByOrders[1]: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		entry := entities.TopEntry{}
		err = rows.Scan(&entry.Id, &entry.Name, &entry.Count)
		if err != nil {
			log.Printf("TopProductsByOrders[2]: %v", err)
			err = models.ErrServerError
			return
		}
		top = append(top, entry)
	}
	return
}
