package services

import (
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"okpups/entities"
	"okpups/models"
	"okpups/repository"
)

// memCartRepo is the in-memory stand-in for the redis cart store.
type memCartRepo struct {
	mu     sync.Mutex
	carts  map[string]entities.Cart
	states map[string]string
	setErr error
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{
		carts:  map[string]entities.Cart{},
		states: map[string]string{},
	}
}

func (m *memCartRepo) SetCart(cartSessionId string, cart entities.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.carts[cartSessionId] = cart
	return nil
}

func (m *memCartRepo) GetCart(cartSessionId string) entities.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carts[cartSessionId]
}

func (m *memCartRepo) SetFlowState(cartSessionId string, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[cartSessionId] = state
	return nil
}

func (m *memCartRepo) GetFlowState(cartSessionId string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[cartSessionId]; ok {
		return s
	}
	return repository.FlowStateCart
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    []models.Order_db
	items     map[string][]models.OrderItem_db
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{items: map[string][]models.OrderItem_db{}}
}

func (f *fakeOrderRepo) CreateOrder(oModel models.Order_db, items []models.OrderItem_db) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.orders = append(f.orders, oModel)
	f.items[oModel.Id] = items
	return nil
}

func (f *fakeOrderRepo) GetOrderById(id string) (order entities.Order, exists bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.Id == id {
			order = entities.Order{
				Id:               o.Id,
				CustomerName:     o.CustomerName,
				CustomerWhatsApp: o.CustomerWhatsApp,
				Currency:         o.Currency,
				Status:           o.Status,
				Subtotal:         o.Subtotal,
				Date:             o.Date,
			}
			for _, it := range f.items[id] {
				order.Items = append(order.Items, entities.OrderItem{
					ItemType: it.ItemType,
					ItemId:   it.ItemId,
					Name:     it.Name,
					Price:    it.Price,
					Qty:      it.Qty,
				})
			}
			exists = true
			return
		}
	}
	return
}

func (f *fakeOrderRepo) ListOrders() ([]entities.Order, error) {
	f.mu.Lock()
	ids := make([]string, 0, len(f.orders))
	for _, o := range f.orders {
		ids = append(ids, o.Id)
	}
	f.mu.Unlock()
	var out []entities.Order
	for _, id := range ids {
		o, _, _ := f.GetOrderById(id)
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) SetOrderStatus(id string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].Id == id {
			f.orders[i].Status = status
			return nil
		}
	}
	return models.ErrNotFoundError
}

func (f *fakeOrderRepo) CountItemOrders(itemId string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for id := range f.items {
		for _, it := range f.items[id] {
			if it.ItemId == itemId {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) TopProductsByOrders(limit int) ([]entities.TopEntry, error) {
	return nil, nil
}

type fakeAnimalRepo struct {
	repository.AnimalRepository
	mu      sync.Mutex
	animals map[string]models.Animal_db
	terms   []string
	results []entities.AnimalPreview
	err     error
	block   chan struct{}
}

func newFakeAnimalRepo() *fakeAnimalRepo {
	return &fakeAnimalRepo{animals: map[string]models.Animal_db{}}
}

func (f *fakeAnimalRepo) GetAnimalById(id string) (models.Animal_db, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.animals[id]
	return a, ok, nil
}

func (f *fakeAnimalRepo) ListAllAnimals() ([]models.Animal_db, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Animal_db
	for _, a := range f.animals {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAnimalRepo) CreateAnimal(aModel models.Animal_db) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.animals[aModel.Id] = aModel
	return nil
}

func (f *fakeAnimalRepo) UpdateAnimal(aModel models.Animal_db) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.animals[aModel.Id] = aModel
	return nil
}

func (f *fakeAnimalRepo) DeleteAnimal(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.animals, id)
	return nil
}

func (f *fakeAnimalRepo) SearchAnimals(q string, limit int) ([]entities.AnimalPreview, error) {
	f.mu.Lock()
	f.terms = append(f.terms, q)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	out := f.results
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAnimalRepo) searchTerms() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.terms))
	copy(out, f.terms)
	return out
}

type fakeProductRepo struct {
	repository.ProductRepository
	mu      sync.Mutex
	terms   []string
	results []entities.ProductPreview
	byTerm  map[string][]entities.ProductPreview
	err     error
}

func (f *fakeProductRepo) SearchProducts(q string, limit int) ([]entities.ProductPreview, error) {
	f.mu.Lock()
	f.terms = append(f.terms, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := f.results
	if f.byTerm != nil {
		out = f.byTerm[q]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProductRepo) searchTerms() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.terms))
	copy(out, f.terms)
	return out
}

type fakeLikeRepo struct {
	likes map[string]map[string]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[string]map[string]bool{}}
}

func (f *fakeLikeRepo) AddLike(animalId string, clientId string) (bool, error) {
	if f.likes[animalId] == nil {
		f.likes[animalId] = map[string]bool{}
	}
	if f.likes[animalId][clientId] {
		return true, nil
	}
	f.likes[animalId][clientId] = true
	return false, nil
}

func (f *fakeLikeRepo) LikesCount(animalId string) (int, error) {
	return len(f.likes[animalId]), nil
}

// fakeImageRepo mints a URL per saved file and records removals.
type fakeImageRepo struct {
	n       int
	saved   []string
	removed []string
}

func (f *fakeImageRepo) SaveImages(files []*multipart.FileHeader) ([]string, error) {
	var urls []string
	for range files {
		f.n++
		urls = append(urls, fmt.Sprintf("/uploads/img%d.jpg", f.n))
	}
	f.saved = append(f.saved, urls...)
	return urls, nil
}

func (f *fakeImageRepo) RemoveImages(urls []string) {
	f.removed = append(f.removed, urls...)
}

type fakeSessionRepo struct {
	sessions  map[string]string
	refreshed []string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]string{}}
}

func (f *fakeSessionRepo) CreateSession(adminId string) (string, error) {
	id := fmt.Sprintf("sess-%d", len(f.sessions)+1)
	f.sessions[id] = adminId
	return id, nil
}

func (f *fakeSessionRepo) CheckSession(sessionId string) (bool, error) {
	_, ok := f.sessions[sessionId]
	return ok, nil
}

func (f *fakeSessionRepo) DeleteSession(sessionId string) error {
	delete(f.sessions, sessionId)
	return nil
}

func (f *fakeSessionRepo) RefreshSession(sessionId string, expirationTime time.Duration) error {
	f.refreshed = append(f.refreshed, sessionId)
	return nil
}

func (f *fakeSessionRepo) GetSessionAdmin(sessionId string) (string, bool, error) {
	id, ok := f.sessions[sessionId]
	return id, ok, nil
}

type fakeAdminRepo struct {
	admins map[string]models.Admin_db
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]models.Admin_db{}}
}

func (f *fakeAdminRepo) GetAdminById(id string) (models.Admin_db, bool, error) {
	for _, a := range f.admins {
		if a.Id == id {
			return a, true, nil
		}
	}
	return models.Admin_db{}, false, nil
}

func (f *fakeAdminRepo) GetAdminByEmail(email string) (models.Admin_db, bool, error) {
	a, ok := f.admins[email]
	return a, ok, nil
}

func (f *fakeAdminRepo) AddAdmin(aModel models.Admin_db) error {
	f.admins[aModel.Email] = aModel
	return nil
}

func (f *fakeAdminRepo) EncryptPassword(password string) (string, error) {
	return "hash:" + password, nil
}

func (f *fakeAdminRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	return hashedPassword == "hash:"+sentPassword
}
