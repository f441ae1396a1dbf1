package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"okpups/entities"
	"okpups/models"
	"okpups/repository"
	"okpups/services"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	as  services.AnimalService
	ps  services.ProductService
	cs  services.CartService
	cks services.CheckoutService
	cas services.CategoryService
	ors services.OrderService
	ads services.AdminService
	ss  *services.SuggestService
	v   *validatorv10.Validate
}

type HandlerParams struct {
	AnmService  services.AnimalService
	PrdService  services.ProductService
	CrtService  services.CartService
	ChkService  services.CheckoutService
	CatsService services.CategoryService
	OrdService  services.OrderService
	AdmService  services.AdminService
	SgstService *services.SuggestService
	Validator   *validatorv10.Validate
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		as:  params.AnmService,
		ps:  params.PrdService,
		cs:  params.CrtService,
		cks: params.ChkService,
		cas: params.CatsService,
		ors: params.OrdService,
		ads: params.AdmService,
		ss:  params.SgstService,
		v:   params.Validator,
	}
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OKPUPS pet store"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonData)
}

// animals

func (h *Handler) GetAnimals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	animals, err := h.as.ListAnimals(q, category)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if animals == nil {
		animals = []entities.AnimalPreview{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"animals": animals})
}

func (h *Handler) GetAnimal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	animal, err := h.as.GetAnimalById(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"animal": animal})
}

func (h *Handler) GetAnimalStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stats, err := h.as.Stats(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

// LikeAnimal records an anonymous like. The client id comes from the
// X-Client-Id header, falling back to (or minting) a cid cookie.
func (h *Handler) LikeAnimal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cid := r.Header.Get("X-Client-Id")
	if cid == "" {
		if c, err := r.Cookie("cid"); err == nil {
			cid = c.Value
		}
	}
	if cid == "" {
		cid = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:    "cid",
			Value:   cid,
			Path:    "/",
			Expires: time.Now().Add(365 * 24 * time.Hour),
		})
	}
	already, stats, err := h.as.Like(vars["id"], cid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alreadyLiked": already, "stats": stats})
}

// products

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	prods, err := h.ps.ListProducts(q, category)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if prods == nil {
		prods = []entities.ProductPreview{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": prods})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	product, err := h.ps.GetProductById(vars["id"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

// categories

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.cas.ListCategories(r.URL.Query().Get("type"))
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if cats == nil {
		cats = []entities.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// search

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := []entities.Suggestion{}
	if q != "" {
		var err error
		results, err = h.ss.Search(r.Context(), q)
		if err != nil {
			WriteErrorResponse(w, err)
			return
		}
		if results == nil {
			results = []entities.Suggestion{}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// cart

func (h *Handler) cartSessionId(w http.ResponseWriter, r *http.Request, create bool) (cartSessionId string) {
	c, err := r.Cookie("cartSessionId")
	if err == nil {
		cartSessionId = c.Value
		return
	}
	if !errors.Is(err, http.ErrNoCookie) {
		log.Printf("Cookie err:%v", err)
	}
	if !create {
		return
	}
	cartSessionId = uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:    "cartSessionId",
		Value:   cartSessionId,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
	})
	return
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartSessionId := h.cartSessionId(w, r, false)
	cart := entities.Cart{}
	if cartSessionId != "" {
		cart = h.cs.Cart(cartSessionId)
	}
	if cart.Items == nil {
		cart.Items = []entities.CartItem{}
	}
	writeJSON(w, http.StatusOK, entities.CartResponse{Items: cart.Items, Subtotal: cart.Subtotal()})
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err = h.v.Struct(req); err != nil {
		log.Printf("AddToCart: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cartSessionId := h.cartSessionId(w, r, true)
	h.cs.AddItem(cartSessionId, entities.CartItem{
		Id:       req.Id,
		ItemType: req.ItemType,
		Name:     req.Name,
		Price:    req.Price,
		Qty:      req.Qty,
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cartSessionId := h.cartSessionId(w, r, false)
	if cartSessionId == "" {
		return
	}
	h.cs.RemoveItem(cartSessionId, req.Id, req.ItemType)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartSessionId := h.cartSessionId(w, r, false)
	if cartSessionId != "" {
		h.cs.Clear(cartSessionId)
	}
	w.WriteHeader(http.StatusOK)
}

// checkout

func (h *Handler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	cartSessionId := h.cartSessionId(w, r, false)
	if cartSessionId == "" {
		WriteErrorResponse(w, services.ErrCartEmpty)
		return
	}
	if err := h.cks.Begin(cartSessionId); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": h.cks.State(cartSessionId)})
}

func (h *Handler) BackToCart(w http.ResponseWriter, r *http.Request) {
	cartSessionId := h.cartSessionId(w, r, false)
	if cartSessionId != "" {
		if err := h.cks.Back(cartSessionId); err != nil {
			WriteErrorResponse(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": repository.FlowStateCart})
}

// CloseCheckout is the drawer-close reset: flow back to the cart step,
// inline errors gone.
func (h *Handler) CloseCheckout(w http.ResponseWriter, r *http.Request) {
	cartSessionId := h.cartSessionId(w, r, false)
	if cartSessionId != "" {
		if err := h.cks.Reset(cartSessionId); err != nil {
			WriteErrorResponse(w, err)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) BuyCart(w http.ResponseWriter, r *http.Request) {
	req := models.CheckoutRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	cartSessionId := h.cartSessionId(w, r, false)
	if cartSessionId == "" {
		WriteErrorResponse(w, services.ErrCartEmpty)
		return
	}
	res, err := h.cks.Submit(cartSessionId, req.Name, req.Phone)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "cartSessionId",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"orderId":         res.OrderId,
		"redirectUrl":     res.RedirectURL,
		"redirectAfterMs": res.RedirectAfter.Milliseconds(),
	})
}

// orders

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req := models.CreateOrderRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	order, err := h.ors.CreateOrder(req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ors.ListOrders()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if orders == nil {
		orders = []entities.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var status struct {
		Status string `json:"status"`
	}
	err := json.NewDecoder(r.Body).Decode(&status)
	if err != nil || !(status.Status == "confirmed" || status.Status == "rejected") {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.ors.SetOrderStatus(vars["id"], status.Status)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) OrderWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	link, message, err := h.ors.ConfirmationLink(vars["id"], r.URL.Query().Get("number"))
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"url": link, "message": message})
}

// auth

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err = h.v.Struct(creds); err != nil {
		log.Printf("Login: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	admin, sessionId, err := h.ads.Login(creds.Email, creds.Password)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "adminSession",
		Value:    sessionId,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]any{"admin": admin})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("adminSession")
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	admin, err := h.ads.Me(c.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admin": admin})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("adminSession")
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err = h.ads.Logout(c.Value); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    "adminSession",
		Value:   "",
		Path:    "/",
		Expires: time.Now(),
	})
	w.WriteHeader(http.StatusOK)
}

// admin: animals

func (h *Handler) AdminListAnimals(w http.ResponseWriter, r *http.Request) {
	animals, err := h.as.AdminList()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if animals == nil {
		animals = []entities.Animal{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"animals": animals})
}

func (h *Handler) CreateAnimal(w http.ResponseWriter, r *http.Request) {
	form, files, _, err := parseAnimalForm(r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	animal, err := h.as.CreateAnimal(form, files)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"animal": animal})
}

func (h *Handler) UpdateAnimal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	form, files, removeImages, err := parseAnimalForm(r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	animal, err := h.as.UpdateAnimal(vars["id"], form, removeImages, files)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"animal": animal})
}

func (h *Handler) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.as.DeleteAnimal(vars["id"]); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) TopAnimals(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("by") != "likes" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	limit := parseLimit(r, 5)
	top, err := h.as.TopByLikes(limit)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if top == nil {
		top = []entities.TopEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"top": top})
}

// admin: products

func (h *Handler) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	prods, err := h.ps.AdminList()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if prods == nil {
		prods = []entities.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": prods})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, files, _, err := parseProductForm(r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	product, err := h.ps.CreateProduct(form, files)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"product": product})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	form, files, removeImages, err := parseProductForm(r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	product, err := h.ps.UpdateProduct(vars["id"], form, removeImages, files)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.ps.DeleteProduct(vars["id"]); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("by") != "orders" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	limit := parseLimit(r, 5)
	top, err := h.ps.TopByOrders(limit)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if top == nil {
		top = []entities.TopEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"top": top})
}

// multipart form decoding

const maxUploadBytes = 32 << 20

func parseAnimalForm(r *http.Request) (form models.AnimalForm, files []*multipart.FileHeader, removeImages []string, err error) {
	if err = r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Printf("parseAnimalForm: %v", err)
		err = models.ErrBadRequest
		return
	}
	form = models.AnimalForm{
		CategoryId:         r.FormValue("categoryId"),
		Name:               r.FormValue("name"),
		Species:            r.FormValue("species"),
		Breed:              r.FormValue("breed"),
		AgeWeeks:           formInt(r, "ageWeeks"),
		Sex:                r.FormValue("sex"),
		Price:              formFloat(r, "price"),
		QuantityAvailable:  formInt(r, "quantityAvailable"),
		Purpose:            r.MultipartForm.Value["purpose"],
		Temperament:        r.FormValue("temperament"),
		ExperienceLevel:    r.FormValue("experienceLevel"),
		LivingSpace:        r.FormValue("livingSpace"),
		ExpectedAdultSize:  r.FormValue("expectedAdultSize"),
		AvailabilityStatus: r.FormValue("availabilityStatus"),
		Location:           r.FormValue("location"),
	}
	files = r.MultipartForm.File["images"]
	removeImages = r.MultipartForm.Value["removeImages"]
	return
}

func parseProductForm(r *http.Request) (form models.ProductForm, files []*multipart.FileHeader, removeImages []string, err error) {
	if err = r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Printf("parseProductForm: %v", err)
		err = models.ErrBadRequest
		return
	}
	form = models.ProductForm{
		CategoryId:          r.FormValue("categoryId"),
		Name:                r.FormValue("name"),
		Brand:               r.FormValue("brand"),
		Price:               formFloat(r, "price"),
		Stock:               formInt(r, "stock"),
		AvailabilityStatus:  r.FormValue("availabilityStatus"),
		SpeciesSuitability:  r.MultipartForm.Value["speciesSuitability"],
		AgeSuitability:      r.MultipartForm.Value["ageSuitability"],
		Purpose:             r.MultipartForm.Value["purpose"],
		FeedingInstructions: r.FormValue("feedingInstructions"),
		NutritionHighlights: r.FormValue("nutritionHighlights"),
		VetApproved:         formBool(r, "vetApproved"),
	}
	if specs := r.FormValue("specs"); specs != "" {
		if e := json.Unmarshal([]byte(specs), &form.Specs); e != nil {
			log.Printf("parseProductForm: specs: %v", e)
			err = models.ErrBadRequest
			return
		}
	}
	files = r.MultipartForm.File["images"]
	removeImages = r.MultipartForm.Value["removeImages"]
	return
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.FormValue(key))
	return n
}

func formFloat(r *http.Request, key string) float64 {
	f, _ := strconv.ParseFloat(r.FormValue(key), 64)
	return f
}

func formBool(r *http.Request, key string) bool {
	v := r.FormValue(key)
	return v == "true" || v == "on" || v == "1"
}

func parseLimit(r *http.Request, def int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}

// middleware

func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("adminSession")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, e := h.ads.CheckAuth(sessionId.Value)
		if !ok {
			if e != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrServerError):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, models.ErrUnautorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
