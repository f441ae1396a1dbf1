package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"okpups/handlers"
	"okpups/models"
	"okpups/repository"
	"okpups/services"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/redis/go-redis/v9"
)

var db *sql.DB
var rdb *redis.Client

func main() {
	initDB()
	defer db.Close()
	defer rdb.Close()

	aR, err := repository.NewAnimalRepository(db)
	sR, err2 := repository.NewSessionRepository(rdb, context.Background())
	pR, _ := repository.NewProductRepository(db)
	cR, _ := repository.NewCategoryRepository(db)
	cartR, _ := repository.NewCartRepository(rdb, context.Background())
	oR, _ := repository.NewOrderRepository(db)
	lR, _ := repository.NewLikeRepository(rdb, context.Background())
	adR, _ := repository.NewAdminRepository(db)
	if err != nil {
		panic(err)
	}
	log.Printf("db connected")
	if err2 != nil {
		panic(err2)
	}
	log.Printf("redis connected")

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}
	iR, err := repository.NewImageRepository(uploadsDir, os.Getenv("ASSET_BASE_URL"))
	if err != nil {
		panic(err)
	}

	waNumber := os.Getenv("WHATSAPP_NUMBER")
	if waNumber == "" {
		log.Printf("WHATSAPP_NUMBER is not set, checkout will be rejected")
	}

	v := models.NewValidator()
	admService := services.NewAdminService(adR, sR)
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		if err := admService.Seed(email, os.Getenv("ADMIN_PASSWORD"), os.Getenv("ADMIN_NAME")); err != nil {
			panic(err)
		}
	}

	hp := handlers.HandlerParams{
		AnmService:  services.NewAnimalService(aR, lR, oR, iR, v),
		PrdService:  services.NewProductService(pR, oR, iR, v),
		CrtService:  services.NewCartService(cartR),
		ChkService:  services.NewCheckoutService(cartR, oR, waNumber),
		CatsService: services.NewCategoryService(cR),
		OrdService:  services.NewOrderService(oR, v),
		AdmService:  admService,
		SgstService: services.NewSuggestService(aR, pR),
		Validator:   v,
	}
	ha := handlers.NewHandler(hp)
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	subAuth := router.NewRoute().Subrouter()
	subAuth.Use(ha.AdminAuthMiddleware)

	router.HandleFunc("/", ha.Welcome)
	router.HandleFunc("/auth/login", ha.Login).Methods("POST")
	subAuth.HandleFunc("/auth/me", ha.Me).Methods("GET")
	subAuth.HandleFunc("/auth/logout", ha.Logout).Methods("POST")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	router.HandleFunc("/cart/clear", ha.ClearCart).Methods("POST")
	router.HandleFunc("/cart/checkout", ha.BeginCheckout).Methods("POST")
	router.HandleFunc("/cart/checkout/back", ha.BackToCart).Methods("POST")
	router.HandleFunc("/cart/checkout", ha.CloseCheckout).Methods("DELETE")
	router.HandleFunc("/cart/buy", ha.BuyCart).Methods("POST")

	router.HandleFunc("/animals", ha.GetAnimals).Methods("GET")
	subAuth.HandleFunc("/animals/admin/list", ha.AdminListAnimals).Methods("GET")
	subAuth.HandleFunc("/animals/admin/stats/top", ha.TopAnimals).Methods("GET")
	router.HandleFunc("/animals/{id}", ha.GetAnimal).Methods("GET")
	router.HandleFunc("/animals/{id}/stats", ha.GetAnimalStats).Methods("GET")
	router.HandleFunc("/animals/{id}/like", ha.LikeAnimal).Methods("POST")

	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	subAuth.HandleFunc("/products/admin/list", ha.AdminListProducts).Methods("GET")
	subAuth.HandleFunc("/products/admin/stats/top", ha.TopProducts).Methods("GET")
	router.HandleFunc("/products/{id}", ha.GetProduct).Methods("GET")

	router.HandleFunc("/categories", ha.GetCategories).Methods("GET")
	router.HandleFunc("/search/suggest", ha.Suggest).Methods("GET")

	subAuth.HandleFunc("/admin/animals", ha.CreateAnimal).Methods("POST")
	subAuth.HandleFunc("/admin/animals/{id}", ha.UpdateAnimal).Methods("POST")
	subAuth.HandleFunc("/admin/animals/{id}", ha.DeleteAnimal).Methods("DELETE")
	subAuth.HandleFunc("/admin/products", ha.CreateProduct).Methods("POST")
	subAuth.HandleFunc("/admin/products/{id}", ha.UpdateProduct).Methods("POST")
	subAuth.HandleFunc("/admin/products/{id}", ha.DeleteProduct).Methods("DELETE")

	router.HandleFunc("/orders", ha.CreateOrder).Methods("POST")
	subAuth.HandleFunc("/orders", ha.GetOrders).Methods("GET")
	subAuth.HandleFunc("/orders/{id}/status", ha.SetOrderStatus).Methods("POST")
	subAuth.HandleFunc("/orders/{id}/whatsapp", ha.OrderWhatsAppLink).Methods("GET")

	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Printf("starting server...")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	ctx, cncl := context.WithTimeout(context.Background(), 10*time.Second)
	defer cncl()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func initDB() {
	host := os.Getenv("DATABASE_HOST")
	port := os.Getenv("DATABASE_PORT")
	user := os.Getenv("DATABASE_USER")
	pass := os.Getenv("DATABASE_PASSWORD")
	dbname := os.Getenv("DATABASE_NAME")
	var err error

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, dbname)
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		panic(err)
	}

	redis_host := os.Getenv("REDIS_HOST")
	redis_port := os.Getenv("REDIS_PORT")

	rdb = redis.NewClient(&redis.Options{
		Addr:     redis_host + ":" + redis_port,
		Password: "",
		DB:       0,
	})
	ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
	defer cncl()
	if status := rdb.Ping(ctx); status.Err() != nil {
		panic("redis is not working: " + status.Err().Error())
	}
}
