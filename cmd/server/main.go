package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/consumer"
	"storefront/internal/handlers"
	"storefront/internal/inventory"
	"storefront/internal/messaging"
	"storefront/internal/models"
	"storefront/internal/notification"
	"storefront/internal/publisher"
	"storefront/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.Load()

	registry := inventory.NewRegistry()
	seedCatalog(registry, log)

	notifier := notification.NewDispatcher(log)

	// Optional Redis read cache for the catalog endpoints.
	var redisCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		redisCache, err = cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL, log)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
	}
	catalog := cache.NewCatalogCache(registry, redisCache, log)

	// Optional RabbitMQ: order events out, restock events in.
	if cfg.AMQPUrl != "" {
		mq, err := messaging.NewRabbitMQ(cfg.AMQPUrl, log)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mq.Close()

		orderPublisher, err := publisher.NewOrderPublisher(mq)
		if err != nil {
			log.Fatalf("failed to create order publisher: %v", err)
		}
		notifier.Register(orderPublisher)

		go startRestockConsumer(mq, registry, log)
	}

	orderService := service.NewOrderService(registry, notifier, log)
	customerStore := handlers.NewCustomerStore()

	productHandler := handlers.NewProductHandler(registry, catalog, log)
	customerHandler := handlers.NewCustomerHandler(customerStore)
	orderHandler := handlers.NewOrderHandler(orderService, customerStore, catalog, log)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Infow("shutting down")
		os.Exit(0)
	}()

	router := gin.Default()

	router.GET("/health", productHandler.HealthCheck)

	router.GET("/products", productHandler.ListProducts)
	router.GET("/products/:id", productHandler.GetProduct)
	router.POST("/products", productHandler.CreateProduct)
	router.POST("/products/:id/restock", productHandler.RestockProduct)
	router.DELETE("/products/:id", productHandler.DeleteProduct)

	router.POST("/customers", customerHandler.RegisterCustomer)
	router.GET("/customers/:id", customerHandler.GetCustomer)
	router.GET("/customers/:id/orders", customerHandler.ListCustomerOrders)

	router.POST("/orders", orderHandler.CreateOrder)
	router.GET("/orders/:id", orderHandler.GetOrder)
	router.PATCH("/orders/:id/status", orderHandler.UpdateOrderStatus)
	router.POST("/orders/:id/items", orderHandler.AddOrderItem)
	router.DELETE("/orders/:id/items/:productID", orderHandler.RemoveOrderItem)

	log.Infow("storefront starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func startRestockConsumer(mq *messaging.RabbitMQ, registry *inventory.Registry, log *zap.SugaredLogger) {
	if err := mq.DeclareQueue(consumer.RestockQueue); err != nil {
		log.Fatalf("failed to declare restock queue: %v", err)
	}

	messages, err := mq.Consume(consumer.RestockQueue)
	if err != nil {
		log.Fatalf("failed to consume restock events: %v", err)
	}

	consumer.NewRestockConsumer(registry, log).Process(messages)
}

func seedCatalog(registry *inventory.Registry, log *zap.SugaredLogger) {
	seed := []struct {
		id       string
		name     string
		price    float64
		category models.Category
		stock    int
	}{
		{"P001", "iPhone 15", 25000, models.CategoryElectronics, 10},
		{"P002", "Samsung Galaxy S23", 20000, models.CategoryElectronics, 15},
		{"P003", "AirPods Pro", 4500, models.CategoryElectronics, 20},
		{"P004", "Levi's 501 Jeans", 1200, models.CategoryClothing, 30},
		{"P005", "Nike Air Max", 2500, models.CategoryFootwear, 12},
		{"P006", "Harry Potter Box Set", 750, models.CategoryBooks, 5},
		{"P007", "Whey Protein", 800, models.CategoryHealth, 25},
	}

	for _, s := range seed {
		product, err := models.NewProduct(s.id, s.name, s.price, s.category, s.stock)
		if err != nil {
			log.Fatalf("invalid seed product %s: %v", s.id, err)
		}
		registry.Register(product)
	}
	log.Infow("catalog seeded", "products", len(seed))
}
