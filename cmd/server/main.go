package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_api/internal/config"
	"github.com/Skotchmaster/shop_api/internal/httpserver"
	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/middleware"
	"github.com/Skotchmaster/shop_api/internal/mykafka"
	"github.com/Skotchmaster/shop_api/internal/search"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/store"
	"github.com/Skotchmaster/shop_api/internal/tokens"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(configuration.MONGO_URI, "MONGO_URI")

	logger := logging.New(configuration.LOG_LEVEL)

	client, err := store.Connect(context.Background(), configuration.MONGO_URI)
	if err != nil {
		log.Fatalf("mongo init error: %v", err)
	}
	db := client.Database(configuration.MONGO_DB)

	users := store.NewUserStore(db)
	products := store.NewProductStore(db)
	orders := store.NewOrderStore(db)

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := users.EnsureIndexes(idxCtx); err != nil {
		log.Fatalf("mongo index error: %v", err)
	}
	idxCancel()

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(configuration.KAFKA_ADDRESS)
	}

	var esClient *elasticsearch.Client
	var indexer *search.Indexer
	if configuration.ES_URL != "" {
		esClient, err = search.NewClient(configuration.ES_URL, configuration.ES_USER, configuration.ES_PASSWORD)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		indexer = search.NewIndexer(esClient)
	}

	tokenSvc := tokens.NewService([]byte(configuration.JWT_SECRET))

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: &service.AuthService{Users: users, Tokens: tokenSvc}, Producer: producer},
		ProductHandler: &httpserver.ProductHTTP{Svc: &service.ProductService{Products: products}, Producer: producer, Indexer: indexer},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Orders: orders, Users: users, Products: products}, Producer: producer},
		SearchHandler:  &httpserver.SearchHTTP{ES: esClient, Index: search.ProductIndex},
		Auth:           middleware.NewAuth(tokenSvc),
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", configuration.PORT)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}
	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
