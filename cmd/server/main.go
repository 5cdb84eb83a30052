package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/coupon"
	"storefront-be/internal/db"
	"storefront-be/internal/handler"
	"storefront-be/internal/identity"
	"storefront-be/internal/logger"
	"storefront-be/internal/messaging"
	"storefront-be/internal/order"
	"storefront-be/internal/outbox"
	"storefront-be/internal/product"
	"storefront-be/internal/resilience"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc    = db.InitDB
	initRedisFunc = func(cfg *config.Config) *redis.Client {
		return redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	startServerFunc = func(srv *http.Server) error {
		return srv.ListenAndServe()
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

type app struct {
	handler   http.Handler
	poller    *outbox.Poller
	publisher messaging.Publisher
}

func newPublisher(cfg *config.Config) messaging.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return messaging.LogPublisher{}
	}
	breaker := resilience.NewBreaker("kafka-publisher", resilience.DefaultBreakerSettings())
	return messaging.WithBreaker(messaging.NewKafkaPublisher(cfg.KafkaBrokers...), breaker)
}

func newServer(cfg *config.Config, database *sql.DB, rdb *redis.Client, publisher messaging.Publisher) *app {
	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, address.NewRepository(database))

	couponEval := coupon.NewEvaluator(coupon.NewRepository(database), orderRepo)

	cartSvc := cart.NewService(cart.NewRedisStore(rdb))

	checkoutSvc := checkout.NewService(
		productRepo,
		couponEval,
		orderRepo,
		cartSvc,
		identity.New(cfg.EntitlementURL, cfg.RequestTimeout),
		checkout.Config{ShippingFee: cfg.ShippingFee, MemberPlan: cfg.MemberPlan},
	)

	router := handler.NewRouter(handler.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigin:  cfg.AllowedOrigin,
		RequestTimeout: cfg.RequestTimeout,
	}, handler.Handlers{
		Orders: handler.NewOrderHandler(checkoutSvc, orderSvc),
		Carts:  handler.NewCartHandler(cartSvc),
		Stores: handler.NewStoreHandler(productSvc),
	})

	return &app{
		handler:   router,
		poller:    outbox.NewPoller(outbox.NewRepository(database), publisher),
		publisher: publisher,
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	database := initDBFunc(cfg)
	defer database.Close()

	rdb := initRedisFunc(cfg)
	defer rdb.Close()

	a := newServer(cfg, database, rdb, newPublisher(cfg))
	defer a.publisher.Close()

	pollCtx, cancelPoll := context.WithCancel(ctx)
	defer cancelPoll()
	go a.poller.Run(pollCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      a.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := startServerFunc(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}
