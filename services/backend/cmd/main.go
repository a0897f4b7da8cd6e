package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"store-admin/pkg/consul"
	backend_config "store-admin/services/backend/internal/config"
	backend_controller "store-admin/services/backend/internal/controller"
	backend_handler_http "store-admin/services/backend/internal/handler"
	backend_repository "store-admin/services/backend/internal/repository"
	"store-admin/services/backend/internal/rpc"
)

func initDB(ctx context.Context, cfg backend_config.DB) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		return nil, err
	}

	// test the connection to the db
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := backend_repository.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Successfully connected to PostgreSQL at %s:%s", cfg.Host, cfg.Port)
	return db, nil
}

func main() {
	cfg, err := backend_config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	ctx := context.Background()

	// -------------------------------------------------------------------
	// variable initialization
	// -------------------------------------------------------------------
	var datarepo backend_controller.Repository
	if cfg.DB.Enabled() {
		db, err := initDB(ctx, cfg.DB)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		datarepo = backend_repository.NewPostgres(db)
	} else {
		// volatile data repository
		log.Printf("DB_PASSWORD not set, using in-memory repository (seed=%t)", cfg.SeedData)
		datarepo = backend_repository.NewMemory(cfg.SeedData)
	}

	// controllers
	c := backend_controller.New(datarepo, cfg.SessionSecret)
	// handlers
	handlers := backend_handler_http.NewHandlers(c, cfg.UploadMaxBytes, cfg.SecureCookie)
	// gRPC handler
	grpcHandler := backend_handler_http.NewGRPC(c.Inventory)

	opts := backend_handler_http.RouterOptions{
		ServiceName: cfg.ServiceName,
		RequireAuth: cfg.RequireAuth,
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis at %s not reachable, rate limiting fails open: %v", cfg.RedisAddr, err)
		}
		opts.Limiter = backend_handler_http.NewRateLimiter(rdb, 5, time.Minute)
		log.Printf("Rate limiting signup and login through Redis at %s", cfg.RedisAddr)
	}

	// setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	// -------------------------------------------------------------------

	// -------------------------------------------------------------------
	// service endpoints
	// -------------------------------------------------------------------
	r := backend_handler_http.NewRouter(handlers, opts)
	// -------------------------------------------------------------------

	// -------------------------------------------------------------------
	// Start gRPC server
	// -------------------------------------------------------------------
	grpcServer := grpc.NewServer()
	rpc.RegisterInventoryServiceServer(grpcServer, grpcHandler)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		log.Fatalf("Failed to listen on gRPC port: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on port %d", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()
	// -------------------------------------------------------------------

	// -------------------------------------------------------------------
	// Start HTTP server
	// -------------------------------------------------------------------
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.Printf("HTTP server listening on port %d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()
	// -------------------------------------------------------------------

	// -------------------------------------------------------------------
	// Register with Consul
	// -------------------------------------------------------------------
	var registry *consul.Client
	if cfg.ConsulHost != "" {
		registry, err = consul.NewClient(consul.Config{
			Address:     cfg.ConsulHost,
			ServiceName: cfg.ServiceName,
			ServicePort: cfg.Port,
		})
		if err != nil {
			log.Fatalf("Failed to create Consul client: %v", err)
		}
		if err := registry.WaitForConsul(10, 2*time.Second); err != nil {
			log.Printf("Consul not available, running unregistered: %v", err)
			registry = nil
		} else if err := registry.RegisterService(); err != nil {
			log.Printf("Failed to register with Consul: %v", err)
			registry = nil
		}
	}
	// -------------------------------------------------------------------

	// -------------------------------------------------------------------
	// Wait for shutdown signal
	// -------------------------------------------------------------------
	<-sigChan
	log.Println("Received shutdown signal, shutting down gracefully...")
	if registry != nil {
		if err := registry.DeregisterService(); err != nil {
			log.Printf("Failed to deregister from Consul: %v", err)
		}
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	grpcServer.GracefulStop()
	log.Println("Servers stopped")
	// -------------------------------------------------------------------
}
