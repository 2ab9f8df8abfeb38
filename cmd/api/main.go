package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"bookcase/internal/author"
	"bookcase/internal/book"
	"bookcase/internal/config"
	"bookcase/internal/httpx"
	"bookcase/internal/platform/mongodb"
	"bookcase/internal/session"
	"bookcase/internal/user"

	"github.com/redis/go-redis/v9"
)

const (
	storeTimeout   = 5 * time.Second
	maxRequestBody = 1 << 20 // 1 MiB
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	client, err := mongodb.Open(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("cannot connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("cannot create indexes: %v", err)
	}
	log.Println("database connection OK")

	sessions := openSessionStore(ctx, cfg)

	bookRepo := book.NewMongoRepo(db, storeTimeout)
	authorRepo := author.NewMongoRepo(db, storeTimeout)
	userRepo := user.NewMongoRepo(db, storeTimeout)

	bookHandler := book.NewHTTPHandler(book.NewService(bookRepo, userRepo))
	authorHandler := author.NewHTTPHandler(authorRepo)
	userHandler := user.NewHTTPHandler(user.NewService(userRepo), sessions, cfg.SecretKey, cfg.SessionTTL)

	authRequired := httpx.AuthMiddleware(cfg.SecretKey, sessions)
	router := newRouter(bookHandler, authorHandler, userHandler, authRequired, func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})

	rateLimit := httpx.NewRateLimitMiddleware(20, 40)
	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(maxRequestBody)(handler)
	handler = rateLimit.Middleware(handler)
	handler = httpx.CORSMiddleware(cfg.CORSOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func newRouter(
	books *book.HTTPHandler,
	authors *author.HTTPHandler,
	users *user.HTTPHandler,
	authRequired func(http.Handler) http.Handler,
	ready func(context.Context) error,
) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// Reads are open; book mutations require a session.
	router.HandleFunc("GET /books", books.List)
	router.HandleFunc("GET /books/{isbn}", books.GetByISBN)
	router.Handle("POST /books", authRequired(http.HandlerFunc(books.Create)))
	router.Handle("PUT /books/{isbn}", authRequired(http.HandlerFunc(books.Update)))
	router.Handle("DELETE /books/{isbn}", authRequired(http.HandlerFunc(books.Delete)))

	// Author routes carry no auth gate at all.
	router.HandleFunc("GET /authors", authors.List)
	router.HandleFunc("GET /authors/{ssn}", authors.GetBySSN)
	router.HandleFunc("POST /authors", authors.Create)
	router.HandleFunc("DELETE /authors/{ssn}", authors.Delete)

	router.HandleFunc("POST /users", users.Register)
	router.HandleFunc("POST /login", users.Login)
	router.Handle("DELETE /logout", authRequired(http.HandlerFunc(users.Logout)))
	router.Handle("GET /me", authRequired(http.HandlerFunc(users.Me)))

	return router
}

func openSessionStore(ctx context.Context, cfg config.Config) session.Store {
	if cfg.RedisHost == "" {
		log.Println("session store: in-memory (REDIS_HOST unset)")
		return session.NewMemoryStore()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("cannot ping redis: %v", err)
	}
	log.Println("session store: redis")
	return session.NewRedisStore(rdb)
}
