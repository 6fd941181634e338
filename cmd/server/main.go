package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Drivers
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	// Instrumentation
	"github.com/exaring/otelpgx"

	// Interne
	"github.com/fellipeca007/GuardaFlix/config"
	feedevents "github.com/fellipeca007/GuardaFlix/internal/feed/adapters/primary/events"
	feedclients "github.com/fellipeca007/GuardaFlix/internal/feed/adapters/secondary/clients"
	feedrepo "github.com/fellipeca007/GuardaFlix/internal/feed/adapters/secondary/repository"
	feedservices "github.com/fellipeca007/GuardaFlix/internal/feed/services"
	"github.com/fellipeca007/GuardaFlix/internal/gateway"
	identityrepo "github.com/fellipeca007/GuardaFlix/internal/identity/adapters/secondary/repository"
	"github.com/fellipeca007/GuardaFlix/internal/identity/adapters/secondary/security"
	identityservices "github.com/fellipeca007/GuardaFlix/internal/identity/services"
	"github.com/fellipeca007/GuardaFlix/internal/media/adapters/secondary/blobstore"
	"github.com/fellipeca007/GuardaFlix/internal/observability"
	"github.com/fellipeca007/GuardaFlix/internal/post/adapters/secondary/eventbroker"
	postrepo "github.com/fellipeca007/GuardaFlix/internal/post/adapters/secondary/repository"
	postservices "github.com/fellipeca007/GuardaFlix/internal/post/services"
	profilerepo "github.com/fellipeca007/GuardaFlix/internal/profile/adapters/secondary/repository"
	profileservices "github.com/fellipeca007/GuardaFlix/internal/profile/services"
	edgerepo "github.com/fellipeca007/GuardaFlix/internal/relationship/adapters/secondary/repository"
	relationshipports "github.com/fellipeca007/GuardaFlix/internal/relationship/ports"
	relservices "github.com/fellipeca007/GuardaFlix/internal/relationship/services"
)

// edgeStoreWithSchema : le store du graphe plus son bootstrap de schéma.
type edgeStoreWithSchema interface {
	relationshipports.EdgeStore
	EnsureSchema(ctx context.Context) error
}

func main() {
	// 1. Config & Logger
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg)
	slog.Info("🚀 Starting GuardaFlix", "env", cfg.Env, "port", cfg.HTTPPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Télémétrie (Tracing)
	tp, err := observability.InitTracer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	// 3. Infrastructure: Postgres
	dbConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		slog.Error("Unable to parse DB config", "error", err)
		os.Exit(1)
	}
	// Instrumentation SQL (Pour voir les requêtes dans Jaeger)
	dbConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	dbPool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	slog.Info("✅ Connected to Postgres")

	// 4. Infrastructure: Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisotel.InstrumentTracing(rdb); err != nil {
		panic(err)
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Connected to Redis")

	// 5. Infrastructure: Event Broker NATS
	nc, err := nats.Connect(cfg.NatsUrl)
	if err != nil {
		slog.Error("Unable to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer nc.Close()
	slog.Info("✅ Connected to NATS")

	// 6. Repositories + schéma
	userRepo := identityrepo.NewPostgresUserRepo(dbPool)
	profileRepo := profilerepo.NewPostgresProfileRepo(dbPool)
	postRepo := postrepo.NewPostgresPostRepo(dbPool)
	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureSchema, profileRepo.EnsureSchema, postRepo.EnsureSchema,
	} {
		if err := ensure(ctx); err != nil {
			slog.Error("Failed to ensure schema", "error", err)
			os.Exit(1)
		}
	}

	edgeStore, cleanupEdges := buildEdgeStore(ctx, cfg, dbPool)
	defer cleanupEdges()

	// 7. Sécurité (Argon2 + JWT RS256)
	privPEM, err := os.ReadFile(cfg.RSAPrivateKeyPath)
	if err != nil {
		slog.Error("Unable to read RSA private key", "path", cfg.RSAPrivateKeyPath, "error", err)
		os.Exit(1)
	}
	pubPEM, err := os.ReadFile(cfg.RSAPublicKeyPath)
	if err != nil {
		slog.Error("Unable to read RSA public key", "path", cfg.RSAPublicKeyPath, "error", err)
		os.Exit(1)
	}
	tokenProvider, err := security.NewJWTProvider(privPEM, pubPEM)
	if err != nil {
		slog.Error("Unable to build JWT provider", "error", err)
		os.Exit(1)
	}

	// 8. Médias (GCS)
	blobs, err := blobstore.NewGCSBlobStore(ctx, cfg.GCSBucket, cfg.GCSKeyPath)
	if err != nil {
		slog.Error("Unable to build GCS blob store", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Media bucket ready", "bucket", cfg.GCSBucket)

	// 9. Initialisation du Core
	identityService := identityservices.NewIdentityService(userRepo, security.NewArgon2Hasher(), tokenProvider)
	profileService := profileservices.NewProfileService(profileRepo)
	relationshipService := relservices.NewRelationshipService(edgeStore, profileService)
	postService := postservices.NewPostService(postRepo, eventbroker.NewNatsPublisher(nc))
	feedService := feedservices.NewFeedService(
		feedclients.NewGraphClient(relationshipService),
		postService,
		profileService,
		feedrepo.NewRedisTimelineCache(rdb),
	)

	// 10. Consumer NATS (Driving Adapter - Async)
	handler := feedevents.NewEventHandler(feedService)
	if _, err := nc.Subscribe(eventbroker.SubjectPostCreated, handler.HandlePostCreated); err != nil {
		slog.Error("Failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	slog.Info("👂 Listening for events (NATS)")

	// 11. Serveur HTTP (Driving Adapter - Sync)
	httpHandler := gateway.NewRouter(
		gateway.NewHandler(identityService, profileService, relationshipService, postService, feedService, blobs),
		identityService,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpHandler,
	}

	go func() {
		slog.Info("📡 HTTP gateway listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("👋 Server exited")
}

// --- HELPERS ---

// buildEdgeStore choisit le backend du graphe social. Postgres par
// défaut ; Neo4j si EDGE_STORE=neo4j.
func buildEdgeStore(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (edgeStoreWithSchema, func()) {
	if cfg.EdgeStore == "neo4j" {
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
		if err != nil {
			slog.Error("Failed to create neo4j driver", "error", err)
			os.Exit(1)
		}

		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := driver.VerifyConnectivity(connectCtx); err != nil {
			slog.Error("Failed to connect to Neo4j", "error", err)
			os.Exit(1)
		}
		slog.Info("✅ Connected to Neo4j")

		store := edgerepo.NewNeo4jEdgeStore(driver)
		if err := store.EnsureSchema(ctx); err != nil {
			slog.Error("Failed to ensure neo4j schema", "error", err)
			os.Exit(1)
		}
		return store, func() { _ = driver.Close(context.Background()) }
	}

	store := edgerepo.NewPostgresEdgeStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		slog.Error("Failed to ensure relationships schema", "error", err)
		os.Exit(1)
	}
	return store, func() {}
}
