package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/anikettiwarime/VideoTube/internal/config"
	"github.com/anikettiwarime/VideoTube/internal/handler"
	"github.com/anikettiwarime/VideoTube/internal/media"
	"github.com/anikettiwarime/VideoTube/internal/middleware"
	"github.com/anikettiwarime/VideoTube/internal/repository"
	"github.com/anikettiwarime/VideoTube/internal/service"
	"github.com/anikettiwarime/VideoTube/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		cancel()
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		cancel()
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	cancel()

	db := client.Database(cfg.Database.Name)
	if err := repository.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	mediaStore, err := storage.NewMediaStore(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	prober := media.NewFFProbe("ffprobe", 30*time.Second)

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	authService := service.NewAuthService(userRepo, mediaStore, cfg.JWT)
	userService := service.NewUserService(userRepo, mediaStore)
	videoService := service.NewVideoService(videoRepo, userRepo, mediaStore, prober)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	dashboardService := service.NewDashboardService(videoRepo, subscriptionRepo, likeRepo)

	secureCookies := cfg.Server.Env == "production"
	authHandler := handler.NewAuthHandler(authService, secureCookies)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)
	tweetHandler := handler.NewTweetHandler(tweetService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	likeHandler := handler.NewLikeHandler(likeService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/users/register", authHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/users/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/users/refresh-token", authHandler.Refresh).Methods("POST", "OPTIONS")

	api.HandleFunc("/videos", videoHandler.Feed).Methods("GET", "OPTIONS")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWT.AccessSecret))

	protected.HandleFunc("/users/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	protected.HandleFunc("/users/change-password", authHandler.ChangePassword).Methods("POST", "OPTIONS")
	protected.HandleFunc("/users/current-user", userHandler.Current).Methods("GET", "OPTIONS")
	protected.HandleFunc("/users/update-account", userHandler.UpdateAccount).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/users/avatar", userHandler.UpdateAvatar).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/users/cover-image", userHandler.UpdateCoverImage).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/users/c/{username}", userHandler.ChannelProfile).Methods("GET", "OPTIONS")
	protected.HandleFunc("/users/history", userHandler.WatchHistory).Methods("GET", "OPTIONS")

	protected.HandleFunc("/videos", videoHandler.Publish).Methods("POST", "OPTIONS")
	protected.HandleFunc("/videos/{videoId}", videoHandler.Watch).Methods("GET", "OPTIONS")
	protected.HandleFunc("/videos/{videoId}", videoHandler.Update).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/videos/{videoId}", videoHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/videos/toggle/publish/{videoId}", videoHandler.TogglePublish).Methods("PATCH", "OPTIONS")

	protected.HandleFunc("/comments/{videoId}", commentHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/comments/{videoId}", commentHandler.Add).Methods("POST", "OPTIONS")
	protected.HandleFunc("/comments/c/{commentId}", commentHandler.Update).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/comments/c/{commentId}", commentHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/tweets", tweetHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/tweets/user/{userId}", tweetHandler.ListForUser).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tweets/{tweetId}", tweetHandler.Update).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/tweets/{tweetId}", tweetHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/likes/toggle/v/{videoId}", likeHandler.ToggleVideo).Methods("POST", "OPTIONS")
	protected.HandleFunc("/likes/toggle/c/{commentId}", likeHandler.ToggleComment).Methods("POST", "OPTIONS")
	protected.HandleFunc("/likes/toggle/t/{tweetId}", likeHandler.ToggleTweet).Methods("POST", "OPTIONS")
	protected.HandleFunc("/likes/videos", likeHandler.LikedVideos).Methods("GET", "OPTIONS")

	protected.HandleFunc("/playlist", playlistHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/playlist/{playlistId}", playlistHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/playlist/{playlistId}", playlistHandler.Update).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/playlist/{playlistId}", playlistHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/playlist/add/{videoId}/{playlistId}", playlistHandler.AddVideo).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/playlist/remove/{videoId}/{playlistId}", playlistHandler.RemoveVideo).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/playlist/user/{userId}", playlistHandler.ListForUser).Methods("GET", "OPTIONS")

	protected.HandleFunc("/subscriptions/c/{channelId}", subscriptionHandler.Toggle).Methods("POST", "OPTIONS")
	protected.HandleFunc("/subscriptions/c/{channelId}", subscriptionHandler.Subscribers).Methods("GET", "OPTIONS")
	protected.HandleFunc("/subscriptions/u/{subscriberId}", subscriptionHandler.SubscribedChannels).Methods("GET", "OPTIONS")

	protected.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods("GET", "OPTIONS")
	protected.HandleFunc("/dashboard/videos", dashboardHandler.Videos).Methods("GET", "OPTIONS")

	r.HandleFunc("/health", healthHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting VideoTube API on %s (env: %s)", addr, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"videotube-api"}`))
}
