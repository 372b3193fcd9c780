package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	apimod "github.com/example/task-api/modules/api"
	cachemod "github.com/example/task-api/modules/cache"
	notificationmod "github.com/example/task-api/modules/notification"
	taskmod "github.com/example/task-api/modules/task"
	usermod "github.com/example/task-api/modules/user"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	userAPIURL := getEnv("USER_VALIDATION_API_URL", "http://localhost:8082/api/users")
	notificationAPIURL := getEnv("NOTIFICATION_API_URL", "http://localhost:8081/notifications")
	dbPath := getEnv("DB_PATH", "./tasks.db")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	redisAddr := getEnv("REDIS_ADDR", "") // empty disables the read cache
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)

	log.Println("=== Task API ===")
	log.Printf("User validation API: %s", userAPIURL)
	log.Printf("Notification API: %s", notificationAPIURL)
	log.Printf("Database: %s", dbPath)
	log.Printf("HTTP Port: %d", httpPort)
	if redisAddr != "" {
		log.Printf("Redis: %s (TTL: %s)", redisAddr, cacheTTL)
	}

	// Create modules
	userModule := usermod.NewModule(userAPIURL)
	notificationModule := notificationmod.NewModule(notificationAPIURL)
	taskModule := taskmod.NewModule(dbPath)
	apiModule := apimod.NewModule(httpPort)

	var cacheModule *cachemod.Module
	if redisAddr != "" {
		cacheModule = cachemod.NewModule(redisAddr, "task:", cacheTTL)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules. The framework wires the event bus (task emits,
	// notification consumes) and the request-reply service container.
	app.Register(userModule)
	app.Register(notificationModule)
	if cacheModule != nil {
		app.Register(cacheModule)
	}
	app.Register(taskModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wire ports after start
	taskModule.SetUserValidator(userModule.Validator())
	if cacheModule != nil {
		taskModule.SetCache(cacheModule.Cache())
	}
	apiModule.SetTaskPort(taskModule.Service())

	printStartupInfo(httpPort)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("  POST   /tasks               - Create a task")
	log.Println("  GET    /tasks/:id           - Get a task by ID")
	log.Println("  POST   /tasks/:id/complete  - Complete a task")
	log.Println("  GET    /health              - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
