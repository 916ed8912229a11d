package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"
	_ "modernc.org/sqlite"

	emailPkg "shiftboard/internal/adapters/email"
	web "shiftboard/internal/adapters/http"
	"shiftboard/internal/adapters/storage"
	"shiftboard/internal/adapters/storage/daystate"
	"shiftboard/internal/application/orchestrators"
	"shiftboard/internal/application/tracker"
	"shiftboard/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	addr := pflag.String("addr", envOrDefault("SHIFTBOARD_ADDR", ":8080"), "listen address")
	dbPath := pflag.String("db", envOrDefault("SHIFTBOARD_DB", "shiftboard.db"), "SQLite database path")
	configPath := pflag.String("config", os.Getenv("SHIFTBOARD_CONFIG"), "event config YAML (empty uses built-in defaults)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dsn := *dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Wrap DB with slow-query logging
	timedDB := storage.NewTimedDB(db)

	store := daystate.NewSQLiteStore(timedDB)
	board := tracker.New(store, cfg.Roster().Names(), nil)
	board.Init(context.Background())

	// Configure email sender
	resendKey := os.Getenv("SHIFTBOARD_RESEND_KEY")
	emailFrom := envOrDefault("SHIFTBOARD_RESEND_FROM", "将棋部シフトボード <noreply@example.jp>")
	emailReply := os.Getenv("SHIFTBOARD_REPLY_TO")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("SHIFTBOARD_ENV") == "production" {
			log.Println("WARNING: SHIFTBOARD_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set SHIFTBOARD_RESEND_KEY for real delivery)")
		}
	}

	// Periodic flush doubles as the midnight rollover check
	flushStopCh := make(chan struct{})
	orchestrators.StartBackgroundWorker(board, 1*time.Minute, flushStopCh)
	defer close(flushStopCh)

	mux := web.NewMux(board, cfg)

	log.Printf("Shiftboard %s starting on %s (event=%q, env=%s)", version, *addr, cfg.EventName, envOrDefault("SHIFTBOARD_ENV", "development"))

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
