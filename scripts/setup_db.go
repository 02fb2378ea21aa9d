package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"auth-service/internal/config"
	"auth-service/internal/repository/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      VARCHAR(100)  NOT NULL,
	email         VARCHAR(255)  NOT NULL UNIQUE,
	password_hash VARCHAR(255)  NOT NULL,
	user_role     VARCHAR(20)   NOT NULL DEFAULT 'USER',
	is_deleted    BOOLEAN       NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS audit_events (
	id         UUID        PRIMARY KEY,
	action     VARCHAR(50) NOT NULL,
	status     VARCHAR(20) NOT NULL,
	actor_id   BIGINT,
	subject_id BIGINT,
	email      VARCHAR(255),
	ip_address VARCHAR(45),
	user_agent TEXT,
	request_id VARCHAR(64),
	metadata   JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users (email);
CREATE INDEX IF NOT EXISTS idx_audit_events_actor ON audit_events (actor_id, created_at);
`

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("Connected to database")

	if _, err := db.Pool.Exec(context.Background(), schema); err != nil {
		log.Fatalf("Failed to execute schema: %v", err)
	}

	fmt.Println("Schema executed successfully")

	for _, table := range []string{"users", "audit_events"} {
		var exists bool
		query := `SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)`
		if err := db.Pool.QueryRow(context.Background(), query, table).Scan(&exists); err != nil {
			log.Fatalf("Failed to verify table %s: %v", table, err)
		}
		if !exists {
			log.Fatalf("Table %s was not created", table)
		}
		fmt.Printf("Table %s verified\n", table)
	}
}
