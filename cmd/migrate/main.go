package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	// Get command
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	// Connect to database
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS games CASCADE`,
		`DROP TABLE IF EXISTS sets CASCADE`,
		`DROP TABLE IF EXISTS match_players CASCADE`,
		`DROP TABLE IF EXISTS matches CASCADE`,
		`DROP TABLE IF EXISTS courts CASCADE`,
		`DROP TABLE IF EXISTS partner_locations CASCADE`,
		`DROP TABLE IF EXISTS partners CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		// Create users table
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(20),
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Create partners table
		`CREATE TABLE IF NOT EXISTS partners (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(20),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Create partner locations table
		`CREATE TABLE IF NOT EXISTS partner_locations (
			id BIGSERIAL PRIMARY KEY,
			partner_id BIGINT NOT NULL REFERENCES partners(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(500) NOT NULL,
			city VARCHAR(100) NOT NULL,
			province VARCHAR(100),
			postal_code VARCHAR(20),
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			phone VARCHAR(20),
			email VARCHAR(255),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Create courts table
		`CREATE TABLE IF NOT EXISTS courts (
			id BIGSERIAL PRIMARY KEY,
			partner_id BIGINT NOT NULL REFERENCES partners(id) ON DELETE CASCADE,
			location_id BIGINT NOT NULL REFERENCES partner_locations(id) ON DELETE CASCADE,
			admin_user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(500) NOT NULL,
			city VARCHAR(100) NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			phone VARCHAR(20),
			facilities TEXT[] DEFAULT '{}',
			description TEXT,
			is_active BOOLEAN DEFAULT true,
			deleted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Create matches table
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			court_id BIGINT NOT NULL REFERENCES courts(id) ON DELETE CASCADE,
			creator_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			match_date_time TIMESTAMPTZ NOT NULL,
			max_players INTEGER NOT NULL CHECK (max_players BETWEEN 2 AND 20),
			current_players INTEGER NOT NULL DEFAULT 1,
			skill_level VARCHAR(20) NOT NULL,
			match_type VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'open',
			notes TEXT,
			deleted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Create match players table
		`CREATE TABLE IF NOT EXISTS match_players (
			id BIGSERIAL PRIMARY KEY,
			match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			team VARCHAR(10),
			status VARCHAR(20) NOT NULL DEFAULT 'joined',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(match_id, user_id)
		)`,

		// Create sets table
		`CREATE TABLE IF NOT EXISTS sets (
			id BIGSERIAL PRIMARY KEY,
			match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			set_number INTEGER NOT NULL,
			team_a_games INTEGER NOT NULL DEFAULT 0,
			team_b_games INTEGER NOT NULL DEFAULT 0,
			is_completed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(match_id, set_number)
		)`,

		// Create games table
		`CREATE TABLE IF NOT EXISTS games (
			id BIGSERIAL PRIMARY KEY,
			set_id BIGINT NOT NULL REFERENCES sets(id) ON DELETE CASCADE,
			game_number INTEGER NOT NULL,
			team_a_points INTEGER NOT NULL DEFAULT 0 CHECK (team_a_points BETWEEN 0 AND 7),
			team_b_points INTEGER NOT NULL DEFAULT 0 CHECK (team_b_points BETWEEN 0 AND 7),
			is_completed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(set_id, game_number)
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_courts_city ON courts(city)`,
		`CREATE INDEX IF NOT EXISTS idx_courts_active ON courts(is_active) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_locations_city ON partner_locations(city)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_court_id ON matches(court_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_matches_date_time ON matches(match_date_time)`,
		`CREATE INDEX IF NOT EXISTS idx_match_players_match_id ON match_players(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sets_match_id ON sets(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_games_set_id ON games(set_id)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`INSERT INTO partners (name, email, phone) VALUES
			('Bangkok Padel Group', 'contact@bkkpadel.example', '020000001'),
			('Chiang Mai Racket Club', 'hello@cmracket.example', '050000002')
		ON CONFLICT DO NOTHING`,

		`INSERT INTO partner_locations (partner_id, name, address, city, province, latitude, longitude, phone) VALUES
			(1, 'Sukhumvit Arena', '123 Sukhumvit Rd', 'Bangkok', 'Bangkok', 13.7563, 100.5018, '020000010'),
			(1, 'Thonglor Club', '55 Thonglor Soi 10', 'Bangkok', 'Bangkok', 13.7306, 100.5782, '020000011'),
			(2, 'Nimman Courts', '9 Nimmanhaemin Rd', 'Chiang Mai', 'Chiang Mai', 18.7961, 98.9670, '050000020')
		ON CONFLICT DO NOTHING`,

		`INSERT INTO courts (partner_id, location_id, name, address, city, latitude, longitude, facilities) VALUES
			(1, 1, 'Sukhumvit Court 1', '123 Sukhumvit Rd', 'Bangkok', 13.7563, 100.5018, '{"lights","showers"}'),
			(1, 1, 'Sukhumvit Court 2', '123 Sukhumvit Rd', 'Bangkok', 13.7563, 100.5018, '{"lights"}'),
			(1, 2, 'Thonglor Center Court', '55 Thonglor Soi 10', 'Bangkok', 13.7306, 100.5782, '{"lights","parking","showers"}'),
			(2, 3, 'Nimman Court A', '9 Nimmanhaemin Rd', 'Chiang Mai', 18.7961, 98.9670, '{"parking"}')
		ON CONFLICT DO NOTHING`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}

	fmt.Println("  Seeded partners, locations and courts")

	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
