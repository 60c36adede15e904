package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Creates the expression indexes AutoMigrate cannot: the substring scans in
// reservation matching and item search both filter on lower(...) LIKE.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Build connection string
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	// Connect to database
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_items_name_lower ON items (lower(name));
		CREATE INDEX IF NOT EXISTS idx_reservations_query_lower ON reservations (lower(search_query));
		CREATE INDEX IF NOT EXISTS idx_reservations_max_price ON reservations (max_price);
	`

	log.Println("Executing migration...")
	if _, err := db.Exec(indexSQL); err != nil {
		log.Fatalf("Failed to execute migration: %v", err)
	}

	log.Println("Migration completed successfully")
}
