// Command seed wipes the Wallywood tables and reloads them from CSV files.
// The files live in a directory given by SEED_DIR (default ./seed/csv), one
// file per table with a header row naming the columns. User passwords arrive
// in plaintext in the CSV and are bcrypt-hashed on the way in.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/wallywood/poster-api/internal/auth"
	"github.com/wallywood/poster-api/internal/config"
	"github.com/wallywood/poster-api/internal/database"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dir := os.Getenv("SEED_DIR")
	if dir == "" {
		dir = filepath.Join("seed", "csv")
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	log.Printf("seeding from %s", dir)

	// Clear existing data, children before parents.
	for _, table := range []string{"user_ratings", "cartlines", "genre_poster_rel", "users", "posters", "genres"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("clear %s: %v", table, err)
		}
	}

	if err := seedGenres(ctx, db, filepath.Join(dir, "genres.csv")); err != nil {
		log.Fatalf("genres: %v", err)
	}
	if err := seedPosters(ctx, db, filepath.Join(dir, "posters.csv")); err != nil {
		log.Fatalf("posters: %v", err)
	}
	if err := seedUsers(ctx, db, filepath.Join(dir, "users.csv"), cfg.BcryptCost); err != nil {
		log.Fatalf("users: %v", err)
	}
	if err := seedRelations(ctx, db, filepath.Join(dir, "genre_poster_rel.csv")); err != nil {
		log.Fatalf("genre_poster_rel: %v", err)
	}
	if err := seedRatings(ctx, db, filepath.Join(dir, "user_ratings.csv")); err != nil {
		log.Fatalf("user_ratings: %v", err)
	}
	if err := seedCartlines(ctx, db, filepath.Join(dir, "cartlines.csv")); err != nil {
		log.Fatalf("cartlines: %v", err)
	}

	log.Printf("seed complete")
}

// readCSV loads a headered CSV file into one map per row, keyed by column
// name. A missing file is not an error: the corresponding table is simply
// left empty.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("skip %s (not present)", path)
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func seedGenres(ctx context.Context, db *sql.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO genres (id, title, slug) VALUES (?,?,?)",
			row["id"], row["title"], row["slug"]); err != nil {
			return fmt.Errorf("row id=%s: %w", row["id"], err)
		}
	}
	log.Printf("seeded %d genres", len(rows))
	return nil
}

func seedPosters(ctx context.Context, db *sql.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO posters (id, name, slug, description, image, width, height, price, stock) VALUES (?,?,?,?,?,?,?,?,?)",
			row["id"], row["name"], row["slug"], row["description"], row["image"],
			row["width"], row["height"], row["price"], row["stock"]); err != nil {
			return fmt.Errorf("row id=%s: %w", row["id"], err)
		}
	}
	log.Printf("seeded %d posters", len(rows))
	return nil
}

func seedUsers(ctx context.Context, db *sql.DB, path string, bcryptCost int) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		hash, err := auth.HashPassword(row["password"], bcryptCost)
		if err != nil {
			return fmt.Errorf("hash for id=%s: %w", row["id"], err)
		}
		active := parseBool(row["isActive"], true)
		if _, err := db.ExecContext(ctx,
			"INSERT INTO users (id, firstname, lastname, email, password_hash, role, is_active) VALUES (?,?,?,?,?,?,?)",
			row["id"], row["firstname"], row["lastname"], row["email"], hash, row["role"], active); err != nil {
			return fmt.Errorf("row id=%s: %w", row["id"], err)
		}
	}
	log.Printf("seeded %d users", len(rows))
	return nil
}

func seedRelations(ctx context.Context, db *sql.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO genre_poster_rel (genre_id, poster_id) VALUES (?,?)",
			row["genreId"], row["posterId"]); err != nil {
			return fmt.Errorf("row genre=%s poster=%s: %w", row["genreId"], row["posterId"], err)
		}
	}
	log.Printf("seeded %d genre-poster relations", len(rows))
	return nil
}

func seedRatings(ctx context.Context, db *sql.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO user_ratings (id, user_id, poster_id, num_stars) VALUES (?,?,?,?)",
			row["id"], row["userId"], row["posterId"], row["numStars"]); err != nil {
			return fmt.Errorf("row id=%s: %w", row["id"], err)
		}
	}
	log.Printf("seeded %d ratings", len(rows))
	return nil
}

func seedCartlines(ctx context.Context, db *sql.DB, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO cartlines (user_id, poster_id, quantity) VALUES (?,?,?)",
			row["userId"], row["posterId"], row["quantity"]); err != nil {
			return fmt.Errorf("row user=%s poster=%s: %w", row["userId"], row["posterId"], err)
		}
	}
	log.Printf("seeded %d cartlines", len(rows))
	return nil
}

func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
