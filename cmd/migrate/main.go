// Command main runs database migrations for Warbler.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"warbler/internal/config"
	"warbler/internal/database"
)

func main() {
	var (
		rollback = flag.Int("rollback", 0, "Roll back the migration with this version number")
		status   = flag.Bool("status", false, "Print registered migrations and exit")
	)
	flag.Parse()

	if *status {
		for _, m := range database.GetMigrations() {
			fmt.Println(m.String())
		}
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *rollback > 0 {
		if err := database.RollbackMigration(ctx, db, *rollback); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.Printf("Rolled back migration %d", *rollback)
		return
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}
