// Command seed populates the database with a demo social mesh.
package main

import (
	"context"
	"flag"
	"log"

	"snipshare/internal/config"
	"snipshare/internal/database"
	"snipshare/internal/seed"
)

func main() {
	profilePath := flag.String("profile", "", "Path to a YAML seed profile (defaults to the built-in profile)")
	numUsers := flag.Int("users", 0, "Override the profile's user count")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	profile := seed.DefaultProfile()
	if *profilePath != "" {
		var err error
		profile, err = seed.LoadProfile(*profilePath)
		if err != nil {
			log.Fatalf("Failed to load seed profile: %v", err)
		}
	}
	if *numUsers > 0 {
		profile.Users = *numUsers
	}
	profile.Clean = *shouldClean

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seeder := seed.NewSeeder(db)
	if err := seeder.Run(context.Background(), profile); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed successfully")
}
