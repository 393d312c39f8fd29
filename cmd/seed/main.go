// Command main runs the database seeder for PitchBridge.
package main

import (
	"flag"
	"log"

	"pitchbridge/internal/config"
	"pitchbridge/internal/database"
	"pitchbridge/internal/seed"
)

func main() {
	// Parse command line flags
	numEntrepreneurs := flag.Int("entrepreneurs", 20, "Number of entrepreneurs to create")
	numInvestors := flag.Int("investors", 30, "Number of investors to create")
	numPitches := flag.Int("pitches", 100, "Number of pitches to create")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	demoOnly := flag.Bool("demo-only", false, "Seed only the three demo accounts and their pitches")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *demoOnly {
		if _, err := seed.SeedDemo(db); err != nil {
			log.Fatalf("❌ Demo seeding failed: %v", err)
		}
	} else {
		err := seed.Seed(db, seed.Options{
			NumEntrepreneurs: *numEntrepreneurs,
			NumInvestors:     *numInvestors,
			NumPitches:       *numPitches,
			ShouldClean:      *shouldClean,
		})
		if err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
	log.Printf("📧 All seeded accounts have the password: %s", seed.DefaultPassword)
}
