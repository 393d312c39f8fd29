package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pitchbridge/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumEntrepreneurs int
	NumInvestors     int
	NumPitches       int
	ShouldClean      bool
	// SkipBcrypt stores plaintext passwords; faster when seeding thousands of
	// accounts, but logins against them will fail. Dev bulk data only.
	SkipBcrypt bool
	// MaxDays controls how far back seeded pitch creation dates are spread.
	MaxDays int
}

// Seed populates the database with the demo accounts plus randomly generated
// users and pitches.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Seeding %d entrepreneurs, %d investors and %d pitches...",
		opts.NumEntrepreneurs, opts.NumInvestors, opts.NumPitches)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, continuing anyway...")
		}
	}

	demo, err := SeedDemo(db)
	if err != nil {
		return fmt.Errorf("failed to create demo accounts: %w", err)
	}
	log.Printf("✓ %d demo accounts ensured", len(demo))

	factory := NewFactory(db, opts)

	entrepreneurs := make([]*models.User, 0, opts.NumEntrepreneurs)
	for i := 0; i < opts.NumEntrepreneurs; i++ {
		u, err := factory.CreateUser(models.RoleEntrepreneur)
		if err != nil {
			log.Printf("Failed to create entrepreneur: %v", err)
			continue
		}
		entrepreneurs = append(entrepreneurs, u)
	}
	log.Printf("✓ %d entrepreneurs created", len(entrepreneurs))

	investors := make([]*models.User, 0, opts.NumInvestors)
	for i := 0; i < opts.NumInvestors; i++ {
		u, err := factory.CreateUser(models.RoleInvestor)
		if err != nil {
			log.Printf("Failed to create investor: %v", err)
			continue
		}
		investors = append(investors, u)
	}
	log.Printf("✓ %d investors created", len(investors))

	if len(entrepreneurs) == 0 {
		return fmt.Errorf("no entrepreneurs available to own pitches")
	}

	//nolint:gosec // weak randomness is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := 0
	for i := 0; i < opts.NumPitches; i++ {
		founder := entrepreneurs[r.Intn(len(entrepreneurs))]
		pitch, err := factory.CreatePitch(founder)
		if err != nil {
			log.Printf("Failed to create pitch: %v", err)
			continue
		}
		created++

		// A random subset of investors registers interest in each pitch.
		for _, investor := range investors {
			if r.Float32() < 0.25 {
				if err := factory.CreateInterest(investor, pitch); err != nil {
					log.Printf("Failed to create interest: %v", err)
				}
			}
		}
	}
	log.Printf("✓ %d pitches created", created)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// SeedDemo ensures the three well-known demo accounts and their starter
// pitches exist. Idempotent: existing accounts are left untouched.
func SeedDemo(db *gorm.DB) ([]*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	demoUsers := []models.User{
		{
			Email:    "entrepreneur@example.com",
			Password: string(hashedPassword),
			Name:     "John Doe",
			Role:     models.RoleEntrepreneur,
			Bio:      "Serial entrepreneur with 10+ years experience",
			Company:  "TechStart Inc.",
			Location: "San Francisco, CA",
		},
		{
			Email:    "investor@example.com",
			Password: string(hashedPassword),
			Name:     "Jane Smith",
			Role:     models.RoleInvestor,
			Bio:      "Angel investor focused on early-stage startups",
			Company:  "Smith Ventures",
			Location: "New York, NY",
		},
		{
			Email:    "admin@example.com",
			Password: string(hashedPassword),
			Name:     "Admin User",
			Role:     models.RoleAdmin,
			Bio:      "Platform administrator",
			Company:  "Pitch & Invest Platform",
			Location: "Remote",
		},
	}

	users := make([]*models.User, 0, len(demoUsers))
	for i := range demoUsers {
		u := demoUsers[i]
		if err := db.Where(models.User{Email: u.Email}).
			Attrs(u).
			FirstOrCreate(&demoUsers[i]).Error; err != nil {
			return nil, err
		}
		users = append(users, &demoUsers[i])
	}

	founder := users[0]
	investor := users[1]

	demoPitches := []models.Pitch{
		{
			Title:          "EcoTech Solutions",
			Description:    "Revolutionary solar panel technology that increases efficiency by 40%",
			Category:       "CleanTech",
			FundingGoal:    500000,
			CurrentFunding: 125000,
			Status:         models.PitchStatusActive,
			Tags:           []string{"Solar", "Renewable Energy", "Hardware"},
			PitchDeckURL:   "pitch-deck-1.pdf",
			CreatedAt:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:          "HealthAI Platform",
			Description:    "AI-powered diagnostic tool for early disease detection",
			Category:       "HealthTech",
			FundingGoal:    1000000,
			CurrentFunding: 750000,
			Status:         models.PitchStatusActive,
			Tags:           []string{"AI", "Healthcare", "SaaS"},
			CreatedAt:      time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:          "FoodTech Delivery",
			Description:    "Sustainable food delivery network with zero-waste packaging",
			Category:       "FoodTech",
			FundingGoal:    300000,
			CurrentFunding: 300000,
			Status:         models.PitchStatusFunded,
			Tags:           []string{"Food", "Sustainability", "Logistics"},
			CreatedAt:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for i := range demoPitches {
		p := demoPitches[i]
		p.FounderID = founder.ID
		p.FounderName = founder.Name
		p.FounderEmail = founder.Email

		if err := db.Where(models.Pitch{Title: p.Title, FounderID: founder.ID}).
			Attrs(p).
			FirstOrCreate(&demoPitches[i]).Error; err != nil {
			return nil, err
		}

		interest := models.PitchInterest{PitchID: demoPitches[i].ID, InvestorID: investor.ID}
		if err := db.Where(interest).FirstOrCreate(&interest).Error; err != nil {
			return nil, err
		}
	}

	return users, nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE pitch_interests, pitches, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
