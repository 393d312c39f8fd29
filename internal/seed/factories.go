// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"pitchbridge/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets. It satisfies the
// signup validation rules so seeded accounts behave like real ones.
const DefaultPassword = "Seedling#2024ok"

var pitchCategories = []string{
	"CleanTech", "HealthTech", "FoodTech", "FinTech", "EdTech",
	"AgTech", "PropTech", "SaaS", "Consumer", "Logistics",
}

var pitchTagPool = []string{
	"AI", "Hardware", "SaaS", "Marketplace", "Mobile", "B2B", "B2C",
	"Sustainability", "Renewable Energy", "Healthcare", "Food", "Logistics",
	"Analytics", "Robotics", "Solar",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(role models.UserRole, overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	user := &models.User{
		Email:    gofakeit.Email(),
		Name:     name,
		Role:     role,
		Bio:      gofakeit.Sentence(10),
		Company:  gofakeit.Company(),
		Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = DefaultPassword
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePitch constructs and persists a sample pitch for the given founder.
func (f *Factory) CreatePitch(founder *models.User, overrides ...func(*models.Pitch)) (*models.Pitch, error) {
	//nolint:gosec // weak randomness is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	goal := float64(gofakeit.Number(50, 2000)) * 1000
	raised := goal * r.Float64()

	status := models.PitchStatusActive
	switch {
	case raised >= goal*0.98:
		raised = goal
		status = models.PitchStatusFunded
	case r.Float32() < 0.1:
		status = models.PitchStatusClosed
	}

	pitch := &models.Pitch{
		Title:          fmt.Sprintf("%s %s", gofakeit.Company(), gofakeit.BuzzWord()),
		Description:    gofakeit.Paragraph(1, 3, 8, " "),
		Category:       pitchCategories[r.Intn(len(pitchCategories))],
		FundingGoal:    goal,
		CurrentFunding: float64(int(raised/1000)) * 1000,
		FounderID:      founder.ID,
		FounderName:    founder.Name,
		FounderEmail:   founder.Email,
		Status:         status,
		Tags:           pickTags(r),
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	pitch.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	if r.Float32() < 0.6 {
		pitch.PitchDeckURL = fmt.Sprintf("https://decks.example.com/%s.pdf", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(pitch)
	}

	if err := f.db.Create(pitch).Error; err != nil {
		return nil, err
	}
	return pitch, nil
}

// CreateInterest persists an interest membership from `investor` on `pitch`.
func (f *Factory) CreateInterest(investor *models.User, pitch *models.Pitch) error {
	interest := &models.PitchInterest{
		PitchID:    pitch.ID,
		InvestorID: investor.ID,
	}
	return f.db.Create(interest).Error
}

func pickTags(r *rand.Rand) []string {
	n := 2 + r.Intn(3)
	tags := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(tags) < n {
		t := pitchTagPool[r.Intn(len(pitchTagPool))]
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}
