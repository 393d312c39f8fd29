// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"pitchbridge/internal/cache"
	"pitchbridge/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PitchFilter narrows pitch listings. Zero values mean "no filter".
// MinFundingGoal/MaxFundingGoal bound the pitch's funding goal, matching the
// investor dashboard's funding-range dropdown.
type PitchFilter struct {
	Category       string
	Status         models.PitchStatus
	MinFundingGoal float64
	MaxFundingGoal float64
}

// PlatformStats aggregates the numbers shown on the admin dashboard.
type PlatformStats struct {
	TotalUsers    int64   `json:"total_users"`
	TotalPitches  int64   `json:"total_pitches"`
	ActivePitches int64   `json:"active_pitches"`
	TotalFunding  float64 `json:"total_funding"`
}

// PitchRepository defines the interface for pitch data operations
type PitchRepository interface {
	Create(ctx context.Context, pitch *models.Pitch) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Pitch, error)
	GetByFounderID(ctx context.Context, founderID uint, limit, offset int, currentUserID uint) ([]*models.Pitch, error)
	List(ctx context.Context, filter PitchFilter, limit, offset int, currentUserID uint) ([]*models.Pitch, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Pitch, error)
	Update(ctx context.Context, pitch *models.Pitch) error
	Delete(ctx context.Context, id uint) error
	ToggleInterest(ctx context.Context, pitchID, investorID uint) (bool, error)
	IsInterested(ctx context.Context, pitchID, investorID uint) (bool, error)
	Categories(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*PlatformStats, error)
}

// pitchRepository implements PitchRepository
type pitchRepository struct {
	db *gorm.DB
}

// NewPitchRepository creates a new pitch repository
func NewPitchRepository(db *gorm.DB) PitchRepository {
	return &pitchRepository{db: db}
}

func (r *pitchRepository) Create(ctx context.Context, pitch *models.Pitch) error {
	err := r.db.WithContext(ctx).Create(pitch).Error
	if err == nil {
		cache.InvalidatePitchLists(ctx)
	}
	return err
}

func (r *pitchRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Pitch, error) {
	var pitch models.Pitch
	key := cache.PitchKey(id)

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, key, &pitch, cache.PitchTTL, func() error {
			return r.applyInterestDetails(r.db.WithContext(ctx), 0).
				Preload("Founder").
				First(&pitch, id).Error
		})
	} else {
		err = r.applyInterestDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Founder").
			First(&pitch, id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Pitch", id)
		}
		return nil, err
	}
	if err := r.enrichInterestedInvestors(ctx, []*models.Pitch{&pitch}); err != nil {
		return nil, err
	}

	return &pitch, nil
}

func (r *pitchRepository) GetByFounderID(ctx context.Context, founderID uint, limit, offset int, currentUserID uint) ([]*models.Pitch, error) {
	var pitches []*models.Pitch
	err := r.applyInterestDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Founder").
		Where("founder_id = ?", founderID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&pitches).Error
	if err != nil {
		return nil, err
	}
	if enrichErr := r.enrichInterestedInvestors(ctx, pitches); enrichErr != nil {
		return nil, enrichErr
	}
	return pitches, nil
}

// anonListCacheSize is how many pitches the cached anonymous listing holds.
// It matches the maximum page size the API serves, so any anonymous first
// page can be sliced out of the cached entry regardless of the requested
// limit.
const anonListCacheSize = 100

func (r *pitchRepository) List(ctx context.Context, filter PitchFilter, limit, offset int, currentUserID uint) ([]*models.Pitch, error) {
	fetch := func(dest *[]*models.Pitch, fetchLimit int) error {
		q := r.applyInterestDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Founder")
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.MinFundingGoal > 0 {
			q = q.Where("funding_goal >= ?", filter.MinFundingGoal)
		}
		if filter.MaxFundingGoal > 0 {
			q = q.Where("funding_goal <= ?", filter.MaxFundingGoal)
		}
		if err := q.Order("created_at DESC").
			Limit(fetchLimit).
			Offset(offset).
			Find(dest).Error; err != nil {
			return err
		}
		return r.enrichInterestedInvestors(ctx, *dest)
	}

	var pitches []*models.Pitch

	// The anonymous unfiltered first page is the marketplace landing view and
	// by far the hottest query, so it alone is cached. The cached entry always
	// holds a full anonListCacheSize page and is sliced down to the requested
	// limit, so the entry serves every anonymous page size.
	if currentUserID == 0 && filter == (PitchFilter{}) && offset == 0 {
		err := cache.Aside(ctx, cache.PitchListKey, &pitches, cache.PitchTTL, func() error {
			return fetch(&pitches, anonListCacheSize)
		})
		if err != nil {
			return nil, err
		}
		if len(pitches) > limit {
			pitches = pitches[:limit]
		}
		return pitches, nil
	}

	if err := fetch(&pitches, limit); err != nil {
		return nil, err
	}
	return pitches, nil
}

func (r *pitchRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Pitch, error) {
	var pitches []*models.Pitch
	like := "%" + query + "%"
	err := r.applyInterestDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Founder").
		Where("title LIKE ? OR description LIKE ?", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&pitches).Error
	if err != nil {
		return nil, err
	}
	if enrichErr := r.enrichInterestedInvestors(ctx, pitches); enrichErr != nil {
		return nil, enrichErr
	}
	return pitches, nil
}

// applyInterestDetails adds subqueries to fetch interest count and the
// current viewer's interest status in a single query.
func (r *pitchRepository) applyInterestDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "pitches.*, " +
		"(SELECT COUNT(*) FROM pitch_interests WHERE pitch_interests.pitch_id = pitches.id) as interest_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM pitch_interests WHERE pitch_interests.pitch_id = pitches.id AND pitch_interests.investor_id = ?) as interested", currentUserID)
	}

	return db.Select(selectQuery)
}

// enrichInterestedInvestors loads the interest membership for a batch of
// pitches in one query and attaches the investor IDs to each pitch.
func (r *pitchRepository) enrichInterestedInvestors(ctx context.Context, pitches []*models.Pitch) error {
	if len(pitches) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(pitches))
	for _, p := range pitches {
		ids = append(ids, p.ID)
	}

	var interests []models.PitchInterest
	if err := r.db.WithContext(ctx).
		Where("pitch_id IN ?", ids).
		Order("created_at ASC").
		Find(&interests).Error; err != nil {
		return err
	}

	byPitch := make(map[uint][]uint, len(pitches))
	for _, i := range interests {
		byPitch[i.PitchID] = append(byPitch[i.PitchID], i.InvestorID)
	}

	for _, p := range pitches {
		p.InterestedInvestorIDs = byPitch[p.ID]
		if p.InterestedInvestorIDs == nil {
			p.InterestedInvestorIDs = []uint{}
		}
	}
	return nil
}

func (r *pitchRepository) Update(ctx context.Context, pitch *models.Pitch) error {
	if err := r.db.WithContext(ctx).Save(pitch).Error; err != nil {
		return err
	}
	cache.InvalidatePitch(ctx, pitch.ID)
	cache.InvalidatePitchLists(ctx)
	return nil
}

func (r *pitchRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Pitch{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Pitch", id)
	}
	cache.InvalidatePitch(ctx, id)
	cache.InvalidatePitchLists(ctx)
	return nil
}

// ToggleInterest flips the investor's interest membership for the pitch and
// reports the resulting state (true = now interested). The delete-then-insert
// runs in one transaction so concurrent toggles cannot duplicate membership.
func (r *pitchRepository) ToggleInterest(ctx context.Context, pitchID, investorID uint) (bool, error) {
	var interested bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Pitch{}).Where("id = ?", pitchID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return models.NewNotFoundError("Pitch", pitchID)
		}

		res := tx.Where("pitch_id = ? AND investor_id = ?", pitchID, investorID).
			Delete(&models.PitchInterest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			interested = false
			return nil
		}

		interest := &models.PitchInterest{PitchID: pitchID, InvestorID: investorID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(interest).Error; err != nil {
			return err
		}
		interested = true
		return nil
	})
	if err != nil {
		return false, err
	}

	cache.InvalidatePitch(ctx, pitchID)
	return interested, nil
}

func (r *pitchRepository) IsInterested(ctx context.Context, pitchID, investorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PitchInterest{}).
		Where("pitch_id = ? AND investor_id = ?", pitchID, investorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pitchRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Pitch{}).
			Distinct("category").
			Where("category <> ''").
			Order("category ASC").
			Pluck("category", &categories).Error
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *pitchRepository) Stats(ctx context.Context) (*PlatformStats, error) {
	var stats PlatformStats
	err := cache.Aside(ctx, cache.PlatformStatsKey, &stats, cache.PlatformStatsTTL, func() error {
		if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
			return err
		}
		if err := r.db.WithContext(ctx).Model(&models.Pitch{}).Count(&stats.TotalPitches).Error; err != nil {
			return err
		}
		if err := r.db.WithContext(ctx).Model(&models.Pitch{}).
			Where("status = ?", models.PitchStatusActive).
			Count(&stats.ActivePitches).Error; err != nil {
			return err
		}
		return r.db.WithContext(ctx).Model(&models.Pitch{}).
			Select("COALESCE(SUM(current_funding), 0)").
			Scan(&stats.TotalFunding).Error
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
