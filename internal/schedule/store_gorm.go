package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// activeSchedule is the per-term pointer row behind GormStore's atomic flip.
type activeSchedule struct {
	Year         string `gorm:"column:academic_year;primaryKey;size:20"`
	Semester     int    `gorm:"column:semester;primaryKey"`
	GenerationID string `gorm:"column:generation_id;size:36"`
	Version      int64  `gorm:"column:version"`
}

func (activeSchedule) TableName() string {
	return "active_schedules"
}

// GormStore persists generations in a relational database. The publish flip
// runs in a transaction guarded by an optimistic check on the pointer row, so
// two concurrent publishers for a term cannot interleave: the loser's
// transaction rolls back with ErrPublishConflict.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates the schedule tables.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&Generation{}, &Entry{}, &activeSchedule{})
}

func (s *GormStore) ActiveGeneration(ctx context.Context, term Term) (string, error) {
	var active activeSchedule
	err := s.db.WithContext(ctx).
		Where("academic_year = ? AND semester = ?", term.AcademicYear, term.Semester).
		First(&active).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return active.GenerationID, nil
}

func (s *GormStore) ActiveEntries(ctx context.Context, term Term) ([]Entry, error) {
	generationID, err := s.ActiveGeneration(ctx, term)
	if err != nil || generationID == "" {
		return nil, err
	}
	return s.entriesOf(ctx, generationID, nil)
}

func (s *GormStore) Publish(ctx context.Context, term Term, expectedActive string, generation Generation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries := generation.Entries
		generation.Entries = nil
		if err := tx.Create(&generation).Error; err != nil {
			return err
		}
		if len(entries) > 0 {
			if err := tx.CreateInBatches(&entries, 200).Error; err != nil {
				return err
			}
		}

		if expectedActive == "" {
			active := activeSchedule{
				Year:         term.AcademicYear,
				Semester:     term.Semester,
				GenerationID: generation.ID,
				Version:      1,
			}
			if err := tx.Create(&active).Error; err != nil {
				// A pointer row appearing between our read and this insert is
				// a lost race, not a storage failure.
				return ErrPublishConflict
			}
			return nil
		}

		result := tx.Model(&activeSchedule{}).
			Where("academic_year = ? AND semester = ? AND generation_id = ?",
				term.AcademicYear, term.Semester, expectedActive).
			Updates(map[string]interface{}{
				"generation_id": generation.ID,
				"version":       gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPublishConflict
		}
		return nil
	})
}

func (s *GormStore) Generations(ctx context.Context, term Term) ([]Generation, error) {
	var generations []Generation
	err := s.db.WithContext(ctx).
		Preload("Entries").
		Where("academic_year = ? AND semester = ?", term.AcademicYear, term.Semester).
		Order("created_at DESC").
		Find(&generations).Error
	if err != nil {
		return nil, err
	}

	// Row-level IsActive is derived from the pointer, not stored per row.
	active, err := s.ActiveGeneration(ctx, term)
	if err != nil {
		return nil, err
	}
	for i := range generations {
		for j := range generations[i].Entries {
			generations[i].Entries[j].IsActive = generations[i].ID == active
		}
	}
	return generations, nil
}

func (s *GormStore) EntriesByTeacher(ctx context.Context, term Term, teacherID uint64) ([]Entry, error) {
	generationID, err := s.ActiveGeneration(ctx, term)
	if err != nil || generationID == "" {
		return nil, err
	}
	return s.entriesOf(ctx, generationID, map[string]interface{}{"teacher_id": teacherID})
}

func (s *GormStore) EntriesByRoom(ctx context.Context, term Term, roomID uint64) ([]Entry, error) {
	generationID, err := s.ActiveGeneration(ctx, term)
	if err != nil || generationID == "" {
		return nil, err
	}
	return s.entriesOf(ctx, generationID, map[string]interface{}{"room_id": roomID})
}

func (s *GormStore) entriesOf(ctx context.Context, generationID string, filter map[string]interface{}) ([]Entry, error) {
	var entries []Entry
	query := s.db.WithContext(ctx).Where("generation_id = ?", generationID)
	if filter != nil {
		query = query.Where(filter)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
