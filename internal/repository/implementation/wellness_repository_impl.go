package implementation

import (
	"context"

	"mindwel-be/internal/entity"
	"mindwel-be/internal/mapper"
	"mindwel-be/internal/model"
	"mindwel-be/internal/repository/contract"
	"mindwel-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WellnessRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WellnessMapper
}

func NewWellnessRepository(db *gorm.DB) contract.WellnessRepository {
	return &WellnessRepositoryImpl{
		db:     db,
		mapper: mapper.NewWellnessMapper(),
	}
}

func (r *WellnessRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WellnessRepositoryImpl) CreateMoodEntry(ctx context.Context, mood *entity.MoodEntry) error {
	m := r.mapper.MoodEntryToModel(mood)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mood = *r.mapper.MoodEntryToEntity(m)
	return nil
}

func (r *WellnessRepositoryImpl) CreateJournalEntry(ctx context.Context, journal *entity.JournalEntry) error {
	m := r.mapper.JournalEntryToModel(journal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*journal = *r.mapper.JournalEntryToEntity(m)
	return nil
}

func (r *WellnessRepositoryImpl) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	if err := r.db.WithContext(ctx).Unscoped().Where("user_id = ?", userId).Delete(&model.MoodEntry{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Unscoped().Where("user_id = ?", userId).Delete(&model.JournalEntry{}).Error
}

func (r *WellnessRepositoryImpl) FindMoodEntries(ctx context.Context, specs ...specification.Specification) ([]*entity.MoodEntry, error) {
	var models []*model.MoodEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.MoodEntry, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MoodEntryToEntity(m)
	}
	return entities, nil
}

func (r *WellnessRepositoryImpl) FindJournalEntries(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalEntry, error) {
	var models []*model.JournalEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.JournalEntry, len(models))
	for i, m := range models {
		entities[i] = r.mapper.JournalEntryToEntity(m)
	}
	return entities, nil
}
