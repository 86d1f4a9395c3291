package implementation

import (
	"context"
	"errors"

	"mindwel-be/internal/entity"
	"mindwel-be/internal/mapper"
	"mindwel-be/internal/model"
	"mindwel-be/internal/repository/contract"
	"mindwel-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HandoffRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HandoffMapper
}

func NewHandoffRepository(db *gorm.DB) contract.HandoffRepository {
	return &HandoffRepositoryImpl{
		db:     db,
		mapper: mapper.NewHandoffMapper(),
	}
}

func (r *HandoffRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HandoffRepositoryImpl) Create(ctx context.Context, handoff *entity.Handoff) error {
	m := r.mapper.HandoffToModel(handoff)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*handoff = *r.mapper.HandoffToEntity(m)
	return nil
}

func (r *HandoffRepositoryImpl) Update(ctx context.Context, handoff *entity.Handoff) error {
	m := r.mapper.HandoffToModel(handoff)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*handoff = *r.mapper.HandoffToEntity(m)
	return nil
}

func (r *HandoffRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Handoff, error) {
	return r.FindOne(ctx, specification.ByID{ID: id})
}

func (r *HandoffRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Handoff, error) {
	var m model.Handoff
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.HandoffToEntity(&m), nil
}

func (r *HandoffRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Handoff, error) {
	var models []*model.Handoff
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Handoff, len(models))
	for i, m := range models {
		entities[i] = r.mapper.HandoffToEntity(m)
	}
	return entities, nil
}

func (r *HandoffRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Handoff{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
