package contract

import (
	"context"

	"mindwel-be/internal/entity"
	"mindwel-be/internal/repository/specification"

	"github.com/google/uuid"
)

type HandoffRepository interface {
	Create(ctx context.Context, handoff *entity.Handoff) error
	Update(ctx context.Context, handoff *entity.Handoff) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Handoff, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Handoff, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Handoff, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
