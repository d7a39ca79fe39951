package hr

import "context"

type HRRepository interface {
	Create(ctx context.Context, h HR) (HR, error)
	GetByID(ctx context.Context, id string) (HR, error)
	List(ctx context.Context) ([]HR, error)
	Update(ctx context.Context, h HR) error
	Delete(ctx context.Context, id string) error
}
