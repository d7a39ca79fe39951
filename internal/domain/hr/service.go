package hr

import "context"

type HRService interface {
	Register(ctx context.Context, req RegisterHRRequest) (HRResponse, error)
	Get(ctx context.Context, id string) (HRResponse, error)
	List(ctx context.Context) ([]HRResponse, error)
	Update(ctx context.Context, id string, req UpdateHRRequest) (HRResponse, error)
	Delete(ctx context.Context, id string) error
}
