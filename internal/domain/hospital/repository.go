package hospital

import "context"

type Repository interface {
	GetByHospitalID(ctx context.Context, hospitalID string) (*Hospital, error)
	// IsActive returns false (no error) for unknown hospitals.
	IsActive(ctx context.Context, hospitalID string) (bool, error)
}
