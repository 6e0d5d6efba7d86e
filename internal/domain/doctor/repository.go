package doctor

import "context"

type Repository interface {
	Exists(ctx context.Context, doctorID string) (bool, error)
}
