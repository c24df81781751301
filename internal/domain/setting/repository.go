package setting

import "context"

type Repository interface {
	// Get returns "" and no error when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string, description *string) error
	List(ctx context.Context) ([]Setting, error)
}
