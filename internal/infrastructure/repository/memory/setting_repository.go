package memory

import (
	"context"
	"sync"
)

type SettingRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewSettingRepository(values map[string]string) *SettingRepository {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &SettingRepository{values: copied}
}

func (r *SettingRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[key]
	return value, ok, nil
}

func (r *SettingRepository) GetMany(_ context.Context, keys []string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := r.values[key]; ok {
			out[key] = value
		}
	}
	return out, nil
}

func (r *SettingRepository) Upsert(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value
	return nil
}
