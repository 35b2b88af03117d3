package cache

import (
	"context"
	"time"
)

// NoopCache no guarda nada; cada Get es un fallo. Se usa sin Redis configurado.
type NoopCache struct{}

// NewNoopCache construye el caché vacío.
func NewNoopCache() NoopCache { return NoopCache{} }

func (NoopCache) Get(context.Context, string) ([]byte, int64, bool, error) { return nil, 0, false, nil }
func (NoopCache) Set(context.Context, string, int64, []byte, time.Duration) error { return nil }
func (NoopCache) Invalidate(context.Context) error { return nil }
