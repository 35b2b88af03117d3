package ports

import (
	"context"
	"time"
)

// ReportCache define el puerto de salida para cachear reportes ya calculados.
// Cualquier adaptador (Redis, no-op) debe implementar esta interfaz.
//
// Las entradas pertenecen a una generación. Get devuelve la generación vigente
// y Set escribe en la generación indicada: un reporte calculado antes de una
// invalidación queda en la generación vieja y nunca se sirve.
type ReportCache interface {
	// Get devuelve (nil, gen, false, nil) si la clave no existe en la generación vigente gen.
	Get(ctx context.Context, key string) (value []byte, gen int64, ok bool, err error)
	Set(ctx context.Context, key string, gen int64, value []byte, ttl time.Duration) error
	// Invalidate descarta todos los reportes cacheados (se llama en cada escritura).
	Invalidate(ctx context.Context) error
}
