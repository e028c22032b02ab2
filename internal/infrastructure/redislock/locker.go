// Package redislock implementa inventory.KeyLocker sobre Redis para varias instancias del API.
package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

var _ inventory.KeyLocker = (*Locker)(nil)

const (
	defaultPrefix = "stock-ledger:lock:"
	minRetry      = 5 * time.Millisecond
	maxRetry      = 100 * time.Millisecond
	releaseWait   = 2 * time.Second
)

// releaseScript borra la llave solo si sigue siendo nuestra (token).
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Locker lock por llave con SET NX PX. El TTL acota el tiempo que una instancia caída
// retiene una llave; debe ser mayor que la duración de una transacción del motor.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    *logger.Logger
}

// New construye el locker. ttl <= 0 usa 5s.
func New(client *redis.Client, ttl time.Duration, log *logger.Logger) *Locker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Locker{client: client, ttl: ttl, prefix: defaultPrefix, log: log.Component("redislock")}
}

// Connect crea el cliente y verifica la conexión.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redislock: ping: %w", err)
	}
	return client, nil
}

// Lock reintenta SET NX con espera creciente hasta obtener la llave o hasta que ctx termine.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.New().String()
	wait := minRetry

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("redislock: set %s: %w", key, err)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		if wait *= 2; wait > maxRetry {
			wait = maxRetry
		}
	}
}

func (l *Locker) unlockFunc(redisKey, token string) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true
		// Se libera aunque el ctx de la petición ya haya terminado.
		ctx, cancel := context.WithTimeout(context.Background(), releaseWait)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			l.log.Warn().Err(err).Str("key", redisKey).Msg("no se pudo liberar el lock; expira por TTL")
		}
	}
}
