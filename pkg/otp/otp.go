package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps one-time signup codes in Redis so they survive process restarts
// and are shared across instances. Each email holds at most one live code;
// issuing again overwrites the previous one.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	digits int
}

func NewStore(client *redis.Client, ttl time.Duration, digits int) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if digits < 4 {
		digits = 6
	}
	return &Store{client: client, ttl: ttl, digits: digits}
}

// consumeScript deletes the key only when the stored code matches, making
// verify a single atomic compare-and-delete. A correct guess spends the code;
// a wrong guess leaves it in place until expiry.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// Issue generates a numeric code for the email and stores it with the TTL.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	code, err := s.generate()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, key(email), code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Consume atomically validates and spends the code for the email.
func (s *Store) Consume(ctx context.Context, email, code string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{key(email)}, code).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Store) generate() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < s.digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", s.digits, n), nil
}

func key(email string) string { return "otp:signup:" + email }
