package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/2beens/swimstats/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "swimstats-service-session||"
	tokensSetKey     = "swimstats-service-sessions"
)

type Admin struct {
	Username     string
	PasswordHash string
}

type LoginSession struct {
	Token     string
	CreatedAt time.Time
}

type Service struct {
	admin       *Admin
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	admin *Admin,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		admin:          admin,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// CredentialsValid checks the given username/password against the configured admin.
func (as *Service) CredentialsValid(username, password string) bool {
	if as.admin == nil {
		return false
	}
	if username != as.admin.Username {
		return false
	}
	return pkg.CheckPasswordHash(password, as.admin.PasswordHash)
}

func (as *Service) Login(ctx context.Context, createdAt time.Time) (string, error) {
	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	cmdSet := as.redisClient.Set(ctx, sessionKey, createdAt.Unix(), 0)
	if err := cmdSet.Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	cmdSAdd := as.redisClient.SAdd(ctx, tokensSetKey, token)
	if err := cmdSAdd.Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := as.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		return false, err
	}

	cmdDel := as.redisClient.Del(ctx, sessionKey)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}

	cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, token)
	if err := cmdSRem.Err(); err != nil {
		return false, err
	}

	return true, nil
}

// ScanAndClean removes expired sessions from redis.
func (as *Service) ScanAndClean(ctx context.Context) {
	tokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth service, scan and clean, get tokens: %s", err)
		return
	}

	var removed int
	for _, token := range tokens {
		sessionKey := sessionKeyPrefix + token
		createdAtUnixStr, err := as.redisClient.Get(ctx, sessionKey).Result()
		if err == redis.Nil {
			// session gone, drop the dangling token
			as.redisClient.SRem(ctx, tokensSetKey, token)
			removed++
			continue
		}
		if err != nil {
			log.Errorf("auth service, scan and clean, get session %s: %s", token, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
		if err != nil {
			log.Errorf("auth service, scan and clean, parse created at: %s", err)
			continue
		}

		if time.Since(time.Unix(createdAtUnix, 0)) > as.ttl {
			as.redisClient.Del(ctx, sessionKey)
			as.redisClient.SRem(ctx, tokensSetKey, token)
			removed++
		}
	}

	if removed > 0 {
		log.Debugf("auth service, scan and clean, removed %d expired sessions", removed)
	}
}
