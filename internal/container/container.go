package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movierama/config"
	"github.com/oksasatya/movierama/internal/domain/repository"
	"github.com/oksasatya/movierama/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	store       repository.Store
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client

	tokens *helpers.TokenManager
	hasher *helpers.PasswordHasher
)

func SetConfig(c *config.Config)    { cfg = c }
func GetConfig() *config.Config     { return cfg }
func SetLogger(l *logrus.Logger)    { logger = l }
func SetStore(s repository.Store)   { store = s }
func GetStore() repository.Store    { return store }
func SetRedis(r *redis.Client)      { redisClient = r }
func GetRedis() *redis.Client       { return redisClient }
func SetGCS(s *storage.Client)      { gcsClient = s }
func GetGCS() *storage.Client       { return gcsClient }
func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

func GetLogger() *logrus.Logger {
	if logger != nil {
		return logger
	}
	return helpers.NewDiscardLogger()
}

func SetTokens(m *helpers.TokenManager) { tokens = m }
func GetTokens() *helpers.TokenManager {
	if tokens != nil {
		return tokens
	}
	c := GetConfig()
	return helpers.NewTokenManager(c.JWTSecret, c.JWTIssuer, c.JWTTTL)
}

func SetHasher(h *helpers.PasswordHasher) { hasher = h }
func GetHasher() *helpers.PasswordHasher {
	if hasher != nil {
		return hasher
	}
	c := GetConfig()
	return helpers.NewPasswordHasher(c.PasswordSalt, c.BcryptCost)
}
