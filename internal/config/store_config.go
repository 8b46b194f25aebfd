package config

import "strconv"

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

type StoreConfig interface {
	GetTokenStore() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetSQLitePath() string
}

type Store struct {
	source
}

var _ StoreConfig = Store{}

// GetTokenStore names the backend holding browser tokens: memory, redis or sqlite.
func (s Store) GetTokenStore() string {
	return s.get("TOKEN_STORE", StoreMemory)
}

func (s Store) GetRedisAddr() string {
	return s.get("REDIS_ADDR", "localhost:6379")
}

func (s Store) GetRedisPassword() string {
	return s.get("REDIS_PASSWORD", "")
}

func (s Store) GetRedisDB() int {
	db, err := strconv.Atoi(s.get("REDIS_DB", "0"))
	if err != nil {
		return 0
	}
	return db
}

func (s Store) GetSQLitePath() string {
	return s.get("SQLITE_PATH", "./data/tokens.db")
}
