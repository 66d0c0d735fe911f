package db

import (
	"strings"
	"sync"

	"github.com/dgraph-io/ristretto"
	"github.com/sirupsen/logrus"
)

// Transaction list and stats reads are cached per user. Keys are tracked per
// owner so a mutation only evicts that user's entries.
var (
	Cache                *ristretto.Cache
	transactionCacheKeys = struct {
		sync.RWMutex
		m map[string]map[string]struct{}
	}{m: make(map[string]map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		logrus.Fatalf("failed to initialize cache: %v", err)
	}
}

// TransactionCacheKey builds a cache key from the owning user and the query
// shape (filters included) so distinct filter sets never collide.
func TransactionCacheKey(userID string, parts ...string) string {
	return "transactions:" + userID + ":" + strings.Join(parts, ":")
}

func GetTransactionCache(cacheKey string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(cacheKey)
}

func SetTransactionCache(userID, cacheKey string, value interface{}) {
	if Cache == nil {
		return
	}
	transactionCacheKeys.Lock()
	if transactionCacheKeys.m[userID] == nil {
		transactionCacheKeys.m[userID] = make(map[string]struct{})
	}
	transactionCacheKeys.m[userID][cacheKey] = struct{}{}
	transactionCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

// InvalidateTransactionCache drops every cached transaction read for a user.
// Called after any create/update/delete of that user's transactions.
func InvalidateTransactionCache(userID string) {
	if Cache == nil {
		return
	}
	transactionCacheKeys.Lock()
	for key := range transactionCacheKeys.m[userID] {
		Cache.Del(key)
	}
	delete(transactionCacheKeys.m, userID)
	transactionCacheKeys.Unlock()
}
