package agents

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of cached responses
const DefaultCacheSize = 128

// CachingExecutor memoizes successful responses of a delegate in an LRU cache.
// Keys cover everything that reaches the prompt, so identical tasks share a response.
type CachingExecutor struct {
	delegate Executor
	cache    *lru.Cache[string, string]
}

// NewCachingExecutor wraps delegate with a cache of size entries.
// A non-positive size falls back to DefaultCacheSize.
func NewCachingExecutor(delegate Executor, size int) (*CachingExecutor, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, &ExecutorError{Stage: StageVetting, Message: "failed to create response cache", Cause: err}
	}
	return &CachingExecutor{delegate: delegate, cache: cache}, nil
}

// Source returns a cached pool for an identical sourcing task
func (c *CachingExecutor) Source(ctx context.Context, task SourcingTask) (string, error) {
	key := cacheKey(StageSourcing, task.Query, task.RoleTitle, strconv.Itoa(task.Count), RequirementsJSON(task.Requirements))
	return c.lookup(key, func() (string, error) {
		return c.delegate.Source(ctx, task)
	})
}

// Vet returns a cached score for an identical resume, role and requirements
func (c *CachingExecutor) Vet(ctx context.Context, task VettingTask) (string, error) {
	key := cacheKey(StageVetting, string(task.Category), task.RoleTitle, task.Resume, RequirementsJSON(task.Requirements))
	return c.lookup(key, func() (string, error) {
		return c.delegate.Vet(ctx, task)
	})
}

// Len returns the number of cached responses
func (c *CachingExecutor) Len() int {
	return c.cache.Len()
}

func (c *CachingExecutor) lookup(key string, call func() (string, error)) (string, error) {
	if out, ok := c.cache.Get(key); ok {
		return out, nil
	}
	out, err := call()
	if err != nil {
		return "", err
	}
	c.cache.Add(key, out)
	return out, nil
}

func cacheKey(stage Stage, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(stage))
	for _, part := range parts {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
