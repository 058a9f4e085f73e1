package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetCacheSingleton(t *testing.T) {
	const workers = 16

	instances := make([]*GlobalCache, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			instances[i] = GetCache()
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, instances[0], instances[i], "every caller sees one cache")
	}
}

func TestCacheSetGetDelete(t *testing.T) {
	c := GetCache()

	c.Set("k", "v", time.Minute)
	assert.Equal(t, "v", c.Get("k"))

	c.Delete("k")
	assert.Nil(t, c.Get("k"))
}

func TestCacheExpiry(t *testing.T) {
	c := GetCache()

	c.Set("expired", "v", -time.Second)
	assert.Nil(t, c.Get("expired"), "an expired entry reads as absent")
}
