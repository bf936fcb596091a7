package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/facilities-pm/backend/internal/cache"
)

const (
	CacheHeader = "X-Cache"
	// SkipCacheKey is set on the gin context by handlers whose response must not be stored.
	SkipCacheKey = "cache.skip"
)

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache serves GET responses from store when present and stores successful
// ones. A nil store disables caching.
func Cache(store cache.Cache, l zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := cache.Key(c.FullPath(), c.Request.URL.Query())
		ctx := c.Request.Context()

		if b, ok, err := store.Get(ctx, key); err != nil {
			l.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if ok {
			c.Header(CacheHeader, "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", b)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header(CacheHeader, "MISS")
		c.Next()

		if c.Writer.Status() != http.StatusOK || rec.body.Len() == 0 || c.GetBool(SkipCacheKey) {
			return
		}
		if err := store.Set(ctx, key, rec.body.Bytes()); err != nil {
			l.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
}
