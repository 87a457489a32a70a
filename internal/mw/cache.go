package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

// teeWriter copies the response body while it is written so a successful
// response can be cached after the handler runs.
type teeWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w teeWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w teeWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache is a middleware for in-memory caching of GET requests, keyed by
// request URI. Only 2xx responses are stored.
func Cache(store *cache.Cache, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if hit, found := store.Get(key); found {
			cached := hit.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		tw := &teeWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = tw

		c.Next()

		if tw.Status() >= 200 && tw.Status() < 300 {
			store.Set(key, cachedResponse{
				status:  tw.Status(),
				headers: tw.Header().Clone(),
				body:    tw.body.Bytes(),
			}, duration)
		}
	}
}
