package middleware

import "github.com/gin-gonic/gin"

// NoCache forbids client-side caching of API responses. Monitors poll
// the log every few seconds; a cached snapshot would show checked-out
// users as still present.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "-1")
		c.Next()
	}
}
