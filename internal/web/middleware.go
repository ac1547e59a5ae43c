package web

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/offer-board/internal/logger"
	log "github.com/sirupsen/logrus"
	"time"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})

		// handlers only push errors that happened while rendering a page
		for _, err := range c.Errors {
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeRender).Errorf("couldn't render page: %v", err.Err)
		}

		if c.Request.URL.Path == "/health" {
			entry.Debug("request served")
			return
		}
		entry.Info("request served")
	}
}
