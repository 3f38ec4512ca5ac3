package middleware

import (
	"time"

	"foodshare/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware CORS from config; a "*" origin allows every origin
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.CORS.AllowMethods,
		AllowHeaders:     cfg.CORS.AllowHeaders,
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowMethods) == 0 {
		corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(corsCfg.AllowHeaders) == 0 {
		corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", RequestIDHeader}
	}

	origins := make([]string, 0, len(cfg.CORS.AllowOrigins))
	for _, origin := range cfg.CORS.AllowOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			origins = nil
			break
		}
		origins = append(origins, origin)
	}
	if !corsCfg.AllowAllOrigins {
		if len(origins) == 0 {
			corsCfg.AllowAllOrigins = true
		} else {
			corsCfg.AllowOrigins = origins
		}
	}

	return cors.New(corsCfg)
}
