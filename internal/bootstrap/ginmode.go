package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SetGinMode switches gin to release mode in production and sends gin's own
// output through the process logger.
func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = log.Logger
	gin.DefaultErrorWriter = log.Logger
}
