package bootstrap

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/clientdesk/clientdesk-backend/internal/api/http"
	apimiddleware "github.com/clientdesk/clientdesk-backend/internal/api/http/middleware"
	authdomain "github.com/clientdesk/clientdesk-backend/internal/auth/domain"
	authhttp "github.com/clientdesk/clientdesk-backend/internal/auth/http"
	authmiddleware "github.com/clientdesk/clientdesk-backend/internal/auth/middleware"
	clienthttp "github.com/clientdesk/clientdesk-backend/internal/clients/http"
	clientrepo "github.com/clientdesk/clientdesk-backend/internal/clients/repository"
	clientservice "github.com/clientdesk/clientdesk-backend/internal/clients/service"
	projecthttp "github.com/clientdesk/clientdesk-backend/internal/projects/http"
	projectrepo "github.com/clientdesk/clientdesk-backend/internal/projects/repository"
	projectservice "github.com/clientdesk/clientdesk-backend/internal/projects/service"
	userrepo "github.com/clientdesk/clientdesk-backend/internal/users/repository"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	DB             *sql.DB
	Redis          *redis.Client
	Authenticator  authdomain.Authenticator
	Revoker        authdomain.TokenRevoker
	AllowedOrigins []string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimiddleware.RequestIDMiddleware())

	if len(dep.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = dep.AllowedOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", apimiddleware.HeaderRequestID}
		corsConfig.ExposeHeaders = []string{apimiddleware.HeaderRequestID}
		corsConfig.MaxAge = 12 * time.Hour
		r.Use(cors.New(corsConfig))
	}

	var db httpapi.DBPinger
	if dep.DB != nil {
		db = dep.DB
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, db, dep.Redis)
	healthHandler.RegisterRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	userRepo := userrepo.NewUserRepository(dep.DB)
	clientRepo := clientrepo.NewClientRepository(dep.DB)
	projectRepo := projectrepo.NewProjectRepository(dep.DB)

	api := r.Group("/api/v1")
	api.Use(authmiddleware.RequireUser(dep.Authenticator))

	authhttp.New(dep.Revoker).Register(api.Group("/auth"))

	clientSvc := clientservice.NewClientService(clientRepo, projectRepo)
	clienthttp.New(clientSvc).Register(api.Group("/clients"))

	projectSvc := projectservice.NewProjectService(projectRepo, clientRepo, userRepo)
	projecthttp.New(projectSvc).Register(api.Group("/projects"))

	return r
}
