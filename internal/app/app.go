package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Filichkin/SA-RAG/internal/config"
	httpx "github.com/Filichkin/SA-RAG/internal/http"
	"github.com/Filichkin/SA-RAG/internal/http/handlers"
	"github.com/Filichkin/SA-RAG/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(container.AuthSvc)
	userH := handlers.NewUserHandlers(container.AuthSvc, container.UserRepo)
	jwtMW := middleware.NewAuthMW(container.AuthSvc)

	r := httpx.BuildRouter(authH, userH, jwtMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
