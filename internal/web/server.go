// Package web serves the offer form and the dashboard pages.
package web

import (
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/offer-board/internal/config"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/maxaizer/offer-board/internal/form"
	"github.com/maxaizer/offer-board/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strconv"
	"time"
)

var Version = "dev"

type referenceLoader interface {
	GetReferenceItems(ctx context.Context, path string) ([]models.ReferenceItem, error)
}

type offerSubmitter interface {
	Submit(ctx context.Context, state form.State) form.State
}

type dashboardBuilder interface {
	Dashboard(ctx context.Context) (*services.Dashboard, error)
}

type Dependencies struct {
	References referenceLoader
	Submitter  offerSubmitter
	Dashboard  dashboardBuilder
}

type Server struct {
	engine *gin.Engine
	http   *http.Server
}

func NewServer(cfg config.WebConfig, appName string, deps Dependencies) (*Server, error) {

	if deps.References == nil {
		return nil, errors.New("reference loader is nil")
	}
	if deps.Submitter == nil {
		return nil, errors.New("offer submitter is nil")
	}
	if deps.Dashboard == nil {
		return nil, errors.New("dashboard builder is nil")
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	if !log.IsLevelEnabled(log.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = log.StandardLogger().WriterLevel(log.DebugLevel)
	gin.DefaultErrorWriter = log.StandardLogger().WriterLevel(log.ErrorLevel)

	h := &handlers{
		references: deps.References,
		submitter:  deps.Submitter,
		dashboard:  deps.Dashboard,
		sessions:   newSessionStore(cfg.SessionTTL),
		appName:    appName,
	}

	engine := gin.New()
	engine.Use(requestLogger(), gin.Recovery())
	engine.SetHTMLTemplate(templates)
	h.register(engine)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.Port),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks until the server is shut down.
func (s *Server) Run() error {
	log.Infof("web server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
