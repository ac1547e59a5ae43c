package web

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/maxaizer/offer-board/internal/form"
	"github.com/maxaizer/offer-board/internal/logger"
	"github.com/maxaizer/offer-board/internal/selector"
	log "github.com/sirupsen/logrus"
	"net/http"
)

const (
	actionSubmit = "submit"
	actionReset  = "reset"
)

type handlers struct {
	references referenceLoader
	submitter  offerSubmitter
	dashboard  dashboardBuilder
	sessions   *sessionStore
	appName    string
}

func (h *handlers) register(engine *gin.Engine) {
	engine.GET("/", h.showForm)
	engine.POST("/", h.postForm)
	engine.GET("/add-data", h.showForm)
	engine.POST("/add-data", h.postForm)
	engine.GET("/view-data", h.showDashboard)
	engine.GET("/health", h.health)
}

func (h *handlers) showForm(c *gin.Context) {
	_, state := h.sessions.load(c)

	selectors := h.loadSelectors(c)
	defer selectors.Close()

	c.HTML(http.StatusOK, formTemplate, newFormPage(c.Request.URL.Path, state, selectors, nil))
}

func (h *handlers) postForm(c *gin.Context) {
	id, state := h.sessions.load(c)

	selectors := h.loadSelectors(c)
	defer selectors.Close()

	status := http.StatusOK
	var fieldErrors map[form.Field]string

	switch c.PostForm("action") {
	case actionReset:
		state = state.Reset()
	case actionSubmit:
		state, fieldErrors = applyForm(state, c.Request.PostForm, selectors)
		if len(fieldErrors) > 0 {
			status = http.StatusUnprocessableEntity
			break
		}
		state = h.submitter.Submit(c.Request.Context(), state)
	default:
		state, fieldErrors = applyForm(state, c.Request.PostForm, selectors)
		if len(fieldErrors) > 0 {
			status = http.StatusUnprocessableEntity
		}
	}

	h.sessions.save(id, state)
	c.HTML(status, formTemplate, newFormPage(c.Request.URL.Path, state, selectors, fieldErrors))
}

func (h *handlers) loadSelectors(c *gin.Context) selector.Set {
	selectors := selector.NewSet(h.references, models.ReferenceSources)
	selectors.Load(c.Request.Context())
	return selectors
}

func (h *handlers) showDashboard(c *gin.Context) {
	dashboard, err := h.dashboard.Dashboard(c.Request.Context())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
			Errorf("couldn't build dashboard: %v", err)
		c.HTML(http.StatusBadGateway, errorTemplate, errorPage{
			page:    page{Title: "Offer data unavailable", Path: c.Request.URL.Path},
			Message: "The offer data could not be loaded from the backend. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, dashboardTemplate, dashboardPage{
		page:      page{Title: "View Data", Path: c.Request.URL.Path},
		Dashboard: dashboard,
	})
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  h.appName,
		"version":  Version,
		"sessions": h.sessions.count(),
	})
}
