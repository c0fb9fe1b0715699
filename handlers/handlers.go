// Package handlers implements the HTTP API. Every response uses the
// {success, data, error} envelope the web frontend consumes.
package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/events"
	"food-ordering-api/lifecycle"
	"food-ordering-api/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Store  *store.Store
	Events events.Publisher
	Cfg    *config.Config
}

func New(st *store.Store, pub events.Publisher, cfg *config.Config) *Handler {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Handler{Store: st, Events: pub, Cfg: cfg}
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// failFor maps store errors to HTTP statuses.
func failFor(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, notFoundMsg)
		return
	}
	fail(c, http.StatusInternalServerError, err.Error())
}

// failStatus additionally maps rejected lifecycle transitions to 422.
func failStatus(c *gin.Context, err error) {
	if errors.Is(err, lifecycle.ErrInvalidTransition) {
		fail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	failFor(c, err, "Order not found")
}
