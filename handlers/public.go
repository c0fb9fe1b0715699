package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// ── Restaurants ─────────────────────────────────────────────────────────────

func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.Store.ListRestaurants()
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, restaurants)
}

func (h *Handler) FeaturedRestaurants(c *gin.Context) {
	restaurants, err := h.Store.FeaturedRestaurants()
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, restaurants)
}

func (h *Handler) SearchRestaurants(c *gin.Context) {
	restaurants, err := h.Store.SearchRestaurants(c.Query("q"))
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, restaurants)
}

func (h *Handler) GetRestaurant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.Store.RestaurantByID(id)
	if err != nil {
		failFor(c, err, "Restaurant not found")
		return
	}
	respond(c, http.StatusOK, restaurant)
}

// ── Foods ───────────────────────────────────────────────────────────────────

func (h *Handler) ListFoods(c *gin.Context) {
	foods, err := h.Store.ListFoods()
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, foods)
}

func (h *Handler) FeaturedFoods(c *gin.Context) {
	foods, err := h.Store.FeaturedFoods()
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, foods)
}

func (h *Handler) SearchFoods(c *gin.Context) {
	foods, err := h.Store.SearchFoods(c.Query("q"))
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, foods)
}

func (h *Handler) GetFood(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	food, err := h.Store.FoodByID(id)
	if err != nil {
		failFor(c, err, "Food not found")
		return
	}
	respond(c, http.StatusOK, food)
}

func (h *Handler) FoodsByRestaurant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	foods, err := h.Store.FoodsByRestaurant(id)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, foods)
}
