// Plant registry HTTP handlers.
//
//   - POST   /plantes                       (create, admin)
//   - GET    /plantes                       (list, ETag support)
//   - GET    /plantes/{id}
//   - GET    /plantes/categorie/{categorie} (search)
//   - PUT    /plantes/{id}                  (partial update, admin)
//   - DELETE /plantes/{id}                  (admin)
//   - DELETE /plantes                       (bulk, admin)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-irrigation-backend/internal/services"
)

// PlantRequest is the plant payload. Create requires every field; update
// applies only the fields that are present.
type PlantRequest struct {
	Name                 *string  `json:"nom"         example:"Basilic"`
	Category             *string  `json:"categorie"   example:"Aromatique"`
	RequiredSoilHumidity *float64 `json:"humiditeSol" example:"40"`
	MaxWaterVolume       *float64 `json:"volumeEau"   example:"1.5"`
	RequiredLight        *float64 `json:"luminosite"  example:"300"`
}

func (r PlantRequest) input() services.PlantInput {
	return services.PlantInput{
		Name:                 r.Name,
		Category:             r.Category,
		RequiredSoilHumidity: r.RequiredSoilHumidity,
		MaxWaterVolume:       r.MaxWaterVolume,
		RequiredLight:        r.RequiredLight,
	}
}

// BulkDeleteRequest lists plant ids to delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" example:"6f1c...,0a9e..."`
}

// BulkDeleteResponse reports how many plants were removed.
type BulkDeleteResponse struct {
	Deleted int64 `json:"supprimees"`
}

// CreatePlant godoc
// @ID          createPlant
// @Summary     Create a plant profile
// @Tags        Plants
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.PlantRequest  true  "Plant profile"
// @Success     201  {object}  handlers.Envelope{data=domain.Plant}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     403  {object}  handlers.ErrorResponse
// @Router      /plantes [post]
func (h *Handlers) CreatePlant(c *gin.Context) {
	var req PlantRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.d.Plants.Create(c.Request.Context(), req.input())
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusCreated, "plant created", p)
}

// ListPlants godoc
// @ID          listPlants
// @Summary     List plants sorted by name
// @Tags        Plants
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object}  handlers.Envelope{data=[]domain.Plant}
// @Success     304  {string}  string  "Not Modified"
// @Router      /plantes [get]
func (h *Handlers) ListPlants(c *gin.Context) {
	ctx := c.Request.Context()
	if h.d.Versions != nil {
		if n, last, err := h.d.Versions.PlantsVersion(ctx); err == nil && notModified(c, "plants", "all", n, last) {
			return
		}
	}
	items, err := h.d.Plants.List(ctx)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "plants", items)
}

// GetPlant godoc
// @ID          getPlant
// @Summary     Get a plant
// @Tags        Plants
// @Produce     json
// @Param       id  path  string  true  "Plant ID"  format(uuid)
// @Success     200  {object}  handlers.Envelope{data=domain.Plant}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /plantes/{id} [get]
func (h *Handlers) GetPlant(c *gin.Context) {
	p, err := h.d.Plants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "plant", p)
}

// SearchPlants godoc
// @ID          searchPlantsByCategory
// @Summary     Search plants by category (case-insensitive substring)
// @Tags        Plants
// @Produce     json
// @Param       categorie  path  string  true  "Category fragment"
// @Success     200  {object}  handlers.Envelope{data=[]domain.Plant}
// @Router      /plantes/categorie/{categorie} [get]
func (h *Handlers) SearchPlants(c *gin.Context) {
	items, err := h.d.Plants.SearchByCategory(c.Request.Context(), c.Param("categorie"))
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "plants", items)
}

// UpdatePlant godoc
// @ID          updatePlant
// @Summary     Update a plant profile
// @Tags        Plants
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string                 true  "Plant ID"  format(uuid)
// @Param       body  body  handlers.PlantRequest  true  "Fields to change"
// @Success     200  {object}  handlers.Envelope{data=domain.Plant}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /plantes/{id} [put]
func (h *Handlers) UpdatePlant(c *gin.Context) {
	var req PlantRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.d.Plants.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "plant updated", p)
}

// DeletePlant godoc
// @ID          deletePlant
// @Summary     Delete a plant
// @Tags        Plants
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  string  true  "Plant ID"  format(uuid)
// @Success     200  {object}  handlers.Envelope
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /plantes/{id} [delete]
func (h *Handlers) DeletePlant(c *gin.Context) {
	if err := h.d.Plants.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "plant deleted", nil)
}

// DeletePlants godoc
// @ID          deletePlants
// @Summary     Delete several plants
// @Tags        Plants
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.BulkDeleteRequest  true  "Plant ids"
// @Success     200  {object}  handlers.Envelope{data=handlers.BulkDeleteResponse}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /plantes [delete]
func (h *Handlers) DeletePlants(c *gin.Context) {
	var req BulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.d.Plants.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		failFromError(c, err)
		return
	}
	ok(c, http.StatusOK, "plants deleted", BulkDeleteResponse{Deleted: n})
}
