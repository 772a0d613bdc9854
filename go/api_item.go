package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	itemmapper "github.com/Apurer/go-gin-shop-api/internal/domains/items/adapters/http/mapper"
	itemports "github.com/Apurer/go-gin-shop-api/internal/domains/items/ports"
)

// ItemAPI wires HTTP transport with the catalogue service.
type ItemAPI struct {
	service itemports.Service
}

func NewItemAPI(service itemports.Service) ItemAPI {
	return ItemAPI{service: service}
}

// Post /api/v1/items
// Adds an item, a book unless kind says otherwise.
func (api *ItemAPI) CreateItem(c *gin.Context) {
	var payload itemmapper.Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := itemmapper.ToDomainItem(payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.SaveItem(c.Request.Context(), item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, itemmapper.FromDomainItem(saved))
}

// Get /api/v1/items
func (api *ItemAPI) ListItems(c *gin.Context) {
	items, err := api.service.FindItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, itemmapper.FromDomainItems(items))
}

// Get /api/v1/items/:id
func (api *ItemAPI) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := api.service.FindOne(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, "item", id, err, itemports.ErrNotFound)
		return
	}
	respondJSON(c, http.StatusOK, itemmapper.FromDomainItem(item))
}

// Put /api/v1/items/:id
// Changes name, price and stock of an item; the kind and book details stay.
func (api *ItemAPI) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload itemmapper.Item
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateItem(c.Request.Context(), id, payload.Name, payload.Price, payload.StockQuantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, itemmapper.FromDomainItem(updated))
}
