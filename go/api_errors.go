package shopserver

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	itemsapp "github.com/Apurer/go-gin-shop-api/internal/domains/items/application"
	itemports "github.com/Apurer/go-gin-shop-api/internal/domains/items/ports"
	membersapp "github.com/Apurer/go-gin-shop-api/internal/domains/members/application"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	orderworkflows "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-shop-api/internal/shared/errors"
)

// responder maps application errors onto Problem Details. Order matters:
// a missing member or item referenced by an order is a 404 like any other
// missing resource.
var responder = apierrors.NewChainedResponder("",
	apierrors.MapSentinel(apierrors.ErrNotFound,
		memberports.ErrNotFound,
		itemports.ErrNotFound,
		orderports.ErrNotFound,
		ordersapp.ErrMemberNotFound,
		ordersapp.ErrItemNotFound,
	),
	apierrors.MapSentinel(apierrors.ErrConflict,
		membersapp.ErrDuplicateMember,
		ordersapp.ErrOrderAlreadyDelivered,
		ordersapp.ErrConflict,
	),
	apierrors.MapSentinel(apierrors.ErrUnprocessable,
		ordersapp.ErrInsufficientStock,
		orderworkflows.ErrPlacementRejected,
	),
	apierrors.MapSentinel(apierrors.ErrValidation,
		membersapp.ErrInvalidInput,
		itemsapp.ErrInvalidInput,
		ordersapp.ErrInvalidInput,
	),
)

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondLookupError answers a failed lookup by id; a missing resource names
// itself in the problem so clients can tell which lookup failed.
func respondLookupError(c *gin.Context, resourceType string, id int64, err error, notFound ...error) {
	for _, target := range notFound {
		if errors.Is(err, target) {
			responder.Respond(c, apierrors.NewNotFoundProblem(resourceType, id))
			return
		}
	}
	respondServiceError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		responder.Respond(c, apierrors.NewValidationProblem(map[string]string{name: "must be a positive integer"}).
			WithDetail(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		responder.Respond(c, apierrors.NewValidationProblem(map[string]string{name: "must be an integer"}).
			WithDetail(name+" must be an integer"))
		return 0, false
	}
	return value, true
}

// respondJSON writes body after reporting the statement count of the request.
func respondJSON(c *gin.Context, status int, body any) {
	writeQueryCount(c)
	c.JSON(status, body)
}

func respondStatus(c *gin.Context, status int) {
	writeQueryCount(c)
	c.Status(status)
}
