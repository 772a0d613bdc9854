package shopserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	membermapper "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/http/mapper"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

// MemberAPI wires HTTP transport with the members service.
type MemberAPI struct {
	service memberports.Service
}

func NewMemberAPI(service memberports.Service) MemberAPI {
	return MemberAPI{service: service}
}

type createMemberRequest struct {
	Name    string               `json:"name"`
	Address membermapper.Address `json:"address"`
}

type createMemberResponse struct {
	ID int64 `json:"id"`
}

type updateMemberRequest struct {
	Name string `json:"name"`
}

type updateMemberResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

var errNameRequired = errors.New("name is required")

// Post /api/v1/members
// Joins a member from the full entity body.
func (api *MemberAPI) JoinV1(c *gin.Context) {
	var payload membermapper.Member
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	api.join(c, payload)
}

// Post /api/v2/members
// Joins a member from a request DTO; the name is required.
func (api *MemberAPI) JoinV2(c *gin.Context) {
	var payload createMemberRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		respondBadRequest(c, errNameRequired)
		return
	}
	api.join(c, membermapper.Member{Name: payload.Name, Address: payload.Address})
}

func (api *MemberAPI) join(c *gin.Context, payload membermapper.Member) {
	member, err := membermapper.ToDomainMember(payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	id, err := api.service.Join(c.Request.Context(), member)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, createMemberResponse{ID: id})
}

// Get /api/v1/members
// Lists members as entities.
func (api *MemberAPI) ListV1(c *gin.Context) {
	members, err := api.service.FindMembers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, membermapper.FromDomainMembers(members))
}

// Get /api/v2/members
// Lists member names wrapped in a result envelope.
func (api *MemberAPI) ListV2(c *gin.Context) {
	members, err := api.service.FindMembers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, projection.NewResult(membermapper.ToMemberNames(members)))
}

// Put /api/v2/members/:id
// Renames a member.
func (api *MemberAPI) UpdateV2(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload updateMemberRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	member, err := api.service.Update(c.Request.Context(), id, payload.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, updateMemberResponse{ID: member.ID, Name: member.Name})
}
