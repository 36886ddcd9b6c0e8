package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/commerce-service/internal/domain/dto"
)

// fieldLister is satisfied by every list query embedding dto.ListQuery.
type fieldLister interface {
	FieldList() []string
}

// crudService is the operation set shared by the catalog, promotion,
// and content services. Each type parameter pins one resource's model,
// list query, and request shapes.
type crudService[T, LQ, CR, UR any] interface {
	List(ctx context.Context, q *LQ) (*dto.ListResult[T], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*T, error)
	Create(ctx context.Context, req *CR) (*T, error)
	Update(ctx context.Context, id string, req *UR) (*T, error)
	ChangeStatus(ctx context.Context, id string, isActive bool) (*T, error)
	Delete(ctx context.Context, id string) error
}

// crudHandler adapts a crudService to gin routes.
type crudHandler[T, LQ, CR, UR any] struct {
	svc      crudService[T, LQ, CR, UR]
	singular string
	plural   string
}

func newCRUDHandler[T, LQ, CR, UR any](svc crudService[T, LQ, CR, UR], singular, plural string) *crudHandler[T, LQ, CR, UR] {
	return &crudHandler[T, LQ, CR, UR]{svc: svc, singular: singular, plural: plural}
}

func (h *crudHandler[T, LQ, CR, UR]) List(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[LQ](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	result, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	payload := any(result)
	if fl, ok := any(q).(fieldLister); ok {
		payload = dto.ProjectList(result, fl.FieldList())
	}
	resp.OK(h.plural+" retrieved", payload)
}

func (h *crudHandler[T, LQ, CR, UR]) GetByID(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.GetQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	doc, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK(h.singular+" retrieved", dto.Project(doc, q.FieldList()))
}

func (h *crudHandler[T, LQ, CR, UR]) Create(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[CR](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	doc, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.Created(h.singular+" created", doc)
}

func (h *crudHandler[T, LQ, CR, UR]) Update(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[UR](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	doc, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK(h.singular+" updated", doc)
}

func (h *crudHandler[T, LQ, CR, UR]) ChangeStatus(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.ChangeStatusRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	doc, err := h.svc.ChangeStatus(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK(h.singular+" status updated", doc)
}

func (h *crudHandler[T, LQ, CR, UR]) Delete(c *gin.Context) {
	resp := NewResponseBuilder(c)
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.FromError(err)
		return
	}
	resp.OK(h.singular+" deleted", nil)
}

// register wires the standard CRUD routes. Reads go on the public
// group, writes on the admin group.
func (h *crudHandler[T, LQ, CR, UR]) register(public, admin *gin.RouterGroup, path string) {
	public.GET("/"+path, h.List)
	public.GET("/"+path+"/:id", h.GetByID)
	admin.POST("/"+path, h.Create)
	admin.PUT("/"+path+"/:id", h.Update)
	admin.PATCH("/"+path+"/:id/status", h.ChangeStatus)
	admin.DELETE("/"+path+"/:id", h.Delete)
}
