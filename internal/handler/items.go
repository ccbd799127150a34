package handler

import (
	"net/http"
	"strconv"

	"github.com/jsquie/eighty-six/internal/middleware"
	"github.com/jsquie/eighty-six/internal/model"
	"github.com/jsquie/eighty-six/internal/service"
	"github.com/jsquie/eighty-six/pkg/apierror"
	"github.com/jsquie/eighty-six/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ItemHandler exposes the board operations as a JSON API.
type ItemHandler struct {
	board *service.BoardService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(board *service.BoardService) *ItemHandler {
	return &ItemHandler{board: board}
}

// ListItems handles GET /api/v1/items?sort=
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	sort, err := model.ParseSortField(r.URL.Query().Get("sort"))
	if err != nil {
		response.Error(w, apierror.BadRequest(err.Error()))
		return
	}

	items, err := h.board.ListUnresolved(r.Context(), sort)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"items": items,
		"sort":  sort,
		"count": len(items),
	})
}

// ResolveItem handles POST /api/v1/items/{id}/resolve
func (h *ItemHandler) ResolveItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		response.Error(w, apierror.BadRequest("invalid item id"))
		return
	}

	resolvedBy := "anonymous"
	if sess := middleware.GetSession(r.Context()); sess != nil {
		resolvedBy = sess.Identity()
	}

	if err := h.board.Resolve(r.Context(), id, resolvedBy); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"status":      "resolved",
		"id":          id,
		"resolved_by": resolvedBy,
	})
}

// DeleteItem handles DELETE /api/v1/items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		response.Error(w, apierror.BadRequest("invalid item id"))
		return
	}

	if err := h.board.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}

func itemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
