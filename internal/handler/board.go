package handler

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jsquie/eighty-six/internal/auth"
	"github.com/jsquie/eighty-six/internal/middleware"
	"github.com/jsquie/eighty-six/internal/model"
	"github.com/jsquie/eighty-six/internal/service"
	"github.com/jsquie/eighty-six/internal/session"
	"github.com/jsquie/eighty-six/internal/web"
)

// BoardHandler drives the board render cycle: reconcile auth, apply any
// pending mutation, query, render.
type BoardHandler struct {
	board      *service.BoardService
	reconciler *auth.Reconciler
	sessions   *session.Manager
	renderer   *web.Renderer
	// oauthURL is the provider redirect link for the login page; empty
	// unless the board runs in oauth mode.
	oauthURL string
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(
	board *service.BoardService,
	reconciler *auth.Reconciler,
	sessions *session.Manager,
	renderer *web.Renderer,
	oauthURL string,
) *BoardHandler {
	return &BoardHandler{
		board:      board,
		reconciler: reconciler,
		sessions:   sessions,
		renderer:   renderer,
		oauthURL:   oauthURL,
	}
}

// ShowBoard handles GET /
func (h *BoardHandler) ShowBoard(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	result := h.reconciler.Reconcile(w, r, sess)
	h.save(r, sess)

	switch result.Outcome {
	case auth.OutcomeRedirect:
		http.Redirect(w, r, result.RedirectURL, http.StatusSeeOther)
		return
	case auth.OutcomeLoginRequired:
		h.renderer.Login(w, web.LoginPage{Error: result.Message, OAuthURL: h.oauthURL})
		return
	}

	var flash string

	// Apply the pending mutation before the query re-runs, so a freshly
	// resolved item is excluded from this render's list.
	if sess.Pending != nil {
		if err := h.board.ApplyPending(r.Context(), sess); err != nil {
			flash = fmt.Sprintf("Error: %v", err)
		}
		h.save(r, sess)
	}

	sort, err := model.ParseSortField(r.URL.Query().Get("sort"))
	if err != nil {
		flash = fmt.Sprintf("Error: %v", err)
		sort = model.DefaultSortField
	}

	items, err := h.board.ListUnresolved(r.Context(), sort)
	if err != nil {
		// The query failed; surface one message and render what we have.
		flash = fmt.Sprintf("Error: %v", err)
		items = []model.Item{}
	}

	strategy := h.reconciler.Strategy()
	h.renderer.Board(w, web.BoardPage{
		Items:       items,
		Sort:        sort,
		SortFields:  []model.SortField{model.SortByLocation, model.SortByItemName, model.SortByCreatedAt, model.SortByCreatedBy},
		User:        sess.User,
		SignedIn:    sess.Active(),
		AuthEnabled: !strategy.AllowAnonymous(),
		Flash:       flash,
	})
}

// HandleAction handles POST /board/actions: it records the (action, item id)
// event into the session and redirects; the mutation is applied at the
// start of the next render.
func (h *BoardHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	action, err := model.ParseBoardAction(r.PostFormValue("action"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	itemID, err := strconv.ParseInt(r.PostFormValue("item_id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess := middleware.GetSession(r.Context())
	h.board.RecordAction(sess, action, itemID)
	h.save(r, sess)

	http.Redirect(w, r, boardURL(r.PostFormValue("sort")), http.StatusSeeOther)
}

// HandleLogin handles POST /login with email+password fields.
func (h *BoardHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Login(w, web.LoginPage{Error: "invalid form submission", OAuthURL: h.oauthURL})
		return
	}

	sess := middleware.GetSession(r.Context())
	err := h.reconciler.Login(w, r, sess, r.PostFormValue("email"), r.PostFormValue("password"))
	h.save(r, sess)

	if err != nil {
		h.renderer.Login(w, web.LoginPage{Error: err.Error(), OAuthURL: h.oauthURL})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout handles POST /logout.
func (h *BoardHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	h.reconciler.Logout(w, r, sess)
	h.save(r, sess)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// OAuthCallback handles GET /auth/callback, where the provider lands with
// the one-time authorization code. The reconciler consumes the code; the
// user ends up on the board with the code stripped from the URL.
func (h *BoardHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	result := h.reconciler.Reconcile(w, r, sess)
	h.save(r, sess)

	switch result.Outcome {
	case auth.OutcomeAuthenticated, auth.OutcomeRedirect:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		h.renderer.Login(w, web.LoginPage{Error: result.Message, OAuthURL: h.oauthURL})
	}
}

// save persists the session; a store failure is logged once and the render
// continues.
func (h *BoardHandler) save(r *http.Request, sess *model.Session) {
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		log.Printf("[BoardHandler] Failed to save session: %v", err)
	}
}

// boardURL builds the board path preserving a sort parameter.
func boardURL(sort string) string {
	if sort == "" {
		return "/"
	}
	return "/?sort=" + url.QueryEscape(sort)
}
