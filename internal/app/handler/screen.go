package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"irrigation-dashboard/internal/app/ds"
	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/middleware"
	"irrigation-dashboard/internal/app/pagination"
	"irrigation-dashboard/internal/app/repository"
	"irrigation-dashboard/internal/app/screens"
	"irrigation-dashboard/internal/app/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ScreenHandler struct {
	catalog  *screens.Catalog
	api      screens.API
	settings screens.Settings
	sessions *session.Manager
	health   HealthChecker
	audits   *repository.AuditRepository
	photos   *repository.PhotoRepository
	cookie   string
	secure   bool
}

func NewScreenHandler(deps Deps) *ScreenHandler {
	h := &ScreenHandler{
		catalog:  deps.Catalog,
		api:      deps.API,
		settings: deps.Settings,
		sessions: deps.Sessions,
		health:   deps.Health,
		cookie:   deps.Config.SessionCookie,
		secure:   deps.Config.CookieSecure,
	}
	if deps.Repo != nil {
		h.audits = deps.Repo.Audit
		h.photos = deps.Repo.Photos
	}
	return h
}

func screenURL(name string) string {
	return "/screens/" + name
}

// screenPage - данные шаблона screen.html
type screenPage struct {
	User    string
	Menu    []ds.ScreenLink
	Health  gateway.Health
	Screen  ds.ScreenResponse
	Message string
	Failed  bool
}

// stateResult хранится в сессии вместо *screens.State, если состояние не создалось
type stateResult struct {
	state *screens.State
	err   error
}

// screenState находит экран по параметру пути и состояние экрана в сессии
func (h *ScreenHandler) screenState(ctx *gin.Context) (*session.AuthSession, *screens.State, bool) {
	sess, ok := middleware.GetSession(ctx)
	if !ok {
		middleware.Unauthenticated(ctx)
		return nil, nil, false
	}

	def, err := h.catalog.Get(ctx.Param("screen"))
	if err != nil {
		h.notFound(ctx)
		return nil, nil, false
	}

	res := sess.Screen(def.Name, func() any {
		st, err := screens.NewState(def, h.api, sess.Token(), h.settings)
		return &stateResult{state: st, err: err}
	}).(*stateResult)
	if res.err != nil {
		logrus.Error("Failed to create screen state: ", res.err)
		h.fail(ctx, http.StatusInternalServerError, "Erro inesperado. Tente novamente.")
		return nil, nil, false
	}
	return sess, res.state, true
}

func (h *ScreenHandler) notFound(ctx *gin.Context) {
	h.fail(ctx, http.StatusNotFound, "Tela não encontrada")
}

func (h *ScreenHandler) fail(ctx *gin.Context, status int, message string) {
	if middleware.IsAPI(ctx) {
		ctx.JSON(status, gin.H{"error": message})
		return
	}
	ctx.String(status, message)
}

// expire завершает сессию после ответа 401 от API: токен больше не действует
func (h *ScreenHandler) expire(ctx *gin.Context, sess *session.AuthSession) {
	logrus.Warnf("upstream rejected token of %s, closing session", sess.Email)
	if err := h.sessions.Logout(ctx.Request.Context(), sess.ID); err != nil {
		logrus.Error("Failed to delete session: ", err)
	}
	ctx.SetCookie(h.cookie, "", -1, "/", "", h.secure, true)
	middleware.Unauthenticated(ctx)
}

func viewOptions(ctx *gin.Context) screens.ViewOptions {
	return screens.ViewOptions{
		OrderBy: ctx.Query("orderBy"),
		Desc:    pagination.ParseSortOrder(ctx.Query("dir"), pagination.SortAsc) == pagination.SortDesc,
	}
}

func (h *ScreenHandler) menu(active string) []ds.ScreenLink {
	defs := h.catalog.All()
	links := make([]ds.ScreenLink, 0, len(defs))
	for _, d := range defs {
		links = append(links, ds.ScreenLink{Name: d.Name, Title: d.Title, Active: d.Name == active})
	}
	return links
}

// render показывает экран. actionErr - результат действия пользователя;
// ответ 401 от API закрывает сессию вместо показа экрана.
func (h *ScreenHandler) render(ctx *gin.Context, sess *session.AuthSession, st *screens.State, actionErr error, success string) {
	if gateway.IsUnauthenticated(actionErr) {
		h.expire(ctx, sess)
		return
	}

	view, err := st.View(ctx.Request.Context(), viewOptions(ctx))
	if gateway.IsUnauthenticated(err) {
		h.expire(ctx, sess)
		return
	}

	page := screenPage{
		User:    sess.Email,
		Menu:    h.menu(st.Definition().Name),
		Screen:  view,
		Message: success,
	}
	if h.health != nil {
		page.Health = h.health.Check(ctx.Request.Context())
	}
	if actionErr != nil && !errors.Is(actionErr, pagination.ErrNotLoaded) {
		page.Message = screens.Message(actionErr)
		page.Failed = true
	}

	ctx.HTML(http.StatusOK, "screen.html", page)
}

// Index открывает первый экран меню
func (h *ScreenHandler) Index(ctx *gin.Context) {
	all := h.catalog.All()
	if len(all) == 0 {
		h.notFound(ctx)
		return
	}
	ctx.Redirect(http.StatusSeeOther, screenURL(all[0].Name))
}

// Page применяет фильтры из query и показывает экран
func (h *ScreenHandler) Page(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}
	err := st.Apply(ctx.Request.Context(), ctx.Request.URL.Query())
	h.render(ctx, sess, st, err, "")
}

// More - кнопка "Carregar mais"
func (h *ScreenHandler) More(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}
	err := st.LoadMore(ctx.Request.Context())
	h.render(ctx, sess, st, err, "")
}

// Refresh - кнопка "Atualizar"
func (h *ScreenHandler) Refresh(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}
	err := st.Refresh(ctx.Request.Context())
	h.render(ctx, sess, st, err, "")
}

// CreateRecord создает запись из формы
func (h *ScreenHandler) CreateRecord(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}
	if err := ctx.Request.ParseForm(); err != nil {
		h.render(ctx, sess, st, &screens.FieldError{Field: "formulário", Message: "dados ilegíveis"}, "")
		return
	}

	created, err := st.Create(ctx.Request.Context(), ctx.Request.PostForm)
	h.audit(ctx, sess, st, "create", createdID(created), err)
	h.render(ctx, sess, st, err, "Registro criado.")
}

// UpdateRecord изменяет запись из формы
func (h *ScreenHandler) UpdateRecord(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}
	if err := ctx.Request.ParseForm(); err != nil {
		h.render(ctx, sess, st, &screens.FieldError{Field: "formulário", Message: "dados ilegíveis"}, "")
		return
	}

	id := ctx.Param("id")
	err := st.Update(ctx.Request.Context(), id, ctx.Request.PostForm)
	h.audit(ctx, sess, st, "update", id, err)
	h.render(ctx, sess, st, err, "Registro atualizado.")
}

// DeleteRecord удаляет запись
func (h *ScreenHandler) DeleteRecord(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")
	err := st.Delete(ctx.Request.Context(), id)
	if err == nil && st.Definition().Photo {
		if perr := h.photos.DeleteStationPhoto(ctx.Request.Context(), id); perr != nil {
			logrus.Error("Failed to delete station photo: ", perr)
		}
	}
	h.audit(ctx, sess, st, "delete", id, err)
	h.render(ctx, sess, st, err, "Registro removido.")
}

// audit пишет журнал; ошибка журнала не влияет на ответ
func (h *ScreenHandler) audit(ctx *gin.Context, sess *session.AuthSession, st *screens.State, action, resourceID string, err error) {
	if !h.audits.Enabled() {
		return
	}
	entry := ds.ActionLog{
		Actor:      sess.Email,
		Screen:     st.Definition().Name,
		Action:     action,
		ResourceID: resourceID,
		Outcome:    gateway.Outcome(err),
	}
	if logErr := h.audits.Log(ctx.Request.Context(), entry); logErr != nil {
		logrus.Error("Failed to write audit log: ", logErr)
	}
}

func createdID(raw json.RawMessage) string {
	var created struct {
		ID any `json:"id"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &created) != nil || created.ID == nil {
		return ""
	}
	if f, ok := created.ID.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprint(created.ID)
}
