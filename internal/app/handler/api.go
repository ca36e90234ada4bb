package handler

import (
	"errors"
	"net/http"

	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/pagination"
	"irrigation-dashboard/internal/app/screens"
	"irrigation-dashboard/internal/app/session"

	"github.com/gin-gonic/gin"
)

// respondJSON отдает модель экрана. Ошибка действия попадает в поле error,
// статус ответа соответствует ответу API.
func (h *ScreenHandler) respondJSON(ctx *gin.Context, sess *session.AuthSession, st *screens.State, actionErr error) {
	if gateway.IsUnauthenticated(actionErr) {
		h.expire(ctx, sess)
		return
	}

	view, err := st.View(ctx.Request.Context(), viewOptions(ctx))
	if gateway.IsUnauthenticated(err) {
		h.expire(ctx, sess)
		return
	}

	status := http.StatusOK
	if actionErr != nil && !errors.Is(actionErr, pagination.ErrNotLoaded) {
		view.Error = screens.Message(actionErr)
		status = statusFor(actionErr)
	}
	ctx.JSON(status, view)
}

func statusFor(err error) int {
	var fieldErr *screens.FieldError
	switch {
	case errors.As(err, &fieldErr),
		errors.Is(err, screens.ErrInvalidDate),
		errors.Is(err, screens.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, screens.ErrBlocked):
		return http.StatusConflict
	}
	if f, ok := gateway.AsFailure(err); ok {
		if f.Kind == gateway.KindHTTP && f.Status >= 400 && f.Status < 500 {
			return f.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}

// ListScreensJSON godoc
// @Summary List screens
// @Description Returns the dashboard screens in menu order
// @Tags Screens
// @Produce json
// @Success 200 {array} ds.ScreenLink
// @Failure 401 {object} map[string]string
// @Security SessionCookie
// @Router /api/screens [get]
func (h *ScreenHandler) ListScreensJSON(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.menu(""))
}

// GetScreenJSON godoc
// @Summary Get screen state
// @Description Applies selector, date range and sort filters from the query and returns the accumulated list. A filter change resets the list to page 1.
// @Tags Screens
// @Produce json
// @Param screen path string true "Screen name" Enums(measurements, activations, valves, controllers, stations, tariffs, energy, water, users)
// @Param start query string false "Range start, YYYY-MM-DDTHH:MM in America/Sao_Paulo"
// @Param end query string false "Range end, YYYY-MM-DDTHH:MM in America/Sao_Paulo"
// @Param sort query string false "asc or desc"
// @Param orderBy query string false "Column key used to order the accumulated rows"
// @Param dir query string false "asc or desc for orderBy"
// @Success 200 {object} ds.ScreenResponse
// @Failure 400 {object} ds.ScreenResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} ds.ScreenResponse
// @Security SessionCookie
// @Router /api/screens/{screen} [get]
func (h *ScreenHandler) GetScreenJSON(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}
	err := st.Apply(ctx.Request.Context(), ctx.Request.URL.Query())
	h.respondJSON(ctx, sess, st, err)
}

// MoreJSON godoc
// @Summary Load next page
// @Description Appends the next page to the accumulated list. On failure the list and the cursor stay unchanged.
// @Tags Screens
// @Produce json
// @Param screen path string true "Screen name"
// @Success 200 {object} ds.ScreenResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} ds.ScreenResponse
// @Security SessionCookie
// @Router /api/screens/{screen}/more [post]
func (h *ScreenHandler) MoreJSON(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}
	err := st.LoadMore(ctx.Request.Context())
	h.respondJSON(ctx, sess, st, err)
}

// RefreshJSON godoc
// @Summary Refresh screen
// @Description Fetches page 1 again for the current filters
// @Tags Screens
// @Produce json
// @Param screen path string true "Screen name"
// @Success 200 {object} ds.ScreenResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} ds.ScreenResponse
// @Failure 502 {object} ds.ScreenResponse
// @Security SessionCookie
// @Router /api/screens/{screen}/refresh [post]
func (h *ScreenHandler) RefreshJSON(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}
	err := st.Refresh(ctx.Request.Context())
	h.respondJSON(ctx, sess, st, err)
}
