package handler

import (
	"errors"
	"net/http"

	"irrigation-dashboard/internal/app/repository"
	"irrigation-dashboard/internal/app/screens"
	"irrigation-dashboard/internal/app/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UploadPhoto заменяет фотографию станции мониторинга
func (h *ScreenHandler) UploadPhoto(ctx *gin.Context) {
	sess, st, ok := h.screenState(ctx)
	if !ok {
		return
	}
	if !st.Definition().Photo {
		h.notFound(ctx)
		return
	}

	id := ctx.Param("id")
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		h.render(ctx, sess, st, &screens.FieldError{Field: "Foto", Message: "arquivo não enviado"}, "")
		return
	}

	err = h.photos.PutStationPhoto(ctx.Request.Context(), id, fileHeader)
	h.audit(ctx, sess, st, "photo", id, err)
	if err != nil {
		logrus.Error("Failed to upload station photo: ", err)
		h.renderPhotoError(ctx, sess, st, err)
		return
	}
	h.render(ctx, sess, st, nil, "Foto atualizada.")
}

func (h *ScreenHandler) renderPhotoError(ctx *gin.Context, sess *session.AuthSession, st *screens.State, err error) {
	var message string
	switch {
	case errors.Is(err, repository.ErrPhotosDisabled):
		message = "armazenamento de fotos não configurado"
	case errors.Is(err, repository.ErrPhotoTooLarge):
		message = "arquivo maior que 5 MB"
	case errors.Is(err, repository.ErrNotAnImage):
		message = "envie uma imagem JPG, PNG, GIF ou WEBP"
	default:
		message = "falha ao salvar"
	}
	h.render(ctx, sess, st, &screens.FieldError{Field: "Foto", Message: message}, "")
}

// GetPhoto отдает фотографию станции
func (h *ScreenHandler) GetPhoto(ctx *gin.Context) {
	photo, err := h.photos.GetStationPhoto(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) || errors.Is(err, repository.ErrPhotosDisabled) {
			ctx.Status(http.StatusNotFound)
			return
		}
		logrus.Error("Failed to read station photo: ", err)
		ctx.Status(http.StatusInternalServerError)
		return
	}
	defer photo.Body.Close()

	ctx.Header("Cache-Control", "private, max-age=60")
	ctx.DataFromReader(http.StatusOK, photo.Size, photo.ContentType, photo.Body, nil)
}
