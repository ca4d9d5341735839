package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/platform/web/handler"
	"github.com/sandeepkv93/stickynotes/internal/storage"
)

var errMalformedBody = errors.New("malformed request body")

func Healthcheck(*gin.Context) handler.Result {
	return handler.Result{
		Status: http.StatusOK,
		Body:   map[string]string{"status": "ok"},
	}
}

func (a *API) ListGalleries(ctx *gin.Context) handler.Result {
	out := make([]GallerySummary, 0, len(a.galleries.Kinds()))
	for _, kind := range a.galleries.Kinds() {
		c, err := a.galleries.Get(kind)
		if err != nil {
			return a.fail(ctx, err)
		}
		notes, err := c.List(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		g := c.Gallery()
		out = append(out, GallerySummary{
			Kind:              g.Kind,
			Name:              g.Name,
			Categories:        g.Categories,
			SupportsReminders: g.SupportsReminders,
			AllowsImage:       g.AllowsImage,
			Notes:             len(notes),
		})
	}
	return handler.Result{Status: http.StatusOK, Body: out}
}

func (a *API) ListNotes(ctx *gin.Context) handler.Result {
	c, err := a.galleries.Lookup(ctx.Param("gallery"))
	if err != nil {
		return a.fail(ctx, err)
	}
	notes, err := c.List(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return handler.Result{Status: http.StatusOK, Body: notes}
}

func (a *API) CreateNote(ctx *gin.Context) handler.Result {
	c, err := a.galleries.Lookup(ctx.Param("gallery"))
	if err != nil {
		return a.fail(ctx, err)
	}
	var req NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return handler.Fail(http.StatusBadRequest, errMalformedBody)
	}
	d, err := req.toDraft(c.Gallery())
	if err != nil {
		return a.fail(ctx, err)
	}
	n, err := c.Add(ctx, d)
	if err != nil {
		return a.fail(ctx, err)
	}
	return handler.Result{Status: http.StatusCreated, Body: n}
}

func (a *API) GetNote(ctx *gin.Context) handler.Result {
	c, err := a.galleries.Lookup(ctx.Param("gallery"))
	if err != nil {
		return a.fail(ctx, err)
	}
	n, err := c.Get(ctx, ctx.Param("id"))
	if err != nil {
		return a.fail(ctx, err)
	}
	return handler.Result{Status: http.StatusOK, Body: n}
}

func (a *API) UpdateNote(ctx *gin.Context) handler.Result {
	c, err := a.galleries.Lookup(ctx.Param("gallery"))
	if err != nil {
		return a.fail(ctx, err)
	}
	var req NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return handler.Fail(http.StatusBadRequest, errMalformedBody)
	}
	d, err := req.toDraft(c.Gallery())
	if err != nil {
		return a.fail(ctx, err)
	}
	n, found, err := c.Update(ctx, ctx.Param("id"), d)
	switch {
	case err != nil:
		return a.fail(ctx, err)
	case !found:
		return a.fail(ctx, storage.ErrNotFound)
	default:
		return handler.Result{Status: http.StatusOK, Body: n}
	}
}

// DeleteNote answers 204 whether or not the note existed.
func (a *API) DeleteNote(ctx *gin.Context) handler.Result {
	c, err := a.galleries.Lookup(ctx.Param("gallery"))
	if err != nil {
		return a.fail(ctx, err)
	}
	if _, err := c.Delete(ctx, ctx.Param("id")); err != nil {
		return a.fail(ctx, err)
	}
	return handler.Result{Status: http.StatusNoContent}
}

func (a *API) ResetGallery(ctx *gin.Context) handler.Result {
	c, err := a.galleries.Lookup(ctx.Param("gallery"))
	if err != nil {
		return a.fail(ctx, err)
	}
	if err := c.Reset(ctx); err != nil {
		return a.fail(ctx, err)
	}
	return handler.Result{Status: http.StatusNoContent}
}

func (a *API) AttachImage(ctx *gin.Context) handler.Result {
	c, err := a.galleries.Lookup(ctx.Param("gallery"))
	if err != nil {
		return a.fail(ctx, err)
	}
	var req ImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return handler.Fail(http.StatusBadRequest, errMalformedBody)
	}
	var img *model.Image
	if len(req.Data) > 0 {
		img = req.toImage()
	}
	n, found, err := c.AttachImage(ctx, ctx.Param("id"), img)
	switch {
	case err != nil:
		return a.fail(ctx, err)
	case !found:
		return a.fail(ctx, storage.ErrNotFound)
	default:
		return handler.Result{Status: http.StatusOK, Body: n}
	}
}

func (a *API) SetReminders(ctx *gin.Context) handler.Result {
	var req RemindersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return handler.Fail(http.StatusBadRequest, errMalformedBody)
	}
	if err := a.galleries.SetRemindersEnabled(ctx, req.Enabled); err != nil {
		return a.fail(ctx, err)
	}
	return handler.Result{Status: http.StatusNoContent}
}

func (a *API) SetDefaults(ctx *gin.Context) handler.Result {
	var req DefaultsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return handler.Fail(http.StatusBadRequest, errMalformedBody)
	}
	color, err := model.ParseColor(req.Color)
	if err != nil {
		return a.fail(ctx, err)
	}
	if err := a.galleries.SetDefaults(color, req.Emoji); err != nil {
		return a.fail(ctx, err)
	}
	return handler.Result{Status: http.StatusNoContent}
}

func (a *API) fail(ctx *gin.Context, err error) handler.Result {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.log.Errorw("request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "ERROR", err)
	}
	return handler.Fail(status, err)
}
