package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Result is what an endpoint returns; Wrapper writes it as JSON.
type Result struct {
	Status int
	Body   any
}

type Error struct {
	Message string `json:"message"`
}

type Func func(ctx *gin.Context) Result

func Wrapper(f Func) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		r := f(ctx)
		if r.Status == 0 {
			r.Status = http.StatusOK
		}
		if r.Body == nil || r.Status == http.StatusNoContent {
			ctx.Status(r.Status)
			return
		}
		ctx.JSON(r.Status, r.Body)
	}
}

func Fail(status int, err error) Result {
	return Result{Status: status, Body: Error{Message: err.Error()}}
}
