package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
)

// Panics recovers from a panic in the handler chain and turns it into an
// error for the Errors middleware to report.
func Panics() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {

			defer func() {
				if rec := recover(); rec != nil {
					trace := debug.Stack()
					err = weberr.Wrap(
						fmt.Errorf("PANIC [%v]", rec),
						weberr.WithFields(map[string]interface{}{"trace": string(trace)}),
					)
				}
			}()

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
