package middleware

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/core/failure"
	"github.com/sirupsen/logrus"
)

// Errors renders handler errors into the error envelope. Decorated errors
// keep their own response, typed core failures go through weberr.StatusOf,
// anything else becomes a bare 500.
func Errors(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			fields := logrus.Fields{
				"req_id":  ContextRequestID(ctx),
				"message": err,
			}
			if kind := failure.KindOf(err); kind != failure.Unknown {
				fields["kind"] = kind.String()
			}
			if f, ok := weberr.Fields(err); ok {
				for k, v := range f {
					fields[k] = v
				}
			}

			log.WithFields(fields).Error("ERROR")

			if body, code, ok := weberr.Response(err); ok {
				return web.Respond(ctx, w, body, code)
			}

			if body, code, ok := weberr.FromFailure(err); ok {
				return web.Respond(ctx, w, body, code)
			}

			er := weberr.ErrorResponse{
				Message:    http.StatusText(http.StatusInternalServerError),
				StatusCode: http.StatusInternalServerError,
			}
			return web.Respond(ctx, w, er, http.StatusInternalServerError)
		}
		return h
	}
	return m
}
