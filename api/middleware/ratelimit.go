package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/rate"
)

// RateLimit rejects requests from a client address once its limiter runs dry.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !lim.Check(ip) {
				return weberr.TooManyRequests(errors.New("too many requests"), weberr.WithFields(map[string]interface{}{
					"client": ip,
				}))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
