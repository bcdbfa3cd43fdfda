package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/shop-api/api/middleware"
	"github.com/irsalhamdi/shop-api/api/web"
	"github.com/irsalhamdi/shop-api/api/weberr"
	"github.com/irsalhamdi/shop-api/core/auth"
	"github.com/irsalhamdi/shop-api/core/cart"
	"github.com/irsalhamdi/shop-api/core/category"
	"github.com/irsalhamdi/shop-api/core/order"
	"github.com/irsalhamdi/shop-api/core/payment"
	"github.com/irsalhamdi/shop-api/core/product"
	"github.com/irsalhamdi/shop-api/core/user"
	"github.com/irsalhamdi/shop-api/database"
	"github.com/irsalhamdi/shop-api/rate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Tokens     *auth.Tokens
	Limiter    *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Tokens)
	admin := auth.Admin(cfg.Tokens)

	carts := cart.NewService(cfg.Log, cart.NewStore(cfg.DB), product.NewCatalog(cfg.DB))

	a.Handle(http.MethodGet, "/health", handleHealth(cfg.DB))

	a.Handle(http.MethodPost, "/auth/register", user.HandleRegister(cfg.DB))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Tokens))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)
	a.Handle(http.MethodGet, "/users/{id}", user.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodGet, "/users", user.HandleList(cfg.DB), admin)
	a.Handle(http.MethodPost, "/users", user.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/users/{id}", user.HandleUpdate(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/users/{id}", user.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/categories", category.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/categories/{id}", category.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/categories", category.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/categories/{id}", category.HandleUpdate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/categories/{id}", category.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/products/{id}", product.HandleUpdate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/products/{id}", product.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(carts), authen)
	a.Handle(http.MethodPost, "/cart", cart.HandleCreateItem(carts), authen)
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(carts), authen)
	a.Handle(http.MethodPut, "/cart/items/{item_id}", cart.HandleUpdateItem(carts), authen)
	a.Handle(http.MethodDelete, "/cart/items/{item_id}", cart.HandleDeleteItem(carts), authen)

	a.Handle(http.MethodGet, "/orders", order.HandleList(cfg.DB), authen)
	a.Handle(http.MethodGet, "/orders/{id}", order.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodGet, "/orders/{id}/payments", payment.HandleListByOrder(cfg.DB), authen)
	a.Handle(http.MethodPost, "/orders", order.HandleCreate(cfg.DB), authen)
	a.Handle(http.MethodPut, "/orders/{id}", order.HandleUpdateStatus(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/orders/{id}", order.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodGet, "/payments/{id}", payment.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodPost, "/payments", payment.HandleCreate(cfg.DB), authen)
	a.Handle(http.MethodPut, "/payments/{id}", payment.HandleUpdateStatus(cfg.DB), admin)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}

func handleHealth(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := database.StatusCheck(ctx, db); err != nil {
			return weberr.NewError(err, "database not ready", http.StatusServiceUnavailable)
		}

		status := struct {
			Status string `json:"status"`
		}{"ok"}
		return web.Success(ctx, w, status, "healthy", http.StatusOK)
	}
}
