package site

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fazoacademy/learn/pkg/logger"
	"github.com/fazoacademy/learn/pkg/requestid"
	"github.com/fazoacademy/learn/pkg/static"
)

// Forms resolves a POST path to its form handler.
type Forms interface {
	Lookup(urlPath string) (http.Handler, bool)
}

// RouterOptions configures the site router.
type RouterOptions struct {
	Config Config
	Assets *static.Dir
	// Forms is optional. Without it every POST falls back to the entry document.
	Forms  Forms
	Logger *slog.Logger
}

type router struct {
	assets *static.Dir
	forms  Forms
	log    *slog.Logger
}

// Router creates the application handler.
func Router(opts RouterOptions) (chi.Router, error) {
	if opts.Assets == nil {
		return nil, ErrNilAssets
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	rt := &router{
		assets: opts.Assets,
		forms:  opts.Forms,
		log:    log.With(logger.Component("site")),
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.RealIP,
		accessLog(rt.log),
		middleware.Recoverer,
		apiCORS(opts.Config.CORSAllowedOrigins),
	)
	r.Handle("/*", http.HandlerFunc(rt.dispatch))

	return r, nil
}

func (rt *router) dispatch(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path

	if r.Method != http.MethodPost && urlPath != "/" {
		if rt.assets.ServeAsset(w, r, urlPath) {
			return
		}
	}

	if r.Method == http.MethodPost && rt.forms != nil {
		if h, ok := rt.forms.Lookup(urlPath); ok {
			h.ServeHTTP(w, r)
			return
		}
	}

	if err := rt.assets.ServeIndex(w, r); err != nil {
		rt.log.ErrorContext(r.Context(), "entry document unavailable",
			logger.Path(urlPath),
			logger.Error(err),
		)
		http.NotFound(w, r)
	}
}
