package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/util"
)

var log = util.NewLogger("httpd")

// Site is the coordinator surface of the HTTP server
type Site interface {
	Coordinator
	Refresh(ctx context.Context) error
	Health() error
	Updated() time.Time
}

type route struct {
	Methods     []string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// HTTPd wraps an http.Server and adds the root router
type HTTPd struct {
	*http.Server
}

// ContextKey is the type of the request context keys
type ContextKey struct{}

var (
	// CtxVehicle holds the *api.Vehicle of vehicle routes
	CtxVehicle ContextKey
)

func vehicleHandlerContext(site Site) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := site.Vehicle(mux.Vars(r)["vin"])
			if err != nil {
				jsonError(w, http.StatusNotFound, err)
				return
			}

			ctx := context.WithValue(r.Context(), CtxVehicle, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewHTTPd creates HTTP server with configured routes for the vehicles
func NewHTTPd(url string, site Site, cmd api.Commander, hub *SocketHub, cache *util.Cache) *HTTPd {
	router := mux.NewRouter().StrictSlash(true)

	// websocket
	router.HandleFunc("/ws", socketHandler(hub))

	// api
	api := router.PathPrefix("/api").Subrouter()
	api.Use(jsonHandler)
	api.Use(handlers.CompressHandler)
	api.Use(handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Accept", "Accept-Language", "Content-Language", "Content-Type", "Origin",
		}),
	))

	// site api
	routes := map[string]route{
		"health":   {[]string{"GET"}, "/health", healthHandler(site)},
		"state":    {[]string{"GET"}, "/state", stateHandler(cache)},
		"vehicles": {[]string{"GET"}, "/vehicles", vehiclesHandler(site)},
		"refresh":  {[]string{"POST", "OPTIONS"}, "/refresh", refreshHandler(site)},
		"sessions": {[]string{"GET"}, "/sessions", sessionsHandler},
	}

	for _, r := range routes {
		api.Methods(r.Methods...).Path(r.Pattern).Handler(r.HandlerFunc)
	}

	// vehicle api
	api.Methods("GET").Path("/vehicles/{vin:[0-9a-zA-Z]+}").Handler(vehicleHandlerContext(site)(http.HandlerFunc(vehicleHandler)))

	vehicle := api.PathPrefix("/vehicles/{vin:[0-9a-zA-Z]+}").Subrouter()
	vehicle.Use(vehicleHandlerContext(site))

	routes = map[string]route{
		"image":         {[]string{"GET"}, "/image", imageHandler(site)},
		"charging":      {[]string{"POST", "OPTIONS"}, "/charging/{op:[a-z]+}", chargingHandler(cmd)},
		"climatisation": {[]string{"POST", "OPTIONS"}, "/climatisation/{op:[a-z]+}", climatisationHandler(cmd)},
		"targetsoc":     {[]string{"POST", "OPTIONS"}, "/targetsoc/{value:[0-9]+}", targetSoCHandler(cmd)},
		"targettemp":    {[]string{"POST", "OPTIONS"}, "/targettemp/{value:[0-9.]+}", targetTempHandler(cmd)},
		"chargespeed":   {[]string{"POST", "OPTIONS"}, "/chargespeed/{value:[a-z]+}", chargeSpeedHandler(cmd)},
		"buttons":       {[]string{"POST", "OPTIONS"}, "/buttons/{key:[a-z_]+}", buttonHandler(cmd)},
		"service":       {[]string{"POST", "OPTIONS"}, "/service/{name:[a-z_]+}", serviceHandler(cmd)},
	}

	for _, r := range routes {
		vehicle.Methods(r.Methods...).Path(r.Pattern).Handler(r.HandlerFunc)
	}

	srv := &HTTPd{
		Server: &http.Server{
			Addr:         url,
			Handler:      router,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  120 * time.Second,
			ErrorLog:     log.ERROR,
		},
	}
	srv.SetKeepAlivesEnabled(true)

	return srv
}

// Router returns the main router
func (s *HTTPd) Router() *mux.Router {
	return s.Handler.(*mux.Router)
}
