package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core/storage"
	"github.com/vwid-io/vwid/util"
)

func jsonHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		h.ServeHTTP(w, r)
	})
}

func jsonWrite(w http.ResponseWriter, content interface{}) {
	if err := json.NewEncoder(w).Encode(content); err != nil {
		log.ERROR.Printf("httpd: failed to encode JSON: %v", err)
	}
}

func jsonResult(w http.ResponseWriter, res interface{}) {
	jsonWrite(w, map[string]interface{}{"result": res})
}

func jsonError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	jsonWrite(w, map[string]interface{}{"error": err.Error()})
}

// errorStatus maps command errors to http status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, api.ErrVehicleNotFound):
		return http.StatusNotFound
	case errors.Is(err, api.ErrNotSupported):
		return http.StatusNotImplemented
	case errors.Is(err, api.ErrInvalidOperation), errors.Is(err, api.ErrOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func commandResult(w http.ResponseWriter, err error) {
	if err != nil {
		jsonError(w, errorStatus(err), err)
		return
	}

	jsonResult(w, "ok")
}

func socketHandler(hub *SocketHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ServeWebsocket(hub, w, r)
	}
}

// healthHandler reports refresh staleness
func healthHandler(site Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := site.Health(); err != nil {
			jsonError(w, http.StatusServiceUnavailable, err)
			return
		}

		jsonResult(w, site.Updated())
	}
}

// stateHandler returns the cached values
func stateHandler(cache *util.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := make(map[string]interface{})
		vehicles := make(map[string]map[string]interface{})

		for _, p := range cache.All() {
			if p.Vehicle == "" {
				res[p.Key] = p.Val
				continue
			}

			if _, ok := vehicles[p.Vehicle]; !ok {
				vehicles[p.Vehicle] = make(map[string]interface{})
			}
			vehicles[p.Vehicle][p.Key] = p.Val
		}

		res["vehicle"] = vehicles

		jsonResult(w, res)
	}
}

// vehiclesHandler returns the vehicle snapshots
func vehiclesHandler(site Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonResult(w, site.Vehicles())
	}
}

// refreshHandler triggers a throttled refresh
func refreshHandler(site Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := site.Refresh(r.Context()); err != nil {
			jsonError(w, http.StatusBadGateway, err)
			return
		}

		jsonResult(w, site.Updated())
	}
}

// sessionsHandler returns the recorded charging sessions
func sessionsHandler(w http.ResponseWriter, r *http.Request) {
	res, err := storage.Sessions(r.URL.Query().Get("vin"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrNotOpen) {
			status = http.StatusServiceUnavailable
		}

		jsonError(w, status, err)
		return
	}

	jsonResult(w, res)
}

func contextVehicle(r *http.Request) *api.Vehicle {
	v, _ := r.Context().Value(CtxVehicle).(*api.Vehicle)
	return v
}

// vehicleHandler returns a single vehicle snapshot
func vehicleHandler(w http.ResponseWriter, r *http.Request) {
	jsonResult(w, contextVehicle(r))
}

// imageHandler returns the vehicle picture
func imageHandler(site Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, err := site.Image(r.Context(), contextVehicle(r).VIN)
		if err != nil {
			jsonError(w, http.StatusBadGateway, err)
			return
		}

		w.Header().Set("Content-Type", img.ContentType)
		_, _ = w.Write(img.Data)
	}
}

// chargingHandler starts or stops charging
func chargingHandler(cmd api.Commander) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op := api.Operation(mux.Vars(r)["op"])
		commandResult(w, cmd.StartStopCharging(contextVehicle(r).VIN, op))
	}
}

// climatisationHandler starts or stops climatisation
func climatisationHandler(cmd api.Commander) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op := api.Operation(mux.Vars(r)["op"])
		commandResult(w, cmd.StartStopClimatisation(contextVehicle(r).VIN, op))
	}
}

// targetSoCHandler updates target soc
func targetSoCHandler(cmd api.Commander) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		soc, err := strconv.Atoi(mux.Vars(r)["value"])
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		commandResult(w, cmd.SetTargetSoC(contextVehicle(r).VIN, soc))
	}
}

// targetTempHandler updates the climatisation target temperature
func targetTempHandler(cmd api.Commander) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		temp, err := strconv.ParseFloat(mux.Vars(r)["value"], 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		commandResult(w, cmd.SetClimatisationTemperature(contextVehicle(r).VIN, temp))
	}
}

// chargeSpeedHandler updates the maximum AC charge current
func chargeSpeedHandler(cmd api.Commander) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		speed := api.ChargeSpeed(mux.Vars(r)["value"])
		commandResult(w, cmd.SetACChargeSpeed(contextVehicle(r).VIN, speed))
	}
}

// buttonHandler presses a button entity
func buttonHandler(cmd api.Commander) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commandResult(w, SetEntity(cmd, contextVehicle(r).VIN, mux.Vars(r)["key"], PayloadPress))
	}
}

// serviceHandler calls a service with JSON body
func serviceHandler(cmd api.Commander) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		commandResult(w, CallService(cmd, contextVehicle(r).VIN, mux.Vars(r)["name"], body))
	}
}
