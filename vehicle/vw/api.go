package vw

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/util"
	"github.com/vwid-io/vwid/util/request"
	"golang.org/x/oauth2"
)

// https://github.com/tillsteinbach/CarConnectivity-connector-volkswagen

// BaseURL is the WeConnect backend
const BaseURL = "https://emea.bff.cariad.digital"

// Actions
const (
	DomainCharging      = "charging"
	DomainClimatisation = "climatisation"
	ActionStart         = "start"
	ActionStop          = "stop"
)

// API is the VW ID api client
type API struct {
	*request.Helper
	baseURI string
}

// NewAPI creates a new api client
func NewAPI(log *util.Logger, identity oauth2.TokenSource) *API {
	v := &API{
		Helper:  request.NewHelper(log),
		baseURI: BaseURL,
	}

	// replace client transport with authenticated transport
	v.Client.Transport = &oauth2.Transport{
		Source: identity,
		Base:   v.Client.Transport,
	}

	return v
}

func (v *API) vehicleURI(format string, args ...interface{}) string {
	return v.baseURI + "/vehicle/v1" + fmt.Sprintf(format, args...)
}

func (v *API) getJSON(ctx context.Context, uri string, res interface{}) error {
	req, err := request.New(http.MethodGet, uri, nil, request.AcceptJSON)
	if err == nil {
		err = v.DoJSON(req.WithContext(ctx), res)
	}
	return err
}

// Vehicles implements the /vehicles api
func (v *API) Vehicles(ctx context.Context) ([]VehicleInfo, error) {
	var res VehiclesResponse
	err := v.getJSON(ctx, v.vehicleURI("/vehicles"), &res)
	return res.Data, err
}

// SelectiveStatus implements the /vehicles/<vin>/selectivestatus api
func (v *API) SelectiveStatus(ctx context.Context, vin string, jobs []string) (StatusResponse, error) {
	var res StatusResponse
	uri := v.vehicleURI("/vehicles/%s/selectivestatus?jobs=%s", vin, strings.Join(jobs, ","))
	err := v.getJSON(ctx, uri, &res)
	return res, err
}

// ParkingPosition implements the /vehicles/<vin>/parkingposition api.
// It returns api.ErrNotAvailable while the vehicle is moving.
func (v *API) ParkingPosition(ctx context.Context, vin string) (ParkingPositionResponse, error) {
	var res ParkingPositionResponse

	req, err := request.New(http.MethodGet, v.vehicleURI("/vehicles/%s/parkingposition", vin), nil, request.AcceptJSON)
	if err != nil {
		return res, err
	}

	resp, err := v.Do(req.WithContext(ctx))
	if err != nil {
		return res, err
	}

	if resp.StatusCode == http.StatusNoContent {
		resp.Body.Close()
		return res, api.ErrNotAvailable
	}

	return res, request.DecodeJSON(resp, &res)
}

// Action implements the charging and climatisation start/stop apis
func (v *API) Action(ctx context.Context, vin, domain, action string) error {
	uri := v.vehicleURI("/vehicles/%s/%s/%s", vin, domain, action)

	req, err := request.New(http.MethodPost, uri, nil, request.JSONEncoding)
	if err == nil {
		var res ActionResponse
		err = v.DoJSON(req.WithContext(ctx), &res)
	}

	return err
}

// ChargingSettings implements the charging settings api
func (v *API) ChargingSettings(ctx context.Context, vin string, data ChargingSettingsRequest) error {
	return v.put(ctx, v.vehicleURI("/vehicles/%s/charging/settings", vin), data)
}

// ClimatisationSettings implements the climatisation settings api
func (v *API) ClimatisationSettings(ctx context.Context, vin string, data ClimatisationSettingsRequest) error {
	return v.put(ctx, v.vehicleURI("/vehicles/%s/climatisation/settings", vin), data)
}

func (v *API) put(ctx context.Context, uri string, data interface{}) error {
	req, err := request.New(http.MethodPut, uri, request.MarshalJSON(data), request.JSONEncoding)
	if err == nil {
		var res ActionResponse
		err = v.DoJSON(req.WithContext(ctx), &res)
	}

	return err
}

// Images implements the media vehicle-images api
func (v *API) Images(ctx context.Context, vin string) (ImagesResponse, error) {
	var res ImagesResponse
	uri := fmt.Sprintf("%s/media/v2/vehicle-images/%s?resolution=2x", v.baseURI, vin)
	err := v.getJSON(ctx, uri, &res)
	return res, err
}

// Download retrieves an image
func (v *API) Download(ctx context.Context, uri string) (api.Image, error) {
	req, err := request.New(http.MethodGet, uri, nil)
	if err != nil {
		return api.Image{}, err
	}

	resp, err := v.Do(req.WithContext(ctx))
	if err != nil {
		return api.Image{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return api.Image{}, request.NewStatusError(resp)
	}

	b, err := io.ReadAll(resp.Body)
	if err == nil && len(b) == 0 {
		err = errors.New("empty image")
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(b)
	}

	return api.Image{ContentType: ct, Data: b}, err
}
