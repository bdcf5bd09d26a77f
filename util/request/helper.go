package request

import (
	"net/http"
	"net/http/httputil"

	"github.com/vwid-io/vwid/util"
)

// Helper provides utility primitives
type Helper struct {
	*http.Client
}

// NewClient creates http client with default transport
func NewClient(log *util.Logger) *http.Client {
	return &http.Client{
		Timeout:   Timeout,
		Transport: &tripper{log: log, base: http.DefaultTransport},
	}
}

// NewHelper creates http helper for simplified PUT GET logic
func NewHelper(log *util.Logger) *Helper {
	return &Helper{
		Client: NewClient(log),
	}
}

// DoBody executes HTTP request and returns the response body
func (r *Helper) DoBody(req *http.Request) ([]byte, error) {
	resp, err := r.Do(req)
	if err != nil {
		return nil, err
	}

	return ReadBody(resp)
}

// GetBody executes HTTP GET request and returns the response body
func (r *Helper) GetBody(url string) ([]byte, error) {
	req, err := New(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return r.DoBody(req)
}

// DoJSON executes HTTP request and decodes JSON response.
// It returns a StatusError on response codes other than HTTP 2xx.
func (r *Helper) DoJSON(req *http.Request, res interface{}) error {
	resp, err := r.Do(req)
	if err == nil {
		err = DecodeJSON(resp, res)
	}

	return err
}

// GetJSON executes HTTP GET request and decodes JSON response.
// It returns a StatusError on response codes other than HTTP 2xx.
func (r *Helper) GetJSON(url string, res interface{}) error {
	req, err := New(http.MethodGet, url, nil, AcceptJSON)
	if err != nil {
		return err
	}

	return r.DoJSON(req, res)
}

// tripper logs request and response at trace level
type tripper struct {
	log  *util.Logger
	base http.RoundTripper
}

func (t *tripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if b, err := httputil.DumpRequestOut(req, true); err == nil {
		t.log.TRACE.Println(string(b))
	}

	resp, err := t.base.RoundTrip(req)

	if resp != nil {
		if b, err := httputil.DumpResponse(resp, resp.Header.Get("Content-Type") != "image/png"); err == nil {
			t.log.TRACE.Println(string(b))
		}
	}

	return resp, err
}
