package request

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Timeout is the default request timeout used by the Helper
var Timeout = 30 * time.Second

var (
	// JSONContent is the content type header for JSON requests
	JSONContent = "application/json"

	// URLEncoding specifies application/x-www-form-urlencoded
	URLEncoding = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

	// JSONEncoding specifies application/json
	JSONEncoding = map[string]string{
		"Content-Type": JSONContent,
		"Accept":       JSONContent,
	}

	// AcceptJSON accepting application/json
	AcceptJSON = map[string]string{
		"Accept": JSONContent,
	}
)

// New builds and executes HTTP request and returns the response
func New(method, uri string, data io.Reader, headers ...map[string]string) (*http.Request, error) {
	req, err := http.NewRequest(method, uri, data)
	if err == nil {
		for _, headers := range headers {
			for k, v := range headers {
				req.Header.Set(k, v)
			}
		}
	}

	return req, err
}

// MarshalJSON marshals JSON into an io.Reader
func MarshalJSON(data interface{}) io.Reader {
	if data == nil {
		return nil
	}

	return &readCloser{data: data}
}

type readCloser struct {
	io.Reader
	data interface{}
}

func (r *readCloser) Read(p []byte) (int, error) {
	if r.Reader == nil {
		b, err := json.Marshal(r.data)
		if err != nil {
			return 0, err
		}
		r.Reader = bytes.NewReader(b)
	}

	return r.Reader.Read(p)
}

// ReadBody reads HTTP response and returns error on response codes other than HTTP 2xx. It closes the request body after reading.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return []byte{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return b, NewStatusError(resp)
	}

	return b, nil
}

// DecodeJSON reads HTTP response and decodes JSON body if error is nil
func DecodeJSON(resp *http.Response, res interface{}) error {
	b, err := ReadBody(resp)
	if err == nil && res != nil && len(strings.TrimSpace(string(b))) > 0 {
		err = json.Unmarshal(b, res)
	}

	return err
}
