package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	"hocr_map/map_server/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type httpTestRequest struct {
	api http.Handler

	method   string
	endpoint string
	headers  map[string]string
	json     interface{}
	body     io.Reader
	login    *loginInfo
}

func newHttpTestRequest(api http.Handler, method, endpoint string) *httpTestRequest {
	return &httpTestRequest{
		api:      api,
		method:   method,
		endpoint: endpoint,
		headers:  nil,
		json:     nil,
		body:     nil,
	}
}

func (r *httpTestRequest) Header(key, value string) *httpTestRequest {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

func (r *httpTestRequest) Login(email, password string) *httpTestRequest {
	r.login = &loginInfo{Email: email, Password: password}
	return r
}

func (r *httpTestRequest) Auth(token string) *httpTestRequest {
	return r.Header("Authorization", fmt.Sprintf("Bearer %v", token))
}

func (r *httpTestRequest) Json(data interface{}) *httpTestRequest {
	r.json = data
	return r
}

// response body will be parsed into result, passing nil indicates that no result is returned.
func (r *httpTestRequest) Do(result interface{}) error {
	if r.json != nil {
		body := new(bytes.Buffer)
		err := json.NewEncoder(body).Encode(r.json)
		if err != nil {
			return fmt.Errorf("error encoding json body for endpoint %v: %w", r.endpoint, err)
		}
		r.body = body
	}

	req := httptest.NewRequest(r.method, r.endpoint, r.body)
	if r.headers != nil {
		for k, v := range r.headers {
			req.Header.Add(k, v)
		}
	}

	if r.login != nil {
		req.SetBasicAuth(r.login.Email, r.login.Password)
	}

	w := httptest.NewRecorder()

	r.api.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		switch res.StatusCode {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusForbidden:
			return ErrForbidden
		case http.StatusNotFound:
			return ErrNotFound
		}
		return fmt.Errorf("%v request to endpoint %v returned status %d, content '%v'", r.method, r.endpoint, res.StatusCode, w.Body.String())
	}

	if result != nil {
		err := json.NewDecoder(res.Body).Decode(result)
		if err != nil {
			return fmt.Errorf("error parsing %v response from endpoint %v: %w", r.method, r.endpoint, err)
		}
	}

	return nil
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

type client struct {
	api       chi.Router
	authToken string
	userId    string
	editor    bool
}

func (c *client) Get(endpoint string) *httpTestRequest {
	r := newHttpTestRequest(c.api, "GET", endpoint)
	if c.authToken != "" {
		return r.Auth(c.authToken)
	}
	return r
}

func (c *client) Post(endpoint string) *httpTestRequest {
	r := newHttpTestRequest(c.api, "POST", endpoint)
	if c.authToken != "" {
		return r.Auth(c.authToken)
	}
	return r
}

func (c *client) Put(endpoint string) *httpTestRequest {
	r := newHttpTestRequest(c.api, "PUT", endpoint)
	if c.authToken != "" {
		return r.Auth(c.authToken)
	}
	return r
}

func (c *client) Delete(endpoint string) *httpTestRequest {
	r := newHttpTestRequest(c.api, "DELETE", endpoint)
	if c.authToken != "" {
		return r.Auth(c.authToken)
	}
	return r
}

type loginInfo struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *client) register(email, password string) (loginInfo, error) {
	body := map[string]string{"email": email, "password": password}

	err := c.Post("/user/register").Json(body).Do(nil)
	if err != nil {
		return loginInfo{}, err
	}

	return loginInfo{Email: email, Password: password}, nil
}

func (c *client) login(login loginInfo) error {
	var res map[string]interface{}
	err := c.Get("/user/login").Login(login.Email, login.Password).Do(&res)
	if err != nil {
		return err
	}

	c.authToken = res["access_token"].(string)
	c.userId = res["user_id"].(string)
	c.editor, _ = res["editor"].(bool)

	return nil
}

func (c *client) logout() error {
	return c.Post("/user/logout").Do(nil)
}

func (c *client) checkAuth() (map[string]bool, error) {
	var res map[string]bool
	err := c.Get("/user/check-auth").Do(&res)
	return res, err
}

func (c *client) listBoats() ([]services.BoatInfo, error) {
	var res []services.BoatInfo
	err := c.Get("/boats").Do(&res)
	return res, err
}

func (c *client) updateBoats(edits []map[string]interface{}) error {
	return c.Put("/boats").Json(edits).Do(nil)
}

func (c *client) listView(view string) ([]services.PlacementInfo, error) {
	var res []services.PlacementInfo
	err := c.Get(fmt.Sprintf("/boats_view/%v", url.PathEscape(view))).Do(&res)
	return res, err
}

func (c *client) viewDetail(view, name string) (services.PlacementInfo, error) {
	var res services.PlacementInfo
	err := c.Get(fmt.Sprintf("/boats_view/%v/%v", url.PathEscape(view), url.PathEscape(name))).Do(&res)
	return res, err
}

func (c *client) upsert(boatId int, view string, lat, lon float64, rotation *float64) (bool, error) {
	body := map[string]interface{}{
		"boat_id": boatId, "view": view, "lat": lat, "lon": lon,
	}
	if rotation != nil {
		body["rotation"] = *rotation
	}

	var res map[string]interface{}
	err := c.Post("/boats_view/insert").Json(body).Do(&res)
	if err != nil {
		return false, err
	}

	created, _ := res["created"].(bool)
	return created, nil
}

func (c *client) deletePlacement(view string, placementId uuid.UUID) error {
	return c.Delete(fmt.Sprintf("/boats_view/%v/%v", url.PathEscape(view), placementId)).Do(nil)
}
