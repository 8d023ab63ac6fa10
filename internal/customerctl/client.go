package customerctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edvin/customer-api/internal/model"
)

const customersPath = "/api/v1/customers"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Response struct {
	StatusCode int
	Body       json.RawMessage
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Post(path string, body any) (*Response, error) {
	return c.do(http.MethodPost, path, body)
}

func (c *Client) Get(path string) (*Response, error) {
	return c.do(http.MethodGet, path, nil)
}

func (c *Client) Put(path string, body any) (*Response, error) {
	return c.do(http.MethodPut, path, body)
}

func (c *Client) Delete(path string) (*Response, error) {
	return c.do(http.MethodDelete, path, nil)
}

func (c *Client) do(method, path string, body any) (*Response, error) {
	target := c.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	r := &Response{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(respBody),
	}

	if resp.StatusCode >= 400 {
		return r, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return r, nil
}

// Customer decodes a customer view from the response body.
func (r *Response) Customer() (*model.CustomerView, error) {
	var v model.CustomerView
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, fmt.Errorf("parse customer response: %w", err)
	}
	return &v, nil
}

func (c *Client) CreateCustomer(req *model.CustomerRequest) (*model.CustomerView, error) {
	resp, err := c.Post(customersPath, req)
	if err != nil {
		return nil, err
	}
	return resp.Customer()
}

func (c *Client) GetCustomer(id string) (*model.CustomerView, error) {
	resp, err := c.Get(customersPath + "/" + url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return resp.Customer()
}

// FindCustomer looks a customer up by name, email, or both. Empty arguments
// are left out of the query. A miss returns nil and no error.
func (c *Client) FindCustomer(name, email string) (*model.CustomerView, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if email != "" {
		q.Set("email", email)
	}
	resp, err := c.Get(customersPath + "?" + q.Encode())
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.Customer()
}

func (c *Client) UpdateCustomer(id string, req *model.CustomerRequest) (*model.CustomerView, error) {
	resp, err := c.Put(customersPath+"/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}
	return resp.Customer()
}

func (c *Client) DeleteCustomer(id string) error {
	_, err := c.Delete(customersPath + "/" + url.PathEscape(id))
	return err
}
