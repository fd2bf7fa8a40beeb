package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"user-records/internal/model"
)

// API is what App needs from the server.
type API interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, f Form) (*model.User, error)
	UpdateUser(ctx context.Context, id int, f Form, currentImage *string) (*model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// APIError 代表伺服器回傳的非 2xx 回應
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to the user-records HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient 建立 API client；timeout <= 0 時使用 10 秒
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, "", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.User{}
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, f Form) (*model.User, error) {
	body, ctype, err := encodeForm(f, nil)
	if err != nil {
		return nil, err
	}
	var out model.User
	if err := c.do(ctx, http.MethodPost, "/api/users", body, ctype, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser 以 f 取代整筆資料；未選新檔時把 currentImage 當文字欄位送出
func (c *Client) UpdateUser(ctx context.Context, id int, f Form, currentImage *string) (*model.User, error) {
	body, ctype, err := encodeForm(f, currentImage)
	if err != nil {
		return nil, err
	}
	var out model.User
	if err := c.do(ctx, http.MethodPut, "/api/users/update/"+strconv.Itoa(id), body, ctype, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+strconv.Itoa(id), nil, "", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, ctype string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if ctype != "" {
		req.Header.Set("Content-Type", ctype)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

func encodeForm(f Form, currentImage *string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{FieldFirstName, f.FirstName},
		{FieldLastName, f.LastName},
		{FieldEmail, f.Email},
		{FieldPhone, f.Phone},
		{FieldDateOfBirth, f.DateOfBirth},
	}
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}

	switch {
	case f.ProfileImage != nil:
		fw, err := w.CreateFormFile("profileImage", f.ProfileImage.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(f.ProfileImage.Data); err != nil {
			return nil, "", err
		}
	case currentImage != nil:
		if err := w.WriteField("profileImage", *currentImage); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
