// Package client is the HTTP client the author CLI talks to the server
// with. It keeps the session cookie on disk between invocations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fieldnotes/internal/entity"
	"fieldnotes/pkg/gallery"
	"fieldnotes/pkg/imaging"
)

var ErrNotLoggedIn = errors.New("not logged in, run login first")

type Client struct {
	baseURL     string
	cookieName  string
	sessionPath string
	httpClient  *http.Client
}

func New(baseURL, cookieName, sessionPath string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		cookieName:  cookieName,
		sessionPath: sessionPath,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) session() (string, error) {
	raw, err := os.ReadFile(c.sessionPath)
	if err != nil {
		return "", ErrNotLoggedIn
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

func (c *Client) saveSession(token string) error {
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath, []byte(token), 0o600)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		token, err := c.session()
		if err != nil {
			return err
		}
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, raw)
	}
	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("server: %s", env.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			return fmt.Errorf("login failed: %s", env.Error)
		}
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == c.cookieName {
			return c.saveSession(cookie.Value)
		}
	}
	return errors.New("login response carried no session cookie")
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, "", false, nil); err != nil {
		return err
	}
	return os.Remove(c.sessionPath)
}

type ListResult struct {
	Posts    []*entity.Post `json:"posts"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

func (c *Client) ListPosts(ctx context.Context, page, pageSize int) (*ListResult, error) {
	var result ListResult
	path := fmt.Sprintf("/api/posts?page=%d&pageSize=%d", page, pageSize)
	if err := c.do(ctx, http.MethodGet, path, nil, "", false, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	var result struct {
		Post *entity.Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+id, nil, "", false, &result); err != nil {
		return nil, err
	}
	return result.Post, nil
}

// PostPayload is the body of the create and update calls. Images carry the
// dense display order computed at submit time.
type PostPayload struct {
	ID          string                `json:"id,omitempty"`
	Title       string                `json:"title"`
	Content     string                `json:"content"`
	PublishDate *time.Time            `json:"publishDate,omitempty"`
	Images      []gallery.SubmitImage `json:"images"`
}

func (c *Client) CreatePost(ctx context.Context, payload PostPayload) (*entity.Post, error) {
	return c.savePost(ctx, "/api/posts/create", payload)
}

func (c *Client) UpdatePost(ctx context.Context, payload PostPayload) (*entity.Post, error) {
	return c.savePost(ctx, "/api/posts/update", payload)
}

func (c *Client) savePost(ctx context.Context, path string, payload PostPayload) (*entity.Post, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var result struct {
		Post *entity.Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodPost, path, bytes.NewReader(raw), "application/json", true, &result); err != nil {
		return nil, err
	}
	return result.Post, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	raw, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/posts/delete", bytes.NewReader(raw), "application/json", true, nil)
}

// UploadImages sends the batch as multipart fields images[0..n-1] and
// returns the stored descriptors in the same order.
func (c *Client) UploadImages(ctx context.Context, files []imaging.File) ([]gallery.UploadedImage, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for i, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images[%d]"; filename=%q`, i, f.Name))
		header.Set("Content-Type", f.MimeType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	var result struct {
		Images []gallery.UploadedImage `json:"images"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/upload-images", body, writer.FormDataContentType(), true, &result); err != nil {
		return nil, err
	}
	return result.Images, nil
}

var _ gallery.Uploader = (*Client)(nil)
