// Package files cliente del servicio de almacenamiento donde viven los objetos de los adjuntos.
package files

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client implementa contacts.ObjectRemover con DELETE sobre la URL del objeto.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient crea el cliente. token vacío = sin Authorization.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json")
	if token != "" {
		rc.SetAuthToken(token)
	}
	return &Client{http: rc, baseURL: strings.TrimRight(baseURL, "/")}
}

// Remove borra el objeto. Un 404 se considera ya borrado.
// URLs relativas se resuelven contra baseURL; las absolutas deben pertenecer a él.
func (c *Client) Remove(ctx context.Context, fileURL string) error {
	target, err := c.resolve(fileURL)
	if err != nil {
		return err
	}
	resp, err := c.http.R().SetContext(ctx).Delete(target)
	if err != nil {
		return fmt.Errorf("files: delete %s: %w", target, err)
	}
	switch {
	case resp.IsSuccess(), resp.StatusCode() == http.StatusNotFound:
		return nil
	}
	return fmt.Errorf("files: delete %s: status %d", target, resp.StatusCode())
}

func (c *Client) resolve(fileURL string) (string, error) {
	u := strings.TrimSpace(fileURL)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		if c.baseURL != "" && !strings.HasPrefix(u, c.baseURL+"/") {
			return "", fmt.Errorf("files: %s no pertenece al almacenamiento configurado", u)
		}
		return u, nil
	}
	if c.baseURL == "" {
		return "", fmt.Errorf("files: url relativa %q sin base configurada", u)
	}
	return c.baseURL + "/" + strings.TrimLeft(u, "/"), nil
}
