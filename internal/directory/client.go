package directory

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the site's content/user service, which owns user accounts
// and the photography service catalog. The booking core only ever reads from
// it, by id.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) GetUser(id string) (*User, error) {
	var user User
	if err := c.get(fmt.Sprintf("%s/internal/users/%s", c.baseURL, id), ErrUserNotFound, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetService(id string) (*Service, error) {
	var service Service
	if err := c.get(fmt.Sprintf("%s/internal/services/%s", c.baseURL, id), ErrServiceNotFound, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *Client) get(url string, notFound error, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}
	return nil
}
