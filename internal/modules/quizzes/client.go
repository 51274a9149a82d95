package quizzes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/nfrund/learnhub/internal/domain"
)

// Client reads the signed-in user's scores from a running server. It keeps
// the session cookie between calls.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the server at baseURL with its own cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second, Jar: jar},
	}
}

// Login signs in through the login form. The server answers every attempt
// with a redirect; only a successful one leaves the login page.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{"email": {email}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("login: unexpected status %s", resp.Status)
	}
	if resp.Request.URL.Path == "/login" {
		return fmt.Errorf("login: credentials refused for %s", email)
	}
	return nil
}

// Scores fetches /quizzes?user_assigned=true. Any non-2xx status is an error.
func (c *Client) Scores(ctx context.Context) ([]domain.QuizScore, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/quizzes?user_assigned=true", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch scores: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch scores: unexpected status %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		// Auth redirects land on the HTML login page.
		return nil, fmt.Errorf("fetch scores: not signed in")
	}
	var scores []domain.QuizScore
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return scores, nil
}
