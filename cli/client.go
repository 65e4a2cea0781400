package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"sanctuary/chat"
	"sanctuary/models"
	"sanctuary/service"
)

// Client is the HTTP client for talking to the Sanctuary server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// envelope mirrors the server's response wrapper
type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewClient creates a new HTTP client. The cookie jar keeps the admin
// session cookie across requests after login.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
			Jar:     jar,
		},
	}
}

// doRequest executes an HTTP request
func (c *Client) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	url := c.baseURL + path
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}

	return resp, nil
}

// handleResponse unwraps the envelope and decodes the data payload
func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if env.Code != "OK" {
		return fmt.Errorf("%s: %s", env.Code, env.Message)
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to decode response: %v", err)
		}
	}

	return nil
}

// HealthCheck pings the health endpoint
func (c *Client) HealthCheck() error {
	resp, err := c.doRequest("GET", "/api/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("server unhealthy: HTTP %d", resp.StatusCode)
	}

	return nil
}

// Auth API

// Login authenticates and stores the session cookie in the jar
func (c *Client) Login(username, password string) error {
	resp, err := c.doRequest("POST", "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	return c.handleResponse(resp, nil)
}

// Logout clears the server-side session cookie
func (c *Client) Logout() error {
	resp, err := c.doRequest("POST", "/api/auth/logout", nil)
	if err != nil {
		return err
	}

	return c.handleResponse(resp, nil)
}

// CheckAuth reports whether the stored cookie is still accepted
func (c *Client) CheckAuth() (bool, error) {
	resp, err := c.doRequest("GET", "/api/auth/check", nil)
	if err != nil {
		return false, err
	}

	var result struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return false, err
	}

	return result.Authenticated, nil
}

// Link management API

// ListLinks lists all links grouped by category
func (c *Client) ListLinks() ([]service.LinkGroup, error) {
	resp, err := c.doRequest("GET", "/api/links", nil)
	if err != nil {
		return nil, err
	}

	var groups []service.LinkGroup
	if err := c.handleResponse(resp, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

// CreateLink creates a link
func (c *Client) CreateLink(req models.LinkCreate) (*models.Link, error) {
	resp, err := c.doRequest("POST", "/api/admin/links", req)
	if err != nil {
		return nil, err
	}

	var link models.Link
	if err := c.handleResponse(resp, &link); err != nil {
		return nil, err
	}

	return &link, nil
}

// DeleteLink deletes a link
func (c *Client) DeleteLink(id uint) error {
	resp, err := c.doRequest("DELETE", fmt.Sprintf("/api/admin/links/%d", id), nil)
	if err != nil {
		return err
	}

	return c.handleResponse(resp, nil)
}

// ListCategories lists all categories
func (c *Client) ListCategories() ([]models.Category, error) {
	resp, err := c.doRequest("GET", "/api/categories", nil)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := c.handleResponse(resp, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// Persona management API

// ListCharacters lists all personas, including private ones (admin)
func (c *Client) ListCharacters() ([]models.AICharacter, error) {
	resp, err := c.doRequest("GET", "/api/admin/characters", nil)
	if err != nil {
		return nil, err
	}

	var characters []models.AICharacter
	if err := c.handleResponse(resp, &characters); err != nil {
		return nil, err
	}

	return characters, nil
}

// CreateCharacter creates a persona
func (c *Client) CreateCharacter(req models.AICharacterCreate) (*models.AICharacter, error) {
	resp, err := c.doRequest("POST", "/api/admin/characters", req)
	if err != nil {
		return nil, err
	}

	var character models.AICharacter
	if err := c.handleResponse(resp, &character); err != nil {
		return nil, err
	}

	return &character, nil
}

// DeleteCharacter deletes a persona
func (c *Client) DeleteCharacter(id uint) error {
	resp, err := c.doRequest("DELETE", fmt.Sprintf("/api/admin/characters/%d", id), nil)
	if err != nil {
		return err
	}

	return c.handleResponse(resp, nil)
}

// Chat session API

// ListSessions lists all chat sessions
func (c *Client) ListSessions() ([]models.AIChatSession, error) {
	resp, err := c.doRequest("GET", "/api/admin/chat/sessions", nil)
	if err != nil {
		return nil, err
	}

	var sessions []models.AIChatSession
	if err := c.handleResponse(resp, &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

// CreateSession creates a chat session with the given participants
func (c *Client) CreateSession(req models.AIChatSessionCreate) (*models.AIChatSession, error) {
	resp, err := c.doRequest("POST", "/api/admin/chat/sessions", req)
	if err != nil {
		return nil, err
	}

	var session models.AIChatSession
	if err := c.handleResponse(resp, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// DeleteSession deletes a session and its messages
func (c *Client) DeleteSession(id uint) error {
	resp, err := c.doRequest("DELETE", fmt.Sprintf("/api/admin/chat/sessions/%d", id), nil)
	if err != nil {
		return err
	}

	return c.handleResponse(resp, nil)
}

// ListSessionMessages fetches the full transcript of a session
func (c *Client) ListSessionMessages(id uint) ([]models.AIChatMessage, error) {
	resp, err := c.doRequest("GET", fmt.Sprintf("/api/admin/chat/sessions/%d/messages", id), nil)
	if err != nil {
		return nil, err
	}

	var messages []models.AIChatMessage
	if err := c.handleResponse(resp, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// RoundResult is what the server returns after a full chat round
type RoundResult struct {
	UserMessage models.AIChatMessage `json:"user_message"`
	Turns       []chat.RoundTurn     `json:"turns"`
}

// SendMessage posts a user message and runs a reply round
func (c *Client) SendMessage(sessionID uint, content string) (*RoundResult, error) {
	resp, err := c.doRequest("POST", fmt.Sprintf("/api/admin/chat/sessions/%d/messages", sessionID), map[string]string{
		"content": content,
	})
	if err != nil {
		return nil, err
	}

	var result RoundResult
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Announcement API

// GetAnnouncement fetches the current announcement text
func (c *Client) GetAnnouncement() (string, error) {
	resp, err := c.doRequest("GET", "/api/announcement", nil)
	if err != nil {
		return "", err
	}

	var result struct {
		Content string `json:"content"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return "", err
	}

	return result.Content, nil
}

// SetAnnouncement replaces the announcement text
func (c *Client) SetAnnouncement(content string) error {
	resp, err := c.doRequest("PUT", "/api/admin/announcement", map[string]string{
		"content": content,
	})
	if err != nil {
		return err
	}

	return c.handleResponse(resp, nil)
}

// System API

// GetMetrics fetches runtime counters from the server
func (c *Client) GetMetrics() (map[string]interface{}, error) {
	resp, err := c.doRequest("GET", "/api/metrics", nil)
	if err != nil {
		return nil, err
	}

	var metrics map[string]interface{}
	if err := c.handleResponse(resp, &metrics); err != nil {
		return nil, err
	}

	return metrics, nil
}
