package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the party planner API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("FETE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 120,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := http.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Guest mirrors the server's guest payload
type Guest struct {
	Name        string         `json:"name"`
	Preferences map[string]int `json:"preferences"`
	Intimacy    int            `json:"intimacy"`
	DietaryTags []string       `json:"dietary_tags,omitempty"`
}

// MenuItem mirrors the server's catalog payload
type MenuItem struct {
	Name     string   `json:"name"`
	UnitCost float64  `json:"unit_cost"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// Recommendation mirrors the server's scored party plan
type Recommendation struct {
	GuestNames    []string `json:"guest_names"`
	SelectedItems []string `json:"selected_items"`
	NumGuests     int      `json:"num_guests"`
	TotalCost     float64  `json:"total_cost"`
	Satisfaction  float64  `json:"satisfaction"`
	TotalIntimacy int      `json:"total_intimacy"`
	Savings       float64  `json:"savings"`
	Efficiency    float64  `json:"efficiency"`
	Happiness     float64  `json:"happiness"`
}

// Summary mirrors one aggregate block of the server stats payload
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GuestCountSummary mirrors the guest-count block of the stats payload
type GuestCountSummary struct {
	Mean float64 `json:"mean"`
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mode int     `json:"mode"`
}

// Stats mirrors the server's aggregate statistics payload
type Stats struct {
	Total        int               `json:"total"`
	Cost         Summary           `json:"cost"`
	Satisfaction Summary           `json:"satisfaction"`
	IntimacyMean float64           `json:"intimacy_mean"`
	Guests       GuestCountSummary `json:"guests"`
}

// OptimizeResponse is the POST /optimize response envelope
type OptimizeResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	Total           int              `json:"total"`
	Stats           *Stats           `json:"stats"`
}

// GetGuests fetches all guests
func (c *ApiClient) GetGuests() ([]Guest, error) {
	if c.UseMock {
		return mockGuests(), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/guests")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guests: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("guest list request failed with status code: %d", resp.StatusCode)
	}

	var guests []Guest
	if err := json.NewDecoder(resp.Body).Decode(&guests); err != nil {
		return nil, fmt.Errorf("failed to decode guests: %v", err)
	}
	return guests, nil
}

// AddGuest creates a new guest
func (c *ApiClient) AddGuest(guest Guest) error {
	if c.UseMock {
		return nil
	}

	body, err := json.Marshal(guest)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/guests", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create guest: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

// DeleteGuest removes a guest by name
func (c *ApiClient) DeleteGuest(name string) error {
	if c.UseMock {
		return nil
	}

	req, err := http.NewRequest(http.MethodDelete, c.BaseURL+"/api/v1/guests/"+name, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// GenerateGuests asks the server to create count random guests
func (c *ApiClient) GenerateGuests(count int) error {
	if c.UseMock {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{"count": count})
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/guests/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to generate guests: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// GetItems fetches the menu catalog
func (c *ApiClient) GetItems() ([]MenuItem, error) {
	if c.UseMock {
		return mockItems(), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/items")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request failed with status code: %d", resp.StatusCode)
	}

	var items []MenuItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %v", err)
	}
	return items, nil
}

// AddItem creates a new catalog item
func (c *ApiClient) AddItem(item MenuItem) error {
	if c.UseMock {
		return nil
	}

	body, err := json.Marshal(item)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/items", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create item: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

// Optimize runs an optimization with the given budget and returns the
// top recommendations
func (c *ApiClient) Optimize(budget float64, topN int) (*OptimizeResponse, error) {
	if c.UseMock {
		return mockOptimizeResponse(budget), nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"budget": budget,
		"top_n":  topN,
	})
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/optimize", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to run optimization: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result OptimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode optimization result: %v", err)
	}
	return &result, nil
}

// GetStats fetches aggregate statistics for the last optimization run
func (c *ApiClient) GetStats() (*Stats, error) {
	if c.UseMock {
		return mockOptimizeResponse(100).Stats, nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/recommendations/stats")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %v", err)
	}
	return &stats, nil
}

// apiError extracts the server's error message from a failed response
func apiError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return fmt.Errorf("%s (status %d)", payload.Error, resp.StatusCode)
	}
	return fmt.Errorf("request failed with status code: %d", resp.StatusCode)
}

// Mock data for offline use

func mockGuests() []Guest {
	return []Guest{
		{
			Name:        "Tom Hanks",
			Preferences: map[string]int{"Fried Chicken": 5, "Potato Chips": 3, "Soda": 5},
			Intimacy:    7,
		},
		{
			Name:        "Ariel Rivera",
			Preferences: map[string]int{"Fried Chicken": 3, "Potato Chips": 2, "Iced Tea": 4},
			Intimacy:    6,
			DietaryTags: []string{"gluten-free"},
		},
		{
			Name:        "Maya Chen",
			Preferences: map[string]int{"Pizza": 5, "Soda": 4, "Ice Cream": 5},
			Intimacy:    9,
		},
	}
}

func mockItems() []MenuItem {
	return []MenuItem{
		{Name: "Fried Chicken", UnitCost: 5.70, Category: "main"},
		{Name: "Pizza", UnitCost: 8.50, Category: "main"},
		{Name: "Potato Chips", UnitCost: 2.99, Category: "snack"},
		{Name: "Ice Cream", UnitCost: 3.25, Category: "dessert"},
		{Name: "Soda", UnitCost: 2.49, Category: "drink"},
		{Name: "Iced Tea", UnitCost: 1.89, Category: "drink"},
	}
}

func mockOptimizeResponse(budget float64) *OptimizeResponse {
	recs := []Recommendation{
		{
			GuestNames:    []string{"Tom Hanks", "Maya Chen"},
			SelectedItems: []string{"Fried Chicken", "Soda"},
			NumGuests:     2,
			TotalCost:     16.38,
			Satisfaction:  19,
			TotalIntimacy: 16,
			Savings:       budget - 16.38,
			Efficiency:    19 / 16.38,
			Happiness:     0.61,
		},
		{
			GuestNames:    []string{"Tom Hanks", "Ariel Rivera", "Maya Chen"},
			SelectedItems: []string{"Pizza", "Iced Tea"},
			NumGuests:     3,
			TotalCost:     31.17,
			Satisfaction:  17,
			TotalIntimacy: 22,
			Savings:       budget - 31.17,
			Efficiency:    17 / 31.17,
			Happiness:     0.55,
		},
	}
	return &OptimizeResponse{
		Recommendations: recs,
		Total:           len(recs),
		Stats: &Stats{
			Total:        2,
			Cost:         Summary{Mean: 23.78, StdDev: 7.40, Min: 16.38, Max: 31.17},
			Satisfaction: Summary{Mean: 18, StdDev: 1, Min: 17, Max: 19},
			IntimacyMean: 19,
			Guests:       GuestCountSummary{Mean: 2.5, Min: 2, Max: 3, Mode: 2},
		},
	}
}
