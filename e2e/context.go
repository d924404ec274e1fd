// Package e2e drives a running CampusPass server through godog feature files.
// Point E2E_BASE_URL at a server started with SEED_DEMO_DATA=true.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Demo fixture identifiers. They match the server's demo seed unless overridden.
const (
	defaultUniversityID = "6f1d2a40-3c55-4b1e-9a51-000000000001"
	defaultStudentID    = "6f1d2a40-3c55-4b1e-9a51-000000000002"
	defaultVendorID     = "6f1d2a40-3c55-4b1e-9a51-000000000003"
	defaultProductID    = "6f1d2a40-3c55-4b1e-9a51-000000000004"
	defaultVendorAPIKey = "demo-vendor-key"
)

// TestContext holds per-scenario HTTP state shared by every step package.
type TestContext struct {
	BaseURL    string
	HTTPClient *http.Client

	UniversityID string
	StudentID    string
	VendorID     string
	ProductID    string
	VendorAPIKey string

	lastStatus int
	lastBody   []byte
	saved      map[string]string
}

// NewTestContext reads the target server and fixture IDs from the environment.
func NewTestContext() *TestContext {
	return &TestContext{
		BaseURL:      strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/"),
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
		UniversityID: envOr("E2E_UNIVERSITY_ID", defaultUniversityID),
		StudentID:    envOr("E2E_STUDENT_ID", defaultStudentID),
		VendorID:     envOr("E2E_VENDOR_ID", defaultVendorID),
		ProductID:    envOr("E2E_PRODUCT_ID", defaultProductID),
		VendorAPIKey: envOr("E2E_VENDOR_API_KEY", defaultVendorAPIKey),
		saved:        make(map[string]string),
	}
}

// Reset clears the response and saved values between scenarios.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.saved = make(map[string]string)
}

func (tc *TestContext) POST(path string, body interface{}) error {
	return tc.do(http.MethodPost, path, body, nil)
}

func (tc *TestContext) POSTWithHeaders(path string, body interface{}, headers map[string]string) error {
	return tc.do(http.MethodPost, path, body, headers)
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

// Expand substitutes {university_id}-style placeholders with fixture IDs and saved values.
func (tc *TestContext) Expand(s string) string {
	pairs := []string{
		"{university_id}", tc.UniversityID,
		"{student_id}", tc.StudentID,
		"{vendor_id}", tc.VendorID,
		"{product_id}", tc.ProductID,
	}
	for name, value := range tc.saved {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// GetResponseField resolves a dot-separated path in the last JSON response.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(tc.lastBody, &data); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	current := data
	for _, part := range strings.Split(field, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		current, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in response: %s", field, tc.lastBody)
		}
	}
	return current, nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

func (tc *TestContext) Save(name, value string) {
	tc.saved[name] = value
}

func (tc *TestContext) Saved(name string) (string, bool) {
	v, ok := tc.saved[name]
	return v, ok
}

func (tc *TestContext) VendorHeaders() map[string]string {
	return map[string]string{
		"X-Vendor-ID":  tc.VendorID,
		"X-Vendor-Key": tc.VendorAPIKey,
	}
}

func (tc *TestContext) do(method, path string, body interface{}, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(tc.Expand(b))
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				return fmt.Errorf("encode request body: %w", err)
			}
			reader = bytes.NewReader(raw)
		}
	}

	req, err := http.NewRequest(method, tc.BaseURL+tc.Expand(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
