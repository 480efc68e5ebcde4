// Package directory looks people up in the university registrar API.
package directory

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Dev-Pakorn/CKLab/internal/models"
)

// StudentInfo is the directory record mapped to check-in fields.
type StudentInfo struct {
	Name         string `json:"name"`
	Organization string `json:"faculty"`
	Category     string `json:"type"`
	YearLevel    string `json:"year"`
}

// Client calls the registrar lookup endpoint. Any transport failure or
// non-OK status is treated as "not found": the lab keeps working with
// guest-style records when the upstream is down.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client with a short timeout; a slow registrar must not
// hold up check-in.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type lookupRequest struct {
	LoginName string `json:"loginName"`
}

type lookupResponse struct {
	Data struct {
		PrefixName  string `json:"USERPREFIXNAME"`
		FirstName   string `json:"USERNAME"`
		Surname     string `json:"USERSURNAME"`
		FacultyName string `json:"FACULTYNAME"`
		UserType    string `json:"USERTYPE"`
		StudentYear string `json:"STUDENTYEAR"`
	} `json:"data"`
}

// Lookup resolves an external id. It returns (nil, nil) when the id is
// unknown or the upstream is unreachable.
func (c *Client) Lookup(ctx context.Context, externalID string) (*StudentInfo, error) {
	if c.baseURL == "" {
		return nil, nil
	}

	payload, err := json.Marshal(lookupRequest{
		LoginName: base64.StdEncoding.EncodeToString([]byte(externalID)),
	})
	if err != nil {
		return nil, fmt.Errorf("encode lookup: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil // upstream down: behave as not found
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, nil
	}
	if body.Data.FirstName == "" && body.Data.Surname == "" {
		return nil, nil
	}

	info := &StudentInfo{
		Name:         strings.TrimSpace(body.Data.PrefixName + body.Data.FirstName + " " + body.Data.Surname),
		Organization: body.Data.FacultyName,
		Category:     categoryFor(body.Data.UserType),
		YearLevel:    models.CheckOutSentinel,
	}
	if info.Category == models.CategoryStudent {
		info.YearLevel = body.Data.StudentYear
	}
	return info, nil
}

// categoryFor maps the registrar's Thai user-type labels onto session
// categories; unrecognized staff-side labels fall back to staff.
func categoryFor(userType string) string {
	switch {
	case userType == "นักศึกษา":
		return models.CategoryStudent
	case strings.Contains(userType, "อาจารย์"), strings.Contains(userType, "สอน"):
		return models.CategoryTeacher
	default:
		return models.CategoryStaff
	}
}
