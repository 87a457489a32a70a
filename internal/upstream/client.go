package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"hostel-income-backend/config"
)

// ErrNoHostel is returned when the upstream responds successfully but carries
// no hostel document for the owner.
var ErrNoHostel = errors.New("no hostel data returned for owner")

// Client talks to the property-management API.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// NewClient builds an upstream API client from configuration.
func NewClient(cfg config.UpstreamConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	for k, v := range cfg.Headers {
		rc.SetHeader(k, v)
	}

	return &Client{http: rc, log: log}
}

// GetHostel fetches the hostel document for an owner.
func (c *Client) GetHostel(ctx context.Context, ownerID string) (*HostelDoc, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/api/hostels/" + url.PathEscape(ownerID))
	if err != nil {
		return nil, fmt.Errorf("fetch hostel for owner %s: %w", ownerID, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch hostel for owner %s: unexpected status %d", ownerID, resp.StatusCode())
	}

	body := resp.Body()
	var envelope hostelEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	// Older deployments return the document without the {data} wrapper.
	var doc HostelDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode hostel response for owner %s: %w", ownerID, err)
	}
	if doc.ID == "" && doc.MongoID == "" && doc.Name == "" && len(doc.Floors) == 0 {
		return nil, ErrNoHostel
	}
	return &doc, nil
}

// GetRooms fetches the rooms (with beds and bed history) of a floor.
func (c *Client) GetRooms(ctx context.Context, floorID string) ([]Room, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("floorId", floorID).
		Get("/api/addroomandbeds")
	if err != nil {
		return nil, fmt.Errorf("fetch rooms for floor %s: %w", floorID, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch rooms for floor %s: unexpected status %d", floorID, resp.StatusCode())
	}

	body := resp.Body()
	var envelope roomsEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		// A wrapper without rooms still means "no rooms", not an error.
		return envelope.Rooms, nil
	}

	var rooms []Room
	if err := json.Unmarshal(body, &rooms); err != nil {
		return nil, fmt.Errorf("decode rooms response for floor %s: %w", floorID, err)
	}
	return rooms, nil
}
