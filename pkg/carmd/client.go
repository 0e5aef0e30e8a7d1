// Package carmd is a thin binding for the CarMD v2.0 vehicle-data API:
// VIN decoding, safety recalls, warranty, scheduled maintenance, and
// predicted repair reports. Every method returns the raw upstream
// response; the package performs no parsing, retries, or caching.
package carmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/motorlane-hq/carmd-go/pkg/httpclient"
)

// DefaultBaseURL is the CarMD v2.0 API root.
const DefaultBaseURL = "http://api2.carmd.com/v2.0/"

const defaultTimeout = 15 * time.Second

// ErrMissingRepairIdentifier is returned by PredictedRepair when the
// query names no vehicle id, tag, or fleet id.
var ErrMissingRepairIdentifier = errors.New("carmd: predicted repair requires a vehicle id, tag, or fleet id")

// Config carries everything a Client needs at construction. Key and
// Secret are required; resolve them from the environment (CARMD_KEY,
// CARMD_SECRET) in the bootstrap layer, not here.
type Config struct {
	Key     string
	Secret  string
	BaseURL string
	Timeout time.Duration
}

// Client issues authenticated GET requests against the CarMD API. It
// holds only immutable credentials and wiring after construction, so a
// single Client is safe for concurrent use.
type Client struct {
	baseURL string
	auth    Authenticator
	http    httpclient.Client
}

// Option customizes a Client at construction.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP layer.
func WithHTTPClient(c httpclient.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithAuthenticator substitutes the credential header decorator.
func WithAuthenticator(a Authenticator) Option {
	return func(cl *Client) { cl.auth = a }
}

// New builds a Client from cfg. It performs no network calls and fails
// only when either credential is missing.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Key == "" || cfg.Secret == "" {
		return nil, fmt.Errorf("carmd: an authorization key and a partner-token secret are both required " +
			"(pass them explicitly, or export CARMD_KEY and CARMD_SECRET and resolve them at bootstrap)")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL: baseURL,
		auth:    NewHeaderAuth(cfg.Key, cfg.Secret),
		http:    httpclient.NewRestyClient(timeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RequestOption forwards per-call extras to the HTTP layer verbatim.
// This is an open extension point, not a validated surface.
type RequestOption func(*requestOptions)

type requestOptions struct {
	headers map[string]string
	query   map[string]string
}

// WithHeader adds an extra header to a single request.
func WithHeader(name, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[name] = value
	}
}

// WithQueryParam adds an extra query parameter to a single request.
func WithQueryParam(name, value string) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = make(map[string]string)
		}
		o.query[name] = value
	}
}

// Get issues a GET to baseURL/endpoint with the given query parameters
// and the injected auth headers, returning the upstream response as-is.
// Non-2xx statuses are surfaced to the caller, never turned into errors.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, opts ...RequestOption) (httpclient.Response, error) {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	query := make(map[string]string, len(params)+len(ro.query))
	for k, v := range params {
		query[k] = v
	}
	for k, v := range ro.query {
		query[k] = v
	}

	headers := c.auth.Apply(ro.headers)

	return c.http.Get(ctx, c.baseURL+endpoint, query, headers)
}

// DecodeVIN returns the VIN explosion for the given VIN: year, make,
// model, engine, and the AAIA configuration code.
func (c *Client) DecodeVIN(ctx context.Context, vin string, opts ...RequestOption) (httpclient.Response, error) {
	return c.Get(ctx, "decode", map[string]string{"vin": vin}, opts...)
}

// SafetyRecalls retrieves the safety recalls on record for a decoded
// vehicle record.
func (c *Client) SafetyRecalls(ctx context.Context, vehicleID string, opts ...RequestOption) (httpclient.Response, error) {
	return c.Get(ctx, "articles/safetyrecall", map[string]string{"vehicleID": vehicleID}, opts...)
}

// RepairQuery selects the subject of a predicted repair report. When
// several identifiers are set, VehicleID wins over Tag, and Tag over
// FleetID.
type RepairQuery struct {
	VehicleID string
	Tag       string
	FleetID   string
}

func (q RepairQuery) params() (map[string]string, error) {
	switch {
	case q.VehicleID != "":
		return map[string]string{"vehicleID": q.VehicleID}, nil
	case q.Tag != "":
		return map[string]string{"tag": q.Tag}, nil
	case q.FleetID != "":
		return map[string]string{"fleetID": q.FleetID}, nil
	}
	return nil, ErrMissingRepairIdentifier
}

// PredictedRepair fetches the report of repairs likely needed within
// the next 12 months for the vehicle q selects. It fails before any
// network call when q names no identifier.
func (c *Client) PredictedRepair(ctx context.Context, q RepairQuery, opts ...RequestOption) (httpclient.Response, error) {
	params, err := q.params()
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "report/predicted", params, opts...)
}

// Warranty returns the factory warranty terms for a decoded vehicle
// record.
func (c *Client) Warranty(ctx context.Context, vehicleID string, opts ...RequestOption) (httpclient.Response, error) {
	return c.Get(ctx, "articles/warranty", map[string]string{"vehicleID": vehicleID}, opts...)
}

// NextMaintenance returns the scheduled maintenance items due next for
// the VIN at the given mileage.
func (c *Client) NextMaintenance(ctx context.Context, vin string, mileage int, opts ...RequestOption) (httpclient.Response, error) {
	return c.Get(ctx, "maint/next", map[string]string{"vin": vin, "mileage": strconv.Itoa(mileage)}, opts...)
}

// Years lists the model years that exist for a make. Finding a model
// starts from Makes, then Years, then Models.
func (c *Client) Years(ctx context.Context, vehicleMake string, opts ...RequestOption) (httpclient.Response, error) {
	return c.Get(ctx, "decode", map[string]string{"make": vehicleMake}, opts...)
}

// Makes lists the vehicle makes the service knows about.
func (c *Client) Makes(ctx context.Context, opts ...RequestOption) (httpclient.Response, error) {
	return c.Get(ctx, "decode", nil, opts...)
}

// Models lists the models a make offered in a model year.
func (c *Client) Models(ctx context.Context, year int, vehicleMake string, opts ...RequestOption) (httpclient.Response, error) {
	return c.Get(ctx, "decode", map[string]string{"year": strconv.Itoa(year), "make": vehicleMake}, opts...)
}
