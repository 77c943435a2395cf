package actuator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	commandStart   = "start"
	commandStop    = "stop"
	commandSensors = "sensors"
)

// HTTPClient talks to the bridge over HTTP. Commands are serialized: at most
// one start/stop is in flight per client.
type HTTPClient struct {
	baseURL     string
	token       string
	startPath   string
	stopPath    string
	sensorsPath string
	client      *http.Client

	mu sync.Mutex
}

// Option configures the HTTP client.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.client = client
		}
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *HTTPClient) { c.token = strings.TrimSpace(token) }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithPaths overrides the start, stop and sensor paths. Empty values keep
// the defaults.
func WithPaths(start, stop, sensors string) Option {
	return func(c *HTTPClient) {
		if start != "" {
			c.startPath = start
		}
		if stop != "" {
			c.stopPath = stop
		}
		if sensors != "" {
			c.sensorsPath = sensors
		}
	}
}

// NewHTTPClient constructs a client for the bridge at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("actuator: empty base url")
	}
	c := &HTTPClient{
		baseURL:     baseURL,
		startPath:   "/pump/start",
		stopPath:    "/pump/stop",
		sensorsPath: "/sensors",
		client:      &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start asks the bridge to open the pump.
func (c *HTTPClient) Start(ctx context.Context) error {
	return c.command(ctx, commandStart, c.startPath)
}

// Stop asks the bridge to close the pump.
func (c *HTTPClient) Stop(ctx context.Context) error {
	return c.command(ctx, commandStop, c.stopPath)
}

func (c *HTTPClient) command(ctx context.Context, name, path string) (err error) {
	ctx, span := otel.Tracer("actuator").Start(ctx, "command",
		trace.WithAttributes(attribute.String("actuator.command", name)),
	)
	defer func() {
		observe(name, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	req, err := c.newRequest(ctx, http.MethodPost, path)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("actuator %s: %w", name, err)
	}
	defer resp.Body.Close()

	var reply commandReply
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(body) > 0 {
		if jerr := json.Unmarshal(body, &reply); jerr != nil && resp.StatusCode < 300 {
			return fmt.Errorf("actuator %s: decode reply: %w", name, jerr)
		}
	}
	if resp.StatusCode >= 300 || !reply.Success {
		msg := reply.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: %s (status %d: %s)", ErrNotAcknowledged, name, resp.StatusCode, msg)
	}

	log.Ctx(ctx).Debug().Str("component", "actuator").Str("command", name).Msg("acknowledged")
	return nil
}

// ReadSensors fetches the latest sensor sample.
func (c *HTTPClient) ReadSensors(ctx context.Context) (_ *SensorReading, err error) {
	ctx, span := otel.Tracer("actuator").Start(ctx, "ReadSensors")
	defer func() {
		observe(commandSensors, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := c.newRequest(ctx, http.MethodGet, c.sensorsPath)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("actuator sensors: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("actuator sensors: non-2xx response %d", resp.StatusCode)
	}
	var out SensorReading
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		return nil, fmt.Errorf("actuator sensors: decode: %w", err)
	}
	return &out, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}
