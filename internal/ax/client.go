package ax

import (
	"fmt"
	"log/slog"
	"time"
)

// settleDelay is how long Post waits after the last key event so that the
// target application has processed it before the next query.
const settleDelay = 100 * time.Millisecond

// Client ties a Backend to the process table and run loop the error model
// needs. Elements created by a Client must not be used from more than one
// goroutine at a time.
type Client struct {
	backend   Backend
	processes ProcessTable
	runloop   RunLoop
	bridge    *Bridge
	logger    *slog.Logger
	keyRate   time.Duration
	sleep     func(time.Duration)

	trust  TrustChecker
	prompt bool

	systemWide Ref
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for retries and error classification.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithKeyRate sets the delay between posted keyboard events.
func WithKeyRate(d time.Duration) Option {
	return func(c *Client) { c.keyRate = d }
}

// WithTrust makes NewClient check accessibility permission, asking the OS
// to prompt the user when prompt is set.
func WithTrust(t TrustChecker, prompt bool) Option {
	return func(c *Client) {
		c.trust = t
		c.prompt = prompt
	}
}

// WithSleep replaces time.Sleep for key event pacing.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

// NewClient returns a client for backend. It fails with ErrPermissionDenied
// when a trust checker is configured and reports the process untrusted.
func NewClient(backend Backend, processes ProcessTable, runloop RunLoop, opts ...Option) (*Client, error) {
	c := &Client{
		backend:   backend,
		processes: processes,
		runloop:   runloop,
		logger:    slog.New(slog.DiscardHandler),
		keyRate:   DefaultKeyRate,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.trust != nil && !c.trust.IsTrusted(c.prompt) {
		return nil, fmt.Errorf("%w: grant access in System Settings > Privacy & Security > Accessibility", ErrPermissionDenied)
	}
	c.bridge = &Bridge{client: c}
	c.systemWide = backend.CreateSystemWide()
	return c, nil
}

// Bridge returns the value converter bound to this client.
func (c *Client) Bridge() *Bridge {
	return c.bridge
}

// KeyRate returns the delay between posted keyboard events.
func (c *Client) KeyRate() time.Duration {
	return c.keyRate
}

// SystemWide returns a new handle to the system-wide element.
func (c *Client) SystemWide() *Element {
	return c.wrap(c.backend.CreateSystemWide(), false)
}

// Application returns the application element for pid. The run loop is
// spun once first so a freshly launched process is registered.
func (c *Client) Application(pid int) (*Element, error) {
	c.runloop.Spin(0)
	if pid <= 0 || !c.processes.Running(pid) {
		return nil, fmt.Errorf("%w: pid %d is not a running application", ErrInvalidArgument, pid)
	}
	return c.wrap(c.backend.CreateApplication(pid), false), nil
}

// Spin pumps the run loop for d. It cannot be cancelled.
func (c *Client) Spin(d time.Duration) {
	c.runloop.Spin(d)
}

// Close releases the client's own system-wide reference. Elements handed
// out earlier stay valid until they are closed.
func (c *Client) Close() error {
	if c.systemWide != 0 {
		c.backend.Release(c.systemWide)
		c.systemWide = 0
	}
	return nil
}

// wrap adopts ref. Borrowed references are retained once; owned ones (from
// a Copy or Create call) are taken over as they are.
func (c *Client) wrap(ref Ref, borrowed bool) *Element {
	if borrowed {
		c.backend.Retain(ref)
	}
	return &Element{client: c, ref: ref}
}

// decode converts an owned foreign object and releases it.
func (c *Client) decode(raw Ref) (any, error) {
	defer c.backend.Release(raw)
	return c.bridge.ToHost(c.backend.Inspect(raw))
}

// create converts a host value and builds the owned foreign object for it.
func (c *Client) create(h any) (Ref, error) {
	v, err := c.bridge.ToForeign(h)
	if err != nil {
		return 0, err
	}
	obj, err := c.backend.CreateObject(v)
	if err != nil {
		c.logger.Debug("create object failed", "kind", v.Kind(), "err", err)
		return 0, err
	}
	return obj, nil
}

// names decodes an owned array of strings.
func (c *Client) names(raw Ref) ([]string, error) {
	v, err := c.decode(raw)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &ConversionError{Direction: ToHost, Kind: KindArray, Reason: fmt.Sprintf("expected a list of names, got %T", v)}
	}
	out := make([]string, 0, len(list))
	for _, n := range list {
		s, ok := n.(string)
		if !ok {
			return nil, &ConversionError{Direction: ToHost, Kind: KindString, Reason: fmt.Sprintf("expected a name, got %T", n)}
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Client) isSystemWide(ref Ref) bool {
	return c.systemWide != 0 && c.backend.Equal(ref, c.systemWide)
}

// statusError builds the error raised for a non-benign status. A cannot
// complete status spins the run loop once and then checks whether the
// element's process is still alive.
func (c *Client) statusError(op Op, e *Element, code Code, args ...any) error {
	err := &StatusError{Code: code, Op: op, Element: e.String(), Args: args}
	if code != CannotComplete {
		c.logger.Debug("accessibility call failed", "op", op.String(), "code", int32(code), "element", err.Element)
		return err
	}

	c.logger.Debug("cannot complete, spinning run loop", "op", op.String(), "element", err.Element)
	c.runloop.Spin(0)
	err.PID = e.pidHint()
	if err.PID > 0 && c.processes.Running(err.PID) {
		err.busy = true
		c.logger.Debug("application busy", "pid", err.PID)
	} else {
		err.unreachable = true
		c.logger.Debug("application unreachable", "pid", err.PID)
	}
	return err
}
