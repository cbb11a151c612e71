// Package pairing finds exactly one controllable Hue bridge on the network and
// authenticates against it.
//
// A scan runs Discovering → Validating → Authenticating → Connected. Any step can end
// in Failed with a reason; Disconnected is the manual reset target and behaves like
// Idle for the next scan. Work inside a step (one call per discovery strategy, per
// candidate host) runs concurrently and is joined before the next step starts.
package pairing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/huesence/internal/constants"
	"github.com/wheelibin/huesence/internal/hue"
	"github.com/wheelibin/huesence/internal/models"
	"golang.org/x/sync/errgroup"
)

var (
	ErrScanInProgress = errors.New("scan already in progress")
	ErrDebounced      = errors.New("request ignored, too soon after the previous one")
	ErrTransport      = errors.New("bridge discovery failed")
	ErrNoBridgeFound  = errors.New("no reachable bridges found")
	ErrAmbiguous      = errors.New("more than one bridge accepted the pairing")
	ErrAuthFailed     = errors.New("bridge authentication failed")
	ErrCancelled      = errors.New("scan superseded by a disconnect")
)

type State int

const (
	Idle State = iota
	Discovering
	Validating
	Authenticating
	Connected
	Failed
	Disconnected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Discovering:
		return "discovering"
	case Validating:
		return "validating"
	case Authenticating:
		return "authenticating"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	case Disconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Connection is an authenticated session with a single bridge.
type Connection struct {
	Host     string
	Username string
}

// Discoverer is one strategy for finding candidate bridge hosts.
type Discoverer interface {
	Name() string
	Discover(ctx context.Context) ([]string, error)
}

type bridgeClient interface {
	Ping(ctx context.Context, host string) error
	Authenticate(ctx context.Context, host string, username string) error
	CreateUser(ctx context.Context, host string, deviceType string) (string, error)
}

type credentialStore interface {
	Credential() string
	SetCredential(username string)
}

type statusPublisher interface {
	PublishStatus(status models.PairingStatus) error
	ClearStatus() error
}

type recorder interface {
	PairingState(state string)
	ReportError(op string, err error)
}

type Options struct {
	DeviceType string
	// manual scan/disconnect requests inside this window are ignored
	Debounce time.Duration
	Now      func() time.Time
}

type Pairer struct {
	logger      *log.Logger
	discoverers []Discoverer
	bridge      bridgeClient
	creds       credentialStore
	status      statusPublisher
	recorder    recorder

	deviceType string
	debounce   time.Duration
	now        func() time.Time

	mu             sync.Mutex
	state          State
	reason         string
	scanning       bool
	generation     int
	conn           *Connection
	lastScan       time.Time
	lastDisconnect time.Time
}

func NewPairer(
	logger *log.Logger,
	discoverers []Discoverer,
	bridge bridgeClient,
	creds credentialStore,
	status statusPublisher,
	recorder recorder,
	opts Options,
) *Pairer {
	if opts.DeviceType == "" {
		opts.DeviceType = constants.DefaultDeviceType
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pairer{
		logger:      logger,
		discoverers: discoverers,
		bridge:      bridge,
		creds:       creds,
		status:      status,
		recorder:    recorder,
		deviceType:  opts.DeviceType,
		debounce:    opts.Debounce,
		now:         opts.Now,
	}
}

// State returns the current state and, when Failed, the reason.
func (p *Pairer) State() (State, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.reason
}

func (p *Pairer) Connection() *Connection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn
}

// Retryable reports whether a failed scan is worth repeating on a timer.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrNoBridgeFound) || errors.Is(err, hue.ErrLinkNotPressed)
}

// RequestScan is a manual scan trigger, ignored inside the debounce window.
func (p *Pairer) RequestScan(ctx context.Context) (*Connection, error) {
	if !p.accept(&p.lastScan) {
		p.logger.Debug("Pairer.RequestScan: debounced")
		return nil, ErrDebounced
	}
	return p.Scan(ctx)
}

// RequestDisconnect is a manual disconnect trigger, ignored inside the debounce window.
func (p *Pairer) RequestDisconnect() error {
	if !p.accept(&p.lastDisconnect) {
		p.logger.Debug("Pairer.RequestDisconnect: debounced")
		return ErrDebounced
	}
	p.Disconnect()
	return nil
}

func (p *Pairer) accept(last *time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if !last.IsZero() && now.Sub(*last) < p.debounce {
		return false
	}
	*last = now
	return true
}

// Disconnect forgets the bridge: the stored credential is cleared, the connection
// dropped and the retained status removed. A scan still running is discarded.
func (p *Pairer) Disconnect() {
	p.mu.Lock()
	p.generation++
	p.conn = nil
	p.state = Disconnected
	p.reason = ""
	p.creds.SetCredential("")
	p.mu.Unlock()

	p.recorder.PairingState(Disconnected.String())
	if err := p.status.ClearStatus(); err != nil {
		p.logger.Warn("unable to clear pairing status", "err", err)
	}
	p.logger.Info("Disconnected from bridge")
}

// Scan runs the whole pairing sequence. Only one scan runs at a time.
func (p *Pairer) Scan(ctx context.Context) (*Connection, error) {
	p.mu.Lock()
	if p.scanning {
		p.mu.Unlock()
		return nil, ErrScanInProgress
	}
	p.scanning = true
	generation := p.generation
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.scanning = false
		p.mu.Unlock()
	}()

	p.publish(models.PairingStatus{Status: constants.StatusScanning})

	p.transition(generation, Discovering)
	hosts, err := p.discover(ctx)
	if err != nil {
		return nil, p.fail(ctx, generation, constants.StatusTransportError, err)
	}
	if len(hosts) == 0 {
		return nil, p.fail(ctx, generation, constants.StatusNoBridgesFound, ErrNoBridgeFound)
	}

	p.transition(generation, Validating)
	reachable := p.validate(ctx, hosts)
	if len(reachable) == 0 {
		return nil, p.fail(ctx, generation, constants.StatusNoBridgesFound, ErrNoBridgeFound)
	}

	p.transition(generation, Authenticating)
	conn, err := p.authenticate(ctx, reachable)
	if err != nil {
		switch {
		case errors.Is(err, hue.ErrLinkNotPressed):
			return nil, p.fail(ctx, generation, constants.StatusNoLinkPushed, err)
		case errors.Is(err, ErrAmbiguous):
			return nil, p.fail(ctx, generation, constants.StatusAmbiguous, err)
		default:
			return nil, p.fail(ctx, generation, constants.StatusFail, err)
		}
	}

	p.mu.Lock()
	if p.stale(generation) {
		p.mu.Unlock()
		p.logger.Info("Discarding scan result, disconnected while scanning", "host", conn.Host)
		return nil, ErrCancelled
	}
	p.conn = conn
	p.state = Connected
	p.reason = ""
	p.creds.SetCredential(conn.Username)
	p.mu.Unlock()

	p.recorder.PairingState(Connected.String())
	p.publish(models.PairingStatus{Status: constants.StatusConnected, Host: conn.Host})
	p.logger.Info("Connected to bridge", "host", conn.Host)
	return conn, nil
}

// stale reports whether a Disconnect happened since the scan with generation started.
// Callers hold p.mu.
func (p *Pairer) stale(generation int) bool {
	return p.generation != generation
}

func (p *Pairer) transition(generation int, state State) {
	p.mu.Lock()
	if p.stale(generation) {
		p.mu.Unlock()
		return
	}
	p.state = state
	p.reason = ""
	p.mu.Unlock()

	p.logger.Debug("Pairer.transition", "state", state)
	p.recorder.PairingState(state.String())
}

func (p *Pairer) fail(ctx context.Context, generation int, reason string, err error) error {
	p.mu.Lock()
	if p.stale(generation) {
		p.mu.Unlock()
		p.logger.Info("Discarding scan failure, disconnected while scanning", "reason", reason, "err", err)
		return ErrCancelled
	}
	if ctx.Err() != nil {
		// shutting down, not a pairing failure
		p.state = Idle
		p.mu.Unlock()
		return ctx.Err()
	}

	p.state = Failed
	p.reason = reason
	p.mu.Unlock()

	p.recorder.PairingState(Failed.String() + ":" + reason)
	p.publish(models.PairingStatus{Status: reason})

	switch reason {
	case constants.StatusNoLinkPushed, constants.StatusNoBridgesFound:
		p.logger.Info("Pairing not complete", "reason", reason, "err", err)
	default:
		p.logger.Error("Pairing failed", "reason", reason, "err", err)
		p.recorder.ReportError("pairing", err)
	}
	return err
}

func (p *Pairer) publish(status models.PairingStatus) {
	status.Ts = p.now().UnixMilli()
	if err := p.status.PublishStatus(status); err != nil {
		p.logger.Warn("unable to publish pairing status", "status", status.Status, "err", err)
	}
}

// discover runs every strategy together, it only fails when all of them fail.
func (p *Pairer) discover(ctx context.Context) ([]string, error) {
	if len(p.discoverers) == 0 {
		return nil, nil
	}

	found := make([][]string, len(p.discoverers))
	errs := make([]error, len(p.discoverers))

	var g errgroup.Group
	for i, d := range p.discoverers {
		i, d := i, d
		g.Go(func() error {
			hosts, err := d.Discover(ctx)
			if err != nil {
				p.logger.Warn("discovery strategy failed", "strategy", d.Name(), "err", err)
				errs[i] = err
				return nil
			}
			p.logger.Debug("Pairer.discover", "strategy", d.Name(), "hosts", hosts)
			found[i] = hosts
			return nil
		})
	}
	_ = g.Wait()

	if lo.EveryBy(errs, func(err error) bool { return err != nil }) {
		return nil, fmt.Errorf("%w: %w", ErrTransport, errors.Join(errs...))
	}

	return lo.Uniq(lo.Without(lo.Flatten(found), "")), nil
}

// validate pings every candidate together and keeps the ones that answered.
func (p *Pairer) validate(ctx context.Context, hosts []string) []string {
	hosts = lo.Uniq(hosts)
	ok := make([]bool, len(hosts))

	var g errgroup.Group
	for i, host := range hosts {
		i, host := i, host
		g.Go(func() error {
			if err := p.bridge.Ping(ctx, host); err != nil {
				p.logger.Info("Dropping unreachable bridge", "host", host, "err", err)
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	return lo.Filter(hosts, func(_ string, i int) bool { return ok[i] })
}

type authResult struct {
	host     string
	username string
	err      error
}

// authenticate tries every reachable bridge together; exactly one must accept.
func (p *Pairer) authenticate(ctx context.Context, hosts []string) (*Connection, error) {
	credential := p.creds.Credential()
	results := make([]authResult, len(hosts))

	var g errgroup.Group
	for i, host := range hosts {
		i, host := i, host
		g.Go(func() error {
			username, err := p.authenticateHost(ctx, host, credential)
			results[i] = authResult{host: host, username: username, err: err}
			return nil
		})
	}
	_ = g.Wait()

	successes := lo.Filter(results, func(r authResult, _ int) bool { return r.err == nil })

	switch {
	case len(successes) == 1:
		return &Connection{Host: successes[0].host, Username: successes[0].username}, nil

	case len(successes) > 1:
		hosts := lo.Map(successes, func(r authResult, _ int) string { return r.host })
		return nil, fmt.Errorf("%w: %v", ErrAmbiguous, hosts)

	default:
		errs := lo.Map(results, func(r authResult, _ int) error { return r.err })
		if lo.EveryBy(errs, func(err error) bool { return errors.Is(err, hue.ErrLinkNotPressed) }) {
			return nil, hue.ErrLinkNotPressed
		}
		return nil, fmt.Errorf("%w: %w", ErrAuthFailed, errors.Join(errs...))
	}
}

func (p *Pairer) authenticateHost(ctx context.Context, host string, credential string) (string, error) {
	if credential != "" {
		err := p.bridge.Authenticate(ctx, host, credential)
		if err == nil {
			p.logger.Debug("Pairer.authenticateHost: stored credential accepted", "host", host)
			return credential, nil
		}
		p.logger.Info("Stored credential rejected, registering again", "host", host, "err", err)
	}
	return p.bridge.CreateUser(ctx, host, p.deviceType)
}
