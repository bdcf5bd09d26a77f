package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v3"
	"github.com/thoas/go-funk"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core/entity"
	"github.com/vwid-io/vwid/provider"
	"github.com/vwid-io/vwid/push"
	"github.com/vwid-io/vwid/util"
	"github.com/vwid-io/vwid/vehicle"
)

// ImageCache is the validity of downloaded vehicle images
const ImageCache = 60 * time.Minute

// global parameter keys
const (
	KeyVehicles = "vehicles"
	KeyUpdated  = "updated"
	KeyName     = "name"
	KeyModel    = "model"
)

// Coordinator polls the vendor client and fans out vehicle updates
type Coordinator struct {
	log      *util.Logger
	mu       sync.RWMutex
	conn     api.Connector
	throttle *provider.Throttle
	models   []string
	vehicles []*api.Vehicle
	images   map[string]func() (api.Image, error)
	waiter   *util.Waiter
	sessions *Sessions

	valueChan chan<- util.Param
	pushChan  chan<- push.Event

	// FirstRefresh retry policy
	Attempts uint
	Delay    time.Duration
}

// NewCoordinator creates a coordinator for the connector. Only vehicles of
// the given models are exposed, all vehicles if models is empty.
func NewCoordinator(conn api.Connector, models []string, throttle *provider.Throttle) *Coordinator {
	log := util.NewLogger("core")

	return &Coordinator{
		log:      log,
		conn:     conn,
		throttle: throttle,
		models:   models,
		images:   make(map[string]func() (api.Image, error)),
		waiter:   util.NewWaiter(0),
		sessions: NewSessions(log),
		Attempts: 3,
		Delay:    5 * time.Second,
	}
}

// Prepare attaches the communication channels. Either channel may be nil.
func (c *Coordinator) Prepare(valueChan chan<- util.Param, pushChan chan<- push.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valueChan = valueChan
	c.pushChan = pushChan
	c.sessions.Prepare(pushChan)
}

// SetStaleness enables health reporting for refreshes older than timeout
func (c *Coordinator) SetStaleness(timeout time.Duration) {
	c.waiter = util.NewWaiter(timeout)
}

// Connector returns the current vendor client
func (c *Coordinator) Connector() api.Connector {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

// Reconfigure replaces the vendor client. The next refresh always reaches upstream.
func (c *Coordinator) Reconfigure(conn api.Connector) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.log.INFO.Println("connector reconfigured")
	provider.ResetCached()
}

// supported checks the model filter
func (c *Coordinator) supported(v *api.Vehicle) bool {
	return len(c.models) == 0 || funk.ContainsString(c.models, v.Model)
}

// FirstRefresh performs the initial refresh with retries
func (c *Coordinator) FirstRefresh(ctx context.Context) error {
	return retry.Do(
		func() error {
			return c.Refresh(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(c.Attempts),
		retry.Delay(c.Delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.WARN.Printf("refresh failed (attempt %d): %v", n+1, err)
		}),
	)
}

// Refresh updates the garage through the throttle and publishes all entity values
func (c *Coordinator) Refresh(ctx context.Context) error {
	conn := c.Connector()

	if err := c.throttle.Update(ctx, conn); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	var vehicles []*api.Vehicle
	for _, v := range conn.Vehicles() {
		if c.supported(v) {
			vehicles = append(vehicles, v)
		} else {
			c.log.DEBUG.Printf("skipping unsupported model %s (%s)", v.Model, v.VIN)
		}
	}

	c.mu.Lock()
	c.vehicles = vehicles
	c.mu.Unlock()

	c.publishAll(vehicles)
	c.waiter.Update()

	return nil
}

func (c *Coordinator) publish(vin, key string, val interface{}) {
	c.mu.RLock()
	ch := c.valueChan
	c.mu.RUnlock()

	if ch != nil {
		ch <- util.Param{Vehicle: vin, Key: key, Val: val}
	}
}

func (c *Coordinator) publishAll(vehicles []*api.Vehicle) {
	vins := make([]string, 0, len(vehicles))

	for _, v := range vehicles {
		vins = append(vins, v.VIN)

		c.publish(v.VIN, KeyName, v.Name)
		c.publish(v.VIN, KeyModel, v.Model)

		for key, val := range entity.Values(v) {
			c.publish(v.VIN, key, val)
		}

		c.sessions.Update(v)
	}

	c.publish("", KeyVehicles, vins)
	c.publish("", KeyUpdated, time.Now())
}

// Run refreshes periodically until the context is cancelled
func (c *Coordinator) Run(ctx context.Context, interval time.Duration) {
	if interval < provider.MinInterval {
		c.log.WARN.Printf("interval %v below minimum, using %v", interval, provider.MinInterval)
		interval = provider.MinInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
				c.log.ERROR.Println(err)
			}
		}
	}
}

// Wait blocks until the first refresh has completed
func (c *Coordinator) Wait(ctx context.Context) error {
	return c.waiter.Wait(ctx)
}

// Health returns an error if no recent refresh succeeded
func (c *Coordinator) Health() error {
	return c.waiter.Overdue()
}

// Updated returns the time of the last successful refresh
func (c *Coordinator) Updated() time.Time {
	return c.waiter.Updated()
}

// Vehicles returns the supported vehicles of the last refresh
func (c *Coordinator) Vehicles() []*api.Vehicle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*api.Vehicle(nil), c.vehicles...)
}

func (c *Coordinator) list() ([]*api.Vehicle, error) {
	return c.Vehicles(), nil
}

// Vehicle returns a supported vehicle. An empty VIN selects the only vehicle.
func (c *Coordinator) Vehicle(vin string) (*api.Vehicle, error) {
	return vehicle.EnsureVehicle(vin, c.list)
}

// Image returns the vehicle picture
func (c *Coordinator) Image(ctx context.Context, vin string) (api.Image, error) {
	v, err := c.Vehicle(vin)
	if err != nil {
		return api.Image{}, err
	}

	c.mu.Lock()
	g, ok := c.images[v.VIN]
	if !ok {
		// getters are kept per vin and follow connector reconfiguration
		vin := v.VIN
		g = provider.Cached(func() (api.Image, error) {
			// image downloads outlive single requests
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return c.Connector().Image(ctx, vin)
		}, ImageCache)
		c.images[v.VIN] = g
	}
	c.mu.Unlock()

	type result struct {
		img api.Image
		err error
	}

	res := make(chan result, 1)
	go func() {
		img, err := g()
		res <- result{img, err}
	}()

	select {
	case r := <-res:
		return r.img, r.err
	case <-ctx.Done():
		return api.Image{}, ctx.Err()
	}
}

// Push sends a push notification event
func (c *Coordinator) Push(ev push.Event) {
	c.mu.RLock()
	ch := c.pushChan
	c.mu.RUnlock()

	if ch != nil {
		select {
		case ch <- ev:
		default:
			c.log.WARN.Printf("push queue full, dropping %s", ev.Event)
		}
	}
}
