//go:build linux

package input

import (
	"context"
	"sync"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/tnav/pkg/tnav"
	"github.com/BrandonKowalski/tnav/pkg/tnav/internal"
)

// DefaultBackCodes are the key codes treated as back when none are given.
var DefaultBackCodes = []evdev.EvCode{evdev.KEY_BACK, evdev.KEY_ESC, evdev.BTN_EAST}

type device interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// Reader sends a Back intent for every back key press on one device.
type Reader struct {
	dev   device
	nav   *tnav.Nav
	codes map[evdev.EvCode]bool

	closeOnce sync.Once
}

// Open opens the device node at path, e.g. /dev/input/event3.
func Open(path string, nav *tnav.Nav, codes ...evdev.EvCode) (*Reader, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, tnav.NewInfrastructureError("open_input", err)
	}
	if name, err := dev.Name(); err == nil {
		internal.GetInternalLogger().Debug("Opened input device", "path", path, "name", name)
	}
	return newReader(dev, nav, codes), nil
}

func newReader(dev device, nav *tnav.Nav, codes []evdev.EvCode) *Reader {
	if len(codes) == 0 {
		codes = DefaultBackCodes
	}
	r := &Reader{dev: dev, nav: nav, codes: make(map[evdev.EvCode]bool, len(codes))}
	for _, c := range codes {
		r.codes[c] = true
	}
	return r
}

// IsBack reports whether ev is a press (not a release or autorepeat) of one of
// the back codes.
func (r *Reader) IsBack(ev *evdev.InputEvent) bool {
	return ev != nil && ev.Type == evdev.EV_KEY && ev.Value == 1 && r.codes[ev.Code]
}

// Run reads events until ctx is cancelled or the device fails. Cancellation
// closes the device and returns nil.
func (r *Reader) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			r.Close()
		case <-stop:
		}
	}()

	for {
		ev, err := r.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return tnav.NewInfrastructureError("read_input", err)
		}
		if !r.IsBack(ev) {
			continue
		}
		if !r.nav.Back() {
			internal.GetInternalLogger().Debug("Back key press dropped", "code", ev.Code)
		}
	}
}

// Close releases the device. It is safe to call more than once.
func (r *Reader) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.dev.Close()
	})
	if err != nil {
		return tnav.NewInfrastructureError("close_input", err)
	}
	return nil
}
