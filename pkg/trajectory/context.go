// Package trajectory implements the trajectory façade and the
// open-trajectories registry: a façade that wraps a backend trajectory
// with a frame cache and post-decode transform, and a small
// fixed-capacity registry translating an opaque handle to its wrapping
// façade state.
package trajectory

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/openmd-labs/tcal/pkg/format"
	"github.com/openmd-labs/tcal/pkg/molecule"
	"github.com/openmd-labs/tcal/pkg/trajio"
)

// MaxOpenTrajectories is the fixed registry bound.
const MaxOpenTrajectories = 8

// Handle is an opaque reference to an open trajectory, looked up in a
// Context's registry. The zero Handle is never valid.
//
// A Handle only means something relative to the Context that minted it:
// this is an explicit registry owned by a context struct rather than a
// process-wide, pointer-keyed table.
type Handle int64

// Context owns the open-trajectories registry. The zero Context is usable
// with no explicit construction required; it logs nothing until given a
// Logger.
//
// Registered entries live in a sync.Map keyed by Handle: operations
// against different handles never contend on one mutex, while a given
// handle's own façade still serializes its own mutable state (mask,
// deperiodize flag) internally.
type Context struct {
	entries sync.Map // map[Handle]*Facade
	count   atomic.Int32
	next    atomic.Int64
	logger  Logger
}

// NewContext creates a Context that logs through logger. A nil logger
// discards all messages.
func NewContext(logger Logger) *Context {
	if logger == nil {
		logger = noopLogger{}
	}

	return &Context{logger: logger}
}

// log returns c.logger, defaulting to a no-op logger for a zero-value
// Context (logger is never set after construction, so this needs no
// locking of its own).
func (c *Context) log() Logger {
	if c.logger == nil {
		return noopLogger{}
	}

	return c.logger
}

// OpenFile opens a trajectory:
//
//  1. If backend is nil, look it up by extension in reg.
//  2. Construct the backend.
//  3. Verify its atom count matches mol.
//  4. Register the façade and size its frame cache.
//
// cacheSizeBytes is the configured frame cache budget; pass
// framecache.DefaultCacheSizeBytes for the recommended default.
func (c *Context) OpenFile(
	path string,
	backend trajio.TrajectoryBackendFactory,
	mol molecule.Molecule,
	reg *format.Registry,
	cacheSizeBytes int64,
) (Handle, error) {
	if backend == nil {
		if reg == nil {
			return 0, ErrUnsupportedExtension
		}

		backend = reg.TrajLoaderFromExt(filepath.Ext(path))
		if backend == nil {
			return 0, ErrUnsupportedExtension
		}
	}

	for {
		old := c.count.Load()
		if old >= MaxOpenTrajectories {
			return 0, ErrCapacityExceeded
		}

		if c.count.CompareAndSwap(old, old+1) {
			break
		}
	}

	traj, err := backend(path)
	if err != nil || traj == nil {
		c.count.Add(-1)
		c.log().Errorf("create backend for %s: %v", path, err)

		return 0, fmt.Errorf("%w: %s: %w", ErrBackendCreateFailed, path, err)
	}

	if traj.NumAtoms() != mol.AtomCount() {
		_ = traj.Close()
		c.count.Add(-1)

		return 0, fmt.Errorf("%w: backend reports %d atoms, molecule has %d",
			ErrTopologyMismatch, traj.NumAtoms(), mol.AtomCount())
	}

	facade := newFacade(traj, mol, cacheSizeBytes, c.log())
	h := Handle(c.next.Add(1))
	c.entries.Store(h, facade)

	return h, nil
}

// Close looks up h and, if found, closes its backend and removes it from
// the registry. Returns ErrUnknownHandle if h is not registered.
func (c *Context) Close(h Handle) error {
	val, ok := c.entries.LoadAndDelete(h)
	if !ok {
		c.log().Warnf("close: unknown handle %d", h)

		return ErrUnknownHandle
	}

	c.count.Add(-1)

	facade, _ := val.(*Facade)

	return facade.Close()
}

// lookup returns the façade for h, or ErrUnknownHandle.
func (c *Context) lookup(h Handle) (*Facade, error) {
	val, ok := c.entries.Load(h)
	if !ok {
		return nil, ErrUnknownHandle
	}

	facade, ok := val.(*Facade)
	if !ok {
		return nil, ErrUnknownHandle
	}

	return facade, nil
}

// SetRecenterTarget reconfigures the recenter mask for an open trajectory.
// A nil mask clears it. Returns the previous mask.
func (c *Context) SetRecenterTarget(h Handle, mask *molecule.AtomMask) (molecule.AtomMask, error) {
	facade, err := c.lookup(h)
	if err != nil {
		return molecule.AtomMask{}, err
	}

	return facade.SetRecenterTarget(mask), nil
}

// SetDeperiodize reconfigures the deperiodize flag for an open trajectory.
// Returns the previous value.
func (c *Context) SetDeperiodize(h Handle, on bool) (bool, error) {
	facade, err := c.lookup(h)
	if err != nil {
		return false, err
	}

	return facade.SetDeperiodize(on), nil
}

// ClearCache drops all cached frames for an open trajectory.
func (c *Context) ClearCache(h Handle) error {
	facade, err := c.lookup(h)
	if err != nil {
		return err
	}

	facade.ClearCache()

	return nil
}

// NumCacheFrames returns the number of currently populated cache frames.
func (c *Context) NumCacheFrames(h Handle) (int, error) {
	facade, err := c.lookup(h)
	if err != nil {
		return 0, err
	}

	return facade.NumCacheFrames(), nil
}

// LoadFrame decodes frame idx for the open trajectory h.
func (c *Context) LoadFrame(h Handle, idx int, out *trajio.FrameData) error {
	facade, err := c.lookup(h)
	if err != nil {
		return err
	}

	return facade.LoadFrame(idx, out)
}

// FetchFrameData mirrors Facade.FetchFrameData at the Context level: it
// returns the opaque blob DecodeFrameData expects.
func (c *Context) FetchFrameData(h Handle, idx int) ([]byte, error) {
	facade, err := c.lookup(h)
	if err != nil {
		return nil, err
	}

	return facade.FetchFrameData(idx)
}

// DecodeFrameData decodes a blob previously returned by FetchFrameData for
// the open trajectory h.
func (c *Context) DecodeFrameData(h Handle, blob []byte, out *trajio.FrameData) error {
	facade, err := c.lookup(h)
	if err != nil {
		return err
	}

	return facade.DecodeFrameData(blob, out)
}

// NumOpen returns the number of currently open trajectories.
func (c *Context) NumOpen() int {
	return int(c.count.Load())
}
