package trajectory

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/openmd-labs/tcal/pkg/framecache"
	"github.com/openmd-labs/tcal/pkg/molecule"
	"github.com/openmd-labs/tcal/pkg/trajio"
	"github.com/openmd-labs/tcal/pkg/transform"
)

// frameBlobSize is the fixed size of the opaque blob FetchFrameData emits:
// a single 8-byte frame index.
const frameBlobSize = 8

// Facade wraps a backend trajectory with a frame cache and the post-decode
// transform, exposing the identical capability set a backend exposes so
// it is drop-in wherever a trajio.TrajectoryBackend is expected. *Facade
// satisfies trajio.TrajectoryBackend directly; Context additionally
// exposes Facade-specific reconfiguration through opaque Handles.
type Facade struct {
	backend trajio.TrajectoryBackend
	mol     molecule.Molecule
	cache   *framecache.Cache
	logger  Logger

	// confMu guards mask/deperiodize for memory safety only.
	// Reconfiguration is never implicitly ordered against in-flight
	// decodes; this mutex prevents a torn read, not a stale one.
	confMu      sync.Mutex
	mask        molecule.AtomMask
	deperiodize bool
}

// newFacade constructs a Facade around an already-validated backend.
func newFacade(backend trajio.TrajectoryBackend, mol molecule.Molecule, cacheSizeBytes int64, logger Logger) *Facade {
	if logger == nil {
		logger = noopLogger{}
	}

	capacity := framecache.SizeCapacity(backend.NumFrames(), mol.AtomCount(), cacheSizeBytes)

	return &Facade{
		backend: backend,
		mol:     mol,
		cache:   framecache.New(capacity, backend.NumFrames(), mol.AtomCount()),
		logger:  logger,
		mask:    molecule.NewAtomMask(mol.AtomCount()),
	}
}

// NumAtoms implements trajio.TrajectoryBackend.
func (f *Facade) NumAtoms() int { return f.backend.NumAtoms() }

// NumFrames implements trajio.TrajectoryBackend.
func (f *Facade) NumFrames() int { return f.backend.NumFrames() }

// Header implements trajio.TrajectoryBackend.
func (f *Facade) Header() trajio.FrameHeader { return f.backend.Header() }

// Close implements trajio.TrajectoryBackend; it closes the wrapped
// backend. Context.Close additionally removes the façade from the
// open-trajectories registry — call that instead of this method directly
// when the façade was opened through a Context.
func (f *Facade) Close() error { return f.backend.Close() }

// FetchFrameData implements trajio.TrajectoryBackend: it emits an 8-byte
// blob encoding idx, meaningful only to this façade's DecodeFrameData.
// The real decode work happens there.
func (f *Facade) FetchFrameData(idx int) ([]byte, error) {
	blob := make([]byte, frameBlobSize)
	binary.LittleEndian.PutUint64(blob, uint64(idx))

	return blob, nil
}

// DecodeFrameData validates the index encoded in blob, consults the frame
// cache, and on a miss asks the backend to decode before applying the
// post-decode transform and populating the cache. out receives a copy of
// the resulting frame.
func (f *Facade) DecodeFrameData(blob []byte, out *trajio.FrameData) error {
	if len(blob) != frameBlobSize {
		return fmt.Errorf("%w: blob must be %d bytes", ErrInvalidFrameIndex, frameBlobSize)
	}

	idx := int(binary.LittleEndian.Uint64(blob))
	if idx < 0 || idx >= f.backend.NumFrames() {
		return ErrInvalidFrameIndex
	}

	handle, err := f.cache.FindOrReserve(idx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	if !handle.IsMiss() {
		copyFrameOut(handle.Data(), out)
		handle.Release()

		return nil
	}

	if err := f.decodeMiss(idx, handle); err != nil {
		handle.Abort(f.cache)

		return err
	}

	copyFrameOut(handle.Data(), out)
	handle.Populate()

	return nil
}

// decodeMiss asks the backend for raw frame bytes, decodes them into the
// reserved slot, and applies the post-decode transform in place.
func (f *Facade) decodeMiss(idx int, handle *framecache.Handle) error {
	raw, err := f.backend.FetchFrameData(idx)
	if err != nil {
		f.logger.Errorf("fetch frame %d: %v", idx, err)

		return fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	slotData := handle.Data()
	slotData.EnsureCapacity(f.mol.AtomCount())

	if err := f.backend.DecodeFrameData(raw, slotData); err != nil {
		f.logger.Errorf("decode frame %d: %v", idx, err)

		return fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	if slotData.Header.AtomCount != f.mol.AtomCount() {
		return fmt.Errorf("%w: backend reported %d atoms for frame %d, molecule has %d",
			ErrDecodeFailed, slotData.Header.AtomCount, idx, f.mol.AtomCount())
	}

	f.confMu.Lock()
	mask := f.mask
	deperiodizeFlag := f.deperiodize
	f.confMu.Unlock()

	transform.Apply(slotData, f.mol, mask, deperiodizeFlag)

	return nil
}

// LoadFrame is a convenience wrapper: FetchFrameData followed by
// DecodeFrameData.
func (f *Facade) LoadFrame(idx int, out *trajio.FrameData) error {
	blob, err := f.FetchFrameData(idx)
	if err != nil {
		return err
	}

	return f.DecodeFrameData(blob, out)
}

// SetRecenterTarget sets (or, with a nil mask, clears) the recenter target.
// Returns the previous mask. Does not invalidate the cache (see DESIGN.md).
func (f *Facade) SetRecenterTarget(mask *molecule.AtomMask) molecule.AtomMask {
	f.confMu.Lock()
	defer f.confMu.Unlock()

	previous := f.mask

	if mask == nil {
		f.mask = molecule.NewAtomMask(f.mol.AtomCount())
	} else {
		f.mask = *mask
	}

	return previous
}

// SetDeperiodize sets the deperiodize flag and returns the previous value.
// Does not invalidate the cache (see DESIGN.md).
func (f *Facade) SetDeperiodize(on bool) bool {
	f.confMu.Lock()
	defer f.confMu.Unlock()

	previous := f.deperiodize
	f.deperiodize = on

	return previous
}

// ClearCache drops all cached frames.
func (f *Facade) ClearCache() { f.cache.Clear() }

// NumCacheFrames returns the number of currently populated cache frames.
func (f *Facade) NumCacheFrames() int { return f.cache.NumFrames() }

func copyFrameOut(src, dst *trajio.FrameData) {
	if dst == nil {
		return
	}

	dst.Header = src.Header
	dst.EnsureCapacity(src.Header.AtomCount)
	copy(dst.X, src.X)
	copy(dst.Y, src.Y)
	copy(dst.Z, src.Z)
}

var _ trajio.TrajectoryBackend = (*Facade)(nil)
