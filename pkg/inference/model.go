package inference

import (
	"errors"
	"fmt"
	"sync"

	"ProjectDevanagari/pkg/preprocess"
)

var (
	ErrModelLoad        = errors.New("model failed to load")
	ErrModelUnavailable = errors.New("model unavailable")
	ErrInvalidInput     = errors.New("invalid input tensor")
)

type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Backend computes class scores for a flattened input tensor.
type Backend interface {
	Run(input []float32) ([]float32, error)
	Close() error
}

type Loader func() (Backend, error)

// Model holds the process-wide model state. It moves from Uninitialized to
// either Loaded or Failed exactly once and never leaves Failed.
type Model struct {
	mu      sync.RWMutex
	once    sync.Once
	state   State
	backend Backend
	err     error
}

func NewModel() *Model {
	return &Model{}
}

// Load runs loader on the first call only. Later calls return the outcome
// of the first one.
func (m *Model) Load(loader Loader) error {
	m.once.Do(func() {
		backend, err := safeLoad(loader)

		m.mu.Lock()
		defer m.mu.Unlock()

		if err != nil {
			m.state = StateFailed
			m.err = fmt.Errorf("%w: %v", ErrModelLoad, err)
			return
		}
		m.state = StateLoaded
		m.backend = backend
	})

	return m.Err()
}

func safeLoad(loader Loader) (backend Backend, err error) {
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("panic while loading model: %v", r)
		}
	}()

	if loader == nil {
		return nil, errors.New("no model loader configured")
	}
	backend, err = loader()
	if err == nil && backend == nil {
		err = errors.New("model loader returned no backend")
	}
	return backend, err
}

func (m *Model) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Err returns the load error, if loading failed.
func (m *Model) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Infer returns one score per class. It fails fast with ErrModelUnavailable
// unless the model is loaded.
func (m *Model) Infer(tensor *preprocess.Tensor) ([]float32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state != StateLoaded {
		return nil, ErrModelUnavailable
	}

	if err := validate(tensor); err != nil {
		return nil, err
	}

	scores, err := m.backend.Run(tensor.Data)
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	return scores, nil
}

func validate(tensor *preprocess.Tensor) error {
	if tensor == nil {
		return fmt.Errorf("%w: nil tensor", ErrInvalidInput)
	}

	want := preprocess.InputShape()
	if len(tensor.Shape) != len(want) {
		return fmt.Errorf("%w: shape %v, want %v", ErrInvalidInput, tensor.Shape, want)
	}
	size := int64(1)
	for i := range want {
		if tensor.Shape[i] != want[i] {
			return fmt.Errorf("%w: shape %v, want %v", ErrInvalidInput, tensor.Shape, want)
		}
		size *= want[i]
	}
	if int64(len(tensor.Data)) != size {
		return fmt.Errorf("%w: %d values, want %d", ErrInvalidInput, len(tensor.Data), size)
	}
	return nil
}

// Close releases the backend. A loaded model reports failed afterwards.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend == nil {
		return nil
	}
	err := m.backend.Close()
	m.backend = nil
	if m.state == StateLoaded {
		m.state = StateFailed
		m.err = fmt.Errorf("%w: model closed", ErrModelLoad)
	}
	return err
}
