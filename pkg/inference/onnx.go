package inference

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"ProjectDevanagari/pkg/devanagari"
	"ProjectDevanagari/pkg/preprocess"

	ort "github.com/yalue/onnxruntime_go"
)

type ONNXConfig struct {
	ModelPath         string
	SharedLibraryPath string
	InputName         string
	OutputName        string
}

type onnxBackend struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// NewONNXBackend opens an onnxruntime session for a (1,32,32,1) -> (1,46)
// classifier. The input and output tensors are allocated once and reused.
func NewONNXBackend(cfg ONNXConfig) (Backend, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("model file %s: %w", cfg.ModelPath, err)
	}

	if cfg.SharedLibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.SharedLibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(preprocess.InputShape()...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, devanagari.Count))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &onnxBackend{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

func (b *onnxBackend) Run(input []float32) ([]float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil, errors.New("session closed")
	}

	dst := b.inputTensor.GetData()
	if len(input) != len(dst) {
		return nil, fmt.Errorf("%w: %d values, want %d", ErrInvalidInput, len(input), len(dst))
	}
	copy(dst, input)

	if err := b.session.Run(); err != nil {
		return nil, err
	}

	out := b.outputTensor.GetData()
	scores := make([]float32, len(out))
	copy(scores, out)
	return scores, nil
}

func (b *onnxBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	if b.session != nil {
		errs = append(errs, b.session.Destroy())
		b.session = nil
	}
	if b.inputTensor != nil {
		errs = append(errs, b.inputTensor.Destroy())
		b.inputTensor = nil
	}
	if b.outputTensor != nil {
		errs = append(errs, b.outputTensor.Destroy())
		b.outputTensor = nil
	}
	if ort.IsInitialized() {
		errs = append(errs, ort.DestroyEnvironment())
	}
	return errors.Join(errs...)
}

// ONNXLoader adapts NewONNXBackend to Model.Load.
func ONNXLoader(cfg ONNXConfig) Loader {
	return func() (Backend, error) {
		return NewONNXBackend(cfg)
	}
}
