package classifier

import (
	"errors"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXOptions configures the ONNX Runtime backend.
type ONNXOptions struct {
	// Library is the path to the onnxruntime shared library. Empty uses the
	// runtime's default lookup.
	Library string
	Input   string
	Output  string
	// Features and Classes give the input and output tensor widths.
	Features int
	Classes  int
}

// ONNX runs a model exported to ONNX (e.g. with skl2onnx, zipmap disabled).
type ONNX struct {
	mu       sync.Mutex
	session  *ort.DynamicAdvancedSession
	features int
	classes  int
}

var _ Classifier = (*ONNX)(nil)

var envMu sync.Mutex

func initRuntime(library string) error {
	envMu.Lock()
	defer envMu.Unlock()
	if ort.IsInitialized() {
		return nil
	}
	if library != "" {
		ort.SetSharedLibraryPath(library)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize onnxruntime: %w", err)
	}
	return nil
}

// NewONNX opens a session for the model at path.
func NewONNX(path string, opts ONNXOptions) (*ONNX, error) {
	if opts.Input == "" || opts.Output == "" {
		return nil, errors.New("onnx input and output names are required")
	}
	if opts.Features <= 0 || opts.Classes <= 0 {
		return nil, fmt.Errorf("onnx tensor widths must be positive (features=%d, classes=%d)",
			opts.Features, opts.Classes)
	}
	if err := initRuntime(opts.Library); err != nil {
		return nil, err
	}
	sess, err := ort.NewDynamicAdvancedSession(path,
		[]string{opts.Input}, []string{opts.Output}, nil)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &ONNX{session: sess, features: opts.Features, classes: opts.Classes}, nil
}

// Classes returns the configured output width.
func (o *ONNX) Classes() int {
	return o.classes
}

// PredictProba runs the model on a single row.
func (o *ONNX) PredictProba(features []float32) ([]float64, error) {
	if len(features) != o.features {
		return nil, fmt.Errorf("vector has %d features, model expects %d", len(features), o.features)
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	in, err := ort.NewTensor(ort.NewShape(1, int64(o.features)), features)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer in.Destroy()
	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(o.classes)))
	if err != nil {
		return nil, fmt.Errorf("output tensor: %w", err)
	}
	defer out.Destroy()

	if err := o.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}
	data := out.GetData()
	probs := make([]float64, len(data))
	for i, v := range data {
		probs[i] = float64(v)
	}
	return probs, nil
}

// Close releases the session. The runtime environment stays initialised for
// the life of the process.
func (o *ONNX) Close() error {
	return o.session.Destroy()
}
