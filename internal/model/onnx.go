package model

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/Brownie44l1/signscan/internal/failure"
	"github.com/Brownie44l1/signscan/internal/tensor"
)

// ONNXOptions configures LoadONNX.
type ONNXOptions struct {
	// SharedLibraryPath overrides the onnxruntime library location.
	SharedLibraryPath string
	// InputShape is the shape of the tensors that will be fed to Infer.
	// It is not checked against the graph.
	InputShape []int64
	// Metadata supplies the class count when the graph leaves it dynamic.
	Metadata *Metadata
}

// ONNXPredictor runs a single-input, single-output ONNX graph.
type ONNXPredictor struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	inputShape   []int64
	outputWidth  int
}

var _ Predictor = (*ONNXPredictor)(nil)

// LoadONNX initializes onnxruntime and builds a session for the model at
// path. Every failure is tagged as a decode error.
func LoadONNX(path string, opts ONNXOptions, log *logrus.Entry) (*ONNXPredictor, error) {
	p, err := loadONNX(path, opts, log)
	if err != nil {
		return nil, failure.Wrap(failure.Decode, "load model "+path, err)
	}
	return p, nil
}

func loadONNX(path string, opts ONNXOptions, log *logrus.Entry) (*ONNXPredictor, error) {
	if opts.SharedLibraryPath != "" {
		ort.SetSharedLibraryPath(opts.SharedLibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "failed to initialize ONNX environment")
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		ort.DestroyEnvironment()
		return nil, errors.Wrap(err, "failed to read model inputs and outputs")
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		ort.DestroyEnvironment()
		return nil, errors.Errorf("model declares %d inputs and %d outputs", len(inputs), len(outputs))
	}
	in, out := inputs[0], outputs[0]
	if out.DataType != ort.TensorElementDataTypeFloat {
		ort.DestroyEnvironment()
		return nil, errors.Errorf("output %q has element type %v, want float", out.Name, out.DataType)
	}

	width, err := OutputWidth(out.Dimensions, opts.Metadata)
	if err != nil {
		ort.DestroyEnvironment()
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"input":        in.Name,
		"input_shape":  []int64(in.Dimensions),
		"output":       out.Name,
		"output_width": width,
	}).Info("Model loaded")

	p := &ONNXPredictor{inputShape: []int64(in.Dimensions), outputWidth: width}

	inputShape := opts.InputShape
	if len(inputShape) == 0 {
		inputShape = ConcreteShape(in.Dimensions)
	}
	p.inputTensor, err = ort.NewEmptyTensor[float32](ort.NewShape(inputShape...))
	if err != nil {
		p.Close()
		return nil, errors.Wrap(err, "failed to create input tensor")
	}

	p.outputTensor, err = ort.NewEmptyTensor[float32](ort.NewShape(1, int64(width)))
	if err != nil {
		p.Close()
		return nil, errors.Wrap(err, "failed to create output tensor")
	}

	p.session, err = ort.NewAdvancedSession(path,
		[]string{in.Name}, []string{out.Name},
		[]ort.ArbitraryTensor{p.inputTensor}, []ort.ArbitraryTensor{p.outputTensor},
		nil)
	if err != nil {
		p.Close()
		return nil, errors.Wrap(err, "failed to create ONNX session")
	}
	return p, nil
}

// Infer runs one forward pass and returns a copy of the output scores.
func (p *ONNXPredictor) Infer(input *tensor.Tensor) ([]float32, error) {
	dst := p.inputTensor.GetData()
	if len(input.Data) != len(dst) {
		return nil, failure.New(failure.Inference, "infer",
			"input has %d values, session was built for %d", len(input.Data), len(dst))
	}
	copy(dst, input.Data)

	if err := p.session.Run(); err != nil {
		return nil, failure.Wrap(failure.Inference, "inference failed", err)
	}

	scores := p.outputTensor.GetData()
	return append([]float32(nil), scores...), nil
}

// InputShape returns the input shape declared by the graph.
func (p *ONNXPredictor) InputShape() []int64 { return p.inputShape }

// OutputWidth returns the number of classes.
func (p *ONNXPredictor) OutputWidth() int { return p.outputWidth }

// Close releases the session, its tensors and the onnxruntime environment.
func (p *ONNXPredictor) Close() error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	if p.inputTensor != nil {
		keep(p.inputTensor.Destroy())
		p.inputTensor = nil
	}
	if p.outputTensor != nil {
		keep(p.outputTensor.Destroy())
		p.outputTensor = nil
	}
	if p.session != nil {
		keep(p.session.Destroy())
		p.session = nil
	}
	if ort.IsInitialized() {
		keep(ort.DestroyEnvironment())
	}
	return errors.WithStack(first)
}

// OutputWidth derives the class count from the declared output dimensions,
// falling back to metadata when the last dimension is dynamic.
func OutputWidth(dims []int64, metadata *Metadata) (int, error) {
	if n := len(dims); n > 0 && dims[n-1] > 0 {
		return int(dims[n-1]), nil
	}
	if metadata != nil {
		if n := len(metadata.OutputShape); n > 0 && metadata.OutputShape[n-1] > 0 {
			return int(metadata.OutputShape[n-1]), nil
		}
		if len(metadata.Classes) > 0 {
			return len(metadata.Classes), nil
		}
	}
	return 0, errors.Errorf("cannot determine output width from shape %v", dims)
}

// ConcreteShape replaces dynamic dimensions with 1.
func ConcreteShape(dims []int64) []int64 {
	out := make([]int64, len(dims))
	for i, d := range dims {
		if d <= 0 {
			d = 1
		}
		out[i] = d
	}
	return out
}
