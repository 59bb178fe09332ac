package model

//go:generate mockgen -source=types.go -destination=mocks/mock_predictor.go -package=mocks

import "github.com/Brownie44l1/signscan/internal/tensor"

// Metadata is the optional JSON sidecar exported next to the model.
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// Predictor maps a preprocessed tensor to one score per class.
type Predictor interface {
	Infer(input *tensor.Tensor) ([]float32, error)
	// InputShape is the shape declared by the model graph, reported for
	// diagnostics only.
	InputShape() []int64
	OutputWidth() int
	Close() error
}
