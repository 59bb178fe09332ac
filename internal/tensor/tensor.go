// Package tensor holds the dense float32 arrays exchanged with the model.
package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Tensor is a row-major float32 array.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// New allocates a zeroed tensor of the given shape.
func New(shape ...int64) (*Tensor, error) {
	size, err := Size(shape)
	if err != nil {
		return nil, err
	}
	return &Tensor{Shape: append([]int64(nil), shape...), Data: make([]float32, size)}, nil
}

// Size returns the element count of shape. Every dimension must be positive.
func Size(shape []int64) (int, error) {
	if len(shape) == 0 {
		return 0, errors.New("empty shape")
	}
	size := int64(1)
	for _, dim := range shape {
		if dim <= 0 {
			return 0, errors.Errorf("invalid dimension %d in shape %v", dim, shape)
		}
		size *= dim
	}
	return int(size), nil
}

// Len returns the number of elements.
func (t *Tensor) Len() int { return len(t.Data) }

// Range returns the smallest and largest element.
func (t *Tensor) Range() (lo, hi float32) {
	if len(t.Data) == 0 {
		return 0, 0
	}
	lo, hi = t.Data[0], t.Data[0]
	for _, v := range t.Data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func (t *Tensor) String() string {
	lo, hi := t.Range()
	return fmt.Sprintf("tensor%v[min=%.4f max=%.4f]", t.Shape, lo, hi)
}
