package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, uint32(10), Clamp[uint32](5, 10, 20))
	assert.Equal(t, uint32(20), Clamp[uint32](25, 10, 20))
	assert.Equal(t, float32(0.5), Clamp[float32](0.5, 0, 1))
}

func TestVecElements(t *testing.T) {
	assert.Equal(t, [3]float32{1, 2, 3}, NewVec3(1, 2, 3).Elements())
	assert.Equal(t, [4]float32{1, 2, 3, 4}, NewVec4(1, 2, 3, 4).Elements())
}
