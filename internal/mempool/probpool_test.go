package mempool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeClass(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"small size gets minimum", 1, 16},
		{"exactly 16", 16, 16},
		{"just over 16", 17, 32},
		{"exact multiple of 16", 48, 48},
		{"odd number", 50, 64},
		{"zero size", 0, 16},
		{"negative size", -1, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sizeClass(tt.input))
		})
	}
}

func TestGetProbVector_BasicFunctionality(t *testing.T) {
	tests := []struct {
		name        string
		requestSize int
	}{
		{"small vector", 5},
		{"exactly 16", 16},
		{"large vector", 200},
		{"zero size", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := GetProbVector(tt.requestSize)
			assert.Len(t, buf, tt.requestSize)
			for _, v := range buf {
				assert.Zero(t, v)
			}
		})
	}
}

func TestPutProbVector_BasicFunctionality(t *testing.T) {
	t.Run("put valid buffer", func(t *testing.T) {
		buf := GetProbVector(40)
		require.NotNil(t, buf)
		PutProbVector(buf)
	})

	t.Run("put nil buffer", func(t *testing.T) {
		PutProbVector(nil)
	})

	t.Run("put empty buffer", func(t *testing.T) {
		PutProbVector(make([]float64, 0))
	})
}

func TestProbVectorReuse(t *testing.T) {
	size := 38

	buf1 := GetProbVector(size)
	require.Len(t, buf1, size)
	for i := range buf1 {
		buf1[i] = float64(i)
	}
	PutProbVector(buf1)

	buf2 := GetProbVector(size)
	require.Len(t, buf2, size)
	// GetProbVector must always hand back a zeroed buffer, reused or not.
	for _, v := range buf2 {
		assert.Zero(t, v)
	}
}

func TestProbVectorConcurrentAccess(t *testing.T) {
	const numGoroutines = 50
	const numIterations = 100
	const size = 41

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				buf := GetProbVector(size)
				assert.Len(t, buf, size)
				for k := range buf {
					buf[k] = float64(k)
				}
				PutProbVector(buf)
			}
		}()
	}

	wg.Wait()
}
