// Package mempool provides sized sync.Pool wrappers for the scratch
// buffers the detection hot path allocates once per Monte-Carlo trial.
package mempool

import "sync"

var probPools sync.Map // key: size class (int), value: *sync.Pool

// sizeClass rounds n up to the next bucket of 16 to keep the number of
// distinct pools small while still avoiding gross over-allocation for the
// typical case of a few dozen loaded languages.
func sizeClass(n int) int {
	const step = 16
	if n <= step {
		return step
	}
	r := (n + step - 1) / step
	return r * step
}

// GetProbVector retrieves a []float64 probability vector of exactly n
// elements, zeroed, from the pool. The caller must return it via
// PutProbVector when done.
func GetProbVector(n int) []float64 {
	cls := sizeClass(n)
	pAny, _ := probPools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]float64, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return make([]float64, n)
	}
	bufAny := p.Get()
	buf, ok := bufAny.([]float64)
	if !ok || cap(buf) < cls {
		buf = make([]float64, cls)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// PutProbVector returns a buffer obtained from GetProbVector to the pool.
// It is safe to pass nil.
func PutProbVector(buf []float64) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	pAny, _ := probPools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]float64, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return
	}
	p.Put(buf[:cap(buf)]) //nolint:staticcheck
}
