package vec_test

import (
	"testing"

	"github.com/katalvlaran/splx/vec"
)

// BenchmarkDenseMultAdd measures the sparse multiply-add hot path.
func BenchmarkDenseMultAdd(b *testing.B) {
	const dim = 4096
	d := vec.NewDense(dim)
	s := vec.NewSparse(64)
	for i := 0; i < 64; i++ {
		_ = s.Add(i*64, float64(i))
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		d.MultAdd(1e-9, s)
	}
}

// BenchmarkSemiSparseSetup measures the rescan after unsynced writes.
func BenchmarkSemiSparseSetup(b *testing.B) {
	const dim = 4096
	v := vec.NewSemiSparse(dim, 1e-12)
	vals := v.Values()
	for i := 0; i < dim; i += 8 {
		vals[i] = float64(i)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		v.Unsync()
		v.Setup()
	}
}

// BenchmarkUpdateApply measures the deferred pivot fold.
func BenchmarkUpdateApply(b *testing.B) {
	const dim = 4096
	u := vec.NewUpdate(dim, 1e-12)
	for i := 0; i < dim; i += 16 {
		u.Delta().SetValue(i, float64(i))
	}
	u.SetValue(1e-9)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		u.Apply()
	}
}
