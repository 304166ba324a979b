package decompress

import (
	"math"
	"math/big"
	"math/bits"
)

// arith is the number type a walk accumulates lengths in.
// All values handled are non-negative.
type arith[T any] interface {
	fromInt(n int) T
	add(a, b T) (T, error)
	mulInt(a T, n int) (T, error)
}

// checkedInt64 accumulates in int64 and reports ErrLengthOverflow instead of wrapping.
type checkedInt64 struct{}

func (checkedInt64) fromInt(n int) int64 {
	return int64(n)
}

func (checkedInt64) add(a, b int64) (int64, error) {
	if a > math.MaxInt64-b {
		return 0, ErrLengthOverflow
	}
	return a + b, nil
}

func (checkedInt64) mulInt(a int64, n int) (int64, error) {
	if a == 0 || n == 0 {
		return 0, nil
	}
	hi, lo := bits.Mul64(uint64(a), uint64(n))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, ErrLengthOverflow
	}
	return int64(lo), nil
}

// unbounded accumulates in big.Int and never overflows.
type unbounded struct{}

func (unbounded) fromInt(n int) *big.Int {
	return big.NewInt(int64(n))
}

func (unbounded) add(a, b *big.Int) (*big.Int, error) {
	return new(big.Int).Add(a, b), nil
}

func (unbounded) mulInt(a *big.Int, n int) (*big.Int, error) {
	return new(big.Int).Mul(a, big.NewInt(int64(n))), nil
}
