package memarena

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("returns a usable zeroed value", func(t *testing.T) {
		a, err := NewArena(1024)
		require.NoError(t, err)
		defer a.Close()

		p, err := New[int32](a)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, int32(0), *p)

		*p = 42
		assert.Equal(t, int32(42), *p)

		d, err := New[float64](a)
		require.NoError(t, err)
		*d = 3.14159
		assert.Equal(t, 3.14159, *d)
		assert.Equal(t, int32(42), *p)
	})

	t.Run("exhausts exactly at capacity", func(t *testing.T) {
		// capacity 8: two int32 fit back to back, a third fails.
		a, err := NewArena(8)
		require.NoError(t, err)
		defer a.Close()

		p1, err := New[int32](a)
		require.NoError(t, err)
		require.NotNil(t, p1)
		assert.Equal(t, 4, a.Remaining())

		p2, err := New[int32](a)
		require.NoError(t, err)
		require.NotNil(t, p2)
		assert.Equal(t, 0, a.Remaining())

		p3, err := New[int32](a)
		assert.ErrorIs(t, err, ErrArenaFull)
		assert.Nil(t, p3)
		assert.Equal(t, 0, a.Remaining())
	})

	t.Run("pads for alignment", func(t *testing.T) {
		a, err := NewArena(1024)
		require.NoError(t, err)
		defer a.Close()

		_, err = New[int8](a)
		require.NoError(t, err)

		d, err := New[float64](a)
		require.NoError(t, err)
		assert.Zero(t, uintptr(unsafe.Pointer(d))%unsafe.Alignof(float64(0)))

		// 1 byte + 7 padding + 8 bytes
		assert.Equal(t, 1024-16, a.Remaining())
	})

	t.Run("addresses satisfy per-type alignment", func(t *testing.T) {
		a, err := NewArena(1024)
		require.NoError(t, err)
		defer a.Close()

		type vertex struct {
			X, Y, Z float64
			Tag     uint8
		}

		c, err := New[int8](a)
		require.NoError(t, err)
		s, err := New[int16](a)
		require.NoError(t, err)
		i, err := New[int32](a)
		require.NoError(t, err)
		v, err := New[vertex](a)
		require.NoError(t, err)

		assert.Zero(t, uintptr(unsafe.Pointer(c))%unsafe.Alignof(int8(0)))
		assert.Zero(t, uintptr(unsafe.Pointer(s))%unsafe.Alignof(int16(0)))
		assert.Zero(t, uintptr(unsafe.Pointer(i))%unsafe.Alignof(int32(0)))
		assert.Zero(t, uintptr(unsafe.Pointer(v))%unsafe.Alignof(vertex{}))
	})
}

func TestFree(t *testing.T) {
	t.Run("lifo round trip restores remaining", func(t *testing.T) {
		a, err := NewArena(100)
		require.NoError(t, err)
		defer a.Close()

		before := a.Remaining()

		i, err := New[int32](a)
		require.NoError(t, err)
		d, err := New[float64](a)
		require.NoError(t, err)
		c, err := New[int8](a)
		require.NoError(t, err)

		Free(a, c)
		Free(a, d)
		Free(a, i)

		assert.Equal(t, before, a.Remaining())
	})

	t.Run("clears the freed value", func(t *testing.T) {
		a, err := NewArena(64)
		require.NoError(t, err)
		defer a.Close()

		p, err := New[int64](a)
		require.NoError(t, err)
		*p = 0x1122334455667788

		Free(a, p)

		q, err := New[int64](a)
		require.NoError(t, err)
		assert.Same(t, p, q)
		assert.Equal(t, int64(0), *q)
	})

	t.Run("nil is a no-op", func(t *testing.T) {
		a, err := NewArena(64)
		require.NoError(t, err)
		defer a.Close()

		Free[int64](a, nil)
		assert.Equal(t, 64, a.Remaining())
	})
}

func TestMakeSlice(t *testing.T) {
	t.Run("allocates zeroed contiguous elements", func(t *testing.T) {
		a, err := NewArena(64)
		require.NoError(t, err)
		defer a.Close()

		s, err := MakeSlice[int32](a, 5)
		require.NoError(t, err)
		require.Len(t, s, 5)

		for i := range s {
			assert.Equal(t, int32(0), s[i])
			s[i] = int32(i * 10)
		}
		assert.Equal(t, 64-20, a.Remaining())
	})

	t.Run("oversized count fails without touching live data", func(t *testing.T) {
		a, err := NewArena(64)
		require.NoError(t, err)
		defer a.Close()

		s, err := MakeSlice[int32](a, 5)
		require.NoError(t, err)
		for i := range s {
			s[i] = int32(i)
		}

		_, err = MakeSlice[int32](a, 1_000_000)
		assert.ErrorIs(t, err, ErrArenaFull)

		for i := range s {
			assert.Equal(t, int32(i), s[i])
		}
		assert.Equal(t, 64-20, a.Remaining())
	})

	t.Run("degenerate counts fail", func(t *testing.T) {
		a, err := NewArena(64)
		require.NoError(t, err)
		defer a.Close()

		_, err = MakeSlice[int32](a, 0)
		assert.ErrorIs(t, err, ErrInvalidCount)

		_, err = MakeSlice[int32](a, -3)
		assert.ErrorIs(t, err, ErrInvalidCount)

		// count * sizeof(T) would overflow
		_, err = MakeSlice[int64](a, math.MaxInt/4)
		assert.ErrorIs(t, err, ErrInvalidCount)

		assert.Equal(t, 64, a.Remaining())
	})
}

func TestFreeSlice(t *testing.T) {
	t.Run("round trip restores remaining", func(t *testing.T) {
		a, err := NewArena(256)
		require.NoError(t, err)
		defer a.Close()

		s1, err := MakeSlice[int32](a, 8)
		require.NoError(t, err)
		s2, err := MakeSlice[float64](a, 4)
		require.NoError(t, err)

		FreeSlice(a, s2)
		FreeSlice(a, s1)

		assert.Equal(t, 256, a.Remaining())
	})

	t.Run("clears elements", func(t *testing.T) {
		a, err := NewArena(64)
		require.NoError(t, err)
		defer a.Close()

		s, err := MakeSlice[int32](a, 4)
		require.NoError(t, err)
		for i := range s {
			s[i] = int32(i + 1)
		}

		FreeSlice(a, s)

		// The slice header still points into the buffer; the region
		// behind it must have been scrubbed.
		for i := range s {
			assert.Equal(t, int32(0), s[i])
		}
	})

	t.Run("empty slice is a no-op", func(t *testing.T) {
		a, err := NewArena(64)
		require.NoError(t, err)
		defer a.Close()

		FreeSlice[int32](a, nil)
		FreeSlice(a, []int32{})
		assert.Equal(t, 64, a.Remaining())
	})
}

func TestStrictChecks(t *testing.T) {
	t.Run("in-order frees pass", func(t *testing.T) {
		a, err := NewArena(128, WithStrictChecks())
		require.NoError(t, err)
		defer a.Close()

		p, err := New[int32](a)
		require.NoError(t, err)
		s, err := MakeSlice[float64](a, 4)
		require.NoError(t, err)

		FreeSlice(a, s)
		Free(a, p)
		assert.Equal(t, 128, a.Remaining())
	})

	t.Run("out-of-order free panics", func(t *testing.T) {
		a, err := NewArena(128, WithStrictChecks())
		require.NoError(t, err)
		defer a.Close()

		p, err := New[int32](a)
		require.NoError(t, err)
		_, err = New[float64](a)
		require.NoError(t, err)

		assert.Panics(t, func() {
			Free(a, p)
		})
	})

	t.Run("free without allocation panics", func(t *testing.T) {
		a, err := NewArena(128, WithStrictChecks())
		require.NoError(t, err)
		defer a.Close()

		p := new(int64)
		assert.Panics(t, func() {
			Free(a, p)
		})
	})
}
