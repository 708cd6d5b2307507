package memarena_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/memarena"
)

func BenchmarkNew(b *testing.B) {
	type node struct {
		Next  *node
		Value [4]uint64
	}

	a, err := memarena.NewArena(1 << 24)
	if err != nil {
		b.Fatal(err)
	}
	defer a.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := memarena.New[node](a); err != nil {
			a.Reset()
		}
	}
}

func BenchmarkMakeSlice(b *testing.B) {
	capacities := []int{8, 64, 512}

	for _, count := range capacities {
		b.Run(fmt.Sprintf("count=%d", count), func(b *testing.B) {
			a, err := memarena.NewArena(1 << 24)
			if err != nil {
				b.Fatal(err)
			}
			defer a.Close()

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := memarena.MakeSlice[uint32](a, count); err != nil {
					a.Reset()
				}
			}
		})
	}
}

func BenchmarkNewFree(b *testing.B) {
	a, err := memarena.NewArena(1 << 16)
	if err != nil {
		b.Fatal(err)
	}
	defer a.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		p, err := memarena.New[[16]uint64](a)
		if err != nil {
			b.Fatal(err)
		}
		memarena.Free(a, p)
	}
}

func BenchmarkConcurrentNew(b *testing.B) {
	a, err := memarena.NewArena(1 << 26)
	if err != nil {
		b.Fatal(err)
	}
	defer a.Close()

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := memarena.New[[8]uint64](a); err != nil {
				a.Reset()
			}
		}
	})
}
