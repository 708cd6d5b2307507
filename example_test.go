package memarena_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/memarena"
	"github.com/hupe1980/memarena/resource"
)

// Example demonstrates typed allocation with LIFO deallocation.
func Example() {
	a, err := memarena.NewArena(1 << 16)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	type vertex struct {
		X, Y, Z float64
	}

	v, err := memarena.New[vertex](a)
	if err != nil {
		log.Fatal(err)
	}
	v.X, v.Y, v.Z = 1, 2, 3

	weights, err := memarena.MakeSlice[float32](a, 128)
	if err != nil {
		log.Fatal(err)
	}
	weights[0] = 0.5

	// Frees mirror allocations in exact reverse order.
	memarena.FreeSlice(a, weights)
	memarena.Free(a, v)

	fmt.Println(a.Remaining() == a.Capacity())
	// Output: true
}

// Example_reset demonstrates bulk reclamation.
func Example_reset() {
	a, err := memarena.NewArena(4096)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	for i := 0; i < 8; i++ {
		if _, err := memarena.MakeSlice[int64](a, 32); err != nil {
			log.Fatal(err)
		}
	}

	a.Reset()

	fmt.Println(a.Remaining())
	// Output: 4096
}

// Example_memoryBudget demonstrates a global budget shared across arenas.
func Example_memoryBudget() {
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: 8192,
	})

	a, err := memarena.NewArena(8192, memarena.WithMemoryAcquirer(rc))
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	// The budget is exhausted, so a second arena is refused.
	_, err = memarena.NewArena(1, memarena.WithMemoryAcquirer(rc))
	fmt.Println(err != nil)
	// Output: true
}
