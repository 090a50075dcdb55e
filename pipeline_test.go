package mortar

import (
	"sync/atomic"
	"testing"
)

func TestTaskCoversEveryElement(t *testing.T) {
	for _, workers := range []int{1, 3, 8, 100} {
		data := make([]int, 37)
		for i := range data {
			data[i] = i * 2
		}

		out := make([]int, len(data))
		task(workers, data, func(i int, v int) {
			out[i] = v + 1
		})

		for i := range out {
			if out[i] != data[i]+1 {
				t.Fatalf("workers=%d: out[%d] = %d, want %d", workers, i, out[i], data[i]+1)
			}
		}
	}
}

func TestTaskRunsEachElementOnce(t *testing.T) {
	var calls int64
	task(4, make([]struct{}, 100), func(int, struct{}) {
		atomic.AddInt64(&calls, 1)
	})
	if calls != 100 {
		t.Errorf("calls = %d, want 100", calls)
	}
}

func TestTaskEmptyAndClampedWorkers(t *testing.T) {
	task(0, []int(nil), func(int, int) {
		t.Error("fn must not run on empty data")
	})

	ran := false
	task(-5, []int{1}, func(i int, v int) {
		ran = true
	})
	if !ran {
		t.Error("negative worker count should clamp to one worker")
	}
}
