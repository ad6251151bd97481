package treesort

import (
	"slices"
	"testing"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name    string
		data    []uint64
		workers int
		want    [][]uint64
	}{
		{
			name:    "even split",
			data:    []uint64{9, 7, 5, 3, 1, 2, 4, 6, 8, 0},
			workers: 5,
			want:    [][]uint64{{9, 7}, {5, 3}, {1, 2}, {4, 6}, {8, 0}},
		},
		{
			name:    "remainder in last chunk",
			data:    []uint64{1, 2, 3, 4, 5, 6, 7},
			workers: 3,
			want:    [][]uint64{{1, 2, 3}, {4, 5, 6}, {7}},
		},
		{
			name:    "short last chunk",
			data:    []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			workers: 4,
			want:    [][]uint64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10}},
		},
		{
			name:    "fewer values than workers",
			data:    []uint64{3, 1},
			workers: 4,
			want:    [][]uint64{{3}, {1}, {}, {}},
		},
		{
			name:    "empty input",
			data:    []uint64{},
			workers: 4,
			want:    [][]uint64{{}, {}, {}, {}},
		},
		{
			name:    "single worker",
			data:    []uint64{5, 3, 8},
			workers: 1,
			want:    [][]uint64{{5, 3, 8}},
		},
		{
			name:    "size rounds up past the end",
			data:    []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9},
			workers: 4,
			want:    [][]uint64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := partition(tt.data, tt.workers)
			if a.len() != tt.workers {
				t.Fatalf("width = %d, want %d", a.len(), tt.workers)
			}
			got := a.chunks()
			for i := range tt.want {
				if !slices.Equal(got[i], tt.want[i]) {
					t.Errorf("chunk %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
			// Every slot is present, including empty ones.
			for i := range tt.workers {
				if _, err := a.checkout(i); err != nil {
					t.Errorf("checkout(%d): %v", i, err)
				}
			}
		})
	}
}

func TestPartitionCopiesInput(t *testing.T) {
	data := []uint64{4, 3, 2, 1}
	a := partition(data, 2)
	chunk, err := a.checkout(0)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	chunk[0] = 99
	if data[0] != 4 {
		t.Error("writing a chunk modified the input")
	}

	// Appending to a chunk must not spill into its neighbor.
	_ = append(chunk, 100)
	next, err := a.checkout(1)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !slices.Equal(next, []uint64{2, 1}) {
		t.Errorf("chunk 1 = %v after appending to chunk 0", next)
	}
}
