package utility

import "testing"

func TestContains(t *testing.T) {
	if !Contains([]string{"movie", "tv"}, "tv") {
		t.Error("Contains phải tìm thấy phần tử có trong slice")
	}
	if Contains([]int64{1, 2, 3}, 4) {
		t.Error("Contains không được tìm thấy phần tử vắng mặt")
	}
}

func TestChunk(t *testing.T) {
	cases := []struct {
		name  string
		input []int64
		size  int
		want  [][]int64
	}{
		{"chia đều", []int64{1, 2, 3, 4}, 2, [][]int64{{1, 2}, {3, 4}}},
		{"chunk cuối ngắn hơn", []int64{1, 2, 3, 4, 5}, 2, [][]int64{{1, 2}, {3, 4}, {5}}},
		{"size lớn hơn slice", []int64{1, 2}, 10, [][]int64{{1, 2}}},
		{"size không hợp lệ", []int64{1, 2, 3}, 0, [][]int64{{1, 2, 3}}},
		{"slice rỗng", nil, 2, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Chunk(tc.input, tc.size)
			if len(got) != len(tc.want) {
				t.Fatalf("số chunk = %d, muốn %d", len(got), len(tc.want))
			}
			for i := range got {
				if len(got[i]) != len(tc.want[i]) {
					t.Fatalf("chunk %d có %d phần tử, muốn %d", i, len(got[i]), len(tc.want[i]))
				}
				for j := range got[i] {
					if got[i][j] != tc.want[i][j] {
						t.Errorf("chunk[%d][%d] = %d, muốn %d", i, j, got[i][j], tc.want[i][j])
					}
				}
			}
		})
	}
}
