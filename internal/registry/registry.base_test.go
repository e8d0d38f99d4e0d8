package registry

import (
	"errors"
	"testing"

	"movie_backend/internal/common"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("movies", "collection-movies")
	if err != nil || !isNew {
		t.Fatalf("Register lần đầu: isNew = %v, err = %v; muốn true, nil", isNew, err)
	}

	value, exists := r.Get("movies")
	if !exists || value != "collection-movies" {
		t.Errorf("Get = (%q, %v), muốn (collection-movies, true)", value, exists)
	}

	// Đăng ký trùng tên là ghi đè, không phải item mới
	isNew, err = r.Register("movies", "collection-movies-v2")
	if err != nil || isNew {
		t.Errorf("Register ghi đè: isNew = %v, err = %v; muốn false, nil", isNew, err)
	}
	if value, _ := r.Get("movies"); value != "collection-movies-v2" {
		t.Errorf("giá trị sau ghi đè = %q, muốn collection-movies-v2", value)
	}
}

func TestRegistry_RegisterEmptyName(t *testing.T) {
	r := NewRegistry[int]()
	if _, err := r.Register("", 1); !errors.Is(err, common.ErrRequiredField) {
		t.Errorf("Register với name rỗng: err = %v, muốn ErrRequiredField", err)
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry[int]()
	value, exists := r.Get("không-tồn-tại")
	if exists || value != 0 {
		t.Errorf("Get item vắng mặt = (%d, %v), muốn (0, false)", value, exists)
	}
}
