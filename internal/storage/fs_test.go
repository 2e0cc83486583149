package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFSAssetsRoundTrip(t *testing.T) {
	s, err := NewFSAssets(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	a, err := s.Put(ctx, "ex1", "diagram.png", "image/png", strings.NewReader("pngbytes"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if a.Size != 8 || a.ContentType != "image/png" {
		t.Errorf("asset = %+v", a)
	}

	rc, got, err := s.Open(ctx, "ex1", "diagram.png")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "pngbytes" {
		t.Errorf("body = %q", body)
	}
	if got.ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", got.ContentType)
	}

	list, err := s.List(ctx, "ex1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "diagram.png" {
		t.Errorf("list = %+v, want one diagram.png", list)
	}
}

func TestFSAssetsRejectsPathyNames(t *testing.T) {
	s, err := NewFSAssets(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	bad := []string{"", ".", "..", "a/b", `a\b`, "../../etc/passwd"}
	for _, name := range bad {
		if _, err := s.Put(ctx, "ex1", name, "", strings.NewReader("x")); !errors.Is(err, ErrBadName) {
			t.Errorf("Put(%q) err = %v, want ErrBadName", name, err)
		}
		if _, _, err := s.Open(ctx, name, "f"); !errors.Is(err, ErrBadName) {
			t.Errorf("Open examID %q err = %v, want ErrBadName", name, err)
		}
	}
}

func TestFSAssetsListEmptyExam(t *testing.T) {
	s, err := NewFSAssets(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	list, err := s.List(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("list = %+v, want empty", list)
	}
}
