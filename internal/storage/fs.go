package storage

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSAssets stores assets under base/<examID>/<name>, with a sidecar
// <name>.meta.json carrying size and content type.
type FSAssets struct{ base string }

func NewFSAssets(base string) (*FSAssets, error) {
	if base == "" {
		base = "./data/assets"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSAssets{base: base}, nil
}

const metaSuffix = ".meta.json"

func (s *FSAssets) Put(ctx context.Context, examID, name, contentType string, r io.Reader) (Asset, error) {
	if !validName(examID) || !validName(name) {
		return Asset{}, ErrBadName
	}
	dir := filepath.Join(s.base, examID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Asset{}, err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return Asset{}, err
	}
	defer f.Close()
	n, err := io.Copy(f, r)
	if err != nil {
		return Asset{}, err
	}
	a := Asset{ExamID: examID, Name: name, Size: n, ContentType: contentType}
	meta, err := json.Marshal(a)
	if err != nil {
		return Asset{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, name+metaSuffix), meta, 0o644); err != nil {
		return Asset{}, err
	}
	return a, nil
}

func (s *FSAssets) Open(ctx context.Context, examID, name string) (io.ReadCloser, Asset, error) {
	if !validName(examID) || !validName(name) {
		return nil, Asset{}, ErrBadName
	}
	dir := filepath.Join(s.base, examID)
	a := Asset{ExamID: examID, Name: name}
	if meta, err := os.ReadFile(filepath.Join(dir, name+metaSuffix)); err == nil {
		_ = json.Unmarshal(meta, &a)
	}
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, Asset{}, err
	}
	if fi, err := f.Stat(); err == nil {
		a.Size = fi.Size()
	}
	return f, a, nil
}

func (s *FSAssets) List(ctx context.Context, examID string) ([]Asset, error) {
	if !validName(examID) {
		return nil, ErrBadName
	}
	entries, err := os.ReadDir(filepath.Join(s.base, examID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []Asset
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasSuffix(name, metaSuffix) {
			continue
		}
		a := Asset{ExamID: examID, Name: name}
		if meta, err := os.ReadFile(filepath.Join(s.base, examID, name+metaSuffix)); err == nil {
			_ = json.Unmarshal(meta, &a)
		} else if fi, err := e.Info(); err == nil {
			a.Size = fi.Size()
		}
		out = append(out, a)
	}
	return out, nil
}
