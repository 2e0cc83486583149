// Package storage holds binary exam assets (question images, reference
// sheets) outside the relational store, keyed by exam.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

var ErrBadName = errors.New("asset name contains path elements")

// Asset describes one stored object.
type Asset struct {
	ExamID      string `json:"exam_id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// AssetStore is the blob boundary: a filesystem in dev, an object store in
// other deployments.
type AssetStore interface {
	Put(ctx context.Context, examID, name, contentType string, r io.Reader) (Asset, error)
	Open(ctx context.Context, examID, name string) (io.ReadCloser, Asset, error)
	List(ctx context.Context, examID string) ([]Asset, error)
}

// validName rejects anything that could escape the per-exam prefix.
func validName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}
