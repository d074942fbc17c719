// Package osstest 提供内存版 BlobStore，可注入失败
package osstest

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"xTube.com/cmd/model"
	"xTube.com/pkg/oss"
)

var ErrInjected = errors.New("injected blob failure")

type Store struct {
	mu       sync.Mutex
	objects  map[string]string
	deleted  []string
	FailOn   map[string]bool // folder -> 上传失败
	FailDrop bool            // 删除失败
}

var _ oss.BlobStore = (*Store)(nil)

func New() *Store {
	return &Store{objects: map[string]string{}, FailOn: map[string]bool{}}
}

func (s *Store) Store(_ context.Context, path, folder string) (model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailOn[folder] {
		return model.Asset{}, ErrInjected
	}
	id := folder + "/" + uuid.NewString() + filepath.Ext(path)
	s.objects[id] = path
	return model.Asset{URL: "http://blob.test/" + id, StorageID: id}, nil
}

func (s *Store) Delete(_ context.Context, storageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDrop {
		return ErrInjected
	}
	delete(s.objects, storageID)
	s.deleted = append(s.deleted, storageID)
	return nil
}

// Has 对象是否仍然存在
func (s *Store) Has(storageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[storageID]
	return ok
}

// Len 当前对象数
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Deleted 已删除的存储 ID
func (s *Store) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}
