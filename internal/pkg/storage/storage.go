package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage 合同文件对象存储。约定：Save 返回的路径可用于后续 Open/Delete。
type Storage interface {
	Save(path string, r io.Reader) error
	Open(path string) (io.ReadCloser, error)
	Delete(path string) error
}

var ErrInvalidPath = errors.New("invalid storage path")

// localStorage 本地磁盘实现，所有对象落在 root 之下
type localStorage struct {
	root string
}

func NewLocalStorage(root string) (Storage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &localStorage{root: root}, nil
}

// resolve 将对象路径映射到 root 下的绝对路径，拒绝越界路径
func (s *localStorage) resolve(path string) (string, error) {
	cleaned := filepath.Clean("/" + path)
	if cleaned == "/" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.root, cleaned)
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

func (s *localStorage) Save(path string, r io.Reader) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}

func (s *localStorage) Open(path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (s *localStorage) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	return os.Remove(full)
}
