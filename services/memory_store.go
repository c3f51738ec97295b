package services

import (
	"context"
	"sync"
	"time"

	"tracker/constants"
	"tracker/errors"
	"tracker/models"

	"github.com/lib/pq"
)

// MemoryDocumentStore giữ document trong RAM, dùng khi chạy local không có Postgres
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*models.TrackerDocument
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string]*models.TrackerDocument)}
}

func memoryKey(collection, id string) string {
	return collection + "/" + id
}

func (s *MemoryDocumentStore) Get(_ context.Context, collection, id string) (*models.TrackerDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[memoryKey(collection, id)].Clone(), nil
}

func (s *MemoryDocumentStore) Set(_ context.Context, collection, id string, doc *models.TrackerDocument) error {
	row := doc.Clone()
	row.UserID = id
	now := time.Now()
	row.CreatedAt, row.UpdatedAt = now, now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[memoryKey(collection, id)] = row
	return nil
}

func (s *MemoryDocumentStore) Update(_ context.Context, collection, id string, fields models.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[memoryKey(collection, id)]
	if !ok {
		return errors.NewAppError(errors.ErrCodeDBNotFound, "document không tồn tại", errors.ErrDocumentNotFound)
	}
	next := doc.Clone()
	for name, value := range fields {
		if err := applyField(next, name, value); err != nil {
			return err
		}
	}
	next.UpdatedAt = time.Now()
	s.docs[memoryKey(collection, id)] = next
	return nil
}

func applyField(doc *models.TrackerDocument, name string, value interface{}) error {
	invalid := errors.NewAppError(errors.ErrCodeValidation, "field không hợp lệ: "+name, errors.ErrInvalidInput)
	switch name {
	case constants.FieldDaily, constants.FieldRoadmap:
		v, ok := value.([]bool)
		if !ok {
			return invalid
		}
		if name == constants.FieldDaily {
			doc.Daily = append(pq.BoolArray{}, v...)
		} else {
			doc.Roadmap = append(pq.BoolArray{}, v...)
		}
	case constants.FieldStreak:
		v, ok := value.(int)
		if !ok {
			return invalid
		}
		doc.Streak = v
	case constants.FieldLastLogin:
		v, ok := value.(string)
		if !ok {
			return invalid
		}
		doc.LastLogin = v
	default:
		return invalid
	}
	return nil
}
