package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"tracker/commands"
	"tracker/constants"
	"tracker/errors"
	"tracker/models"
	"tracker/services/logger"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentStore là kho document theo (collection, id).
// Get trả về (nil, nil) khi document chưa tồn tại.
type DocumentStore interface {
	commands.DocumentWriter
	Get(ctx context.Context, collection, id string) (*models.TrackerDocument, error)
}

// trackerColumns ánh xạ tên field JSON sang cột trong bảng
var trackerColumns = map[string]string{
	constants.FieldDaily:     "daily",
	constants.FieldRoadmap:   "roadmap",
	constants.FieldStreak:    "streak",
	constants.FieldLastLogin: "last_login",
}

// GormDocumentStore lưu document trong PostgreSQL
type GormDocumentStore struct {
	db *gorm.DB
}

func NewGormDocumentStore(db *gorm.DB) *GormDocumentStore {
	return &GormDocumentStore{db: db}
}

// AutoMigrate tạo bảng trackers nếu chưa có
func (s *GormDocumentStore) AutoMigrate() error {
	return s.db.AutoMigrate(&models.TrackerDocument{})
}

func (s *GormDocumentStore) Get(ctx context.Context, collection, id string) (*models.TrackerDocument, error) {
	var doc models.TrackerDocument
	err := s.db.WithContext(ctx).Table(collection).Where("user_id = ?", id).Take(&doc).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "lỗi khi đọc document", err)
	}
	return &doc, nil
}

func (s *GormDocumentStore) Set(ctx context.Context, collection, id string, doc *models.TrackerDocument) error {
	row := doc.Clone()
	row.UserID = id
	err := s.db.WithContext(ctx).Table(collection).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(row).Error
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "lỗi khi tạo document", err)
	}
	return nil
}

func (s *GormDocumentStore) Update(ctx context.Context, collection, id string, fields models.Fields) error {
	updates, err := toColumns(fields)
	if err != nil {
		return err
	}
	updates["updated_at"] = time.Now()

	result := s.db.WithContext(ctx).Table(collection).Where("user_id = ?", id).Updates(updates)
	if result.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "lỗi khi cập nhật document", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewAppError(errors.ErrCodeDBNotFound, "document không tồn tại", errors.ErrDocumentNotFound)
	}
	return nil
}

func toColumns(fields models.Fields) (map[string]interface{}, error) {
	updates := make(map[string]interface{}, len(fields)+1)
	for name, value := range fields {
		column, ok := trackerColumns[name]
		if !ok {
			return nil, errors.NewAppError(errors.ErrCodeValidation, "field không hợp lệ: "+name, errors.ErrInvalidInput)
		}
		if v, ok := value.([]bool); ok {
			value = pq.BoolArray(v)
		}
		updates[column] = value
	}
	return updates, nil
}

// fillScript chỉ ghi cache khi version của document chưa đổi kể từ lúc đọc DB
var fillScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// CachedDocumentStore đọc qua cache Redis, xóa cache mỗi lần ghi.
// Mỗi lần ghi tăng version của document, lần đọc nào thấy version đổi thì không ghi cache.
type CachedDocumentStore struct {
	inner  DocumentStore
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedDocumentStore(inner DocumentStore, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedDocumentStore {
	if log == nil {
		log = logger.Nop{}
	}
	return &CachedDocumentStore{inner: inner, rdb: rdb, ttl: ttl, logger: log}
}

func documentCacheKey(collection, id string) string {
	return fmt.Sprintf("doc:%s:%s", collection, id)
}

func documentVersionKey(collection, id string) string {
	return fmt.Sprintf("doc:%s:%s:ver", collection, id)
}

func (s *CachedDocumentStore) Get(ctx context.Context, collection, id string) (*models.TrackerDocument, error) {
	key := documentCacheKey(collection, id)
	verKey := documentVersionKey(collection, id)

	version, err := s.rdb.Get(ctx, verKey).Result()
	if err == redis.Nil {
		version = "0"
	} else if err != nil {
		s.logger.Error("read cache version %s: %v", verKey, err)
		return s.inner.Get(ctx, collection, id)
	}

	var cached models.TrackerDocument
	found, err := GetFromRedis(ctx, s.rdb, key, &cached)
	if err == nil && found {
		return &cached, nil
	}

	doc, err := s.inner.Get(ctx, collection, id)
	if err != nil || doc == nil {
		return doc, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return doc, nil
	}
	// cache lỗi thì bỏ qua, DB vẫn là nguồn chính
	if err := fillScript.Run(ctx, s.rdb, []string{key, verKey}, version, payload, s.ttl.Milliseconds()).Err(); err != nil {
		s.logger.Debug("fill cache %s: %v", key, err)
	}
	return doc, nil
}

func (s *CachedDocumentStore) Set(ctx context.Context, collection, id string, doc *models.TrackerDocument) error {
	if err := s.inner.Set(ctx, collection, id, doc); err != nil {
		return err
	}
	s.invalidate(ctx, collection, id)
	return nil
}

func (s *CachedDocumentStore) Update(ctx context.Context, collection, id string, fields models.Fields) error {
	if err := s.inner.Update(ctx, collection, id, fields); err != nil {
		return err
	}
	s.invalidate(ctx, collection, id)
	return nil
}

// invalidate chạy sau khi DB đã ghi xong nên lỗi chỉ được log
func (s *CachedDocumentStore) invalidate(ctx context.Context, collection, id string) {
	key := documentCacheKey(collection, id)
	verKey := documentVersionKey(collection, id)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, verKey)
		pipe.Expire(ctx, verKey, 2*s.ttl)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		s.logger.Error("invalidate cache %s: %v", key, err)
	}
}
