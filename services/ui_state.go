package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"tracker/dto"

	"github.com/redis/go-redis/v9"
)

// UIStateStore giữ trạng thái giao diện theo session (phase nào đang mở).
// Không bao giờ ghi vào tracker document.
type UIStateStore interface {
	Toggle(ctx context.Context, sessionID, phaseID string) (bool, error)
	Expanded(ctx context.Context, sessionID string) ([]string, error)
	Clear(ctx context.Context, sessionID string) error
}

// ViewSnapshotStore nhớ view render thành công gần nhất của user
type ViewSnapshotStore interface {
	Remember(ctx context.Context, userID string, view dto.TrackerView) error
	Recall(ctx context.Context, userID string) (*dto.TrackerView, error)
}

// RevocationStore đánh dấu session đã đăng xuất
type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// RedisUIState lưu các trạng thái trên Redis
type RedisUIState struct {
	rdb        redis.Cmdable
	sessionTTL time.Duration
	viewTTL    time.Duration
}

func NewRedisUIState(rdb redis.Cmdable, sessionTTL, viewTTL time.Duration) *RedisUIState {
	return &RedisUIState{rdb: rdb, sessionTTL: sessionTTL, viewTTL: viewTTL}
}

func expandedKey(sessionID string) string { return "ui:expanded:" + sessionID }
func snapshotKey(userID string) string    { return "view:last:" + userID }
func revokedKey(sessionID string) string  { return "session:revoked:" + sessionID }

// toggleScript đảo trạng thái của phase trong một lệnh nguyên tử
var toggleScript = redis.NewScript(`
local expanded = 1
if redis.call('SREM', KEYS[1], ARGV[1]) == 1 then
	expanded = 0
else
	redis.call('SADD', KEYS[1], ARGV[1])
end
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return expanded
`)

func (s *RedisUIState) Toggle(ctx context.Context, sessionID, phaseID string) (bool, error) {
	expanded, err := toggleScript.Run(ctx, s.rdb, []string{expandedKey(sessionID)}, phaseID, s.sessionTTL.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return expanded == 1, nil
}

func (s *RedisUIState) Expanded(ctx context.Context, sessionID string) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, expandedKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *RedisUIState) Clear(ctx context.Context, sessionID string) error {
	return DeleteFromRedis(ctx, s.rdb, expandedKey(sessionID))
}

func (s *RedisUIState) Remember(ctx context.Context, userID string, view dto.TrackerView) error {
	return SetToRedis(ctx, s.rdb, snapshotKey(userID), view, s.viewTTL)
}

func (s *RedisUIState) Recall(ctx context.Context, userID string) (*dto.TrackerView, error) {
	var view dto.TrackerView
	found, err := GetFromRedis(ctx, s.rdb, snapshotKey(userID), &view)
	if err != nil || !found {
		return nil, err
	}
	return &view, nil
}

func (s *RedisUIState) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKey(sessionID), "1", ttl).Err()
}

func (s *RedisUIState) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryUIState là bản trong RAM của RedisUIState, dùng khi chạy local
type MemoryUIState struct {
	mu        sync.Mutex
	expanded  map[string]map[string]bool
	snapshots map[string]dto.TrackerView
	revoked   map[string]time.Time
	now       func() time.Time
}

func NewMemoryUIState() *MemoryUIState {
	return &MemoryUIState{
		expanded:  make(map[string]map[string]bool),
		snapshots: make(map[string]dto.TrackerView),
		revoked:   make(map[string]time.Time),
		now:       time.Now,
	}
}

func (s *MemoryUIState) Toggle(_ context.Context, sessionID, phaseID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.expanded[sessionID]
	if !ok {
		set = make(map[string]bool)
		s.expanded[sessionID] = set
	}
	if set[phaseID] {
		delete(set, phaseID)
		return false, nil
	}
	set[phaseID] = true
	return true, nil
}

func (s *MemoryUIState) Expanded(_ context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.expanded[sessionID]))
	for id := range s.expanded[sessionID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryUIState) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expanded, sessionID)
	return nil
}

func (s *MemoryUIState) Remember(_ context.Context, userID string, view dto.TrackerView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[userID] = view
	return nil
}

func (s *MemoryUIState) Recall(_ context.Context, userID string) (*dto.TrackerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.snapshots[userID]
	if !ok {
		return nil, nil
	}
	return &view, nil
}

func (s *MemoryUIState) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[sessionID] = s.now().Add(ttl)
	return nil
}

func (s *MemoryUIState) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[sessionID]
	if !ok {
		return false, nil
	}
	if s.now().After(until) {
		delete(s.revoked, sessionID)
		return false, nil
	}
	return true, nil
}
