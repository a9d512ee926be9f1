package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/haierkeys/fast-note-link-service/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// KeyPrefix 所有者笔记列表缓存键前缀
const KeyPrefix = "notes_owner_"

// DefaultTTL 默认缓存时间
const DefaultTTL = 60 * time.Second

// Key 返回所有者笔记列表的缓存键
func Key(ownerID string) string {
	return KeyPrefix + ownerID
}

// noteRecord is the cached JSON form of a note
type noteRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	OwnerID   string     `json:"owner_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Loader 缓存未命中时加载所有者的笔记
type Loader func(ctx context.Context) ([]*domain.Note, error)

// NoteListCache caches each owner's full note list.
//
// Concurrent misses for one owner share a single loader call. A load that
// started before Invalidate never leaves its result in the store.
type NoteListCache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group

	mu sync.Mutex
	// loads 仅保存有加载进行中的所有者，最后一个加载结束即移除
	loads map[string]*ownerLoads
}

// ownerLoads fences in-flight loads of one owner against Invalidate
type ownerLoads struct {
	gen      uint64
	inflight int
}

// NewNoteListCache 创建笔记列表缓存，ttl<=0 时使用 DefaultTTL
func NewNoteListCache(store Store, ttl time.Duration, lg *zap.Logger) *NoteListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &NoteListCache{
		store:  store,
		ttl:    ttl,
		logger: lg,
		loads:  make(map[string]*ownerLoads),
	}
}

// TTL 返回缓存时间
func (c *NoteListCache) TTL() time.Duration {
	return c.ttl
}

func (c *NoteListCache) beginLoad(ownerID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.loads[ownerID]
	if !ok {
		st = &ownerLoads{}
		c.loads[ownerID] = st
	}
	st.inflight++
	return st.gen
}

func (c *NoteListCache) endLoad(ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.loads[ownerID]
	if !ok {
		return
	}
	if st.inflight--; st.inflight <= 0 {
		delete(c.loads, ownerID)
	}
}

func (c *NoteListCache) generation(ownerID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.loads[ownerID]; ok {
		return st.gen
	}
	return 0
}

// bump fences loads already running; with none in flight there is nothing to fence
func (c *NoteListCache) bump(ownerID string) {
	c.mu.Lock()
	if st, ok := c.loads[ownerID]; ok {
		st.gen++
	}
	c.mu.Unlock()
}

// GetOrLoad returns the cached list for ownerID, or runs loader and caches its result.
// Backend read failures fall through to the loader.
// GetOrLoad 命中时直接返回，否则调用 loader 并写回缓存
func (c *NoteListCache) GetOrLoad(ctx context.Context, ownerID string, loader Loader) ([]*domain.Note, error) {
	key := Key(ownerID)

	b, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		cacheBackendErrors.WithLabelValues("get").Inc()
		c.logger.Warn("note cache get failed, loading from store",
			zap.String(logger.FieldCacheKey, key), zap.Error(err))
	case ok:
		notes, derr := decode(b)
		if derr == nil {
			cacheHits.Inc()
			return notes, nil
		}
		c.logger.Warn("note cache entry undecodable, reloading",
			zap.String(logger.FieldCacheKey, key), zap.Error(derr))
	}

	cacheMisses.Inc()
	gen := c.beginLoad(ownerID)
	defer c.endLoad(ownerID)

	v, err, _ := c.group.Do(key+"#"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		notes, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		c.writeBack(ctx, ownerID, gen, notes)
		return notes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Note), nil
}

// writeBack stores notes unless an invalidation happened since the load began
func (c *NoteListCache) writeBack(ctx context.Context, ownerID string, gen uint64, notes []*domain.Note) {
	if c.generation(ownerID) != gen {
		return
	}
	key := Key(ownerID)

	b, err := encode(notes)
	if err != nil {
		c.logger.Warn("note cache encode failed", zap.String(logger.FieldCacheKey, key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
		cacheBackendErrors.WithLabelValues("set").Inc()
		c.logger.Warn("note cache set failed", zap.String(logger.FieldCacheKey, key), zap.Error(err))
		return
	}

	// Invalidate 可能在 Set 期间发生
	if c.generation(ownerID) != gen {
		_ = c.store.Delete(ctx, key)
	}
}

// Invalidate unconditionally drops the owner's entry
// Invalidate 无条件删除所有者的缓存
func (c *NoteListCache) Invalidate(ctx context.Context, ownerID string) error {
	c.bump(ownerID)
	cacheInvalidations.Inc()

	if err := c.store.Delete(ctx, Key(ownerID)); err != nil {
		cacheBackendErrors.WithLabelValues("delete").Inc()
		return errors.Wrapf(err, "invalidate %s", Key(ownerID))
	}
	return nil
}

func encode(notes []*domain.Note) ([]byte, error) {
	records := make([]noteRecord, 0, len(notes))
	for _, n := range notes {
		records = append(records, noteRecord{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			OwnerID:   n.OwnerID,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		})
	}
	return sonic.Marshal(records)
}

func decode(b []byte) ([]*domain.Note, error) {
	var records []noteRecord
	if err := sonic.Unmarshal(b, &records); err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(records))
	for _, r := range records {
		notes = append(notes, &domain.Note{
			ID:        r.ID,
			Title:     r.Title,
			Content:   r.Content,
			OwnerID:   r.OwnerID,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return notes, nil
}
