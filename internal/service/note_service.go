package service

import (
	"context"
	"strings"

	"github.com/haierkeys/fast-note-link-service/internal/cache"
	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/haierkeys/fast-note-link-service/internal/dto"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
	"github.com/haierkeys/fast-note-link-service/pkg/logger"
	"github.com/haierkeys/fast-note-link-service/pkg/util"
	"go.uber.org/zap"
)

// NoteDeletedMessage 删除成功后的确认消息
const NoteDeletedMessage = "Note deleted"

// NoteListCache is the read cache the note service keeps coherent with writes
// NoteListCache 笔记列表读缓存
type NoteListCache interface {
	GetOrLoad(ctx context.Context, ownerID string, loader cache.Loader) ([]*domain.Note, error)
	Invalidate(ctx context.Context, ownerID string) error
}

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Create 创建笔记，并为引用的新标题创建占位笔记
	Create(ctx context.Context, ownerID string, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Update 替换笔记标题与内容
	Update(ctx context.Context, ownerID, id string, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// Delete 删除笔记
	Delete(ctx context.Context, ownerID, id string) (*dto.MessageDTO, error)

	// List 获取所有者全部笔记（优先读缓存）
	List(ctx context.Context, ownerID string) ([]*dto.NoteDTO, error)

	// Get 获取单条笔记
	Get(ctx context.Context, ownerID, id string) (*dto.NoteDTO, error)

	// GetWithLinks 获取笔记及其出链、反链
	GetWithLinks(ctx context.Context, ownerID, id string) (*dto.NoteWithLinksDTO, error)
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo domain.NoteRepository
	stubs    StubMaterializer
	resolver LinkResolver
	cache    NoteListCache
	logger   *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, stubs StubMaterializer, resolver LinkResolver, noteCache NoteListCache, lg *zap.Logger) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &noteService{
		noteRepo: noteRepo,
		stubs:    stubs,
		resolver: resolver,
		cache:    noteCache,
		logger:   lg,
	}
}

func validateNote(title, content string) (string, error) {
	title = domain.NormalizeTitle(title)
	if title == "" {
		return "", code.ErrorNoteTitleRequired
	}
	if domain.TitleTooLong(title) {
		return "", code.ErrorNoteTitleTooLong
	}
	if strings.TrimSpace(content) == "" {
		return "", code.ErrorNoteContentRequired
	}
	return title, nil
}

// getOwned loads a note and hides notes of other owners behind NotFound
func (s *noteService) getOwned(ctx context.Context, ownerID, id string) (*domain.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, queryError(err)
	}
	if !note.BelongsTo(ownerID) {
		return nil, code.ErrorNoteNotFound
	}
	return note, nil
}

// afterWrite materializes stubs for content links and invalidates the owner's cache.
// The cache is invalidated even when stub creation fails.
func (s *noteService) afterWrite(ctx context.Context, ownerID, content string) error {
	var stubErr error
	if content != "" {
		created, err := s.stubs.EnsureStubs(ctx, ownerID, util.ExtractLinks(content))
		if err != nil {
			stubErr = code.ErrorDBWrite.WithDetails(err.Error())
		} else if len(created) > 0 {
			s.logger.Info("stub notes created",
				zap.String(logger.FieldOwnerID, ownerID),
				zap.Int(logger.FieldCount, len(created)))
		}
	}

	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.Error("note cache invalidate failed",
			zap.String(logger.FieldOwnerID, ownerID),
			zap.String(logger.FieldCacheKey, cache.Key(ownerID)),
			zap.Error(err))
		return code.ErrorCacheInvalidate.WithDetails(err.Error())
	}
	return stubErr
}

// afterFailedWrite drops the owner's cache after a write that reported an error.
// The write may still have committed, so the entry cannot be trusted.
func (s *noteService) afterFailedWrite(ctx context.Context, ownerID string, writeErr error) {
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), ownerID); err != nil {
		s.logger.Error("note cache invalidate after failed write",
			zap.String(logger.FieldOwnerID, ownerID),
			zap.String(logger.FieldCacheKey, cache.Key(ownerID)),
			zap.NamedError("writeError", writeErr),
			zap.Error(err))
	}
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, ownerID string, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	title, err := validateNote(params.Title, params.Content)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.Create(ctx, &domain.Note{
		Title:   title,
		Content: params.Content,
		OwnerID: ownerID,
	})
	if err != nil {
		s.afterFailedWrite(ctx, ownerID, err)
		return nil, code.ErrorDBWrite.WithDetails(err.Error())
	}

	if err := s.afterWrite(ctx, ownerID, note.Content); err != nil {
		return nil, err
	}
	return noteToDTO(note), nil
}

// Update 更新笔记
func (s *noteService) Update(ctx context.Context, ownerID, id string, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	existing, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	title, err := validateNote(params.Title, params.Content)
	if err != nil {
		return nil, err
	}

	existing.Title = title
	existing.Content = params.Content

	note, err := s.noteRepo.Update(ctx, existing)
	if err != nil {
		s.afterFailedWrite(ctx, ownerID, err)
		return nil, writeError(err)
	}

	if err := s.afterWrite(ctx, ownerID, note.Content); err != nil {
		return nil, err
	}
	return noteToDTO(note), nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, ownerID, id string) (*dto.MessageDTO, error) {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return nil, err
	}

	if err := s.noteRepo.Delete(ctx, id, ownerID); err != nil {
		s.afterFailedWrite(ctx, ownerID, err)
		return nil, writeError(err)
	}

	if err := s.afterWrite(ctx, ownerID, ""); err != nil {
		return nil, err
	}
	return &dto.MessageDTO{Message: NoteDeletedMessage}, nil
}

// List 获取笔记列表
func (s *noteService) List(ctx context.Context, ownerID string) ([]*dto.NoteDTO, error) {
	notes, err := s.cache.GetOrLoad(ctx, ownerID, func(ctx context.Context) ([]*domain.Note, error) {
		return s.noteRepo.ListByOwner(ctx, ownerID)
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return notesToDTO(notes), nil
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, ownerID, id string) (*dto.NoteDTO, error) {
	note, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return noteToDTO(note), nil
}

// GetWithLinks 获取笔记及链接关系，不经过缓存
func (s *noteService) GetWithLinks(ctx context.Context, ownerID, id string) (*dto.NoteWithLinksDTO, error) {
	note, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	graph, err := s.resolver.Resolve(ctx, note, ownerID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	return &dto.NoteWithLinksDTO{
		Note:          noteToDTO(note),
		OutgoingLinks: notesToDTO(graph.Outgoing),
		Backlinks:     notesToDTO(graph.Backlinks),
	}, nil
}

var _ NoteService = (*noteService)(nil)
