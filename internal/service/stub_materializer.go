package service

import (
	"context"

	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/haierkeys/fast-note-link-service/pkg/logger"
	"go.uber.org/zap"
)

// StubMaterializer creates empty placeholder notes for referenced titles that do not exist yet
// StubMaterializer 为尚不存在的被引用标题创建空白占位笔记
type StubMaterializer interface {
	// EnsureStubs 返回本次新建的占位笔记
	EnsureStubs(ctx context.Context, ownerID string, titles []string) ([]*domain.Note, error)
}

type stubMaterializer struct {
	noteRepo domain.NoteRepository
	logger   *zap.Logger
}

// NewStubMaterializer 创建 StubMaterializer
func NewStubMaterializer(noteRepo domain.NoteRepository, lg *zap.Logger) StubMaterializer {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &stubMaterializer{noteRepo: noteRepo, logger: lg}
}

// EnsureStubs processes titles in order. Existing notes are never touched, and a
// title repeated in one batch finds the stub its first occurrence created.
// Titles longer than domain.MaxTitleLength are skipped and stay dangling.
func (m *stubMaterializer) EnsureStubs(ctx context.Context, ownerID string, titles []string) ([]*domain.Note, error) {
	created := make([]*domain.Note, 0)

	for _, raw := range titles {
		title := domain.NormalizeTitle(raw)
		if title == "" {
			continue
		}
		if domain.TitleTooLong(title) {
			m.logger.Warn("link title too long, stub skipped",
				zap.String(logger.FieldOwnerID, ownerID),
				zap.Int("length", len(title)))
			continue
		}

		_, err := m.noteRepo.GetByOwnerAndTitle(ctx, ownerID, title)
		if err == nil {
			continue
		}
		if !isNotFound(err) {
			return created, err
		}

		stub, err := m.noteRepo.Create(ctx, &domain.Note{
			Title:   title,
			Content: "",
			OwnerID: ownerID,
		})
		if err != nil {
			return created, err
		}
		created = append(created, stub)
		stubsCreated.Inc()

		m.logger.Debug("stub note created",
			zap.String(logger.FieldOwnerID, ownerID),
			zap.String(logger.FieldNoteID, stub.ID),
			zap.String(logger.FieldTitle, title))
	}

	return created, nil
}

var _ StubMaterializer = (*stubMaterializer)(nil)
