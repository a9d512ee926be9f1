package service

import (
	"context"
	"strings"
	"time"

	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/haierkeys/fast-note-link-service/internal/dto"
	"github.com/haierkeys/fast-note-link-service/internal/summarizer"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
	"github.com/haierkeys/fast-note-link-service/pkg/logger"
	"go.uber.org/zap"
)

// SummarizeService 定义摘要业务服务接口
type SummarizeService interface {
	// Summarize 对 content 或按标题找到的笔记内容生成摘要
	Summarize(ctx context.Context, ownerID string, params *dto.SummarizeRequest) (*dto.SummaryDTO, error)
}

type summarizeService struct {
	noteRepo   domain.NoteRepository
	summarizer summarizer.Summarizer
	logger     *zap.Logger
}

// NewSummarizeService 创建 SummarizeService 实例
func NewSummarizeService(noteRepo domain.NoteRepository, s summarizer.Summarizer, lg *zap.Logger) SummarizeService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &summarizeService{noteRepo: noteRepo, summarizer: s, logger: lg}
}

// resolveText picks the request content, or the content of the owner's note with the given title
func (s *summarizeService) resolveText(ctx context.Context, ownerID string, params *dto.SummarizeRequest) (string, error) {
	if strings.TrimSpace(params.Content) != "" {
		return params.Content, nil
	}

	title := domain.NormalizeTitle(params.Title)
	if title == "" {
		return "", code.ErrorSummarizeInputRequired
	}

	note, err := s.noteRepo.GetByOwnerAndTitle(ctx, ownerID, title)
	if err != nil {
		return "", queryError(err)
	}
	if strings.TrimSpace(note.Content) == "" {
		return "", code.ErrorSummarizeInputRequired
	}
	return note.Content, nil
}

func (s *summarizeService) Summarize(ctx context.Context, ownerID string, params *dto.SummarizeRequest) (*dto.SummaryDTO, error) {
	text, err := s.resolveText(ctx, ownerID, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		s.logger.Warn("summarize failed",
			zap.String(logger.FieldProvider, s.summarizer.Name()),
			zap.String(logger.FieldOwnerID, ownerID),
			zap.Error(err))
		return nil, code.ErrorSummarizeFailed.WithDetails(err.Error())
	}

	s.logger.Debug("summarized",
		zap.String(logger.FieldProvider, s.summarizer.Name()),
		zap.Duration(logger.FieldDuration, time.Since(start)))
	return &dto.SummaryDTO{Summary: summary}, nil
}

var _ SummarizeService = (*summarizeService)(nil)
