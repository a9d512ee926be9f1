package service

import (
	"context"

	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/haierkeys/fast-note-link-service/pkg/util"
)

// LinkResolver computes a note's outgoing links and backlinks within one owner's notes
// LinkResolver 计算笔记在所有者范围内的出链与反链
type LinkResolver interface {
	Resolve(ctx context.Context, note *domain.Note, ownerID string) (*domain.LinkGraph, error)
}

// textScanResolver re-parses every note of the owner on each call.
// Title collisions resolve to the first note in storage order (oldest).
type textScanResolver struct {
	noteRepo domain.NoteRepository
}

// NewLinkResolver 创建基于全文扫描的 LinkResolver
func NewLinkResolver(noteRepo domain.NoteRepository) LinkResolver {
	return &textScanResolver{noteRepo: noteRepo}
}

func (r *textScanResolver) Resolve(ctx context.Context, note *domain.Note, ownerID string) (*domain.LinkGraph, error) {
	all, err := r.noteRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	linkGraphResolves.Inc()

	byTitle := make(map[string]*domain.Note, len(all))
	for _, n := range all {
		if _, ok := byTitle[n.Title]; !ok {
			byTitle[n.Title] = n
		}
	}

	graph := &domain.LinkGraph{
		Outgoing:  make([]*domain.Note, 0),
		Backlinks: make([]*domain.Note, 0),
	}

	for _, title := range util.NormalizeLinkTitles(util.ExtractLinks(note.Content)) {
		target, ok := byTitle[title]
		if !ok || target.ID == note.ID {
			continue
		}
		graph.Outgoing = append(graph.Outgoing, target)
	}

	self := domain.NormalizeTitle(note.Title)
	for _, candidate := range all {
		if candidate.ID == note.ID {
			continue
		}
		for _, title := range util.NormalizeLinkTitles(util.ExtractLinks(candidate.Content)) {
			if title == self {
				graph.Backlinks = append(graph.Backlinks, candidate)
				break
			}
		}
	}

	return graph, nil
}

var _ LinkResolver = (*textScanResolver)(nil)
