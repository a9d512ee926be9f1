// Package service 实现业务逻辑层
package service

import (
	"errors"

	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/haierkeys/fast-note-link-service/internal/dto"
	"github.com/haierkeys/fast-note-link-service/pkg/code"
	"github.com/haierkeys/fast-note-link-service/pkg/convert"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	stubsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fast_note",
		Subsystem: "links",
		Name:      "stubs_created_total",
		Help:      "Placeholder notes created for unresolved link titles.",
	})
	linkGraphResolves = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fast_note",
		Subsystem: "links",
		Name:      "graph_resolves_total",
		Help:      "Outgoing/backlink graph computations.",
	})
)

// ServiceConfig 服务层配置
type ServiceConfig struct {
	User UserServiceConfig
}

// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	// RegisterIsEnable 注册是否启用
	RegisterIsEnable bool
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// queryError 将仓储读取错误转换为错误码
func queryError(err error) error {
	if isNotFound(err) {
		return code.ErrorNoteNotFound
	}
	return code.ErrorDBQuery.WithDetails(err.Error())
}

// writeError 将仓储写入错误转换为错误码
func writeError(err error) error {
	if isNotFound(err) {
		return code.ErrorNoteNotFound
	}
	return code.ErrorDBWrite.WithDetails(err.Error())
}

// noteToDTO 将领域模型转换为 DTO
func noteToDTO(n *domain.Note) *dto.NoteDTO {
	if n == nil {
		return nil
	}
	d := &dto.NoteDTO{}
	convert.MustCopy(d, n)
	return d
}

func notesToDTO(notes []*domain.Note) []*dto.NoteDTO {
	out := make([]*dto.NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteToDTO(n))
	}
	return out
}
