package cmd

import (
	"os"

	"github.com/haierkeys/fast-note-link-service/pkg/logger"

	"go.uber.org/zap"
)

// bootstrapLogger 启动阶段日志器
// 主日志器按配置初始化之前，配置查找、热加载等过程使用它输出到 stderr
var bootstrapLogger = newBootstrapLogger()

func newBootstrapLogger() *zap.Logger {
	level := "info"
	if os.Getenv("DEBUG") != "" {
		level = "debug"
	}
	lg, err := logger.NewLogger(logger.Config{Level: level})
	if err != nil {
		return zap.NewNop()
	}
	return lg
}

// BootstrapLogger 获取启动阶段日志器
func BootstrapLogger() *zap.Logger {
	return bootstrapLogger
}
