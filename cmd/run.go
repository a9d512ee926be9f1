package cmd

import (
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	internalApp "github.com/haierkeys/fast-note-link-service/internal/app"
	"github.com/haierkeys/fast-note-link-service/pkg/fileurl"
	"github.com/haierkeys/fast-note-link-service/pkg/util"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // Project root directory // 项目根目录
	port    string // Startup port // 启动端口
	runMode string // Startup mode // 启动模式
	config  string // Specified configuration file path // 指定要使用的配置文件路径
}

// resolveConfigPath 查找配置文件，均不存在时写出默认配置
func resolveConfigPath(runEnv *runFlags) error {
	if len(runEnv.config) > 0 {
		return nil
	}
	for _, p := range []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"} {
		if fileurl.IsExist(p) {
			runEnv.config = p
			return nil
		}
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	runEnv.config = "config/config.yaml"

	content := strings.Replace(configDefault, internalApp.DefaultAuthTokenKey, util.GetRandomString(32), 1)

	if err := fileurl.CreatePath(runEnv.config, os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(runEnv.config, []byte(content), 0666); err != nil {
		return err
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", runEnv.config))
	return nil
}

// serverHolder 保存当前运行的 server，配置热加载时替换
type serverHolder struct {
	mu sync.Mutex
	s  *Server
}

func (h *serverHolder) get() *Server {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.s
}

func (h *serverHolder) set(s *Server) {
	h.mu.Lock()
	h.s = s
	h.mu.Unlock()
}

// watchConfig 配置文件写入时重建 server
func watchConfig(runEnv *runFlags, current *serverHolder) {
	w := watcher.New()

	// 将 SetMaxEvents 设置为 1，以便在每个监听周期中至多接收 1 个事件
	w.SetMaxEvents(1)
	// 只通知写入事件。
	w.FilterOps(watcher.Write)

	go func() {
		for {
			select {
			case event := <-w.Event:
				s := current.get()
				s.logger.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))
				s.sc.SendCloseSignal(nil)
				if err := s.sc.WaitClosed(); err != nil {
					s.logger.Warn("previous server closed with error", zap.Error(err))
				}

				// 重新初始化 server
				ns, err := NewServer(runEnv)
				if err != nil {
					bootstrapLogger.Error("service start err", zap.Error(err))
					continue
				}
				current.set(ns)

			case err := <-w.Error:
				bootstrapLogger.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				bootstrapLogger.Info("config watcher closed")
				return
			}
		}
	}()

	if err := w.Add(runEnv.config); err != nil {
		bootstrapLogger.Error("config watcher file error", zap.Error(err))
		return
	}
	if err := w.Start(time.Second * 5); err != nil {
		bootstrapLogger.Error("config watcher start error", zap.Error(err))
	}
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				if err := os.Chdir(runEnv.dir); err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			if err := resolveConfigPath(runEnv); err != nil {
				bootstrapLogger.Error("config file auto create error", zap.Error(err))
				return
			}

			s, err := NewServer(runEnv)
			if err != nil {
				bootstrapLogger.Error("api service start err", zap.Error(err))
				return
			}

			current := &serverHolder{s: s}
			go watchConfig(runEnv, current)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			s = current.get()

			s.logger.Info("Received shutdown signal, initiating graceful shutdown...")
			s.sc.SendCloseSignal(nil)

			// 等待所有关闭处理器完成（包括 App Container 的优雅关闭）
			if err := s.sc.WaitClosed(); err != nil {
				s.logger.Error("Shutdown completed with error", zap.Error(err))
			} else {
				s.logger.Info("Service has been shut down gracefully.")
			}
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}
