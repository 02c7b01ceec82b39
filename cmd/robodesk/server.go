package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"robodesk/conf"
	"robodesk/pkg/logger"
	"robodesk/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Router 加载路由，使用侧提供接口，实现侧需要实现该接口
type Router interface {
	Load(engine *gin.Engine)
}

type Server struct {
	config *conf.Config
	f      []func()
}

func NewServer(c *conf.Config) *Server {
	return &Server{
		config: c,
	}
}

// Run 阻塞直到收到退出信号或ctx结束
func (s *Server) Run(ctx context.Context, rs ...Router) {
	// 设置gin启动模式，必须在创建gin实例之前
	if s.config.Mode != "" {
		gin.SetMode(s.config.Mode)
	}
	g := gin.New()
	g.Use(gin.Recovery())
	// gin validator替换
	validator.LazyInitGinValidator(s.config.Language)
	s.routerLoad(g, rs...)

	// health check
	go func() {
		if err := Ping(s.config.Listen, s.config.MaxPingCount); err != nil {
			logger.Fatal("server no response")
		}
		logger.Infof("server started success! port: %s", s.config.Listen)
	}()

	srv := http.Server{
		Addr:              s.config.Listen,
		Handler:           g,
		ReadHeaderTimeout: 10 * time.Second,
	}
	for _, f := range s.f {
		srv.RegisterOnShutdown(f)
	}

	done := make(chan struct{})
	// graceful shutdown
	go func() {
		defer close(done)
		sgn := make(chan os.Signal, 1)
		signal.Notify(sgn, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sgn:
		case <-ctx.Done():
		}
		logger.Infof("server shutdown")
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(c); err != nil {
			logger.Errorf("server shutdown err %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Errorf("server start failed on port %s: %v", s.config.Listen, err)
		return
	}
	<-done
	logger.Infof("server stop on port %s", s.config.Listen)
}

func (s *Server) routerLoad(g *gin.Engine, rs ...Router) *Server {
	for _, r := range rs {
		r.Load(g)
	}
	return s
}

// RegisterOnShutdown 注册shutdown后的回调处理函数，用于清理资源
func (s *Server) RegisterOnShutdown(f func()) {
	s.f = append(s.f, f)
}

// Ping 用来检查是否程序正常启动
func Ping(port string, maxCount int) error {
	seconds := 1
	if len(port) == 0 {
		panic("Please specify the service port")
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	url := fmt.Sprintf("http://localhost%s/ping", port)
	for i := 0; i < maxCount; i++ {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		logger.Infof("等待服务在线, 已等待 %d 秒，最多等待 %d 秒", seconds, maxCount)
		time.Sleep(time.Second)
		seconds++
	}
	return fmt.Errorf("服务启动失败，端口 %s", port)
}
