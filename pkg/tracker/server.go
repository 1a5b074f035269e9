// Package tracker 通过 WebSocket 接收外部手部追踪程序的位置数据
//
// 追踪端（浏览器中的手势模型、摄像头进程等）连接 /tracker，持续发送 Frame。
// Server 把位置写入 game.LatestPointer，由模拟线程每帧取用；
// 追踪端的就绪状态通过 Events 通道交给持有 RoundController 的线程。
package tracker

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gonewx/slicehero/pkg/components"
	"github.com/gonewx/slicehero/pkg/game"
	"github.com/gorilla/websocket"
)

// Path 追踪端连接路径
const Path = "/tracker"

// 就绪提示文字
const (
	MessageWaiting      = "WAITING FOR HAND TRACKER"
	MessageDisconnected = "HAND TRACKER DISCONNECTED"
)

// StatusEvent 追踪源就绪状态变化
type StatusEvent struct {
	Ready   bool
	Message string
}

// Server 追踪数据接收端，实现 http.Handler
type Server struct {
	upgrader websocket.Upgrader
	pointer  *game.LatestPointer
	width    float64
	height   float64
	events   chan StatusEvent

	mu      sync.Mutex
	clients int
	ready   bool
	message string
}

// NewServer 创建接收端
//
// 参数:
//   - width, height: 画布尺寸，用于换算归一化坐标
func NewServer(width, height float64) *Server {
	return &Server{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		pointer:  &game.LatestPointer{},
		width:    width,
		height:   height,
		events:   make(chan StatusEvent, 8),
		message:  MessageWaiting,
	}
}

// Pointer 返回位置来源，交给模拟线程使用
func (s *Server) Pointer() *game.LatestPointer {
	return s.pointer
}

// Events 返回就绪状态变化通道，读取方应非阻塞地排空
func (s *Server) Events() <-chan StatusEvent {
	return s.events
}

// Status 返回当前就绪状态
func (s *Server) Status() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready, s.message
}

// ServeHTTP 升级为 WebSocket 并读取帧，直到连接断开
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Tracker] Upgrade failed: %v", err)
		return
	}
	s.mu.Lock()
	s.clients++
	s.mu.Unlock()
	log.Printf("[Tracker] Client connected: %s", r.RemoteAddr)

	defer func() {
		conn.Close()
		s.mu.Lock()
		s.clients--
		last := s.clients == 0
		s.mu.Unlock()
		log.Printf("[Tracker] Client disconnected: %s", r.RemoteAddr)
		if last {
			s.setStatus(false, MessageDisconnected)
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		frame, err := DecodeFrame(messageType, data)
		if err != nil {
			log.Printf("[Tracker] Dropping frame: %v", err)
			continue
		}
		s.apply(frame)
	}
}

// apply 处理一帧
func (s *Server) apply(f Frame) {
	switch f.Type {
	case FrameStatus:
		s.setStatus(f.Ready, f.Message)
	case FramePointer:
		// 丢失的帧不更新位置，模拟线程继续使用上一个采样
		if f.Lost {
			return
		}
		p := components.Point{X: f.X, Y: f.Y}
		if f.Normalized {
			p.X *= s.width
			p.Y *= s.height
		}
		s.pointer.Update(p)
		// 收到位置即视为就绪
		s.setStatus(true, "")
	default:
		log.Printf("[Tracker] Unknown frame type: %q", f.Type)
	}
}

// setStatus 状态变化时发出事件；通道满时丢弃最旧的事件，保证最新状态送达
func (s *Server) setStatus(ready bool, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready == ready && s.message == message {
		return
	}
	s.ready, s.message = ready, message

	ev := StatusEvent{Ready: ready, Message: message}
	for {
		select {
		case s.events <- ev:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}

// Listen 在 addr 上监听并在后台提供服务，ctx 取消时关闭
//
// 返回:
//   - net.Addr: 实际监听地址（addr 端口为 0 时有用）
//   - error: 监听失败
func Listen(ctx context.Context, addr string, handler http.Handler) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle(Path, handler)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[Tracker] Serve stopped: %v", err)
		}
	}()
	log.Printf("[Tracker] Listening on ws://%s%s", ln.Addr(), Path)
	return ln.Addr(), nil
}
