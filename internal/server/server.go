package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/gnet/v2"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/lojhan/hashtable-lab/internal/command"
	"github.com/lojhan/hashtable-lab/internal/resp"
)

const DefaultPort = "6380"

// Server speaks RESP over TCP. It runs a single gnet event loop, so handlers
// never execute concurrently and the store they share needs no locking.
type Server struct {
	gnet.BuiltinEventEngine

	eng      gnet.Engine
	booted   chan struct{}
	logger   *zap.Logger
	mu       sync.RWMutex
	handlers map[string]command.Handler
	clients  atomic.Int64
}

func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		booted:   make(chan struct{}),
		logger:   logger,
		handlers: make(map[string]command.Handler),
	}
}

func (s *Server) RegisterCommand(name string, handler command.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[strings.ToUpper(name)] = handler
}

func (s *Server) GetHandler(name string) command.Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handlers[strings.ToUpper(name)]
}

// Start listens on addr (host:port or :port) and blocks until Stop.
func (s *Server) Start(addr string) error {
	if addr == "" {
		addr = ":" + DefaultPort
	}

	err := gnet.Run(s, "tcp://"+addr,
		gnet.WithMulticore(false),
		gnet.WithTCPNoDelay(gnet.TCPNoDelay),
		gnet.WithLogger(s.logger.Sugar()),
	)
	if err != nil {
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	}
	return nil
}

// Booted is closed once the engine is listening.
func (s *Server) Booted() <-chan struct{} {
	return s.booted
}

func (s *Server) Stop(ctx context.Context) error {
	select {
	case <-s.booted:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := s.eng.Stop(ctx); err != nil {
		return err
	}

	s.logger.Info("server stopped")
	return nil
}

func (s *Server) ClientCount() int {
	return int(s.clients.Load())
}

func (s *Server) OnBoot(eng gnet.Engine) gnet.Action {
	s.eng = eng
	close(s.booted)
	s.logger.Info("server listening")
	return gnet.None
}

func (s *Server) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	s.clients.Inc()
	s.logger.Debug("client connected", zap.Stringer("remote", c.RemoteAddr()))
	return nil, gnet.None
}

func (s *Server) OnClose(c gnet.Conn, err error) gnet.Action {
	s.clients.Dec()
	if err != nil {
		s.logger.Warn("client closed with error", zap.Stringer("remote", c.RemoteAddr()), zap.Error(err))
		return gnet.None
	}
	s.logger.Debug("client disconnected", zap.Stringer("remote", c.RemoteAddr()))
	return gnet.None
}

// OnTraffic answers every complete command buffered on c and leaves a
// trailing partial frame for the next event.
func (s *Server) OnTraffic(c gnet.Conn) gnet.Action {
	buf, err := c.Peek(-1)
	if err != nil {
		s.logger.Error("failed to read from client", zap.Stringer("remote", c.RemoteAddr()), zap.Error(err))
		return gnet.Close
	}

	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	action := gnet.None
	consumed := 0
	for consumed < len(buf) {
		value, n, err := resp.Decode(buf[consumed:])
		if errors.Is(err, resp.ErrIncomplete) {
			break
		}
		if err != nil {
			s.logger.Warn("protocol error", zap.Stringer("remote", c.RemoteAddr()), zap.Error(err))
			out.B = resp.AppendValue(out.B, resp.ErrorValue("ERR protocol error"))
			action = gnet.Close
			consumed = len(buf)
			break
		}

		consumed += n
		out.B = resp.AppendValue(out.B, s.dispatch(value))
	}

	if _, err := c.Discard(consumed); err != nil {
		s.logger.Error("failed to discard input", zap.Error(err))
		return gnet.Close
	}

	if out.Len() > 0 {
		if _, err := c.Write(out.B); err != nil {
			s.logger.Error("failed to write response", zap.Stringer("remote", c.RemoteAddr()), zap.Error(err))
			return gnet.Close
		}
	}

	return action
}

func (s *Server) dispatch(value resp.Value) resp.Value {
	if value.Type != resp.Array {
		return resp.ErrorValue("ERR protocol error: expected array")
	}

	if len(value.Array) == 0 {
		return resp.ErrorValue("ERR empty command")
	}

	cmdValue := value.Array[0]
	if cmdValue.Type != resp.BulkString {
		return resp.ErrorValue("ERR protocol error: command must be bulk string")
	}

	handler := s.GetHandler(cmdValue.Str)
	if handler == nil {
		return resp.ErrorValue(fmt.Sprintf("ERR unknown command '%s'", strings.ToUpper(cmdValue.Str)))
	}

	return handler(value.Array[1:])
}
