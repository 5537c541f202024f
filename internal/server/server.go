// Package server exposes the task api as JSON-RPC 2.0 over the local
// control socket: a Unix domain socket, or a named pipe on Windows.
package server

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"github.com/waw666waw666/reminder/internal/api"
	"github.com/waw666waw666/reminder/pkg/logger"
)

// Config holds the version details reported by system.getVersion.
type Config struct {
	Version   string
	Commit    string
	BuildType string
	// Debug enables jrpc2's own request logging.
	Debug bool
}

// Server accepts control connections and serves one jrpc2 server per
// connection.
type Server struct {
	log      logger.Logger
	cfg      *Config
	api      *api.Api
	methods  handler.Map
	shutdown func()

	mu       sync.Mutex
	listener net.Listener
	active   map[*jrpc2.Server]struct{}
	closed   bool
	done     chan struct{}
	finished chan struct{}
	wg       sync.WaitGroup
}

// NewServer creates a server for a. shutdown is called when a client asks
// the daemon to stop; it may be nil.
func NewServer(l logger.Logger, a *api.Api, cfg *Config, shutdown func()) *Server {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if cfg == nil {
		cfg = &Config{}
	}
	s := &Server{
		log:      l,
		cfg:      cfg,
		api:      a,
		shutdown: shutdown,
		active:   make(map[*jrpc2.Server]struct{}),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	s.methods = s.registerMethods()
	return s
}

// Start listens on the control socket and serves connections until ctx is
// cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	l, err := s.createListener()
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections from l until ctx is cancelled or Shutdown is
// called. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		l.Close()
		return net.ErrClosed
	}
	s.listener = l
	s.mu.Unlock()
	s.log.Info("control socket listening on %s", l.Addr())

	go func() {
		select {
		case <-ctx.Done():
			s.Shutdown()
		case <-s.done:
		}
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				s.Shutdown()
				<-s.finished
				return nil
			}
			s.log.Error("error accepting connection: %v", err)
			continue
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			continue
		}
		s.wg.Add(1)
		s.mu.Unlock()
		go func() {
			defer s.wg.Done()
			s.ServeConn(conn)
		}()
	}
}

// ServeConn serves JSON-RPC requests on conn until the peer disconnects.
func (s *Server) ServeConn(conn net.Conn) {
	var opts *jrpc2.ServerOptions
	if s.cfg.Debug {
		opts = &jrpc2.ServerOptions{Logger: jrpc2.StdLogger(logger.ToStdLogger(s.log))}
	}
	srv := jrpc2.NewServer(s.methods, opts)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.active[srv] = struct{}{}
	s.mu.Unlock()

	srv.Start(channel.Line(conn, conn))
	if err := srv.Wait(); err != nil && !isDisconnect(err) && !s.isClosed() {
		s.log.Warning("control connection ended: %v", err)
	}

	s.mu.Lock()
	delete(s.active, srv)
	s.mu.Unlock()
}

// Shutdown closes the listener, stops every open connection and removes
// the socket file. It is safe to call more than once.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	var err error
	if s.listener != nil {
		err = s.listener.Close()
		s.listener = nil
	}
	active := make([]*jrpc2.Server, 0, len(s.active))
	for srv := range s.active {
		active = append(active, srv)
	}
	s.mu.Unlock()

	for _, srv := range active {
		srv.Stop()
	}

	s.wg.Wait()
	defer close(s.finished)
	if cerr := cleanupSocket(); cerr != nil {
		s.log.Warning("error removing control socket: %v", cerr)
	}
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
