package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/discovery"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/version"
)

// DefaultAddr is where the fake API listens unless told otherwise.
const DefaultAddr = ":8089"

// Options inject behavior into the handlers.
type Options struct {
	// FailDeletes makes every DELETE answer 500
	FailDeletes bool
	// Latency delays every response
	Latency time.Duration
}

// Config holds the server configuration
type Config struct {
	Addr     string
	SeedPath string // JSON array of users (empty = embedded sample)
	Options  Options

	// Advertise is the mDNS instance name to register; empty disables it
	Advertise string
}

// Handler serves the /users resource from a Store.
type Handler struct {
	store *Store
	opts  Options
}

// NewHandler creates a handler over store.
func NewHandler(store *Store, opts Options) *Handler {
	return &Handler{store: store, opts: opts}
}

// RegisterRoutes mounts the users resource on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

// get mirrors jsonplaceholder: unknown ids answer 404 with an empty object.
func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, found := h.store.Get(id)
	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) delete(c *gin.Context) {
	if h.opts.FailDeletes {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "deletes are disabled"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.store.Delete(id) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{})
		return 0, false
	}
	return id, true
}

// NewEngine builds the gin engine with middleware and routes.
func NewEngine(store *Store, opts Options) *gin.Engine {
	log := logging.Named("fakeapi")

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), Logger(log), Latency(opts.Latency))

	NewHandler(store, opts).RegisterRoutes(&engine.RouterGroup)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{})
	})
	return engine
}

// Server is the fake API process.
type Server struct {
	config *Config
	store  *Store
	http   *http.Server
}

// New creates a server from config, loading the seed.
func New(config *Config) (*Server, error) {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}

	seed, err := LoadSeedFile(config.SeedPath)
	if err != nil {
		return nil, err
	}
	store := NewStore(seed)

	return &Server{
		config: config,
		store:  store,
		http: &http.Server{
			Addr:              config.Addr,
			Handler:           NewEngine(store, config.Options),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Store exposes the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Start runs the server until SIGINT/SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	logging.Info("Fake users API listening",
		zap.String("addr", listener.Addr().String()),
		zap.Int("users", s.store.Len()),
		zap.Bool("fail_deletes", s.config.Options.FailDeletes),
		zap.Duration("latency", s.config.Options.Latency),
	)

	if s.config.Advertise != "" {
		ad, err := s.advertise(listener)
		if err != nil {
			logging.Warn("mDNS advertisement failed, continuing without it", zap.Error(err))
		} else {
			defer ad.Shutdown()
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.http.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown signal received, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) advertise(listener net.Listener) (*discovery.Advertisement, error) {
	tcp, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("cannot advertise a %s listener", listener.Addr().Network())
	}

	ad, err := discovery.Advertise(s.config.Advertise, tcp.Port, map[string]string{
		"path":    "/users",
		"users":   strconv.Itoa(s.store.Len()),
		"version": version.Version,
	})
	if err != nil {
		return nil, err
	}
	logging.Info("Advertising over mDNS",
		zap.String("instance", s.config.Advertise),
		zap.String("service", discovery.ServiceType),
		zap.Int("port", tcp.Port),
	)
	return ad, nil
}
