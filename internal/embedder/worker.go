package embedder

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docsearch/internal/logger"
)

// MessageEmbedText is the request type for embedding one text
const MessageEmbedText = "embedText"

// maxMessageBytes bounds a single protocol line
const maxMessageBytes = 16 << 20

// workerRequest is one line sent to a worker
type workerRequest struct {
	ID   uint64 `json:"id"`
	Type string `json:"type"`
	Args string `json:"args"`
}

// workerResponse is one line sent back by a worker. The first line a worker
// writes has Ready set and describes its embedder.
type workerResponse struct {
	ID        uint64    `json:"id"`
	Result    []float32 `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
	Ready     bool      `json:"ready,omitempty"`
	Embedder  string    `json:"embedder,omitempty"`
	Dimension int       `json:"dimension,omitempty"`
}

// ServeWorker answers embedding requests read from r, one JSON object per
// line, writing responses to w. Requests are handled concurrently and
// responses carry the request id. It returns when r is exhausted and all
// requests have been answered.
func ServeWorker(ctx context.Context, e Embedder, r io.Reader, w io.Writer, log *slog.Logger) error {
	log = logger.OrNop(log)
	var mu sync.Mutex
	enc := json.NewEncoder(w)
	write := func(resp workerResponse) error {
		mu.Lock()
		defer mu.Unlock()
		return enc.Encode(resp)
	}

	if err := write(workerResponse{Ready: true, Embedder: e.ID(), Dimension: e.Dimension()}); err != nil {
		return fmt.Errorf("write ready message: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxMessageBytes)
	for scanner.Scan() {
		var req workerRequest
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			// Answer requests whose id is readable so the caller does not wait
			var ref struct {
				ID *uint64 `json:"id"`
			}
			if json.Unmarshal(scanner.Bytes(), &ref) != nil || ref.ID == nil {
				log.Warn("invalid worker request", "error", err)
				continue
			}
			if err := write(workerResponse{ID: *ref.ID, Error: "invalid request: " + err.Error()}); err != nil {
				_ = g.Wait()
				return fmt.Errorf("write error response: %w", err)
			}
			continue
		}

		g.Go(func() error {
			resp := workerResponse{ID: req.ID}
			switch req.Type {
			case MessageEmbedText:
				vec, err := e.Embed(gctx, req.Args)
				if err != nil {
					resp.Error = err.Error()
				} else {
					resp.Result = vec
				}
			default:
				resp.Error = fmt.Sprintf("unknown request type %q", req.Type)
			}
			return write(resp)
		})
	}
	if err := scanner.Err(); err != nil {
		_ = g.Wait()
		return fmt.Errorf("read worker requests: %w", err)
	}
	return g.Wait()
}

// WorkerClient is an Embedder that forwards requests to a worker speaking
// the ServeWorker protocol, typically a `docsearch embed-worker` subprocess
type WorkerClient struct {
	cmd *exec.Cmd
	w   io.WriteCloser

	writeMu sync.Mutex
	enc     *json.Encoder

	mu      sync.Mutex
	pending map[uint64]chan workerResponse
	nextID  atomic.Uint64

	id        string
	dimension int

	ready chan struct{}
	done  chan struct{}
	err   error
}

// StartWorker runs command as a worker process and connects to it
func StartWorker(ctx context.Context, command []string) (*WorkerClient, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("%w: empty worker command", ErrInvalidInput)
	}

	// The worker outlives ctx; Close stops it
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("worker stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("worker stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start worker: %w", err)
	}

	c, err := connectWorker(ctx, stdout, stdin, cmd)
	if err != nil {
		_ = stdin.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	return c, nil
}

// NewWorkerClient connects to a worker over r and w and waits for its ready
// message
func NewWorkerClient(ctx context.Context, r io.Reader, w io.WriteCloser) (*WorkerClient, error) {
	return connectWorker(ctx, r, w, nil)
}

func connectWorker(ctx context.Context, r io.Reader, w io.WriteCloser, cmd *exec.Cmd) (*WorkerClient, error) {
	c := &WorkerClient{
		cmd:     cmd,
		w:       w,
		enc:     json.NewEncoder(w),
		pending: make(map[uint64]chan workerResponse),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.readLoop(r)

	select {
	case <-c.ready:
		return c, nil
	case <-c.done:
		return nil, fmt.Errorf("worker exited before ready: %w", c.err)
	case <-ctx.Done():
		_ = w.Close()
		return nil, ctx.Err()
	}
}

func (c *WorkerClient) readLoop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxMessageBytes)

	ready := false
	for scanner.Scan() {
		var resp workerResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			continue
		}
		if resp.Ready && !ready {
			ready = true
			c.id, c.dimension = resp.Embedder, resp.Dimension
			close(c.ready)
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		delete(c.pending, resp.ID)
		c.mu.Unlock()
		if ok {
			ch <- resp
		}
	}

	c.err = ErrWorkerClosed
	if err := scanner.Err(); err != nil {
		c.err = fmt.Errorf("%w: %v", ErrWorkerClosed, err)
	}
	close(c.done)
}

// Embed sends text to the worker and waits for its vector
func (c *WorkerClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	id := c.nextID.Add(1)
	ch := make(chan workerResponse, 1)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()

	forget := func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}

	c.writeMu.Lock()
	err := c.enc.Encode(workerRequest{ID: id, Type: MessageEmbedText, Args: text})
	c.writeMu.Unlock()
	if err != nil {
		forget()
		return nil, fmt.Errorf("send to worker: %w", err)
	}

	select {
	case resp := <-ch:
		if resp.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrProviderFailed, resp.Error)
		}
		return resp.Result, nil
	case <-c.done:
		forget()
		return nil, c.err
	case <-ctx.Done():
		forget()
		return nil, ctx.Err()
	}
}

// ID returns the worker's embedder ID
func (c *WorkerClient) ID() string {
	return c.id
}

// Dimension returns the worker's embedder dimension
func (c *WorkerClient) Dimension() int {
	return c.dimension
}

// Close stops the worker by closing its input and waits for it to exit
func (c *WorkerClient) Close() error {
	err := c.w.Close()
	if c.cmd != nil {
		if werr := c.cmd.Wait(); werr != nil && !errors.Is(werr, os.ErrClosed) {
			return fmt.Errorf("worker exit: %w", werr)
		}
	}
	return err
}
