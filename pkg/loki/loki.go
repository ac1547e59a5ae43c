package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

var ErrStopped = errors.New("loki pusher is stopped")

type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {
	// Url of the loki push endpoint, e.g. https://example-prod.grafana.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of log lines that are sent in one request
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time to wait before sending a request
	BatchMaxWait time.Duration `validate:"gte=1"`

	// Labels that are added to all streams. The level label is added per stream.
	Labels map[string]string

	// Username and Password enable basic auth when both are set.
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 500
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type LogEntry struct {
	Level     string `json:"level"`
	Message   string `json:"msg"`
	Caller    string `json:"caller,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// Pusher batches log entries per level and ships them to loki in the background.
type Pusher struct {
	config   Config
	ctx      context.Context
	cancel   context.CancelFunc
	client   *http.Client
	entries  chan LogEntry
	done     chan struct{}
	stopOnce sync.Once
	batch    map[string][][2]string
	size     int
	logger   Logger
}

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config:  cfg,
		ctx:     ctx,
		cancel:  cancel,
		client:  &http.Client{},
		entries: make(chan LogEntry, cfg.BatchMaxSize),
		done:    make(chan struct{}),
		batch:   map[string][][2]string{},
		logger:  logger,
	}

	go p.run()
	return p, nil
}

// Push queues an entry. It blocks while the queue is full and fails once the pusher is stopped.
func (p *Pusher) Push(e LogEntry) error {
	if p.ctx.Err() != nil {
		return ErrStopped
	}
	select {
	case <-p.ctx.Done():
		return ErrStopped
	case p.entries <- e:
		return nil
	}
}

// Stop flushes pending entries and stops the background loop.
func (p *Pusher) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		<-p.done
	})
}

func (p *Pusher) run() {
	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()
	defer close(p.done)

	for {
		select {
		case <-p.ctx.Done():
			p.drain()
			p.flush()
			return
		case entry := <-p.entries:
			p.add(entry)
			if p.size >= p.config.BatchMaxSize {
				p.flush()
			}
		case <-ticker.C:
			p.flush()
		}
	}
}

func (p *Pusher) drain() {
	for {
		select {
		case entry := <-p.entries:
			p.add(entry)
		default:
			return
		}
	}
}

func (p *Pusher) add(entry LogEntry) {
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	p.batch[entry.Level] = append(p.batch[entry.Level], [2]string{timestamp, string(line)})
	p.size++
}

func (p *Pusher) flush() {
	if p.size == 0 {
		return
	}

	// the loop context may already be cancelled, the final flush gets its own deadline
	ctx, cancel := context.WithTimeout(context.Background(), p.config.BatchMaxWait)
	defer cancel()

	if err := p.send(ctx, p.buildRequest()); err != nil {
		p.logger.Error("failed to send logs", "error", err)
	}
	p.batch = map[string][][2]string{}
	p.size = 0
}

func (p *Pusher) buildRequest() pushRequest {
	req := pushRequest{Streams: make([]stream, 0, len(p.batch))}
	for level, values := range p.batch {
		labels := make(map[string]string, len(p.config.Labels)+1)
		for k, v := range p.config.Labels {
			labels[k] = v
		}
		labels["level"] = level
		req.Streams = append(req.Streams, stream{Stream: labels, Values: values})
	}
	return req
}

func (p *Pusher) send(ctx context.Context, body pushRequest) error {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(body); err != nil {
		return err
	}

	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Url, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("received unexpected response code from Loki: %s, body: %s", resp.Status, string(respBody))
	}

	return nil
}
