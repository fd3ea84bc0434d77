package stats

import (
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// ClientConfig holds configuration for a Client.
type ClientConfig struct {
	AppID      uint64 // Stamped on every result
	User       string // Stats owner and leaderboard name
	QueueDepth int    // Request and result buffer size
}

// envelope pairs a request with its sequence number.
type envelope struct {
	seq uint64
	req Request
}

// Client is a Service that runs requests against a Backend on a worker
// goroutine. Submitting methods and Poll must be called from a single
// goroutine (the game loop); they never block.
type Client struct {
	cfg     ClientConfig
	backend Backend
	log     *log.Logger

	// Owned by the submitting goroutine
	seq          uint64
	stagedStats  map[string]int
	stagedAchvmt map[string]bool

	reqs      chan envelope
	results   chan Result
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ Service = (*Client)(nil)

// NewClient creates a client and starts its worker.
func NewClient(backend Backend, cfg ClientConfig, logger *log.Logger) *Client {
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = 256
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Client{
		cfg:          cfg,
		backend:      backend,
		log:          logger,
		stagedStats:  make(map[string]int),
		stagedAchvmt: make(map[string]bool),
		reqs:         make(chan envelope, cfg.QueueDepth),
		results:      make(chan Result, cfg.QueueDepth),
		done:         make(chan struct{}),
	}
	c.wg.Add(1)
	go c.processRequests()
	return c
}

// send queues a request and returns its sequence number. A closed client
// or a full queue drops the request and returns 0.
func (c *Client) send(req Request) uint64 {
	select {
	case <-c.done:
		return 0
	default:
	}
	c.seq++
	select {
	case c.reqs <- envelope{seq: c.seq, req: req}:
		return c.seq
	default:
		c.log.Warn("stats request dropped, queue full", "seq", c.seq)
		return 0
	}
}

// RequestStats implements Service.
func (c *Client) RequestStats() uint64 {
	return c.send(RequestStatsMsg{})
}

// SetStat implements Service.
func (c *Client) SetStat(name string, value int) {
	c.stagedStats[name] = value
}

// SetAchievement implements Service.
func (c *Client) SetAchievement(apiName string) {
	c.stagedAchvmt[apiName] = true
}

// StoreStats implements Service.
func (c *Client) StoreStats() uint64 {
	msg := StoreStatsMsg{Stats: make(map[string]int, len(c.stagedStats))}
	for k, v := range c.stagedStats {
		msg.Stats[k] = v
	}
	for name := range c.stagedAchvmt {
		msg.Achievements = append(msg.Achievements, name)
	}
	sort.Strings(msg.Achievements)
	return c.send(msg)
}

// ResetAll implements Service.
func (c *Client) ResetAll() uint64 {
	c.stagedStats = make(map[string]int)
	c.stagedAchvmt = make(map[string]bool)
	return c.send(ResetAllMsg{})
}

// FindBoard implements Service.
func (c *Client) FindBoard(name string) uint64 {
	return c.send(FindBoardMsg{Name: name})
}

// DownloadEntries implements Service.
func (c *Client) DownloadEntries(board BoardHandle, scope Scope, start, end int) uint64 {
	return c.send(DownloadEntriesMsg{Board: board, Scope: scope, Start: start, End: end})
}

// UploadScore implements Service.
func (c *Client) UploadScore(board BoardHandle, score int, keepBest bool) uint64 {
	return c.send(UploadScoreMsg{Board: board, Score: score, KeepBest: keepBest})
}

// Poll implements Service.
func (c *Client) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-c.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Close stops the worker. Requests still queued are discarded.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.wg.Wait()
	})
	return nil
}

// processRequests runs on the worker goroutine.
func (c *Client) processRequests() {
	defer c.wg.Done()
	for {
		select {
		case env := <-c.reqs:
			r := c.handleRequest(env)
			if h := r.header(); h.Err != nil {
				c.log.Warn("stats request failed", "seq", h.Seq, "err", h.Err)
			}
			select {
			case c.results <- r:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) handleRequest(env envelope) Result {
	h := Header{AppID: c.cfg.AppID, Seq: env.seq}
	user := c.cfg.User

	switch m := env.req.(type) {
	case RequestStatsMsg:
		snap, err := c.backend.LoadStats(user)
		h.Err = err
		return StatsReceived{Header: h, Snapshot: snap}

	case StoreStatsMsg:
		h.Err = c.backend.SaveStats(user, m.Stats, m.Achievements)
		return StatsStored{Header: h}

	case ResetAllMsg:
		h.Err = c.backend.ResetStats(user)
		return StatsReset{Header: h}

	case FindBoardMsg:
		handle, err := c.backend.FindLeaderboard(m.Name)
		h.Err = err
		return BoardFound{Header: h, Name: m.Name, Handle: handle}

	case DownloadEntriesMsg:
		entries, err := c.backend.LeaderboardEntries(m.Board, user, m.Scope, m.Start, m.End)
		h.Err = err
		return EntriesDownloaded{Header: h, Board: m.Board, Scope: m.Scope, Entries: entries}

	case UploadScoreMsg:
		changed, rank, err := c.backend.UploadLeaderboardScore(m.Board, user, m.Score, m.KeepBest)
		h.Err = err
		return ScoreUploaded{Header: h, Board: m.Board, Score: m.Score, Changed: changed, Rank: rank}
	}

	// Unreachable with the sealed request set
	return StatsStored{Header: h}
}
