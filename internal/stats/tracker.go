package stats

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hamster/internal/achievement"
)

// Leaderboard download windows.
const (
	GlobalTopN     = 10
	AroundUserSpan = 5
)

// BoardView is the latest download for one leaderboard.
type BoardView struct {
	Name    string
	Scope   Scope
	Found   bool
	Loading bool
	Failed  bool
	Entries []Entry
}

type board struct {
	name    string
	handle  BoardHandle
	findSeq uint64

	view    BoardView
	dlSeq   uint64
	pending []int // Scores waiting for the handle
}

// Tracker keeps the session statistics, drives the achievement evaluator
// and owns all traffic with a Service. It is used only from the game loop.
type Tracker struct {
	svc   Service
	appID uint64
	eval  *achievement.Evaluator
	log   *log.Logger

	requested    bool
	valid        bool
	statsSeq     uint64
	gamesCounted bool
	earlyRuns    int // Races recorded before the stored totals arrived

	storePending bool
	storeSeq     uint64

	gamesPlayed  int
	totalRuns    int
	totalLoops   int
	loopsLastRun int

	boards    []*board
	nextFind  int
	resetSeq  uint64
	unlockLog []achievement.ID
}

// NewTracker creates a tracker bound to svc. Results carrying a different
// appID are ignored.
func NewTracker(svc Service, appID uint64, eval *achievement.Evaluator, logger *log.Logger) *Tracker {
	if svc == nil {
		svc = Unavailable{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{svc: svc, appID: appID, eval: eval, log: logger}
	for _, name := range Boards {
		t.boards = append(t.boards, &board{name: name, view: BoardView{Name: name}})
	}
	return t
}

// Valid reports whether stats have been received.
func (t *Tracker) Valid() bool { return t.valid }

// Stats returns the current counters.
func (t *Tracker) Stats() achievement.Stats {
	return achievement.Stats{
		GamesPlayed:  t.gamesPlayed,
		TotalRuns:    t.totalRuns,
		TotalLoops:   t.totalLoops,
		LoopsLastRun: t.loopsLastRun,
	}
}

// StorePending reports whether staged stats still need a successful store.
func (t *Tracker) StorePending() bool { return t.storePending }

// TakeUnlocked returns achievements unlocked since the last call.
func (t *Tracker) TakeUnlocked() []achievement.ID {
	ids := t.unlockLog
	t.unlockLog = nil
	return ids
}

// RunFrame is called once per tick. It requests stats once, then on every
// tick with valid stats evaluates achievements and stores when needed.
// Requests the service did not accept are sent again on the next tick.
func (t *Tracker) RunFrame() {
	if !t.requested {
		t.statsSeq = t.svc.RequestStats()
		t.requested = t.statsSeq != 0
	}
	if t.nextFind < len(t.boards) && t.boards[t.nextFind].findSeq == 0 {
		t.findNextBoard()
	}
	for _, b := range t.boards {
		t.flushUploads(b)
	}
	if !t.valid {
		return
	}

	for _, id := range t.eval.Evaluate(t.Stats()) {
		t.svc.SetAchievement(id.String())
		t.storePending = true
		t.unlockLog = append(t.unlockLog, id)
		t.log.Info("achievement unlocked", "id", id.String())
	}

	t.storeIfNecessary()
}

// storeIfNecessary sends staged stats unless a store is already in flight.
// A failed store leaves storePending set so the next frame retries.
func (t *Tracker) storeIfNecessary() {
	if !t.storePending || t.storeSeq != 0 {
		return
	}
	t.svc.SetStat(StatGamesPlayed, t.gamesPlayed)
	t.svc.SetStat(StatTotalRuns, t.totalRuns)
	t.svc.SetStat(StatTotalLoops, t.totalLoops)
	t.storeSeq = t.svc.StoreStats()
}

// RecordRun adds a finished race. Leaderboard scores are uploaded as soon
// as the board handles are known. Before the stored totals arrive the
// counters hold only this session's races; the total loops score waits
// until they are merged.
func (t *Tracker) RecordRun(loops int) {
	if loops < 0 {
		loops = 0
	}
	t.totalRuns++
	t.loopsLastRun = loops
	t.totalLoops += loops
	t.storePending = true

	t.upload(BoardFastestRun, loops)
	if !t.valid {
		t.earlyRuns++
		return
	}
	t.upload(BoardTotalLoops, t.totalLoops)
}

func (t *Tracker) upload(name string, score int) {
	b := t.board(name)
	if b == nil {
		return
	}
	b.pending = append(b.pending, score)
	t.flushUploads(b)
}

// flushUploads sends queued scores once the handle is known. A score the
// service does not accept stays queued.
func (t *Tracker) flushUploads(b *board) {
	if b.handle == 0 {
		return
	}
	for len(b.pending) > 0 {
		if t.svc.UploadScore(b.handle, b.pending[0], true) == 0 {
			return
		}
		b.pending = b.pending[1:]
	}
	b.pending = nil
}

// ResetAll clears stats and achievements locally and on the service.
func (t *Tracker) ResetAll() {
	t.gamesPlayed, t.totalRuns, t.totalLoops, t.loopsLastRun = 0, 0, 0, 0
	t.earlyRuns = 0
	t.eval.ResetAll()
	t.storePending = false
	t.storeSeq = 0
	t.resetSeq = t.svc.ResetAll()
}

// Poll drains completed results from the service and applies them.
func (t *Tracker) Poll() {
	for _, r := range t.svc.Poll() {
		t.apply(r)
	}
}

func (t *Tracker) apply(r Result) {
	h := ResultHeader(r)
	if h.AppID != t.appID {
		t.log.Debug("ignoring result for another app", "app_id", h.AppID)
		return
	}

	switch m := r.(type) {
	case StatsReceived:
		t.onStatsReceived(m)
	case StatsStored:
		if m.Seq != t.storeSeq {
			return
		}
		t.storeSeq = 0
		if m.Err != nil {
			t.log.Warn("storing stats failed, will retry", "err", m.Err)
			return
		}
		t.storePending = false
	case StatsReset:
		if m.Seq == t.resetSeq && m.Err != nil {
			t.log.Warn("resetting stats failed", "err", m.Err)
		}
	case BoardFound:
		t.onBoardFound(m)
	case EntriesDownloaded:
		t.onEntriesDownloaded(m)
	case ScoreUploaded:
		if m.Err != nil {
			t.log.Warn("leaderboard upload failed", "board", m.Board, "err", m.Err)
		}
	}
}

func (t *Tracker) onStatsReceived(m StatsReceived) {
	// Only the outstanding request counts; duplicates and stale replies are
	// dropped so they cannot overwrite counters changed since.
	if t.valid || m.Seq != t.statsSeq {
		return
	}
	if m.Err != nil {
		t.log.Warn("requesting stats failed, will retry", "err", m.Err)
		t.requested = false
		return
	}

	t.valid = true
	t.gamesPlayed = m.Snapshot.GamesPlayed
	t.totalRuns += m.Snapshot.TotalRuns
	t.totalLoops += m.Snapshot.TotalLoops
	if t.earlyRuns > 0 {
		t.earlyRuns = 0
		t.storePending = true
		t.upload(BoardTotalLoops, t.totalLoops)
	}

	var ids []achievement.ID
	for _, name := range m.Snapshot.Achievements {
		if id, ok := achievement.ByAPIName(name); ok {
			ids = append(ids, id)
			t.svc.SetAchievement(name)
		}
	}
	t.eval.Restore(ids)

	if !t.gamesCounted {
		t.gamesCounted = true
		t.gamesPlayed++
		t.storePending = true
	}
}

// findNextBoard looks boards up one at a time.
func (t *Tracker) findNextBoard() {
	if t.nextFind >= len(t.boards) {
		return
	}
	b := t.boards[t.nextFind]
	b.findSeq = t.svc.FindBoard(b.name)
}

func (t *Tracker) onBoardFound(m BoardFound) {
	if t.nextFind >= len(t.boards) {
		return
	}
	b := t.boards[t.nextFind]
	if m.Seq != b.findSeq || m.Name != b.name {
		return
	}
	t.nextFind++
	if m.Err != nil || m.Handle == 0 {
		b.view.Failed = true
		t.log.Warn("leaderboard not found", "board", b.name, "err", m.Err)
	} else {
		b.handle = m.Handle
		b.view.Found = true
		t.flushUploads(b)
	}
	t.findNextBoard()
}

func (t *Tracker) board(name string) *board {
	for _, b := range t.boards {
		if b.name == name {
			return b
		}
	}
	return nil
}

// Download requests a fresh view of a leaderboard. It reports false when the
// board is unknown or not found yet.
func (t *Tracker) Download(name string, scope Scope) bool {
	b := t.board(name)
	if b == nil || b.handle == 0 {
		return false
	}
	start, end := 1, GlobalTopN
	if scope == ScopeAroundUser {
		start, end = -AroundUserSpan, AroundUserSpan
	}
	b.view = BoardView{Name: b.name, Scope: scope, Found: true, Loading: true}
	b.dlSeq = t.svc.DownloadEntries(b.handle, scope, start, end)
	if b.dlSeq == 0 {
		b.view.Loading = false
		b.view.Failed = true
	}
	return true
}

func (t *Tracker) onEntriesDownloaded(m EntriesDownloaded) {
	for _, b := range t.boards {
		if b.handle != m.Board || b.dlSeq != m.Seq {
			continue
		}
		b.view.Loading = false
		b.view.Failed = m.Err != nil
		b.view.Entries = m.Entries
		return
	}
}

// Board returns the current view of a leaderboard.
func (t *Tracker) Board(name string) BoardView {
	b := t.board(name)
	if b == nil {
		return BoardView{Name: name, Failed: true}
	}
	v := b.view
	v.Entries = append([]Entry(nil), b.view.Entries...)
	return v
}
