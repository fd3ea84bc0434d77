// Package stats is the asynchronous stats, achievement and leaderboard
// service. Requests are submitted from the game loop and complete out of
// band on a worker goroutine; typed results are collected by polling.
package stats

import "fmt"

// Stat names.
const (
	StatGamesPlayed = "GamesPlayed"
	StatTotalRuns   = "TotalRuns"
	StatTotalLoops  = "TotalLoops"
)

// Leaderboard names.
const (
	BoardFastestRun = "FastestRun"
	BoardTotalLoops = "TotalLoops"
)

// Boards lists the leaderboards in display order.
var Boards = []string{BoardFastestRun, BoardTotalLoops}

// Scope selects which slice of a leaderboard to download.
type Scope int

const (
	ScopeGlobal     Scope = iota // Top entries
	ScopeAroundUser              // Entries around the current user
)

// String returns a display label for the scope.
func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "Global"
	case ScopeAroundUser:
		return "Around you"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// BoardHandle identifies a leaderboard found by FindBoard. Zero is invalid.
type BoardHandle int64

// Entry is one leaderboard row.
type Entry struct {
	Rank  int
	User  string
	Score int
}

// Snapshot is the persisted per-user state.
type Snapshot struct {
	GamesPlayed  int
	TotalRuns    int
	TotalLoops   int
	Achievements []string // Unlocked achievement API names
}

// Request is a unit of work for the service worker.
type Request interface {
	statsRequest()
}

// RequestStatsMsg fetches the user's stats and achievements.
type RequestStatsMsg struct{}

func (RequestStatsMsg) statsRequest() {}

// StoreStatsMsg persists staged stats and achievements.
type StoreStatsMsg struct {
	Stats        map[string]int
	Achievements []string
}

func (StoreStatsMsg) statsRequest() {}

// ResetAllMsg clears the user's stats and achievements.
type ResetAllMsg struct{}

func (ResetAllMsg) statsRequest() {}

// FindBoardMsg looks up a leaderboard by name.
type FindBoardMsg struct {
	Name string
}

func (FindBoardMsg) statsRequest() {}

// DownloadEntriesMsg fetches leaderboard rows. For ScopeGlobal Start and End
// are 1-based ranks; for ScopeAroundUser they are offsets from the user.
type DownloadEntriesMsg struct {
	Board BoardHandle
	Scope Scope
	Start int
	End   int
}

func (DownloadEntriesMsg) statsRequest() {}

// UploadScoreMsg submits a score to a leaderboard.
type UploadScoreMsg struct {
	Board    BoardHandle
	Score    int
	KeepBest bool
}

func (UploadScoreMsg) statsRequest() {}

// Header is carried by every result. Seq echoes the sequence number returned
// when the request was submitted. Err is set when the request failed.
type Header struct {
	AppID uint64
	Seq   uint64
	Err   error
}

// Result is a completed request.
type Result interface {
	header() Header
}

// ResultHeader returns the header of any result.
func ResultHeader(r Result) Header {
	return r.header()
}

// StatsReceived completes RequestStatsMsg.
type StatsReceived struct {
	Header
	Snapshot Snapshot
}

func (r StatsReceived) header() Header { return r.Header }

// StatsStored completes StoreStatsMsg.
type StatsStored struct {
	Header
}

func (r StatsStored) header() Header { return r.Header }

// StatsReset completes ResetAllMsg.
type StatsReset struct {
	Header
}

func (r StatsReset) header() Header { return r.Header }

// BoardFound completes FindBoardMsg.
type BoardFound struct {
	Header
	Name   string
	Handle BoardHandle
}

func (r BoardFound) header() Header { return r.Header }

// EntriesDownloaded completes DownloadEntriesMsg.
type EntriesDownloaded struct {
	Header
	Board   BoardHandle
	Scope   Scope
	Entries []Entry
}

func (r EntriesDownloaded) header() Header { return r.Header }

// ScoreUploaded completes UploadScoreMsg.
type ScoreUploaded struct {
	Header
	Board   BoardHandle
	Score   int
	Changed bool // The stored score was replaced
	Rank    int  // Rank after the upload, 0 if unknown
}

func (r ScoreUploaded) header() Header { return r.Header }
