package stats

// Service is the asynchronous stats, achievement and leaderboard interface.
// Every submitting method returns the request's sequence number, which the
// matching result echoes. A zero sequence number means the request was not
// accepted and no result will follow. SetStat and SetAchievement only stage
// values locally; StoreStats sends them.
type Service interface {
	RequestStats() uint64
	SetStat(name string, value int)
	SetAchievement(apiName string)
	StoreStats() uint64
	ResetAll() uint64
	FindBoard(name string) uint64
	DownloadEntries(board BoardHandle, scope Scope, start, end int) uint64
	UploadScore(board BoardHandle, score int, keepBest bool) uint64
	// Poll returns every result that has completed since the last call
	// without blocking.
	Poll() []Result
	Close() error
}

// Backend performs the requests. Implementations may block.
type Backend interface {
	LoadStats(user string) (Snapshot, error)
	SaveStats(user string, stats map[string]int, achievements []string) error
	ResetStats(user string) error
	FindLeaderboard(name string) (BoardHandle, error)
	LeaderboardEntries(board BoardHandle, user string, scope Scope, start, end int) ([]Entry, error)
	UploadLeaderboardScore(board BoardHandle, user string, score int, keepBest bool) (changed bool, rank int, err error)
}

// Unavailable is the Service used when no backend can be reached. No request
// is accepted.
type Unavailable struct{}

var _ Service = Unavailable{}

func (Unavailable) RequestStats() uint64 { return 0 }
func (Unavailable) SetStat(string, int) {}
func (Unavailable) SetAchievement(string) {}
func (Unavailable) StoreStats() uint64 { return 0 }
func (Unavailable) ResetAll() uint64 { return 0 }
func (Unavailable) FindBoard(string) uint64 { return 0 }
func (Unavailable) DownloadEntries(BoardHandle, Scope, int, int) uint64 { return 0 }
func (Unavailable) UploadScore(BoardHandle, int, bool) uint64 { return 0 }
func (Unavailable) Poll() []Result { return nil }
func (Unavailable) Close() error { return nil }
