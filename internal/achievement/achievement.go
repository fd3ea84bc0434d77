// Package achievement evaluates unlock rules against session statistics and
// queues newly unlocked achievements for an on-screen banner.
package achievement

import "github.com/vovakirdan/tui-hamster/internal/config"

// ID identifies an achievement.
type ID int

const (
	FirstGame ID = iota
	FirstRun
	FastRun
	LongDistance
	Count
)

// Info describes an achievement for display and for the stats service.
type Info struct {
	ID          ID
	APIName     string // Key used by the stats service
	Name        string
	Description string
}

var catalog = [Count]Info{
	FirstGame:    {FirstGame, "ACH_FIRST_GAME", "Good Morning", "Wake up and play your first game"},
	FirstRun:     {FirstRun, "ACH_FIRST_RUN", "Back to Basics", "Finish your first race"},
	FastRun:      {FastRun, "ACH_FAST_RUN", "Super Speed", "Run a huge number of loops in a single race"},
	LongDistance: {LongDistance, "ACH_LONG_DISTANCE", "Marathon Runner", "Run a huge number of loops across all races"},
}

// Lookup returns the catalog entry for id.
func Lookup(id ID) (Info, bool) {
	if id < 0 || id >= Count {
		return Info{}, false
	}
	return catalog[id], true
}

// All returns every achievement in ID order.
func All() []Info {
	out := make([]Info, Count)
	copy(out, catalog[:])
	return out
}

// ByAPIName finds an achievement by its stats service key.
func ByAPIName(name string) (ID, bool) {
	for _, info := range catalog {
		if info.APIName == name {
			return info.ID, true
		}
	}
	return 0, false
}

// String returns the achievement's stats service key.
func (id ID) String() string {
	if info, ok := Lookup(id); ok {
		return info.APIName
	}
	return "ACH_UNKNOWN"
}

// Stats is the subset of session statistics the rules look at.
type Stats struct {
	GamesPlayed  int
	TotalRuns    int
	TotalLoops   int
	LoopsLastRun int
}

// Rule unlocks ID once Cond holds.
type Rule struct {
	ID   ID
	Cond func(Stats) bool
}

// Rules returns the rule table for the given thresholds.
func Rules(cfg config.AchievementsConfig) []Rule {
	return []Rule{
		{FirstGame, func(Stats) bool { return true }},
		{FirstRun, func(s Stats) bool { return s.TotalRuns >= 1 }},
		{FastRun, func(s Stats) bool { return s.LoopsLastRun >= cfg.FastRunLoops }},
		{LongDistance, func(s Stats) bool { return s.TotalLoops >= cfg.LongDistanceLoops }},
	}
}

// Evaluator tracks unlock state and feeds the display queue.
type Evaluator struct {
	rules    []Rule
	unlocked [Count]bool
	display  *Display
}

// NewEvaluator creates an evaluator with nothing unlocked.
func NewEvaluator(cfg config.AchievementsConfig) *Evaluator {
	return &Evaluator{
		rules:   Rules(cfg),
		display: NewDisplay(cfg.DisplaySeconds),
	}
}

// Evaluate checks every locked rule against s. Newly unlocked achievements
// are marked, queued for display and returned in rule order.
func (e *Evaluator) Evaluate(s Stats) []ID {
	var unlocked []ID
	for _, r := range e.rules {
		if e.unlocked[r.ID] {
			continue
		}
		if !r.Cond(s) {
			continue
		}
		e.unlocked[r.ID] = true
		e.display.Enqueue(r.ID)
		unlocked = append(unlocked, r.ID)
	}
	return unlocked
}

// Unlocked reports whether id has been unlocked.
func (e *Evaluator) Unlocked(id ID) bool {
	if id < 0 || id >= Count {
		return false
	}
	return e.unlocked[id]
}

// UnlockedIDs returns all unlocked achievements in ID order.
func (e *Evaluator) UnlockedIDs() []ID {
	var ids []ID
	for id := ID(0); id < Count; id++ {
		if e.unlocked[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Restore marks previously persisted unlocks without showing a banner.
func (e *Evaluator) Restore(ids []ID) {
	for _, id := range ids {
		if id >= 0 && id < Count {
			e.unlocked[id] = true
		}
	}
}

// ResetAll clears every unlock and any pending banners.
func (e *Evaluator) ResetAll() {
	e.unlocked = [Count]bool{}
	e.display.Clear()
}

// Display returns the banner queue.
func (e *Evaluator) Display() *Display {
	return e.display
}
