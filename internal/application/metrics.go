package application

import "expvar"

// Published under "opinions" on /api/debug/vars.
var opinionStats = expvar.NewMap("opinions")

const (
	statPosted    = "posted"
	statSwapped   = "swapped"
	statRetracted = "retracted"
	statRejected  = "rejected"
)

func countOpinion(key string) { opinionStats.Add(key, 1) }

// opinionStat reads one counter; unknown keys read as zero.
func opinionStat(key string) int64 {
	if v, ok := opinionStats.Get(key).(*expvar.Int); ok {
		return v.Value()
	}
	return 0
}
