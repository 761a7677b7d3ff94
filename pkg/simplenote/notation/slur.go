package notation

import "github.com/himanishpuri/SimpleNote/pkg/simplenote/score"

// SlurPair links a slur start to the stop that closes it, both as indexes
// into the same measure.
type SlurPair struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// SlurPairs matches slur markers within a measure.
//
// Each "start" is paired with the first "stop" after it, and scanning
// resumes after that stop, so a stop closes at most one slur. Starts with no
// later stop, and stops with no earlier start, are ignored. The result is
// never nil.
func SlurPairs(m score.Measure) []SlurPair {
	pairs := make([]SlurPair, 0)
	for i := 0; i < len(m); i++ {
		if m[i].Slur != score.MarkerStart {
			continue
		}
		for j := i + 1; j < len(m); j++ {
			if m[j].Slur == score.MarkerStop {
				pairs = append(pairs, SlurPair{Start: i, Stop: j})
				i = j
				break
			}
		}
	}
	return pairs
}

// SlurRole says whether an event opens or closes a matched slur.
type SlurRole struct {
	Start bool
	Stop  bool
}

// SlurRoles returns the matched slur role of every event in m. Unmatched
// markers get the zero role.
func SlurRoles(m score.Measure) []SlurRole {
	roles := make([]SlurRole, len(m))
	for _, p := range SlurPairs(m) {
		roles[p.Start].Start = true
		roles[p.Stop].Stop = true
	}
	return roles
}
