package classifier

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/mikey/comm-classifier/internal/core"
)

var (
	fakeCallerRe = regexp.MustCompile(`000-0000|555-0100|999-9999`)
	phoneShapeRe = regexp.MustCompile(`^\+?1?\d{10,11}$`)
)

// callTimeLayout is the fixed timestamp format for the call_time field.
const callTimeLayout = "2006-01-02 15:04:05"

// analyzeCallMetadata scores call-level spam signals. Every field is
// optional; absent fields are skipped and the analyzer never fails.
func analyzeCallMetadata(md *core.CallMetadata) float64 {
	if md == nil {
		return 0.0
	}

	score := 0.0

	if md.CallerID != nil {
		callerID := strings.TrimSpace(*md.CallerID)
		stripped := strings.ReplaceAll(callerID, "-", "")
		if callerID == "" || fakeCallerRe.MatchString(stripped) || len(callerID) < 10 {
			score += 0.5
		} else if !phoneShapeRe.MatchString(callerID) {
			score += 0.3
		}
	}

	if md.Duration != nil {
		switch duration := *md.Duration; {
		case duration < 5: // very short calls are often probe dials
			score += 0.4
		case duration > 300: // unusually long calls suggest telemarketing
			score += 0.3
		}
	}

	if md.Frequency != nil {
		if frequency := *md.Frequency; frequency > 3 {
			score += math.Min(0.1*float64(frequency), 0.7)
		}
	}

	if md.CallTime != nil {
		if callTime, err := time.Parse(callTimeLayout, *md.CallTime); err == nil {
			if hour := callTime.Hour(); hour < 6 || hour > 21 {
				score += 0.5
			}
		}
	}

	return math.Min(score, 1.0)
}
