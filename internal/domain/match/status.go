package match

import (
	"maps"
	"slices"
	"strings"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusInPlay    Status = "IN_PLAY"
	StatusHalftime  Status = "HALFTIME"
	StatusPaused    Status = "PAUSED"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusCancelled Status = "CANCELLED"
	StatusAwarded   Status = "AWARDED"
)

func (s Status) IsLive() bool {
	switch s {
	case StatusLive, StatusInPlay, StatusHalftime, StatusPaused:
		return true
	default:
		return false
	}
}

func (s Status) IsFinished() bool {
	return s == StatusFinished || s == StatusAwarded
}

// TextRule maps a free-text status to Status when the lower-cased text
// contains any of the fragments.
type TextRule struct {
	Contains []string
	Status   Status
}

// StatusTable translates one provider's status vocabulary. It is read-only
// after construction and safe for concurrent use.
type StatusTable struct {
	codes  map[int64]Status
	labels map[string]Status
	rules  []TextRule
}

// NewStatusTable copies its inputs. Labels are matched case-insensitively
// before rules are tried in order.
func NewStatusTable(codes map[int64]Status, labels map[string]Status, rules []TextRule) StatusTable {
	normalized := make(map[string]Status, len(labels))
	for label, status := range labels {
		normalized[strings.ToUpper(strings.TrimSpace(label))] = status
	}
	copied := make([]TextRule, 0, len(rules))
	for _, rule := range rules {
		copied = append(copied, TextRule{Contains: slices.Clone(rule.Contains), Status: rule.Status})
	}
	return StatusTable{
		codes:  maps.Clone(codes),
		labels: normalized,
		rules:  copied,
	}
}

// FromCode maps a numeric state; unknown codes are SCHEDULED.
func (t StatusTable) FromCode(code int64) Status {
	if status, ok := t.codes[code]; ok {
		return status
	}
	return StatusScheduled
}

// FromText maps a textual status; unknown or empty text is SCHEDULED.
func (t StatusTable) FromText(raw string) Status {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return StatusScheduled
	}
	if status, ok := t.labels[strings.ToUpper(trimmed)]; ok {
		return status
	}
	lower := strings.ToLower(trimmed)
	for _, rule := range t.rules {
		for _, fragment := range rule.Contains {
			if strings.Contains(lower, fragment) {
				return rule.Status
			}
		}
	}
	return StatusScheduled
}

// SportMonksStates maps SportMonks v3 state ids.
func SportMonksStates() StatusTable {
	return NewStatusTable(map[int64]Status{
		1:  StatusScheduled,
		2:  StatusInPlay,
		3:  StatusHalftime,
		4:  StatusInPlay,
		5:  StatusFinished,
		6:  StatusFinished,
		7:  StatusFinished,
		8:  StatusPaused,
		9:  StatusCancelled,
		10: StatusPostponed,
		11: StatusAwarded,
		12: StatusLive,
		17: StatusInPlay,
		26: StatusInPlay,
		31: StatusCancelled,
		44: StatusScheduled,
	}, nil, nil)
}

// TheSportsDBText maps TheSportsDB's free-text strStatus.
func TheSportsDBText() StatusTable {
	return NewStatusTable(nil, nil, []TextRule{
		{Contains: []string{"finished", "ft"}, Status: StatusFinished},
		{Contains: []string{"live", "in progress"}, Status: StatusLive},
	})
}

// FootballDataLabels maps football-data.org v4 status labels.
func FootballDataLabels() StatusTable {
	return NewStatusTable(nil, map[string]Status{
		"SCHEDULED": StatusScheduled,
		"TIMED":     StatusScheduled,
		"IN_PLAY":   StatusInPlay,
		"PAUSED":    StatusPaused,
		"SUSPENDED": StatusPaused,
		"LIVE":      StatusLive,
		"FINISHED":  StatusFinished,
		"AWARDED":   StatusAwarded,
		"POSTPONED": StatusPostponed,
		"CANCELLED": StatusCancelled,
	}, nil)
}
