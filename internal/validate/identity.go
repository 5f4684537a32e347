package validate

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/haldis/badgeflow/internal/model"
)

// Identity alert reasons.
const (
	reasonSuspiciousUID = "Suspicious UID pattern"
	reasonRedundantUID  = "Redundant UID in sessions"
	reasonRareUID       = "Globally rare UID"
	reasonRepeatAnomaly = "Repeated anomaly across sessions"
)

// IdentityValidator inspects per-UID behavior across sessions: badge-shape
// anomalies, duplication, global rarity, and repetition. It also decides
// whether each UID stays eligible for the downstream grouping stage.
type IdentityValidator struct {
	pattern UIDPattern
	log     *zap.SugaredLogger
}

// NewIdentity creates an IdentityValidator with the given badge shape.
func NewIdentity(pattern UIDPattern, log *zap.SugaredLogger) *IdentityValidator {
	return &IdentityValidator{pattern: pattern, log: log}
}

// identityRow is one flattened (session, kept log) occurrence of a UID.
type identityRow struct {
	uid        string
	sessionID  int
	deviceID   string
	suspicious bool
	redundant  bool
	rare       bool
}

func (r identityRow) anomalous() bool {
	return r.suspicious || r.redundant || r.rare
}

// Run produces one alert per (uid, device) group with at least one flag,
// sorted by (uid, device_id), IDs sequential from 1. AllowClustering turns
// false only on the two flags that indict the identity itself: suspicious
// pattern and global rarity.
func (v *IdentityValidator) Run(sessions []model.Session) []model.IdentityAlert {
	rows := v.flatten(sessions)

	// Global rarity: a UID seen in exactly one flattened occurrence across
	// the whole dataset is an isolated sighting, not a recurring badge.
	occurrences := make(map[string]int)
	for _, r := range rows {
		occurrences[r.uid]++
	}
	for i := range rows {
		rows[i].suspicious = !v.pattern.Match(rows[i].uid)
		rows[i].rare = occurrences[rows[i].uid] <= 1
	}

	// Per-UID session bookkeeping: every attended session, and the subset in
	// which any flag fired.
	allSessions := make(map[string]map[int]struct{})
	anomalySessions := make(map[string]map[int]struct{})
	for _, r := range rows {
		if allSessions[r.uid] == nil {
			allSessions[r.uid] = make(map[int]struct{})
		}
		allSessions[r.uid][r.sessionID] = struct{}{}
		if r.anomalous() {
			if anomalySessions[r.uid] == nil {
				anomalySessions[r.uid] = make(map[int]struct{})
			}
			anomalySessions[r.uid][r.sessionID] = struct{}{}
		}
	}

	type key struct {
		uid      string
		deviceID string
	}
	type group struct {
		suspicious bool
		redundant  bool
		rare       bool
	}
	groups := make(map[key]*group)
	for _, r := range rows {
		k := key{uid: r.uid, deviceID: r.deviceID}
		g := groups[k]
		if g == nil {
			g = &group{}
			groups[k] = g
		}
		g.suspicious = g.suspicious || r.suspicious
		g.redundant = g.redundant || r.redundant
		g.rare = g.rare || r.rare
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].uid != keys[j].uid {
			return keys[i].uid < keys[j].uid
		}
		return keys[i].deviceID < keys[j].deviceID
	})

	var alerts []model.IdentityAlert
	for _, k := range keys {
		g := groups[k]
		repeated := len(anomalySessions[k.uid])

		reasons := make(reasonSet)
		allowClustering := true
		if g.suspicious {
			reasons.add(reasonSuspiciousUID)
			allowClustering = false
		}
		if g.rare {
			reasons.add(reasonRareUID)
			allowClustering = false
		}
		if g.redundant {
			reasons.add(reasonRedundantUID)
		}
		if repeated > 1 {
			reasons.add(reasonRepeatAnomaly)
		}
		if len(reasons) == 0 {
			continue
		}

		alerts = append(alerts, model.IdentityAlert{
			ID:                   len(alerts) + 1,
			UID:                  k.uid,
			AllowClustering:      allowClustering,
			DeviceID:             k.deviceID,
			NormalSessionsCount:  len(allSessions[k.uid]) - repeated,
			RepeatedAnomalyCount: repeated,
			AnomalySessions:      joinSessionIDs(anomalySessions[k.uid]),
			Reasons:              reasons.join(),
		})
	}

	v.log.Infow("identity validation complete",
		"uids", len(allSessions), "alerts", len(alerts))
	return alerts
}

// AllowClustering returns the per-UID eligibility decisions for the
// downstream grouping stage: false for every UID whose identity-level flags
// fired, true for every other UID seen in the sessions.
func (v *IdentityValidator) AllowClustering(sessions []model.Session) map[string]bool {
	decisions := make(map[string]bool)
	for _, s := range sessions {
		for _, l := range s.Logs {
			decisions[l.UID] = true
		}
	}
	for _, a := range v.Run(sessions) {
		if !a.AllowClustering {
			decisions[a.UID] = false
		}
	}
	return decisions
}

// flatten emits one row per (session, kept log), carrying the session-local
// redundancy count from the builder.
func (v *IdentityValidator) flatten(sessions []model.Session) []identityRow {
	var rows []identityRow
	for _, s := range sessions {
		for _, l := range s.Logs {
			rows = append(rows, identityRow{
				uid:       l.UID,
				sessionID: s.SessionID,
				deviceID:  s.DeviceID,
				redundant: s.RedundantUIDs[l.UID] > 1,
			})
		}
	}
	return rows
}

func joinSessionIDs(ids map[int]struct{}) string {
	sorted := make([]int, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ";")
}
