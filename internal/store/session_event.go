package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const sessionEventsTable = "session_events"

// eventRepo implements EventRepo on top of SQLite.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(sessionEventsTable).
		Columns("sequence", "timestamp", "session_id", "action", "seconds", "a", "b", "a_plus_b", "duration_secs").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Action,
			data.Seconds, data.A, data.B, data.APlusB, data.DurationSecs).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	starts := builder().Select("session_id", "timestamp").
		From(entsql.Table(sessionEventsTable)).
		Where(entsql.EQ("action", ActionStart)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		starts.Limit(limit)
	}

	query, args := starts.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session starts: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	index := make(map[string]int)
	for rows.Next() {
		var (
			id string
			ts int64
		)
		if err := rows.Scan(&id, &ts); err != nil {
			return nil, fmt.Errorf("scan session start: %w", err)
		}
		index[id] = len(sessions)
		sessions = append(sessions, SessionSummary{SessionID: id, StartedAt: time.UnixMilli(ts)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session starts: %w", err)
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.SessionID)
	}

	query, args = builder().Select("session_id", "timestamp", "seconds", "a", "b", "a_plus_b", "duration_secs").
		From(entsql.Table(sessionEventsTable)).
		Where(entsql.And(
			entsql.EQ("action", ActionEnd),
			entsql.In("session_id", ids...),
		)).
		Query()

	ends, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session ends: %w", err)
	}
	defer ends.Close()

	for ends.Next() {
		var (
			id       string
			ts       int64
			s        SessionSummary
			duration int
		)
		if err := ends.Scan(&id, &ts, &s.Seconds, &s.A, &s.B, &s.APlusB, &duration); err != nil {
			return nil, fmt.Errorf("scan session end: %w", err)
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		s.SessionID = id
		s.StartedAt = sessions[i].StartedAt
		s.EndedAt = time.UnixMilli(ts)
		s.Duration = time.Duration(duration) * time.Second
		sessions[i] = s
	}
	if err := ends.Err(); err != nil {
		return nil, fmt.Errorf("iterate session ends: %w", err)
	}

	return sessions, nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	query, args := builder().Delete(sessionEventsTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session events: %w", err)
	}
	return nil
}
