// Package storage 把每次运行的结果归档到 PostgreSQL，供回溯查看。
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
)

// 运行结果
const (
	OutcomeOK       = "ok"
	OutcomeRepaired = "repaired"
	OutcomeFallback = "fallback"
	OutcomeFailed   = "failed"
)

// Run 一次运行的归档记录
type Run struct {
	RunID        string
	ChatID       string
	Message      string
	Outcome      string
	Report       json.RawMessage // 校验通过的报告，没有时为 nil
	RenderedText string
	Error        string
	CreatedAt    time.Time
}

// RunFromState 根据流水线状态生成归档记录，runErr 为 Run 返回的错误
func RunFromState(st *engine.State, chatID string, runErr error) (Run, error) {
	run := Run{
		RunID:        st.RunID,
		ChatID:       chatID,
		Message:      st.UserMessage,
		RenderedText: st.RenderedText,
	}
	switch {
	case runErr != nil:
		run.Outcome = OutcomeFailed
		run.Error = runErr.Error()
	case st.Report == nil:
		run.Outcome = OutcomeFallback
	case st.Repaired:
		run.Outcome = OutcomeRepaired
	default:
		run.Outcome = OutcomeOK
	}
	if st.Report != nil {
		data, err := json.Marshal(st.Report)
		if err != nil {
			return Run{}, fmt.Errorf("marshal report: %w", err)
		}
		run.Report = data
	}
	return run, nil
}

// Storage 运行归档
type Storage struct {
	db *sql.DB
}

// DSN 拼接 lib/pq 连接串
func DSN(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode)
}

// NewStorage 连接数据库并建表
func NewStorage(ctx context.Context, cfg config.DBConfig) (*Storage, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS report_runs (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL UNIQUE,
			chat_id TEXT,
			message TEXT,
			outcome TEXT NOT NULL,
			report JSONB,
			rendered_text TEXT,
			error TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS report_runs_chat_created_idx ON report_runs (chat_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s, error: %w", query, err)
		}
	}
	return nil
}

// SaveRun 写入一条运行记录，同一 run_id 只保留第一条
func (s *Storage) SaveRun(ctx context.Context, run Run) error {
	var report any
	if len(run.Report) > 0 {
		report = string(run.Report)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO report_runs (run_id, chat_id, message, outcome, report, rendered_text, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id) DO NOTHING`,
		run.RunID, run.ChatID, run.Message, run.Outcome, report, run.RenderedText, run.Error)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.RunID, err)
	}
	return nil
}

// RecentRuns 按时间倒序返回某个会话最近的运行记录
func (s *Storage) RecentRuns(ctx context.Context, chatID string, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, chat_id, message, outcome, report, rendered_text, error, created_at
		FROM report_runs WHERE chat_id = $1 ORDER BY created_at DESC LIMIT $2`,
		chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                  Run
			report, rendered, ex sql.NullString
		)
		if err := rows.Scan(&run.RunID, &run.ChatID, &run.Message, &run.Outcome,
			&report, &rendered, &ex, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if report.Valid {
			run.Report = json.RawMessage(report.String)
		}
		run.RenderedText = rendered.String
		run.Error = ex.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
