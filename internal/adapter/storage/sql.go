package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/internal/core/port"
)

var _ port.DocumentStore = (*SQLStore)(nil)

type sqldb interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}

// SQLStore keeps documents as JSONB rows of the documents table in
// PostgreSQL. The table is created by the migrator.
type SQLStore struct {
	sqldb sqldb
	name  string
}

func NewSQLStore(ctx context.Context, dsn string) (SQLStore, error) {
	const op = "NewSQLStore"

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return SQLStore{}, fmt.Errorf("%s: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return SQLStore{}, fmt.Errorf("%s: %w", op, err)
	}

	s := newSQLStore(db, connConfig.Database)
	if err := s.ping(ctx); err != nil {
		_ = db.Close()
		return SQLStore{}, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func newSQLStore(db sqldb, name string) SQLStore {
	return SQLStore{sqldb: db, name: name}
}

func (s SQLStore) ping(ctx context.Context) error {
	const op = "SQLStore.ping"
	if err := s.sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: database is unavailable: %w", op, err)
	}
	slog.Info("database is available", "op", op, "database", s.name)
	return nil
}

func (s SQLStore) Name() string {
	return s.name
}

func (s SQLStore) Insert(
	ctx context.Context, collection string, doc any,
) (string, error) {
	const op = "SQLStore.Insert"

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, port.ErrStoreWrite, err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO documents (id, collection, body)
		VALUES ($1, $2, $3);`

	_, err = s.sqldb.ExecContext(ctx, query, id, collection, string(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, port.ErrStoreWrite, err)
	}
	return id, nil
}

func (s SQLStore) Find(
	ctx context.Context, collection string, f domain.Filter, limit int,
) ([]domain.Document, error) {
	const op = "SQLStore.Find"
	log := slog.With("op", op)

	query, args, err := buildFindQuery(collection, f, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "err", err)
		}
	}()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		var doc domain.Document
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		doc[domain.DocumentIDField] = id
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return docs, nil
}

func (s SQLStore) Collections(
	ctx context.Context, limit int,
) ([]string, error) {
	const op = "SQLStore.Collections"

	query := "SELECT DISTINCT collection FROM documents ORDER BY collection"
	var args []any
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $1"
	}
	query += ";"

	rows, err := s.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return names, nil
}

func (s SQLStore) Close(context.Context) {
	const op = "SQLStore.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.sqldb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}

// buildFindQuery translates the filter into SQL/JSON path conditions.
// In lax mode a path step over an array visits every element, which
// gives "any element matches" semantics for embedded arrays.
func buildFindQuery(
	collection string, f domain.Filter, limit int,
) (string, []any, error) {
	var b strings.Builder
	args := []any{collection}

	b.WriteString("SELECT id, body FROM documents WHERE collection = $1")

	for _, p := range f {
		if err := checkField(p.Field); err != nil {
			return "", nil, err
		}
		path := "$." + p.Field

		switch p.Op {
		case domain.OpEq, domain.OpGTE, domain.OpLTE:
			vars, err := json.Marshal(map[string]any{"v": p.Value})
			if err != nil {
				return "", nil, err
			}
			args = append(args, string(vars))
			fmt.Fprintf(&b,
				" AND jsonb_path_exists(body, '%s ? (@ %s $v)', $%d::jsonb)",
				path, jsonPathOperator(p.Op), len(args),
			)
		case domain.OpContainsFold:
			args = append(args, "%"+escapeLike(fmt.Sprint(p.Value))+"%")
			fmt.Fprintf(&b,
				" AND EXISTS (SELECT 1 FROM jsonb_path_query(body, '%s') AS m(v)"+
					" WHERE m.v #>> '{}' ILIKE $%d)",
				path, len(args),
			)
		default:
			return "", nil, fmt.Errorf("unsupported predicate %s", p.Op)
		}
	}

	b.WriteString(" ORDER BY seq")

	if limit > 0 {
		args = append(args, limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	b.WriteString(";")

	return b.String(), args, nil
}

func jsonPathOperator(op domain.Op) string {
	switch op {
	case domain.OpGTE:
		return ">="
	case domain.OpLTE:
		return "<="
	}
	return "=="
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
