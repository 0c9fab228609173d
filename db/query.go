package db

import (
	"context"
	"database/sql"
)

// querier è soddisfatto sia da *sql.DB sia da *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// ExecResult è il risultato di INSERT/UPDATE/DELETE
type ExecResult struct {
	RowsAffected int64
	LastInsertID int64
}

// execute esegue un'istruzione con parametri posizionali
func execute(ctx context.Context, q querier, query string, args ...any) (ExecResult, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return ExecResult{}, dbError("errore nell'esecuzione della query", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return ExecResult{}, dbError("errore nella lettura delle righe modificate", err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return ExecResult{}, dbError("errore nella lettura dell'id inserito", err)
	}
	return ExecResult{RowsAffected: affected, LastInsertID: lastID}, nil
}

// fetchOne restituisce al massimo una riga; zero righe non sono un errore (found = false)
func fetchOne[T any](ctx context.Context, q querier, scan func(rowScanner) (T, error), query string, args ...any) (T, bool, error) {
	var zero T
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return zero, false, dbError("errore nell'esecuzione della query", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, false, dbError("errore nella lettura dei risultati", err)
		}
		return zero, false, nil
	}
	v, err := scan(rows)
	if err != nil {
		return zero, false, dbError("errore nella lettura della riga", err)
	}
	return v, true, nil
}

// fetchAll restituisce tutte le righe in ordine; mai nil
func fetchAll[T any](ctx context.Context, q querier, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("errore nell'esecuzione della query", err)
	}
	defer rows.Close()

	list := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, dbError("errore nella lettura della riga", err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("errore nella lettura dei risultati", err)
	}
	return list, nil
}

func nullableInt(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
