package database

import (
	"context"
	"fmt"
	"licznik-schodow/internal/websocket"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool  *pgxpool.Pool
	wsHub *websocket.Hub
	*Queries
}

func NewStore(pool *pgxpool.Pool, wsHub *websocket.Hub) *PostgresStore {
	return &PostgresStore{
		pool:    pool,
		wsHub:   wsHub,
		Queries: New(pool),
	}
}

func (s *PostgresStore) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}
