package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// peerRepo implements PeerRepo with sqlx struct scanning.
type peerRepo struct {
	db *sqlx.DB
}

func (r *peerRepo) List(ctx context.Context) ([]Peer, error) {
	var peers []Peer
	err := r.db.SelectContext(ctx, &peers,
		`SELECT id, name, avatar, total_xp, streak, lessons FROM peers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list peers: %w", err)
	}
	return peers, nil
}

func (r *peerRepo) Upsert(ctx context.Context, p Peer) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO peers (name, avatar, total_xp, streak, lessons)
		VALUES (:name, :avatar, :total_xp, :streak, :lessons)
		ON CONFLICT (name) DO UPDATE SET
			avatar = excluded.avatar,
			total_xp = excluded.total_xp,
			streak = excluded.streak,
			lessons = excluded.lessons`, p)
	if err != nil {
		return fmt.Errorf("upsert peer %q: %w", p.Name, err)
	}
	return nil
}
