package address

import (
	"context"
	"database/sql"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// GetByIDs returns the user's addresses keyed by id. Ids that do not
	// belong to the user are left out.
	GetByIDs(ctx context.Context, userID string, ids []string) (map[string]*Address, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByIDs(
	ctx context.Context,
	userID string,
	ids []string,
) (map[string]*Address, error) {

	res := make(map[string]*Address, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByIDs"),
		zap.String("user_id", userID),
		zap.Int("count", len(ids)),
	)

	const q = `
		SELECT
			id, user_id,
			name, phone,
			address_line1, address_line2,
			city, province, postal_code, country
		FROM addresses
		WHERE user_id = $1
		  AND id = ANY($2)
	`

	rows, err := r.db.QueryContext(ctx, q, userID, pq.Array(ids))
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a Address
		if err := rows.Scan(
			&a.ID, &a.UserID,
			&a.Name, &a.Phone,
			&a.Address1, &a.Address2,
			&a.City, &a.Province, &a.Postal, &a.Country,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res[a.ID] = &a
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return res, nil
}
