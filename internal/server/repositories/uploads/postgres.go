package uploads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gestoria/internal/api"
	"gestoria/internal/dbx"
	"gestoria/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, upload *models.Upload) (*models.Upload, error) {

	query :=
		`INSERT INTO uploads (user_id, tipo, original_filename, storage_path, mime_type, size_bytes, sha256, status, detail)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		upload.UserID, upload.Tipo, upload.OriginalFilename, upload.StoragePath,
		upload.MimeType, upload.SizeBytes, upload.SHA256, upload.Status, upload.Detail).
		Scan(&upload.ID, &upload.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return upload, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Upload, error) {
	query :=
		`SELECT id, user_id, tipo, original_filename, storage_path, mime_type, size_bytes, sha256, status, detail, factura_id, created_at FROM uploads
		 WHERE id = $1
		 `

	u := &models.Upload{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.UserID, &u.Tipo, &u.OriginalFilename, &u.StoragePath,
		&u.MimeType, &u.SizeBytes, &u.SHA256, &u.Status, &u.Detail, &u.FacturaID, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]models.Upload, error) {
	query :=
		`SELECT id, user_id, tipo, original_filename, storage_path, mime_type, size_bytes, sha256, status, detail, factura_id, created_at FROM uploads
		 ORDER BY created_at DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []models.Upload
	for rows.Next() {
		var u models.Upload
		err := rows.Scan(
			&u.ID, &u.UserID, &u.Tipo, &u.OriginalFilename, &u.StoragePath,
			&u.MimeType, &u.SizeBytes, &u.SHA256, &u.Status, &u.Detail, &u.FacturaID, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status api.UploadStatus, detail string) error {
	query :=
		`UPDATE uploads SET status = $1, detail = $2
		 WHERE id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, status, detail, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) LinkByFilename(ctx context.Context, filename string, status api.UploadStatus, facturaID *string) (int64, error) {
	query :=
		`UPDATE uploads SET status = $1, factura_id = $2
		 WHERE original_filename = $3
		 `

	res, err := r.db.ExecContext(ctx, query, status, facturaID, filename)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
