package facturas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gestoria/internal/dbx"
	"gestoria/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const insertColumns = `id_ext, fecha, fecha_dt, proveedor, supplier_vat_number, categoria, descripcion, moneda, tarifa_cambio, pais_origen, notas, ubicacion_factura, iva_local, importe_sin_iva_local, importe_sin_iva_euro, importe_total_euro, total_moneda_local`

func insertArgs(f *models.Factura) []any {
	return []any{
		f.IDExt, f.Fecha, f.FechaDt, f.Proveedor, f.SupplierVATNumber,
		f.Categoria, f.Descripcion, f.Moneda, f.TarifaCambio, f.PaisOrigen,
		f.Notas, f.UbicacionFactura, f.IvaLocal, f.ImporteSinIvaLocal,
		f.ImporteSinIvaEuro, f.ImporteTotalEuro, f.TotalMonedaLocal,
	}
}

func (r *PostgresRepository) Insert(ctx context.Context, factura *models.Factura) (*models.Factura, error) {

	query :=
		`INSERT INTO facturas (` + insertColumns + `)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, insertArgs(factura)...).
		Scan(&factura.ID, &factura.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return factura, nil
}

func (r *PostgresRepository) InsertIgnoreDuplicate(ctx context.Context, factura *models.Factura) (*models.Factura, bool, error) {

	query :=
		`INSERT INTO facturas (` + insertColumns + `)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 ON CONFLICT (id_ext) WHERE id_ext <> '' DO NOTHING
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, insertArgs(factura)...).
		Scan(&factura.ID, &factura.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("db error: %w", err)
	}

	return factura, true, nil
}

func (r *PostgresRepository) List(ctx context.Context, desde, hasta string) ([]models.Factura, error) {
	query :=
		`SELECT id, ` + insertColumns + `, created_at FROM facturas`

	var conds []string
	var args []any
	if desde != "" {
		args = append(args, desde)
		conds = append(conds, fmt.Sprintf("fecha_dt >= $%d", len(args)))
	}
	if hasta != "" {
		args = append(args, hasta)
		conds = append(conds, fmt.Sprintf("fecha_dt <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY fecha_dt DESC NULLS LAST, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []models.Factura
	for rows.Next() {
		var f models.Factura
		err := rows.Scan(
			&f.ID, &f.IDExt, &f.Fecha, &f.FechaDt, &f.Proveedor, &f.SupplierVATNumber,
			&f.Categoria, &f.Descripcion, &f.Moneda, &f.TarifaCambio, &f.PaisOrigen,
			&f.Notas, &f.UbicacionFactura, &f.IvaLocal, &f.ImporteSinIvaLocal,
			&f.ImporteSinIvaEuro, &f.ImporteTotalEuro, &f.TotalMonedaLocal, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}
