// Package mysql implementa SellerRepository para MySQL.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/domain/types"
)

// Verificar que implementa la interfaz
var _ repository.SellerRepository = (*sellerRepo)(nil)

const sellerSelect = `
	SELECT id, account_id, first_name, last_name, website, birthday,
	       address, email, gender
	FROM sellers
`

// GetByID busca un vendedor por id.
func (r *sellerRepo) GetByID(ctx context.Context, id string) (*repository.Seller, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, sellerSelect+` WHERE id = ?`, key)
	s, err := scanSeller(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql: get seller by id: %w", err)
	}
	return s, nil
}

// FindByFirstName retorna los vendedores con ese primer nombre.
func (r *sellerRepo) FindByFirstName(ctx context.Context, firstName string) ([]repository.Seller, error) {
	rows, err := r.db.QueryContext(ctx, sellerSelect+` WHERE first_name = ? ORDER BY id`, firstName)
	if err != nil {
		return nil, fmt.Errorf("mysql: find sellers by first name: %w", err)
	}
	defer rows.Close()
	return collectSellers(rows)
}

// List retorna todos los vendedores.
func (r *sellerRepo) List(ctx context.Context) ([]repository.Seller, error) {
	rows, err := r.db.QueryContext(ctx, sellerSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("mysql: list sellers: %w", err)
	}
	defer rows.Close()
	return collectSellers(rows)
}

// Create inserta el vendedor y retorna la copia con id asignado.
// Retorna ErrConflict si el account id ya existe.
func (r *sellerRepo) Create(ctx context.Context, s repository.Seller) (*repository.Seller, error) {
	const query = `
		INSERT INTO sellers (account_id, first_name, last_name, website, birthday, address, email, gender)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		s.AccountID, s.Profile.FirstName, s.Profile.LastName, s.Profile.Website,
		nullIfZeroTime(s.Profile.Birthday), s.Profile.Address, s.Profile.Email,
		string(s.Profile.Gender),
	)
	if err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("mysql: create seller %q: %w", s.AccountID, repository.ErrConflict)
		}
		return nil, fmt.Errorf("mysql: create seller: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("mysql: create seller: last insert id: %w", err)
	}
	s.ID = formatID(id)
	return &s, nil
}

// Update reemplaza account id y perfil. El driver reporta filas
// cambiadas: un update idéntico da 0.
func (r *sellerRepo) Update(ctx context.Context, s repository.Seller) (int64, error) {
	key, ok := parseID(s.ID)
	if !ok {
		return 0, nil
	}

	const query = `
		UPDATE sellers
		SET account_id = ?, first_name = ?, last_name = ?, website = ?,
		    birthday = ?, address = ?, email = ?, gender = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		s.AccountID, s.Profile.FirstName, s.Profile.LastName, s.Profile.Website,
		nullIfZeroTime(s.Profile.Birthday), s.Profile.Address, s.Profile.Email,
		string(s.Profile.Gender), key,
	)
	if err != nil {
		if isDuplicate(err) {
			return 0, fmt.Errorf("mysql: update seller: %w", repository.ErrConflict)
		}
		return 0, fmt.Errorf("mysql: update seller: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mysql: update seller: rows affected: %w", err)
	}
	return n, nil
}

// DeleteAll elimina todos los vendedores. El seeding borra productos
// antes, así que la FK no se interpone.
func (r *sellerRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sellers`); err != nil {
		return fmt.Errorf("mysql: delete all sellers: %w", err)
	}
	return nil
}

// scanSeller escanea la fila de sellerSelect.
func scanSeller(row interface{ Scan(dest ...any) error }) (*repository.Seller, error) {
	var (
		dbID     int64
		birthday sql.NullTime
		gender   string
		s        repository.Seller
	)
	err := row.Scan(
		&dbID, &s.AccountID, &s.Profile.FirstName, &s.Profile.LastName,
		&s.Profile.Website, &birthday, &s.Profile.Address, &s.Profile.Email,
		&gender,
	)
	if err != nil {
		return nil, err
	}
	s.ID = formatID(dbID)
	s.Profile.Birthday = timeOrZero(birthday)
	s.Profile.Gender = types.Gender(gender)
	return &s, nil
}

func collectSellers(rows *sql.Rows) ([]repository.Seller, error) {
	var out []repository.Seller
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("mysql: scan seller: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: collect sellers: %w", err)
	}
	return out, nil
}
