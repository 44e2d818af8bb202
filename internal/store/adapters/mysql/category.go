// Package mysql implementa CategoryRepository para MySQL.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

// Verificar que implementa la interfaz
var _ repository.CategoryRepository = (*categoryRepo)(nil)

// GetByID busca una categoría por id, con sus referencias inversas.
func (r *categoryRepo) GetByID(ctx context.Context, id string) (*repository.Category, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	const query = `SELECT id, name FROM categories WHERE id = ?`

	var dbID int64
	var c repository.Category
	err := r.db.QueryRowContext(ctx, query, key).Scan(&dbID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql: get category by id: %w", err)
	}
	c.ID = formatID(dbID)

	c.ProductIDs, err = r.productRefs(ctx, key)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByName busca una categoría por nombre exacto.
func (r *categoryRepo) GetByName(ctx context.Context, name string) (*repository.Category, error) {
	const query = `SELECT id, name FROM categories WHERE name = ? LIMIT 1`

	var dbID int64
	var c repository.Category
	err := r.db.QueryRowContext(ctx, query, name).Scan(&dbID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql: get category by name: %w", err)
	}
	c.ID = formatID(dbID)

	c.ProductIDs, err = r.productRefs(ctx, dbID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List retorna todas las categorías con sus referencias inversas.
// Dos queries: categorías y tabla de unión completa, agrupada en memoria.
func (r *categoryRepo) List(ctx context.Context) ([]repository.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("mysql: list categories: %w", err)
	}
	defer rows.Close()

	var out []repository.Category
	for rows.Next() {
		var dbID int64
		var c repository.Category
		if err := rows.Scan(&dbID, &c.Name); err != nil {
			return nil, fmt.Errorf("mysql: scan category: %w", err)
		}
		c.ID = formatID(dbID)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: list categories: %w", err)
	}

	refs, err := r.allProductRefs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].ProductIDs = refs[out[i].ID]
	}
	return out, nil
}

// Create inserta la categoría y retorna la copia con id asignado.
// Retorna ErrConflict si el nombre ya existe.
func (r *categoryRepo) Create(ctx context.Context, c repository.Category) (*repository.Category, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, c.Name)
	if err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("mysql: create category %q: %w", c.Name, repository.ErrConflict)
		}
		return nil, fmt.Errorf("mysql: create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("mysql: create category: last insert id: %w", err)
	}
	c.ID = formatID(id)
	return &c, nil
}

// UpdateName actualiza el nombre autoritativo. Retorna filas modificadas;
// el driver reporta filas CAMBIADAS, así que renombrar al mismo nombre da 0.
func (r *categoryRepo) UpdateName(ctx context.Context, id, name string) (int64, error) {
	key, ok := parseID(id)
	if !ok {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, name, key)
	if err != nil {
		if isDuplicate(err) {
			return 0, fmt.Errorf("mysql: rename category: %w", repository.ErrConflict)
		}
		return 0, fmt.Errorf("mysql: rename category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mysql: rename category: rows affected: %w", err)
	}
	return n, nil
}

// AddProductRef agrega el producto a la tabla de unión con INSERT IGNORE:
// la clave primaria compuesta da la semántica de conjunto.
func (r *categoryRepo) AddProductRef(ctx context.Context, categoryIDs []string, productID string) (int64, error) {
	pid, ok := parseID(productID)
	if !ok {
		return 0, fmt.Errorf("mysql: add product ref: %w", repository.ErrInvalidInput)
	}

	placeholders := make([]string, 0, len(categoryIDs))
	args := make([]any, 0, len(categoryIDs)*2)
	for _, cid := range categoryIDs {
		key, ok := parseID(cid)
		if !ok {
			return 0, fmt.Errorf("mysql: add product ref: %w", repository.ErrInvalidInput)
		}
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, pid, key)
	}
	if len(placeholders) == 0 {
		return 0, nil
	}

	query := `INSERT IGNORE INTO product_categories (product_id, category_id) VALUES ` +
		strings.Join(placeholders, ", ")
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mysql: add product ref: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mysql: add product ref: rows affected: %w", err)
	}
	return n, nil
}

// DeleteAll elimina todas las categorías; las filas de unión caen por FK.
func (r *categoryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("mysql: delete all categories: %w", err)
	}
	return nil
}

// productRefs retorna los ids de producto asociados a una categoría.
func (r *categoryRepo) productRefs(ctx context.Context, categoryID int64) ([]string, error) {
	const query = `SELECT product_id FROM product_categories WHERE category_id = ? ORDER BY product_id`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("mysql: category product refs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var pid int64
		if err := rows.Scan(&pid); err != nil {
			return nil, fmt.Errorf("mysql: scan product ref: %w", err)
		}
		ids = append(ids, formatID(pid))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: category product refs: %w", err)
	}
	return ids, nil
}

// allProductRefs agrupa la tabla de unión completa por categoría.
func (r *categoryRepo) allProductRefs(ctx context.Context) (map[string][]string, error) {
	const query = `SELECT category_id, product_id FROM product_categories ORDER BY category_id, product_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mysql: all product refs: %w", err)
	}
	defer rows.Close()

	refs := make(map[string][]string)
	for rows.Next() {
		var cid, pid int64
		if err := rows.Scan(&cid, &pid); err != nil {
			return nil, fmt.Errorf("mysql: scan product ref: %w", err)
		}
		key := formatID(cid)
		refs[key] = append(refs[key], formatID(pid))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: all product refs: %w", err)
	}
	return refs, nil
}
