// Package mysql implementa ProductRepository para MySQL.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/domain/types"
)

// Verificar que implementa la interfaz
var _ repository.ProductRepository = (*productRepo)(nil)

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.image_urls, p.seller_id,
	       s.account_id, s.first_name, s.last_name, s.website, s.birthday,
	       s.address, s.email, s.gender
	FROM products p
	JOIN sellers s ON s.id = p.seller_id
`

// GetByID busca un producto por id, con vendedor y membresías resueltos.
func (r *productRepo) GetByID(ctx context.Context, id string) (*repository.Product, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = ?`, key)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql: get product by id: %w", err)
	}

	p.Categories, err = r.categoryRefs(ctx, key)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByName busca un producto por nombre exacto.
func (r *productRepo) GetByName(ctx context.Context, name string) (*repository.Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+` WHERE p.name = ? LIMIT 1`, name)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql: get product by name: %w", err)
	}

	key, _ := parseID(p.ID)
	p.Categories, err = r.categoryRefs(ctx, key)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List retorna todos los productos con vendedor y membresías.
func (r *productRepo) List(ctx context.Context) ([]repository.Product, error) {
	rows, err := r.db.QueryContext(ctx, productSelect+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("mysql: list products: %w", err)
	}
	defer rows.Close()

	var out []repository.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("mysql: scan product: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: list products: %w", err)
	}

	refs, err := r.allCategoryRefs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Categories = refs[out[i].ID]
	}
	return out, nil
}

// Create inserta el producto y retorna la copia con id asignado.
// Las filas de la tabla de unión las agrega AddProductRef después del
// insert, igual que las referencias inversas en el backend documento.
func (r *productRepo) Create(ctx context.Context, p repository.Product) (*repository.Product, error) {
	sellerKey, ok := parseID(p.SellerID)
	if !ok {
		return nil, fmt.Errorf("mysql: create product: seller id %q: %w", p.SellerID, repository.ErrInvalidInput)
	}
	imgs, err := encodeImageURLs(p.ImageURLs)
	if err != nil {
		return nil, fmt.Errorf("mysql: create product: encode image urls: %w", err)
	}

	const query = `
		INSERT INTO products (name, description, price, image_urls, seller_id)
		VALUES (?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Price, imgs, sellerKey)
	if err != nil {
		return nil, fmt.Errorf("mysql: create product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("mysql: create product: last insert id: %w", err)
	}
	p.ID = formatID(id)
	return &p, nil
}

// Update reemplaza los campos propios del producto. Las membresías viven
// en la tabla de unión y se agregan vía AddProductRef (nunca se podan).
// El driver reporta filas cambiadas: un update idéntico da 0.
func (r *productRepo) Update(ctx context.Context, p repository.Product) (int64, error) {
	key, ok := parseID(p.ID)
	if !ok {
		return 0, nil
	}
	sellerKey, ok := parseID(p.SellerID)
	if !ok {
		return 0, fmt.Errorf("mysql: update product: seller id %q: %w", p.SellerID, repository.ErrInvalidInput)
	}
	imgs, err := encodeImageURLs(p.ImageURLs)
	if err != nil {
		return 0, fmt.Errorf("mysql: update product: encode image urls: %w", err)
	}

	const query = `
		UPDATE products
		SET name = ?, description = ?, price = ?, image_urls = ?, seller_id = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Price, imgs, sellerKey, key)
	if err != nil {
		return 0, fmt.Errorf("mysql: update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mysql: update product: rows affected: %w", err)
	}
	return n, nil
}

// RenameCategoryRefs no tiene trabajo en este backend: los nombres de
// categoría se leen vía JOIN, no existen copias embebidas.
func (r *productRepo) RenameCategoryRefs(ctx context.Context, categoryID, newName string) (int64, error) {
	return 0, nil
}

// DeleteAll elimina todos los productos; las filas de unión caen por FK.
func (r *productRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("mysql: delete all products: %w", err)
	}
	return nil
}

// scanProduct escanea la fila de productSelect (producto + vendedor).
func scanProduct(row interface{ Scan(dest ...any) error }) (*repository.Product, error) {
	var (
		dbID     int64
		sellerID int64
		rawImgs  []byte
		birthday sql.NullTime
		gender   string
		p        repository.Product
		s        repository.Seller
	)
	err := row.Scan(
		&dbID, &p.Name, &p.Description, &p.Price, &rawImgs, &sellerID,
		&s.AccountID, &s.Profile.FirstName, &s.Profile.LastName, &s.Profile.Website,
		&birthday, &s.Profile.Address, &s.Profile.Email, &gender,
	)
	if err != nil {
		return nil, err
	}
	p.ID = formatID(dbID)
	p.ImageURLs = decodeImageURLs(rawImgs)
	p.SellerID = formatID(sellerID)
	s.ID = p.SellerID
	s.Profile.Birthday = timeOrZero(birthday)
	s.Profile.Gender = types.Gender(gender)
	p.Seller = &s
	return &p, nil
}

// categoryRefs retorna las membresías {id, nombre} de un producto.
func (r *productRepo) categoryRefs(ctx context.Context, productID int64) ([]repository.CategoryRef, error) {
	const query = `
		SELECT c.id, c.name
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ?
		ORDER BY c.id
	`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("mysql: product category refs: %w", err)
	}
	defer rows.Close()

	var refs []repository.CategoryRef
	for rows.Next() {
		var cid int64
		var name string
		if err := rows.Scan(&cid, &name); err != nil {
			return nil, fmt.Errorf("mysql: scan category ref: %w", err)
		}
		refs = append(refs, repository.CategoryRef{ID: formatID(cid), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: product category refs: %w", err)
	}
	return refs, nil
}

// allCategoryRefs agrupa las membresías de todos los productos.
func (r *productRepo) allCategoryRefs(ctx context.Context) (map[string][]repository.CategoryRef, error) {
	const query = `
		SELECT pc.product_id, c.id, c.name
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		ORDER BY pc.product_id, c.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mysql: all category refs: %w", err)
	}
	defer rows.Close()

	refs := make(map[string][]repository.CategoryRef)
	for rows.Next() {
		var pid, cid int64
		var name string
		if err := rows.Scan(&pid, &cid, &name); err != nil {
			return nil, fmt.Errorf("mysql: scan category ref: %w", err)
		}
		key := formatID(pid)
		refs[key] = append(refs[key], repository.CategoryRef{ID: formatID(cid), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mysql: all category refs: %w", err)
	}
	return refs, nil
}
