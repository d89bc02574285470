package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// Product Operations
// =============================================================================

type productRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Required    bool   `db:"required"`
	SchoolType  string `db:"school_type"`
	PublicType  string `db:"public_type"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

type variantRow struct {
	ID         string `db:"id"`
	ProductID  string `db:"product_id"`
	Name       string `db:"name"`
	PriceCents int64  `db:"price_cents"`
	Enabled    bool   `db:"enabled"`
}

func rowToProduct(row *productRow) *domain.Product {
	return &domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Required:    row.Required,
		SchoolType:  domain.SchoolType(row.SchoolType),
		PublicType:  domain.PublicType(row.PublicType),
		CreatedAt:   parseTime(row.CreatedAt),
		UpdatedAt:   parseTime(row.UpdatedAt),
	}
}

func rowToVariant(row *variantRow) domain.ProductVariant {
	return domain.ProductVariant{
		ID:         row.ID,
		ProductID:  row.ProductID,
		Name:       row.Name,
		PriceCents: row.PriceCents,
		Enabled:    row.Enabled,
	}
}

func (c sqliteConn) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, required, school_type, public_type, created_at, updated_at)
		VALUES (:id, :name, :description, :required, :school_type, :public_type, :created_at, :updated_at)`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":          product.ID,
		"name":        product.Name,
		"description": product.Description,
		"required":    product.Required,
		"school_type": string(product.SchoolType),
		"public_type": string(product.PublicType),
		"created_at":  formatTime(product.CreatedAt),
		"updated_at":  formatTime(product.UpdatedAt),
	})
	if err != nil {
		return NewStoreError("CreateProduct", "product", product.ID, err.Error(), mapConstraintErr(err))
	}

	for i := range product.Variants {
		if err := c.CreateVariant(ctx, &product.Variants[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c sqliteConn) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var row productRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM products WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetProduct", "product", id, "product not found", ErrNotFound)
		}
		return nil, NewStoreError("GetProduct", "product", id, err.Error(), err)
	}

	product := rowToProduct(&row)
	variants, err := c.listVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Variants = variants
	return product, nil
}

func (c sqliteConn) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products SET
			name = :name,
			description = :description,
			required = :required,
			school_type = :school_type,
			public_type = :public_type,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":          product.ID,
		"name":        product.Name,
		"description": product.Description,
		"required":    product.Required,
		"school_type": string(product.SchoolType),
		"public_type": string(product.PublicType),
		"updated_at":  formatTime(product.UpdatedAt),
	})
	if err != nil {
		return NewStoreError("UpdateProduct", "product", product.ID, err.Error(), err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("UpdateProduct", "product", product.ID, "product not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) DeleteProduct(ctx context.Context, id string) error {
	result, err := c.exec.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteProduct", "product", id, err.Error(), mapConstraintErr(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("DeleteProduct", "product", id, "product not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) ListProducts(ctx context.Context, opts ListOptions) ([]domain.Product, error) {
	opts = opts.Normalize()
	var rows []productRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM products ORDER BY name ASC LIMIT ? OFFSET ?`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, NewStoreError("ListProducts", "product", "", err.Error(), err)
	}

	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		product := rowToProduct(&rows[i])
		variants, err := c.listVariants(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		product.Variants = variants
		products = append(products, *product)
	}
	return products, nil
}

// =============================================================================
// Variant Operations
// =============================================================================

func (c sqliteConn) CreateVariant(ctx context.Context, variant *domain.ProductVariant) error {
	query := `
		INSERT INTO product_variants (id, product_id, name, price_cents, enabled)
		VALUES (:id, :product_id, :name, :price_cents, :enabled)`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":          variant.ID,
		"product_id":  variant.ProductID,
		"name":        variant.Name,
		"price_cents": variant.PriceCents,
		"enabled":     variant.Enabled,
	})
	if err != nil {
		return NewStoreError("CreateVariant", "variant", variant.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) DeleteVariant(ctx context.Context, id string) error {
	result, err := c.exec.ExecContext(ctx, `DELETE FROM product_variants WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteVariant", "variant", id, err.Error(), mapConstraintErr(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("DeleteVariant", "variant", id, "variant not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) listVariants(ctx context.Context, productID string) ([]domain.ProductVariant, error) {
	var rows []variantRow
	err := c.exec.SelectContext(ctx, &rows,
		`SELECT * FROM product_variants WHERE product_id = ? ORDER BY name ASC`, productID)
	if err != nil {
		return nil, NewStoreError("listVariants", "variant", productID, err.Error(), err)
	}

	variants := make([]domain.ProductVariant, 0, len(rows))
	for i := range rows {
		variants = append(variants, rowToVariant(&rows[i]))
	}
	return variants, nil
}

// =============================================================================
// Purchase Operations
// =============================================================================

type purchaseRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	VariantID string `db:"variant_id"`
	Quantity  int    `db:"quantity"`
	Validated bool   `db:"validated"`
	CreatedAt string `db:"created_at"`
}

func rowToPurchase(row *purchaseRow) domain.Purchase {
	return domain.Purchase{
		ID:        row.ID,
		UserID:    row.UserID,
		VariantID: row.VariantID,
		Quantity:  row.Quantity,
		Validated: row.Validated,
		CreatedAt: parseTime(row.CreatedAt),
	}
}

func (c sqliteConn) UpsertPurchase(ctx context.Context, purchase *domain.Purchase) error {
	query := `
		INSERT INTO purchases (id, user_id, variant_id, quantity, validated, created_at)
		VALUES (:id, :user_id, :variant_id, :quantity, :validated, :created_at)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			variant_id = excluded.variant_id,
			quantity = excluded.quantity,
			validated = excluded.validated`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":         purchase.ID,
		"user_id":    purchase.UserID,
		"variant_id": purchase.VariantID,
		"quantity":   purchase.Quantity,
		"validated":  purchase.Validated,
		"created_at": formatTime(purchase.CreatedAt),
	})
	if err != nil {
		return NewStoreError("UpsertPurchase", "purchase", purchase.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) DeletePurchase(ctx context.Context, id string) error {
	result, err := c.exec.ExecContext(ctx, `DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeletePurchase", "purchase", id, err.Error(), err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("DeletePurchase", "purchase", id, "purchase not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) ListPurchasesByUser(ctx context.Context, userID string) ([]domain.Purchase, error) {
	var rows []purchaseRow
	err := c.exec.SelectContext(ctx, &rows,
		`SELECT * FROM purchases WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, NewStoreError("ListPurchasesByUser", "purchase", userID, err.Error(), err)
	}

	purchases := make([]domain.Purchase, 0, len(rows))
	for i := range rows {
		purchases = append(purchases, rowToPurchase(&rows[i]))
	}
	return purchases, nil
}

func (c sqliteConn) ListPurchasesBySchool(ctx context.Context, schoolID string) ([]domain.Purchase, error) {
	var rows []purchaseRow
	err := c.exec.SelectContext(ctx, &rows, `
		SELECT p.id, p.user_id, p.variant_id, p.quantity, p.validated, p.created_at
		FROM purchases p
		JOIN competition_users u ON u.id = p.user_id
		WHERE u.school_id = ?
		ORDER BY p.created_at ASC`, schoolID)
	if err != nil {
		return nil, NewStoreError("ListPurchasesBySchool", "purchase", schoolID, err.Error(), err)
	}

	purchases := make([]domain.Purchase, 0, len(rows))
	for i := range rows {
		purchases = append(purchases, rowToPurchase(&rows[i]))
	}
	return purchases, nil
}
