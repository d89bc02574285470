package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
)

// =============================================================================
// Admin Operations
// =============================================================================

type adminRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
}

func (c sqliteConn) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (id, email, name, password_hash, created_at)
		VALUES (:id, :email, :name, :password_hash, :created_at)`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":            admin.ID,
		"email":         admin.Email,
		"name":          admin.Name,
		"password_hash": admin.PasswordHash,
		"created_at":    formatTime(admin.CreatedAt),
	})
	if err != nil {
		return NewStoreError("CreateAdmin", "admin", admin.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) GetAdminByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var row adminRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM admins WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetAdminByEmail", "admin", email, "admin not found", ErrNotFound)
		}
		return nil, NewStoreError("GetAdminByEmail", "admin", email, err.Error(), err)
	}

	return &domain.Admin{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    parseTime(row.CreatedAt),
	}, nil
}

// =============================================================================
// Edition Operations
// =============================================================================

type editionRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Year      int    `db:"year"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
	Active    bool   `db:"active"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func editionToRow(e *domain.Edition) map[string]any {
	return map[string]any{
		"id":         e.ID,
		"name":       e.Name,
		"year":       e.Year,
		"start_date": formatTime(e.StartDate),
		"end_date":   formatTime(e.EndDate),
		"active":     e.Active,
		"created_at": formatTime(e.CreatedAt),
		"updated_at": formatTime(e.UpdatedAt),
	}
}

func rowToEdition(row *editionRow) *domain.Edition {
	return &domain.Edition{
		ID:        row.ID,
		Name:      row.Name,
		Year:      row.Year,
		StartDate: parseTime(row.StartDate),
		EndDate:   parseTime(row.EndDate),
		Active:    row.Active,
		CreatedAt: parseTime(row.CreatedAt),
		UpdatedAt: parseTime(row.UpdatedAt),
	}
}

func (c sqliteConn) CreateEdition(ctx context.Context, edition *domain.Edition) error {
	query := `
		INSERT INTO editions (id, name, year, start_date, end_date, active, created_at, updated_at)
		VALUES (:id, :name, :year, :start_date, :end_date, :active, :created_at, :updated_at)`

	_, err := c.exec.NamedExecContext(ctx, query, editionToRow(edition))
	if err != nil {
		return NewStoreError("CreateEdition", "edition", edition.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) GetEdition(ctx context.Context, id string) (*domain.Edition, error) {
	var row editionRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM editions WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetEdition", "edition", id, "edition not found", ErrNotFound)
		}
		return nil, NewStoreError("GetEdition", "edition", id, err.Error(), err)
	}
	return rowToEdition(&row), nil
}

func (c sqliteConn) GetActiveEdition(ctx context.Context) (*domain.Edition, error) {
	var row editionRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM editions WHERE active = 1 ORDER BY year DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetActiveEdition", "edition", "", "no active edition", ErrNotFound)
		}
		return nil, NewStoreError("GetActiveEdition", "edition", "", err.Error(), err)
	}
	return rowToEdition(&row), nil
}

func (c sqliteConn) UpdateEdition(ctx context.Context, edition *domain.Edition) error {
	query := `
		UPDATE editions SET
			name = :name,
			year = :year,
			start_date = :start_date,
			end_date = :end_date,
			active = :active,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := c.exec.NamedExecContext(ctx, query, editionToRow(edition))
	if err != nil {
		return NewStoreError("UpdateEdition", "edition", edition.ID, err.Error(), err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("UpdateEdition", "edition", edition.ID, "edition not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) DeleteEdition(ctx context.Context, id string) error {
	result, err := c.exec.ExecContext(ctx, `DELETE FROM editions WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteEdition", "edition", id, err.Error(), mapConstraintErr(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("DeleteEdition", "edition", id, "edition not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) ListEditions(ctx context.Context, opts ListOptions) ([]domain.Edition, error) {
	opts = opts.Normalize()
	var rows []editionRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM editions ORDER BY year DESC LIMIT ? OFFSET ?`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, NewStoreError("ListEditions", "edition", "", err.Error(), err)
	}

	editions := make([]domain.Edition, 0, len(rows))
	for i := range rows {
		editions = append(editions, *rowToEdition(&rows[i]))
	}
	return editions, nil
}

// =============================================================================
// School Operations
// =============================================================================

type schoolRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	EmailDomain string `db:"email_domain"`
	SchoolType  string `db:"school_type"`
	Address     string `db:"address"`
	EditionID   string `db:"edition_id"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

func schoolToRow(s *domain.School) map[string]any {
	return map[string]any{
		"id":           s.ID,
		"name":         s.Name,
		"email_domain": s.EmailDomain,
		"school_type":  string(s.Type),
		"address":      s.Address,
		"edition_id":   s.EditionID,
		"created_at":   formatTime(s.CreatedAt),
		"updated_at":   formatTime(s.UpdatedAt),
	}
}

func rowToSchool(row *schoolRow) *domain.School {
	return &domain.School{
		ID:          row.ID,
		Name:        row.Name,
		EmailDomain: row.EmailDomain,
		Type:        domain.SchoolType(row.SchoolType),
		Address:     row.Address,
		EditionID:   row.EditionID,
		CreatedAt:   parseTime(row.CreatedAt),
		UpdatedAt:   parseTime(row.UpdatedAt),
	}
}

func (c sqliteConn) CreateSchool(ctx context.Context, school *domain.School) error {
	query := `
		INSERT INTO schools (id, name, email_domain, school_type, address, edition_id, created_at, updated_at)
		VALUES (:id, :name, :email_domain, :school_type, :address, :edition_id, :created_at, :updated_at)`

	_, err := c.exec.NamedExecContext(ctx, query, schoolToRow(school))
	if err != nil {
		return NewStoreError("CreateSchool", "school", school.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) GetSchool(ctx context.Context, id string) (*domain.School, error) {
	var row schoolRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM schools WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetSchool", "school", id, "school not found", ErrNotFound)
		}
		return nil, NewStoreError("GetSchool", "school", id, err.Error(), err)
	}
	return rowToSchool(&row), nil
}

func (c sqliteConn) UpdateSchool(ctx context.Context, school *domain.School) error {
	query := `
		UPDATE schools SET
			name = :name,
			email_domain = :email_domain,
			school_type = :school_type,
			address = :address,
			edition_id = :edition_id,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := c.exec.NamedExecContext(ctx, query, schoolToRow(school))
	if err != nil {
		return NewStoreError("UpdateSchool", "school", school.ID, err.Error(), err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("UpdateSchool", "school", school.ID, "school not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) DeleteSchool(ctx context.Context, id string) error {
	result, err := c.exec.ExecContext(ctx, `DELETE FROM schools WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteSchool", "school", id, err.Error(), mapConstraintErr(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("DeleteSchool", "school", id, "school not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) ListSchools(ctx context.Context, opts ListOptions) ([]domain.School, error) {
	opts = opts.Normalize()
	var rows []schoolRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM schools ORDER BY name ASC LIMIT ? OFFSET ?`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, NewStoreError("ListSchools", "school", "", err.Error(), err)
	}

	schools := make([]domain.School, 0, len(rows))
	for i := range rows {
		schools = append(schools, *rowToSchool(&rows[i]))
	}
	return schools, nil
}

// =============================================================================
// Sport Operations
// =============================================================================

type sportRow struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	TeamCapacity  int    `db:"team_capacity"`
	SubstituteMax int    `db:"substitute_max"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

func rowToSport(row *sportRow) *domain.Sport {
	return &domain.Sport{
		ID:            row.ID,
		Name:          row.Name,
		TeamCapacity:  row.TeamCapacity,
		SubstituteMax: row.SubstituteMax,
		CreatedAt:     parseTime(row.CreatedAt),
		UpdatedAt:     parseTime(row.UpdatedAt),
	}
}

func (c sqliteConn) CreateSport(ctx context.Context, sport *domain.Sport) error {
	query := `
		INSERT INTO sports (id, name, team_capacity, substitute_max, created_at, updated_at)
		VALUES (:id, :name, :team_capacity, :substitute_max, :created_at, :updated_at)`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":             sport.ID,
		"name":           sport.Name,
		"team_capacity":  sport.TeamCapacity,
		"substitute_max": sport.SubstituteMax,
		"created_at":     formatTime(sport.CreatedAt),
		"updated_at":     formatTime(sport.UpdatedAt),
	})
	if err != nil {
		return NewStoreError("CreateSport", "sport", sport.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) GetSport(ctx context.Context, id string) (*domain.Sport, error) {
	var row sportRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM sports WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetSport", "sport", id, "sport not found", ErrNotFound)
		}
		return nil, NewStoreError("GetSport", "sport", id, err.Error(), err)
	}
	return rowToSport(&row), nil
}

func (c sqliteConn) UpdateSport(ctx context.Context, sport *domain.Sport) error {
	query := `
		UPDATE sports SET
			name = :name,
			team_capacity = :team_capacity,
			substitute_max = :substitute_max,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":             sport.ID,
		"name":           sport.Name,
		"team_capacity":  sport.TeamCapacity,
		"substitute_max": sport.SubstituteMax,
		"updated_at":     formatTime(sport.UpdatedAt),
	})
	if err != nil {
		return NewStoreError("UpdateSport", "sport", sport.ID, err.Error(), err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("UpdateSport", "sport", sport.ID, "sport not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) DeleteSport(ctx context.Context, id string) error {
	result, err := c.exec.ExecContext(ctx, `DELETE FROM sports WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteSport", "sport", id, err.Error(), mapConstraintErr(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("DeleteSport", "sport", id, "sport not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) ListSports(ctx context.Context, opts ListOptions) ([]domain.Sport, error) {
	opts = opts.Normalize()
	var rows []sportRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM sports ORDER BY name ASC LIMIT ? OFFSET ?`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, NewStoreError("ListSports", "sport", "", err.Error(), err)
	}

	sports := make([]domain.Sport, 0, len(rows))
	for i := range rows {
		sports = append(sports, *rowToSport(&rows[i]))
	}
	return sports, nil
}

// =============================================================================
// Location Operations
// =============================================================================

type locationRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Address   string  `db:"address"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	CreatedAt string  `db:"created_at"`
	UpdatedAt string  `db:"updated_at"`
}

func rowToLocation(row *locationRow) *domain.Location {
	return &domain.Location{
		ID:        row.ID,
		Name:      row.Name,
		Address:   row.Address,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		CreatedAt: parseTime(row.CreatedAt),
		UpdatedAt: parseTime(row.UpdatedAt),
	}
}

func (c sqliteConn) CreateLocation(ctx context.Context, location *domain.Location) error {
	query := `
		INSERT INTO locations (id, name, address, latitude, longitude, created_at, updated_at)
		VALUES (:id, :name, :address, :latitude, :longitude, :created_at, :updated_at)`

	_, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":         location.ID,
		"name":       location.Name,
		"address":    location.Address,
		"latitude":   location.Latitude,
		"longitude":  location.Longitude,
		"created_at": formatTime(location.CreatedAt),
		"updated_at": formatTime(location.UpdatedAt),
	})
	if err != nil {
		return NewStoreError("CreateLocation", "location", location.ID, err.Error(), mapConstraintErr(err))
	}
	return nil
}

func (c sqliteConn) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	var row locationRow
	err := c.exec.GetContext(ctx, &row, `SELECT * FROM locations WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetLocation", "location", id, "location not found", ErrNotFound)
		}
		return nil, NewStoreError("GetLocation", "location", id, err.Error(), err)
	}
	return rowToLocation(&row), nil
}

func (c sqliteConn) UpdateLocation(ctx context.Context, location *domain.Location) error {
	query := `
		UPDATE locations SET
			name = :name,
			address = :address,
			latitude = :latitude,
			longitude = :longitude,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := c.exec.NamedExecContext(ctx, query, map[string]any{
		"id":         location.ID,
		"name":       location.Name,
		"address":    location.Address,
		"latitude":   location.Latitude,
		"longitude":  location.Longitude,
		"updated_at": formatTime(location.UpdatedAt),
	})
	if err != nil {
		return NewStoreError("UpdateLocation", "location", location.ID, err.Error(), err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("UpdateLocation", "location", location.ID, "location not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) DeleteLocation(ctx context.Context, id string) error {
	result, err := c.exec.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteLocation", "location", id, err.Error(), mapConstraintErr(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return NewStoreError("DeleteLocation", "location", id, "location not found", ErrNotFound)
	}
	return nil
}

func (c sqliteConn) ListLocations(ctx context.Context, opts ListOptions) ([]domain.Location, error) {
	opts = opts.Normalize()
	var rows []locationRow
	err := c.exec.SelectContext(ctx, &rows, `SELECT * FROM locations ORDER BY name ASC LIMIT ? OFFSET ?`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, NewStoreError("ListLocations", "location", "", err.Error(), err)
	}

	locations := make([]domain.Location, 0, len(rows))
	for i := range rows {
		locations = append(locations, *rowToLocation(&rows[i]))
	}
	return locations, nil
}
