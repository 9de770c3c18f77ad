package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

// Repo persists the sales directory in Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo constructs a sales directory repository.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// writeErr maps unique violations (duplicate emails) to a 409.
func writeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return common.ErrConflict("email already registered")
	}
	return fmt.Errorf("%s: %w", op, err)
}

const salesmanColumns = `id, uid, name, email, phone, state, is_admin, manager_id, created_at, updated_at`

func scanSalesman(row pgx.Row) (Salesman, error) {
	var s Salesman
	err := row.Scan(&s.ID, &s.UID, &s.Name, &s.Email, &s.Phone, &s.State, &s.IsAdmin, &s.ManagerID, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *Repo) querySalesmen(ctx context.Context, sql string, args ...any) ([]Salesman, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Salesman
	for rows.Next() {
		s, err := scanSalesman(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListSalesmen returns every salesman ordered by name.
func (r *Repo) ListSalesmen(ctx context.Context) ([]Salesman, error) {
	out, err := r.querySalesmen(ctx, `SELECT `+salesmanColumns+` FROM salesmen ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list salesmen: %w", err)
	}
	return out, nil
}

// ListSalesmenByState filters salesmen by state (case-insensitive).
func (r *Repo) ListSalesmenByState(ctx context.Context, state string) ([]Salesman, error) {
	out, err := r.querySalesmen(ctx, `SELECT `+salesmanColumns+` FROM salesmen WHERE lower(state) = lower($1) ORDER BY name`, state)
	if err != nil {
		return nil, fmt.Errorf("list salesmen by state: %w", err)
	}
	return out, nil
}

// ListSalesmenByManager returns the salesmen reporting to one manager.
func (r *Repo) ListSalesmenByManager(ctx context.Context, managerID string) ([]Salesman, error) {
	out, err := r.querySalesmen(ctx, `SELECT `+salesmanColumns+` FROM salesmen WHERE manager_id = $1 ORDER BY name`, managerID)
	if err != nil {
		return nil, fmt.Errorf("list salesmen by manager: %w", err)
	}
	return out, nil
}

// GetSalesman fetches a salesman by id.
func (r *Repo) GetSalesman(ctx context.Context, id string) (Salesman, error) {
	s, err := scanSalesman(r.pool.QueryRow(ctx, `SELECT `+salesmanColumns+` FROM salesmen WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Salesman{}, common.ErrNotFound("salesman not found")
		}
		return Salesman{}, fmt.Errorf("get salesman: %w", err)
	}
	return s, nil
}

// FindSalesman locates a salesman by auth uid or email.
func (r *Repo) FindSalesman(ctx context.Context, uid, email string) (Salesman, error) {
	s, err := scanSalesman(r.pool.QueryRow(ctx, `
		SELECT `+salesmanColumns+` FROM salesmen
		WHERE (uid <> '' AND uid = $1) OR lower(email) = lower($2)
		LIMIT 1`, uid, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Salesman{}, common.ErrNotFound("salesman not found")
		}
		return Salesman{}, fmt.Errorf("find salesman: %w", err)
	}
	return s, nil
}

// CreateSalesman inserts a salesman row.
func (r *Repo) CreateSalesman(ctx context.Context, in SalesmanInput) (Salesman, error) {
	s, err := scanSalesman(r.pool.QueryRow(ctx, `
		INSERT INTO salesmen (uid, name, email, phone, state, is_admin, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+salesmanColumns,
		in.UID, in.Name, in.Email, in.Phone, in.State, in.IsAdmin, in.ManagerID))
	if err != nil {
		return Salesman{}, writeErr("create salesman", err)
	}
	return s, nil
}

// UpdateSalesman overwrites a salesman row.
func (r *Repo) UpdateSalesman(ctx context.Context, id string, in SalesmanInput) (Salesman, error) {
	s, err := scanSalesman(r.pool.QueryRow(ctx, `
		UPDATE salesmen SET uid = $2, name = $3, email = $4, phone = $5, state = $6,
			is_admin = $7, manager_id = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+salesmanColumns,
		id, in.UID, in.Name, in.Email, in.Phone, in.State, in.IsAdmin, in.ManagerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Salesman{}, common.ErrNotFound("salesman not found")
		}
		return Salesman{}, writeErr("update salesman", err)
	}
	return s, nil
}

// DeleteSalesman removes a salesman row.
func (r *Repo) DeleteSalesman(ctx context.Context, id string) error {
	return r.deleteRow(ctx, "salesmen", "salesman not found", id)
}

const managerColumns = `id, uid, name, email, phone, state, created_at, updated_at`

func scanManager(row pgx.Row) (SalesManager, error) {
	var m SalesManager
	err := row.Scan(&m.ID, &m.UID, &m.Name, &m.Email, &m.Phone, &m.State, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// ListManagers returns every sales manager ordered by name.
func (r *Repo) ListManagers(ctx context.Context) ([]SalesManager, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+managerColumns+` FROM sales_managers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	defer rows.Close()

	var out []SalesManager
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// FindManager locates a sales manager by auth uid or email.
func (r *Repo) FindManager(ctx context.Context, uid, email string) (SalesManager, error) {
	m, err := scanManager(r.pool.QueryRow(ctx, `
		SELECT `+managerColumns+` FROM sales_managers
		WHERE (uid <> '' AND uid = $1) OR lower(email) = lower($2)
		LIMIT 1`, uid, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SalesManager{}, common.ErrNotFound("sales manager not found")
		}
		return SalesManager{}, fmt.Errorf("find manager: %w", err)
	}
	return m, nil
}

// CreateManager inserts a sales manager row.
func (r *Repo) CreateManager(ctx context.Context, in ManagerInput) (SalesManager, error) {
	m, err := scanManager(r.pool.QueryRow(ctx, `
		INSERT INTO sales_managers (uid, name, email, phone, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+managerColumns,
		in.UID, in.Name, in.Email, in.Phone, in.State))
	if err != nil {
		return SalesManager{}, writeErr("create manager", err)
	}
	return m, nil
}

// UpdateManager overwrites a sales manager row.
func (r *Repo) UpdateManager(ctx context.Context, id string, in ManagerInput) (SalesManager, error) {
	m, err := scanManager(r.pool.QueryRow(ctx, `
		UPDATE sales_managers SET uid = $2, name = $3, email = $4, phone = $5, state = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+managerColumns,
		id, in.UID, in.Name, in.Email, in.Phone, in.State))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SalesManager{}, common.ErrNotFound("sales manager not found")
		}
		return SalesManager{}, writeErr("update manager", err)
	}
	return m, nil
}

// DeleteManager removes a sales manager row.
func (r *Repo) DeleteManager(ctx context.Context, id string) error {
	return r.deleteRow(ctx, "sales_managers", "sales manager not found", id)
}

const directorColumns = `id, uid, name, email, phone, created_at, updated_at`

func scanDirector(row pgx.Row) (Director, error) {
	var d Director
	err := row.Scan(&d.ID, &d.UID, &d.Name, &d.Email, &d.Phone, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// ListDirectors returns every director ordered by name.
func (r *Repo) ListDirectors(ctx context.Context) ([]Director, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+directorColumns+` FROM directors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list directors: %w", err)
	}
	defer rows.Close()

	var out []Director
	for rows.Next() {
		d, err := scanDirector(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// FindDirector locates a director by auth uid or email.
func (r *Repo) FindDirector(ctx context.Context, uid, email string) (Director, error) {
	d, err := scanDirector(r.pool.QueryRow(ctx, `
		SELECT `+directorColumns+` FROM directors
		WHERE (uid <> '' AND uid = $1) OR lower(email) = lower($2)
		LIMIT 1`, uid, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Director{}, common.ErrNotFound("director not found")
		}
		return Director{}, fmt.Errorf("find director: %w", err)
	}
	return d, nil
}

// CreateDirector inserts a director row.
func (r *Repo) CreateDirector(ctx context.Context, in DirectorInput) (Director, error) {
	d, err := scanDirector(r.pool.QueryRow(ctx, `
		INSERT INTO directors (uid, name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING `+directorColumns,
		in.UID, in.Name, in.Email, in.Phone))
	if err != nil {
		return Director{}, writeErr("create director", err)
	}
	return d, nil
}

// UpdateDirector overwrites a director row.
func (r *Repo) UpdateDirector(ctx context.Context, id string, in DirectorInput) (Director, error) {
	d, err := scanDirector(r.pool.QueryRow(ctx, `
		UPDATE directors SET uid = $2, name = $3, email = $4, phone = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+directorColumns,
		id, in.UID, in.Name, in.Email, in.Phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Director{}, common.ErrNotFound("director not found")
		}
		return Director{}, writeErr("update director", err)
	}
	return d, nil
}

// DeleteDirector removes a director row.
func (r *Repo) DeleteDirector(ctx context.Context, id string) error {
	return r.deleteRow(ctx, "directors", "director not found", id)
}

const dealerColumns = `id, name, phone, state, salesman_id, credit_limit, created_at, updated_at`

func scanDealer(row pgx.Row) (Dealer, error) {
	var d Dealer
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.State, &d.SalesmanID, &d.CreditLimit, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// ListDealers returns every dealer ordered by name.
func (r *Repo) ListDealers(ctx context.Context) ([]Dealer, error) {
	return r.queryDealers(ctx, `SELECT `+dealerColumns+` FROM dealers ORDER BY name`)
}

// ListDealersBySalesman returns the dealers assigned to one salesman.
func (r *Repo) ListDealersBySalesman(ctx context.Context, salesmanID string) ([]Dealer, error) {
	return r.queryDealers(ctx, `SELECT `+dealerColumns+` FROM dealers WHERE salesman_id = $1 ORDER BY name`, salesmanID)
}

func (r *Repo) queryDealers(ctx context.Context, sql string, args ...any) ([]Dealer, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list dealers: %w", err)
	}
	defer rows.Close()

	var out []Dealer
	for rows.Next() {
		d, err := scanDealer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDealer fetches a dealer by id.
func (r *Repo) GetDealer(ctx context.Context, id string) (Dealer, error) {
	d, err := scanDealer(r.pool.QueryRow(ctx, `SELECT `+dealerColumns+` FROM dealers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dealer{}, common.ErrNotFound("dealer not found")
		}
		return Dealer{}, fmt.Errorf("get dealer: %w", err)
	}
	return d, nil
}

// CreateDealer inserts a dealer row.
func (r *Repo) CreateDealer(ctx context.Context, in DealerInput) (Dealer, error) {
	d, err := scanDealer(r.pool.QueryRow(ctx, `
		INSERT INTO dealers (name, phone, state, salesman_id, credit_limit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+dealerColumns,
		in.Name, in.Phone, in.State, in.SalesmanID, in.CreditLimit.Decimal))
	if err != nil {
		return Dealer{}, writeErr("create dealer", err)
	}
	return d, nil
}

// UpdateDealer overwrites a dealer row.
func (r *Repo) UpdateDealer(ctx context.Context, id string, in DealerInput) (Dealer, error) {
	d, err := scanDealer(r.pool.QueryRow(ctx, `
		UPDATE dealers SET name = $2, phone = $3, state = $4, salesman_id = $5,
			credit_limit = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+dealerColumns,
		id, in.Name, in.Phone, in.State, in.SalesmanID, in.CreditLimit.Decimal))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dealer{}, common.ErrNotFound("dealer not found")
		}
		return Dealer{}, writeErr("update dealer", err)
	}
	return d, nil
}

// DeleteDealer removes a dealer row.
func (r *Repo) DeleteDealer(ctx context.Context, id string) error {
	return r.deleteRow(ctx, "dealers", "dealer not found", id)
}

func (r *Repo) deleteRow(ctx context.Context, table, notFoundMsg, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound(notFoundMsg)
	}
	return nil
}
