// Package store persists the clients and profit events of a pool in a SQLite database.
//
// The store owns the create/update/delete operations and the rule that there
// is at most one profit event per date. Reports never read the tables
// directly: they work on a consistent Snapshot.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/consortium"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNotFound is returned when a client or a profit id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDateTaken is returned when a profit is moved onto the date of another profit.
	ErrDateTaken = errors.New("a profit already exists on that date")
)

// SQLite is a pool store backed by a SQLite database file.
type SQLite struct {
	db       *sql.DB
	currency string
}

// Open opens (or creates) the database at path. All amounts are read and
// written in currency.
func Open(path, currency string) (*SQLite, error) {
	if err := consortium.ValidateCurrency(currency); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema in %q: %w", path, err)
	}
	log.Debug().Str("path", path).Str("currency", currency).Msg("database opened")

	return &SQLite{db: db, currency: currency}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Currency returns the currency of the amounts in the store.
func (s *SQLite) Currency() string { return s.currency }

func (s *SQLite) checkClient(c consortium.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	if c.JoinDate.IsZero() {
		return fmt.Errorf("client %q has no join date", c.Name)
	}
	if c.Invested.IsNegative() {
		return fmt.Errorf("%w: client %q invested %s", consortium.ErrNegativeInvested, c.Name, c.Invested.Decimal())
	}
	if cur := c.Invested.Currency(); cur != "" && cur != s.currency {
		return fmt.Errorf("%w: client %q invested in %s, store is in %s", consortium.ErrCurrencyMismatch, c.Name, cur, s.currency)
	}
	return nil
}

func (s *SQLite) checkProfit(e consortium.ProfitEvent) error {
	if e.Date.IsZero() {
		return errors.New("profit date is required")
	}
	if cur := e.Amount.Currency(); cur != "" && cur != s.currency {
		return fmt.Errorf("%w: profit of %s in %s, store is in %s", consortium.ErrCurrencyMismatch, e.Date, cur, s.currency)
	}
	return nil
}

// AddClient inserts a new client and returns its id. The id of c is ignored.
func (s *SQLite) AddClient(ctx context.Context, c consortium.Client) (consortium.ClientID, error) {
	if err := s.checkClient(c); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (name, invested, join_date, note)
		VALUES (?, ?, ?, ?)`,
		c.Name, c.Invested.Decimal().String(), c.JoinDate, c.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("insert client %q: %w", c.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return consortium.ClientID(id), nil
}

// UpdateClient replaces every field of the client with id c.ID.
func (s *SQLite) UpdateClient(ctx context.Context, c consortium.Client) error {
	if err := s.checkClient(c); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE clients SET name=?, invested=?, join_date=?, note=? WHERE id=?`,
		c.Name, c.Invested.Decimal().String(), c.JoinDate, c.Note, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update client %d: %w", c.ID, err)
	}
	return affected(res, "client", int64(c.ID))
}

// DeleteClient deletes the client with this id.
func (s *SQLite) DeleteClient(ctx context.Context, id consortium.ClientID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return affected(res, "client", int64(id))
}

// Client returns the client with this id.
func (s *SQLite) Client(ctx context.Context, id consortium.ClientID) (consortium.Client, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, invested, join_date, note FROM clients WHERE id=?`, id)
	c, err := s.scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return c, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return c, err
}

// Clients returns all the clients ordered by id.
func (s *SQLite) Clients(ctx context.Context) ([]consortium.Client, error) {
	return s.clients(ctx, s.db)
}

// SetProfit records the profit of e.Date, replacing the existing one on
// that date if any, and returns its id. The id of e is ignored; on replace,
// the existing id is kept.
func (s *SQLite) SetProfit(ctx context.Context, e consortium.ProfitEvent) (int64, error) {
	return s.setProfit(ctx, s.db, e)
}

// UpdateProfit replaces every field of the profit with id e.ID.
// It returns ErrDateTaken if another profit exists on e.Date.
func (s *SQLite) UpdateProfit(ctx context.Context, e consortium.ProfitEvent) error {
	if err := s.checkProfit(e); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE profits SET profit_date=?, total_profit=?, note=? WHERE id=?`,
		e.Date, e.Amount.Decimal().String(), e.Note, e.ID,
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("update profit %d to %s: %w", e.ID, e.Date, ErrDateTaken)
	}
	if err != nil {
		return fmt.Errorf("update profit %d: %w", e.ID, err)
	}
	return affected(res, "profit", e.ID)
}

// DeleteProfit deletes the profit with this id.
func (s *SQLite) DeleteProfit(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profits WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete profit %d: %w", id, err)
	}
	return affected(res, "profit", id)
}

// Profits returns all the profit events in chronological order.
func (s *SQLite) Profits(ctx context.Context) ([]consortium.ProfitEvent, error) {
	return s.profits(ctx, s.db)
}

// Snapshot reads clients and profits within the same read transaction and
// returns them as a validated Pool.
func (s *SQLite) Snapshot(ctx context.Context) (*consortium.Pool, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	clients, err := s.clients(ctx, tx)
	if err != nil {
		return nil, err
	}
	events, err := s.profits(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("end snapshot: %w", err)
	}
	return consortium.NewPool(s.currency, clients, events)
}

// Import writes a whole pool in a single transaction: clients are inserted
// or replaced by id (a zero id gets a new one), profits are inserted or
// replaced by date.
func (s *SQLite) Import(ctx context.Context, p *consortium.Pool) error {
	if p.Currency != s.currency {
		return fmt.Errorf("%w: pool is in %s, store is in %s", consortium.ErrCurrencyMismatch, p.Currency, s.currency)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range p.Clients {
		if err := s.checkClient(c); err != nil {
			return err
		}
		var id any // NULL lets SQLite assign a new id.
		if c.ID != 0 {
			id = c.ID
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO clients (id, name, invested, join_date, note) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name=excluded.name, invested=excluded.invested, join_date=excluded.join_date, note=excluded.note`,
			id, c.Name, c.Invested.Decimal().String(), c.JoinDate, c.Note,
		)
		if err != nil {
			return fmt.Errorf("import client %q: %w", c.Name, err)
		}
	}
	for _, e := range p.Events {
		if _, err := s.setProfit(ctx, tx, e); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// querier is the subset of *sql.DB and *sql.Tx the readers need.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLite) setProfit(ctx context.Context, q querier, e consortium.ProfitEvent) (int64, error) {
	if err := s.checkProfit(e); err != nil {
		return 0, err
	}
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO profits (profit_date, total_profit, note) VALUES (?, ?, ?)
		ON CONFLICT(profit_date) DO UPDATE SET total_profit=excluded.total_profit, note=excluded.note
		RETURNING id`,
		e.Date, e.Amount.Decimal().String(), e.Note,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("set profit of %s: %w", e.Date, err)
	}
	return id, nil
}

func (s *SQLite) clients(ctx context.Context, q querier) ([]consortium.Client, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, invested, join_date, note FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []consortium.Client
	for rows.Next() {
		c, err := s.scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *SQLite) profits(ctx context.Context, q querier) ([]consortium.ProfitEvent, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, profit_date, total_profit, note FROM profits ORDER BY profit_date`)
	if err != nil {
		return nil, fmt.Errorf("list profits: %w", err)
	}
	defer rows.Close()

	var events []consortium.ProfitEvent
	for rows.Next() {
		var (
			e      consortium.ProfitEvent
			amount string
		)
		if err := rows.Scan(&e.ID, &e.Date, &amount, &e.Note); err != nil {
			return nil, fmt.Errorf("read profit: %w", err)
		}
		if e.Amount, err = consortium.ParseMoney(amount, s.currency); err != nil {
			return nil, fmt.Errorf("profit %d: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLite) scanClient(row scanner) (consortium.Client, error) {
	var (
		c        consortium.Client
		invested string
	)
	if err := row.Scan(&c.ID, &c.Name, &invested, &c.JoinDate, &c.Note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("read client: %w", err)
	}
	var err error
	if c.Invested, err = consortium.ParseMoney(invested, s.currency); err != nil {
		return c, fmt.Errorf("client %d: %w", c.ID, err)
	}
	return c, nil
}

func affected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
