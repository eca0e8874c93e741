package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhuangdx/credit-card-dashboard/internal/models"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// PostgresStore handles user and card CRUD against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users and cards tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username   VARCHAR(50)  UNIQUE NOT NULL,
			password   VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ  DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS cards (
			id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id             UUID NOT NULL REFERENCES users(id),
			name                TEXT NOT NULL,
			billing_day         INT  NOT NULL,
			repayment_day       INT  NOT NULL,
			current_bill_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			unbilled_amount     DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at          TIMESTAMPTZ DEFAULT NOW()
		);
	`)
	return err
}

func (s *PostgresStore) CreateUser(ctx context.Context, username, hashedPassword string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, username, password)
		 VALUES ($1, $2, $3)
		 RETURNING id, username, created_at`,
		uuid.NewString(), username, hashedPassword,
	).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("create user: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password, created_at FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) ListCards(ctx context.Context, userID string) ([]models.Card, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, name, billing_day, repayment_day,
		        current_bill_amount, unbilled_amount, created_at
		 FROM cards WHERE user_id = $1
		 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.BillingDay, &c.RepaymentDay,
			&c.CurrentBillAmount, &c.UnbilledAmount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("list cards: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *PostgresStore) CreateCard(ctx context.Context, card *models.Card) (*models.Card, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cards (id, user_id, name, billing_day, repayment_day, current_bill_amount, unbilled_amount)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		uuid.NewString(), card.UserID, card.Name, card.BillingDay, card.RepaymentDay,
		card.CurrentBillAmount, card.UnbilledAmount,
	).Scan(&card.ID, &card.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

// UpdateCard applies only the supplied fields; NULL arguments fall back
// to the stored values via COALESCE. Returns ErrNotFound when no row
// matches both the card id and the owning user.
func (s *PostgresStore) UpdateCard(ctx context.Context, userID, cardID string, patch models.UpdateCardRequest) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE cards SET
			name                = COALESCE($1, name),
			billing_day         = COALESCE($2, billing_day),
			repayment_day       = COALESCE($3, repayment_day),
			current_bill_amount = COALESCE($4, current_bill_amount),
			unbilled_amount     = COALESCE($5, unbilled_amount)
		 WHERE id = $6 AND user_id = $7`,
		patch.Name, patch.BillingDay, patch.RepaymentDay,
		patch.CurrentBillAmount, patch.UnbilledAmount, cardID, userID)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteCard(ctx context.Context, userID, cardID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM cards WHERE id = $1 AND user_id = $2`, cardID, userID)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ImportCards inserts every entry inside a single transaction so a
// partial import is never observable.
func (s *PostgresStore) ImportCards(ctx context.Context, userID string, entries []models.ImportEntry) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("import cards: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO cards (id, user_id, name, billing_day, repayment_day)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), userID, e.Name, e.BillingDay, e.RepaymentDay)
		if err != nil {
			return 0, fmt.Errorf("import cards: insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("import cards: commit: %w", err)
	}
	return len(entries), nil
}
