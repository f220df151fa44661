package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	SaveCalculation(ctx context.Context, userID int, name string, totalHeadFt float64, payload json.RawMessage) (int, error)
	ListCalculations(ctx context.Context, userID int, limit int) ([]Calculation, error)
}

// Calculation is a saved pipeline result. Payload holds the result JSON as returned by the API.
type Calculation struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	TotalHeadFt float64         `json:"total_head_ft"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

// GetBylogin returns id 0 and no error when the login does not exist.
func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) SaveCalculation(ctx context.Context, userID int, name string, totalHeadFt float64, payload json.RawMessage) (int, error) {
	var id int
	query := "INSERT INTO calculations (user_id, name, total_head_ft, payload) VALUES ($1, $2, $3, $4) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, name, totalHeadFt, []byte(payload)).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) ListCalculations(ctx context.Context, userID int, limit int) ([]Calculation, error) {
	if limit <= 0 {
		limit = 50
	}
	query := "SELECT id, name, total_head_ft, payload, created_at FROM calculations WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2"
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Calculation{}
	for rows.Next() {
		var c Calculation
		var payload []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.TotalHeadFt, &payload, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Payload = payload
		out = append(out, c)
	}
	return out, rows.Err()
}
