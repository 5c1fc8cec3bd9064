package database

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/newsdeck/newsdeck/internal/models"
)

// UserCount returns the number of users in the database.
func (db *DB) UserCount() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// CreateUser inserts a new user record, assigning an ID when unset.
func (db *DB) CreateUser(u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := db.conn.Exec(
		`INSERT INTO users (id, email, username, password_hash, is_active) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Username, u.PasswordHash, boolToInt(u.IsActive),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(username string) (models.User, error) {
	return db.getUser(`username = ?`, username)
}

// GetUserByEmail retrieves a user by email address.
func (db *DB) GetUserByEmail(email string) (models.User, error) {
	return db.getUser(`email = ?`, email)
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(id string) (models.User, error) {
	return db.getUser(`id = ?`, id)
}

func (db *DB) getUser(where string, arg any) (models.User, error) {
	var u models.User
	var createdAt, updatedAt string
	err := db.conn.QueryRow(
		`SELECT id, email, username, password_hash, is_active, created_at, updated_at
		 FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return u, err
	}
	u.CreatedAt, _ = parseTime(createdAt)
	u.UpdatedAt, _ = parseTime(updatedAt)
	return u, nil
}

// ListUsers returns all users ordered by creation time.
func (db *DB) ListUsers() ([]models.User, error) {
	rows, err := db.conn.Query(
		`SELECT id, email, username, password_hash, is_active, created_at, updated_at
		 FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var createdAt, updatedAt string
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt, _ = parseTime(createdAt)
		u.UpdatedAt, _ = parseTime(updatedAt)
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateSession inserts a new session record.
func (db *DB) CreateSession(sess *models.Session) error {
	result, err := db.conn.Exec(
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, datetime(?))`,
		sess.Token, sess.UserID, formatTime(sess.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	sess.ID, _ = result.LastInsertId()
	return nil
}

// GetSession retrieves a non-expired session by token.
func (db *DB) GetSession(token string) (models.Session, error) {
	var sess models.Session
	var expiresAt, createdAt string
	err := db.conn.QueryRow(
		`SELECT id, token, user_id, expires_at, created_at
		 FROM sessions
		 WHERE token = ? AND expires_at > datetime('now')`,
		token,
	).Scan(&sess.ID, &sess.Token, &sess.UserID, &expiresAt, &createdAt)
	if err != nil {
		return sess, err
	}
	sess.ExpiresAt, _ = parseTime(expiresAt)
	sess.CreatedAt, _ = parseTime(createdAt)
	return sess, nil
}

// DeleteSession removes a specific session (for logout).
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// DeleteExpiredSessions removes all sessions past their expiry.
func (db *DB) DeleteExpiredSessions() (int64, error) {
	result, err := db.conn.Exec(`DELETE FROM sessions WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
