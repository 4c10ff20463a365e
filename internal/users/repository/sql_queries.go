package repository

const (
	getUserQuery = `SELECT user_id, username, role
					 FROM users
					 WHERE user_id = ?`
)
