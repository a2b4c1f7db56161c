package main

import (
	"database/sql"
	"fmt"
)

func createComment(db *sql.DB, postID, authorID int, text string) (int, error) {
	result, err := db.Exec(`
		INSERT INTO comments (author_id, post_id, text)
		VALUES (?, ?, ?)`, authorID, postID, text)
	if err != nil {
		return 0, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func getCommentsForPost(db *sql.DB, postID int) ([]Comment, error) {
	rows, err := db.Query(`
		SELECT c.id, c.author_id, c.post_id, c.text, u.name, u.email
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ?
		ORDER BY c.id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.PostID, &c.Text, &c.AuthorName, &c.AuthorEmail); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
