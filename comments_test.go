package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListComments(t *testing.T) {
	db := setupTestDB(t)
	admin := mustCreateUser(t, db, "admin@example.com", "Admin")
	reader := mustCreateUser(t, db, "reader@example.com", "Reader")

	postID, err := createPost(db, samplePost("Commented", admin))
	require.NoError(t, err)
	otherID, err := createPost(db, samplePost("Quiet", admin))
	require.NoError(t, err)

	_, err = createComment(db, postID, reader, "Nice post")
	require.NoError(t, err)
	_, err = createComment(db, postID, admin, "Thanks!")
	require.NoError(t, err)

	comments, err := getCommentsForPost(db, postID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, "Nice post", comments[0].Text)
	assert.Equal(t, reader, comments[0].AuthorID)
	assert.Equal(t, "Reader", comments[0].AuthorName)
	assert.Equal(t, "reader@example.com", comments[0].AuthorEmail)
	assert.Equal(t, "Thanks!", comments[1].Text)

	comments, err = getCommentsForPost(db, otherID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
