package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campuslink/internal/app/models"
)

func TestProfileUpdateQueryOnlySetsSuppliedColumns(t *testing.T) {
	name := "Asha Rao"
	year := 4

	sql, args, err := profileUpdateQuery("asha@campus.edu", models.ProfileUpdate{
		FullName: &name,
		Year:     &year,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET full_name = $1, year = $2 WHERE email = $3", sql)
	assert.Equal(t, []interface{}{"Asha Rao", 4, "asha@campus.edu"}, args)
}

func TestProfileUpdateQueryAllColumns(t *testing.T) {
	name, branch, roll, hash := "A", "CSE", "R1", "$2a$10$hash"
	year := 1

	sql, args, err := profileUpdateQuery("a@b.c", models.ProfileUpdate{
		FullName:     &name,
		Branch:       &branch,
		Year:         &year,
		RollNo:       &roll,
		PasswordHash: &hash,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE users SET full_name = $1, branch = $2, year = $3, roll_no = $4, password = $5 WHERE email = $6",
		sql)
	assert.Len(t, args, 6)
}

func TestConversationQueryOrdersByTimestampThenID(t *testing.T) {
	sql, args, err := conversationQuery("a@x", "b@x").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM messages")
	assert.Contains(t, sql, "ORDER BY timestamp ASC, id ASC")
	assert.ElementsMatch(t, []interface{}{"a@x", "b@x", "b@x", "a@x"}, args)
}
