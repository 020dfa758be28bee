package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestHumanizeParam(t *testing.T) {
	t.Parallel()
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"postId", "post ID"},
		{"commentId", "comment ID"},
		{"userId", "user ID"},
		{"followerId", "follower ID"},
		{"keyword", "keyword"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeParam(tt.param))
	}
}
