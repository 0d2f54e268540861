package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"mercadinho/internal/pkg/database"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}

	assert.True(t, database.IsUniqueViolation(dup))
	assert.True(t, database.IsUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, database.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, database.IsUniqueViolation(errors.New("x")))
	assert.False(t, database.IsUniqueViolation(nil))
}
