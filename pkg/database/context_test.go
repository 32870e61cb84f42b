package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuerierFromFallsBack(t *testing.T) {
	var fallback Querier
	assert.Nil(t, QuerierFrom(context.Background(), fallback))

	_, ok := SessionFrom(context.Background())
	assert.False(t, ok)

	_, ok = TxFrom(context.Background())
	assert.False(t, ok)
}

func TestReleasedSessionRejectsWork(t *testing.T) {
	s := &Session{released: true}

	assert.Nil(t, s.Conn())
	_, err := s.Begin(context.Background())
	assert.ErrorIs(t, err, ErrSessionReleased)

	// second release is a no-op
	s.Release()
}
