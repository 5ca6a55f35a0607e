package mongo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cornerstone-church/site/pkg/mongo"
)

func TestConnect_EmptyURL(t *testing.T) {
	t.Parallel()

	_, err := mongo.Connect(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
}
