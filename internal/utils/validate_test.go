package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingInput struct {
	Username string `validate:"required"`
	Rating   int    `validate:"required,min=1,max=5"`
}

func TestValidateReportsFirstFailingField(t *testing.T) {
	assert.Nil(t, Validate(ratingInput{Username: "alice", Rating: 5}))

	fe := Validate(ratingInput{Rating: 3})
	require.NotNil(t, fe)
	assert.Equal(t, "Username", fe.Field)
	assert.Equal(t, "required", fe.Tag)

	fe = Validate(ratingInput{Username: "alice", Rating: 6})
	require.NotNil(t, fe)
	assert.Equal(t, "Rating", fe.Field)
	assert.Equal(t, "max", fe.Tag)

	fe = Validate(ratingInput{Username: "alice"})
	require.NotNil(t, fe)
	assert.Equal(t, "required", fe.Tag)
}

func TestNewLoggerAcceptsUnknownLevel(t *testing.T) {
	logger, err := NewLogger("verbose")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(0))
	assert.False(t, logger.Core().Enabled(-1))
}
