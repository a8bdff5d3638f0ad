package dto

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAssetTag(t *testing.T) {
	engine := validator.New()
	require.NoError(t, engine.RegisterValidation("assettag", validAssetTag))

	type payload struct {
		Tag string `validate:"assettag"`
	}

	t.Run("accepts a full-length alphanumeric tag", func(t *testing.T) {
		assert.NoError(t, engine.Struct(payload{Tag: strings.Repeat("Ab3", 8)}))
	})

	t.Run("rejects short, long and non-alphanumeric tags", func(t *testing.T) {
		for _, tag := range []string{
			"",
			strings.Repeat("A", 23),
			strings.Repeat("A", 25),
			strings.Repeat("A", 23) + "-",
		} {
			assert.Error(t, engine.Struct(payload{Tag: tag}), tag)
		}
	})
}
