package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnqbao/gau-file-metadata/infra"
)

func TestInitRepositoryWithoutPostgres(t *testing.T) {
	repo := InitRepository(&infra.Infra{})

	require.NotNil(t, repo)
	assert.Nil(t, repo.FileMetadataRepo)
}
