package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFileIDDeterministic(t *testing.T) {
	tests := []struct {
		name       string
		fileName   string
		bucketName string
	}{
		{name: "typical", fileName: "f.txt", bucketName: "b"},
		{name: "nested key", fileName: "invoices/2024/report.pdf", bucketName: "documents"},
		{name: "empty strings", fileName: "", bucketName: ""},
		{name: "unicode", fileName: "báo-cáo.pdf", bucketName: "hồ-sơ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := GenerateFileID(tt.fileName, tt.bucketName)
			require.NoError(t, err)
			second, err := GenerateFileID(tt.fileName, tt.bucketName)
			require.NoError(t, err)

			assert.Equal(t, first, second)

			// Output must parse back as a standard UUID.
			parsed, err := uuid.Parse(first.String())
			require.NoError(t, err)
			assert.Equal(t, first, parsed)
		})
	}
}

func TestGenerateFileIDKnownVectors(t *testing.T) {
	// Digest of "f.txt_b" reinterpreted as a UUID.
	id, err := GenerateFileID("f.txt", "b")
	require.NoError(t, err)
	assert.Equal(t, "4ba2f44d-e6d4-7536-540b-31d19de21af4", id.String())

	id, err = GenerateFileID("report.pdf", "invoices")
	require.NoError(t, err)
	assert.Equal(t, "f0f0dcaf-8fd6-6f13-ea03-d41457f3ce18", id.String())
}

func TestGenerateFileIDUniqueness(t *testing.T) {
	pairs := [][2]string{
		{"f1", "b1"},
		{"f2", "b2"},
		{"f1", "b2"},
		{"f2", "b1"},
		{"f.txt", "b"},
		{"f", ".txtb"},
		{"", "b"},
		{"f", ""},
	}

	seen := map[uuid.UUID][2]string{}
	for _, pair := range pairs {
		id, err := GenerateFileID(pair[0], pair[1])
		require.NoError(t, err)
		if prev, ok := seen[id]; ok {
			t.Fatalf("collision: %v and %v both map to %s", prev, pair, id)
		}
		seen[id] = pair
	}
}

func TestGenerateFileIDOrderMatters(t *testing.T) {
	// The name goes first: derive("a","b") hashes "a_b", derive("b","a")
	// hashes "b_a".
	ab, err := GenerateFileID("a", "b")
	require.NoError(t, err)
	ba, err := GenerateFileID("b", "a")
	require.NoError(t, err)
	assert.NotEqual(t, ab, ba)
}
