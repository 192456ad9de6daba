package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateFileRequestToUpdateMap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]interface{}
	}{
		{
			name: "empty payload yields empty map",
			body: `{}`,
			want: map[string]interface{}{},
		},
		{
			name: "single field",
			body: `{"file_name":"renamed.txt"}`,
			want: map[string]interface{}{"file_name": "renamed.txt"},
		},
		{
			name: "zero values are still updates",
			body: `{"size":0,"content_type":""}`,
			want: map[string]interface{}{"size": int64(0), "content_type": ""},
		},
		{
			name: "all fields",
			body: `{"file_name":"a","content_type":"image/png","size":42}`,
			want: map[string]interface{}{"file_name": "a", "content_type": "image/png", "size": int64(42)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateFileRequestDTO
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.ToUpdateMap())
		})
	}
}
