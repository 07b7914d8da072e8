package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompositeMetadata(t *testing.T) {
	raw := json.RawMessage(`{"version":1,"mappings":{"solar":["12.3","12.4"],"battery":["7.9"]}}`)

	meta, err := ParseCompositeMetadata(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"12.3", "12.4"}, meta.Mappings["solar"])
	assert.Equal(t, []string{"7.9"}, meta.Mappings["battery"])
}

func TestParseCompositeMetadataRejectsUnknownVersion(t *testing.T) {
	raw := json.RawMessage(`{"version":2,"mappings":{}}`)

	_, err := ParseCompositeMetadata(raw)
	assert.ErrorIs(t, err, ErrCompositeVersionUnknown)
}

func TestParseCompositeMetadataMissing(t *testing.T) {
	_, err := ParseCompositeMetadata(nil)
	assert.ErrorIs(t, err, ErrCompositeMetadataMissing)
}

func TestParsePointRef(t *testing.T) {
	tests := []struct {
		ref  string
		want PointRef
		ok   bool
	}{
		{"12.3", PointRef{SystemID: 12, PointID: 3}, true},
		{"7.9", PointRef{SystemID: 7, PointID: 9}, true},
		{"12", PointRef{}, false},
		{"12.3.4", PointRef{}, false},
		{"a.b", PointRef{}, false},
		{"-1.3", PointRef{}, false},
		{"12.0", PointRef{}, false},
		{"", PointRef{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := ParsePointRef(tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSyncCauseWithDryRun(t *testing.T) {
	assert.Equal(t, "USER", CauseUser.WithDryRun(false))
	assert.Equal(t, "USER_DRYRUN", CauseUser.WithDryRun(true))
	assert.Equal(t, "ADMIN_DRYRUN", CauseAdmin.WithDryRun(true))
}
