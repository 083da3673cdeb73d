package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quickplay-games/sessiond/internal/apperr"
)

func TestRequest_ResolveDocument(t *testing.T) {
	testCases := []struct {
		name      string
		path      string
		wantKind  TargetKind
		wantDoc   string
		wantField string
		wantErr   bool
	}{
		{
			name:     "plain document",
			path:     "users/u1",
			wantKind: TargetDocument,
			wantDoc:  "users/u1",
		},
		{
			name:     "nested document",
			path:     "users/u1/deposits/d1",
			wantKind: TargetDocument,
			wantDoc:  "users/u1/deposits/d1",
		},
		{
			name:      "odd path resolves to field projection",
			path:      "appStatus/global/lockdown",
			wantKind:  TargetField,
			wantDoc:   "appStatus/global",
			wantField: "lockdown",
		},
		{
			name:    "single segment is not addressable as a document",
			path:    "users",
			wantErr: true,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:    "empty segment",
			path:    "users//u1",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			resolved, err := Request{Path: tc.path}.ResolveDocument()
			if tc.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, apperr.NewInvalidEndpoint(tc.path))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.wantKind, resolved.Kind)
			assert.Equal(t, tc.wantDoc, resolved.DocPath)
			assert.Equal(t, tc.wantField, resolved.Field)
		})
	}
}

func TestRequest_ResolveCollection(t *testing.T) {
	resolved, err := Request{Path: "missionConfigs"}.ResolveCollection()
	assert.NoError(t, err)
	assert.Equal(t, TargetCollection, resolved.Kind)
	assert.Equal(t, "missionConfigs", resolved.CollectionPath)

	resolved, err = Request{Path: "users/u1/deposits"}.ResolveCollection()
	assert.NoError(t, err)
	assert.Equal(t, "users/u1/deposits", resolved.CollectionPath)

	_, err = Request{Path: "users/u1"}.ResolveCollection()
	assert.Error(t, err)
}
