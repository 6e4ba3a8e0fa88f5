package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_String(t *testing.T) {
	tests := []struct {
		opts Options
		want string
	}{
		{0, "none"},
		{FindUndeleted, "FindUndeleted"},
		{FindDeleted | FindUndeleted, "FindUndeleted|FindDeleted"},
		{RecursDeleted | FollowLinks | FindDotfiles, "RecursDeleted|FollowLinks|FindDotfiles"},
		{FindDeleted | Options(1<<12), "FindDeleted|0x1000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.String())
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, AllOptions.Validate())
	assert.NoError(t, Options(0).Validate())

	err := (FindUndeleted | Options(1<<15)).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOptions)
	assert.Contains(t, err.Error(), "0x8000")
}

func TestOptions_Recursive(t *testing.T) {
	assert.False(t, (FindUndeleted | FindDeleted | FollowLinks | FollowMountpoints | FindDotfiles).Recursive())
	for _, o := range []Options{FindContents, RecursFindDeleted, RecursFindUndeleted, RecursDeleted} {
		assert.True(t, o.Recursive(), o.String())
	}
}

func TestOptions_TopLevelFlags(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    matchFlags
		wantErr error
	}{
		{"undeleted", FindUndeleted, matchFlags{undeleted: true}, nil},
		{"deleted", FindDeleted, matchFlags{deleted: true}, nil},
		{"contents forces undeleted", FindContents, matchFlags{undeleted: true}, nil},
		{"recurs deleted forces undeleted", RecursFindDeleted | FindDeleted, matchFlags{undeleted: true, deleted: true}, nil},
		{"recurs undeleted forces undeleted", RecursFindUndeleted, matchFlags{undeleted: true}, nil},
		{"recursing into deleted dirs alone", RecursDeleted, matchFlags{}, ErrNoFilesRequested},
		{"dotfiles", FindUndeleted | FindDotfiles, matchFlags{undeleted: true, dotfiles: true}, nil},
		{"traversal policy only", FollowLinks | FollowMountpoints, matchFlags{}, ErrNoFilesRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.topLevelFlags()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptions_SubtreeOptions(t *testing.T) {
	assert.Equal(t, RecursFindDeleted|FindDeleted, RecursFindDeleted.subtreeOptions())
	assert.Equal(t, RecursDeleted|FindDeleted, RecursDeleted.subtreeOptions())
	assert.Equal(t, RecursFindUndeleted|FindUndeleted, RecursFindUndeleted.subtreeOptions())
	assert.Equal(t, FindContents|FindUndeleted, (FindContents | FindUndeleted).subtreeOptions())
}
