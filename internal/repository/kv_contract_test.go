package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/gomarketplace-cart/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// kvContractSuite holds the behavior every port.KVStore backend shares.
// Backend suites embed it and assign store in SetupSuite.
type kvContractSuite struct {
	suite.Suite

	store port.KVStore
}

func (suite *kvContractSuite) TestGetItem() {
	tests := []struct {
		name      string
		key       string
		setup     *string
		wantValue string
		wantFound bool
		wantError string
	}{
		{
			name:      "get existing key: ok",
			key:       gofakeit.UUID(),
			setup:     ptr(`[{"id":"a","quantity":2}]`),
			wantValue: `[{"id":"a","quantity":2}]`,
			wantFound: true,
		},
		{
			name:      "get missing key: not found",
			key:       gofakeit.UUID(),
			wantFound: false,
		},
		{
			name:      "get with empty key: error",
			key:       "",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup != nil {
				require.NoError(t, suite.store.SetItem(ctx, tt.key, *tt.setup))
			}

			value, found, err := suite.store.GetItem(ctx, tt.key)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func (suite *kvContractSuite) TestSetItem() {
	tests := []struct {
		name      string
		key       string
		values    []string
		wantError string
	}{
		{
			name:      "set new key: ok",
			key:       gofakeit.UUID(),
			values: []string{gofakeit.Sentence(5)},
		},
		{
			name:   "overwrite key: last write wins",
			key:    gofakeit.UUID(),
			values: []string{"[]", `[{"id":"b","quantity":1}]`},
		},
		{
			name:   "write same value twice: ok",
			key:    gofakeit.UUID(),
			values: []string{"[]", "[]"},
		},
		{
			name:      "set with empty key: error",
			key:       "",
			values:    []string{"[]"},
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			for _, v := range tt.values {
				err := suite.store.SetItem(ctx, tt.key, v)
				if tt.wantError != "" {
					require.EqualError(t, err, tt.wantError)
					return
				}
				require.NoError(t, err)
			}

			value, found, err := suite.store.GetItem(ctx, tt.key)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.values[len(tt.values)-1], value)
		})
	}
}

func (suite *kvContractSuite) TestRemoveItem() {
	tests := []struct {
		name      string
		key       string
		setup     bool
		wantError string
	}{
		{
			name:  "remove existing key: ok",
			key:   gofakeit.UUID(),
			setup: true,
		},
		{
			name: "remove missing key: ok",
			key:  gofakeit.UUID(),
		},
		{
			name:      "remove with empty key: error",
			key:       "",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup {
				require.NoError(t, suite.store.SetItem(ctx, tt.key, "[]"))
			}

			err := suite.store.RemoveItem(ctx, tt.key)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			_, found, err := suite.store.GetItem(ctx, tt.key)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
