package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pantry/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCookbook_EqualityByValue(t *testing.T) {
	a := domain.NewCookbook("nginx", "1.2.3")
	b := domain.Cookbook{Name: "ngi" + "nx", Version: "1.2." + "3"}
	parsed, err := domain.ParseCookbook("nginx (1.2.3)")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a, parsed)
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Hash(), parsed.Hash())

	m := map[domain.Cookbook]int{a: 1}
	assert.Equal(t, 1, m[b])
	assert.Equal(t, 1, m[parsed])
}

func TestCookbook_HashDistinguishesFields(t *testing.T) {
	assert.NotEqual(t,
		domain.NewCookbook("nginx", "1.2.3").Hash(),
		domain.NewCookbook("nginx", "1.2.4").Hash(),
	)
	// Field boundaries are part of the hash.
	assert.NotEqual(t,
		domain.NewCookbook("ab", "c").Hash(),
		domain.NewCookbook("a", "bc").Hash(),
	)
}

func TestCookbook_String(t *testing.T) {
	assert.Equal(t, "apt (2.5.6)", domain.NewCookbook("apt", "2.5.6").String())
}

func TestParseCookbook(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Cookbook
		wantErr bool
	}{
		{in: "nginx (1.2.3)", want: domain.NewCookbook("nginx", "1.2.3")},
		{in: "local-cookbook (2.3.4)", want: domain.NewCookbook("local-cookbook", "2.3.4")},
		{
			in:   "foo (56479847193686175.10855057214514295.269473688185993)",
			want: domain.NewCookbook("foo", "56479847193686175.10855057214514295.269473688185993"),
		},
		{in: "nginx", wantErr: true},
		{in: "nginx 1.2.3", wantErr: true},
		{in: "nginx ()", wantErr: true},
		{in: "nginx (1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseCookbook(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidCookbookKey)

				zErr, ok := err.(*zerr.Error)
				require.True(t, ok, "expected *zerr.Error, got %T", err)
				assert.Equal(t, tt.in, zErr.Metadata()["key"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}
