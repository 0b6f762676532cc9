package provider_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xtread/internal/provider"
	"xtread/internal/token"
)

func TestWantSet(t *testing.T) {
	require.True(t, provider.WantDatum.Has(token.XtlangType))
	require.True(t, provider.WantDatum.Has(token.TypedName))
	require.True(t, provider.WantDatum.Has(token.GenericIdentifier))
	require.False(t, provider.WantDatum.Has(token.TypeAnnotation))
	require.False(t, provider.WantDatum.Has(token.Symbol))
	require.False(t, provider.WantNone.Has(token.XtlangType))
	require.Equal(t, provider.WantNone, provider.WantOf(token.Number))
}

func TestNopDeclines(t *testing.T) {
	_, ok := provider.Nop.Claim([]byte("name:i64"), 0, provider.WantDatum)
	require.False(t, ok)
}

func TestValidate(t *testing.T) {
	src := []byte("(foo:i64 bar)")
	cases := []struct {
		name  string
		want  provider.Want
		claim provider.Claim
		ok    bool
	}{
		{"valid typed name", provider.WantDatum, provider.Claim{Kind: token.TypedName, End: 4}, true},
		{"kind not wanted", provider.WantXtlangType, provider.Claim{Kind: token.TypedName, End: 4}, false},
		{"non-external kind", provider.WantDatum, provider.Claim{Kind: token.Symbol, End: 4}, false},
		{"empty span", provider.WantDatum, provider.Claim{Kind: token.TypedName, End: 1}, false},
		{"past end", provider.WantDatum, provider.Claim{Kind: token.TypedName, End: 99}, false},
		{"crosses whitespace", provider.WantDatum, provider.Claim{Kind: token.TypedName, End: 10}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := provider.Validate(src, 1, tc.want, tc.claim)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestValidateQuoteAndComma(t *testing.T) {
	cases := []struct {
		src  string
		want provider.Want
		kind token.Kind
		ok   bool
	}{
		{"[i64,i32]*", provider.WantXtlangType, token.XtlangType, true},
		{"list{!a,!b}*", provider.WantGenericIdentifier, token.GenericIdentifier, true},
		{":<i64,i8>", provider.WantTypeAnnotation, token.TypeAnnotation, true},
		{"a,b", provider.WantTypedName, token.TypedName, false},
		{"[i64,'a]", provider.WantXtlangType, token.XtlangType, false},
		{"[i64,`a]", provider.WantXtlangType, token.XtlangType, false},
		{"list{#t}", provider.WantGenericIdentifier, token.GenericIdentifier, false},
	}
	for _, tc := range cases {
		end := uint32(len(tc.src)) // #nosec G115
		err := provider.Validate([]byte(tc.src), 0, tc.want, provider.Claim{Kind: tc.kind, End: end})
		if tc.ok {
			require.NoError(t, err, tc.src)
		} else {
			require.Error(t, err, tc.src)
		}
	}
}

func TestFuncAdapter(t *testing.T) {
	var calls int
	p := provider.Func(func(src []byte, off uint32, want provider.Want) (provider.Claim, bool) {
		calls++
		return provider.Claim{Kind: token.XtlangType, End: off + 1}, want.Has(token.XtlangType)
	})
	c, ok := p.Claim([]byte("x"), 0, provider.WantXtlangType)
	require.True(t, ok)
	require.Equal(t, uint32(1), c.End)
	_, ok = p.Claim([]byte("x"), 0, provider.WantTypeAnnotation)
	require.False(t, ok)
	require.Equal(t, 2, calls)
}
