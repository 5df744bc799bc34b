package substance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/EatTrue/pkg/errors"
)

func newBuiltinResolver(t *testing.T) *Resolver {
	t.Helper()
	c, err := Builtin()
	require.NoError(t, err)
	return NewResolver(c)
}

func ids(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestResolver_Tiers(t *testing.T) {
	r := newBuiltinResolver(t)

	cases := []struct {
		token string
		tier  MatchTier
		ids   []string
	}{
		{"e102", MatchExact, []string{"e102"}},
		{"SUGAR", MatchExact, []string{"sugar"}},
		{"tartrazine (colour)", MatchDetectionName, []string{"e102"}},
		{"high fructose corn syrup", MatchDetectionName, []string{"sugar"}},
		{"sunset", MatchDetectionName, []string{"e110"}},
		{"iodised salt", MatchDetectionName, []string{"salt"}},
		{"artificial sweeteners", MatchGenericTerm, []string{"e951", "e954"}},
		{"permitted synthetic food colours", MatchGenericTerm, []string{"e102", "e110", "e129", "e122"}},
		{"flavour enhancer", MatchGenericTerm, []string{"e621"}},
		{"water", MatchUnknown, []string{UnknownID}},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			res := r.Resolve(tc.token)
			assert.Equal(t, tc.tier, res.Tier)
			assert.Equal(t, tc.ids, ids(res.Records))
			assert.Equal(t, tc.token, res.Token)
		})
	}
}

func TestResolver_ExactBeatsDetectionName(t *testing.T) {
	// "b" is a detection name of the first record and the id of the second.
	c, err := NewCatalog([]Record{
		record("a", 10, "b"),
		record("b", 20, "bee"),
	}, nil)
	require.NoError(t, err)

	res := NewResolver(c).Resolve("b")
	assert.Equal(t, MatchExact, res.Tier)
	assert.Equal(t, []string{"b"}, ids(res.Records))
}

func TestResolver_DetectionNameFirstRecordWins(t *testing.T) {
	c, err := NewCatalog([]Record{
		record("first", 10, "sodium"),
		record("second", 20, "sodium chloride"),
	}, nil)
	require.NoError(t, err)

	res := NewResolver(c).Resolve("sodium chloride")
	assert.Equal(t, MatchDetectionName, res.Tier)
	assert.Equal(t, []string{"first"}, ids(res.Records))
}

func TestResolver_DetectionNameIsBidirectional(t *testing.T) {
	r := newBuiltinResolver(t)

	// Token contained in a detection name.
	assert.Equal(t, []string{"e129"}, ids(r.Resolve("allura").Records))
	// Detection name contained in the token.
	assert.Equal(t, []string{"e443"}, ids(r.Resolve("contains bvo").Records))
}

func TestResolver_GenericTermMissingTargetBecomesPlaceholder(t *testing.T) {
	c, err := NewCatalog([]Record{record("e951", 88, "aspartame")},
		[]GenericTerm{{Phrase: "artificial sweeteners", SubstanceIDs: []string{"e951", "e954"}}})
	require.NoError(t, err)

	res := NewResolver(c).Resolve("Artificial Sweeteners")
	require.Equal(t, MatchGenericTerm, res.Tier)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "e951", res.Records[0].ID)
	assert.True(t, res.Records[1].IsUnknown())
	assert.Equal(t, "artificial sweeteners", res.Records[1].Name)
	assert.Equal(t, UnknownSeverity, res.Records[1].SeverityScore)
}

func TestResolver_UnknownKeepsOriginalToken(t *testing.T) {
	res := newBuiltinResolver(t).Resolve("Rolled Oats")
	assert.Equal(t, MatchUnknown, res.Tier)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Rolled Oats", res.Records[0].Name)
	assert.Equal(t, StatusUnknown, res.Records[0].RegulatoryStatus[JurisdictionUSA])
}

func TestResolver_BlankTokenIsUnknown(t *testing.T) {
	r := newBuiltinResolver(t)
	for _, tok := range []string{"", "   "} {
		res := r.Resolve(tok)
		assert.Equal(t, MatchUnknown, res.Tier)
		assert.True(t, res.Records[0].IsUnknown())
	}
}

func TestResolver_ResolveAllKeepsOrder(t *testing.T) {
	res := newBuiltinResolver(t).ResolveAll([]string{"sugar", "e102", "water", "e621"})
	require.Len(t, res, 4)
	assert.Equal(t, "sugar", res[0].Records[0].ID)
	assert.Equal(t, "e102", res[1].Records[0].ID)
	assert.True(t, res[2].Records[0].IsUnknown())
	assert.Equal(t, "e621", res[3].Records[0].ID)
}

func TestMatchTier_String(t *testing.T) {
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "detection_name", MatchDetectionName.String())
	assert.Equal(t, "generic_term", MatchGenericTerm.String())
	assert.Equal(t, "unknown", MatchUnknown.String())
	assert.Equal(t, "invalid", MatchTier(0).String())
}

func TestResolver_Lookup(t *testing.T) {
	r := newBuiltinResolver(t)

	rec, err := r.Lookup("E171")
	require.NoError(t, err)
	assert.Equal(t, "Titanium Dioxide", rec.Name)

	_, err = r.Lookup("e999")
	assert.True(t, errors.IsCode(err, errors.CodeSubstanceNotFound))
}

//Personal.AI order the ending
