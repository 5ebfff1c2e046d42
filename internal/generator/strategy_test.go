package generator

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mockingbird/internal/ir"
)

type gofakeitFaker = gofakeit.Faker

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"firstName":  "firstname",
		"first_name": "firstname",
		"FIRST-NAME": "firstname",
		"OrderID":    "orderid",
		"XMLParser":  "xmlparser",
		"":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"get", "HTTP", "Response"}, tokenize("getHTTPResponse"))
	assert.Equal(t, []string{"zip", "code"}, tokenize("zip_code"))
	assert.Nil(t, tokenize(""))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("same", "same"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 4, Levenshtein("", "abcd"))
	assert.Equal(t, 1, Levenshtein("café", "cafe"), "distance counts runes")
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("email", "email"))
	assert.InDelta(t, 0.5, Similarity("name", "fullname"), 1e-9)
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestFuzzyStrategy_Find(t *testing.T) {
	s := NewFuzzyStrategy(DefaultCatalog)

	tests := []struct {
		name string
		typ  ir.FieldType
		want string
	}{
		{"first_name", ir.TypeString, "firstName"},
		{"FirstName", ir.TypeString, "firstName"},
		{"userEmail", ir.TypeString, "email"},
		{"zipCode", ir.TypeString, "zip"},
		{"age", ir.TypeInt, "age"},
		{"unitPrice", ir.TypeFloat, "price"},
		{"createdAt", ir.TypeDate, "createdAt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := s.Find(tt.name, tt.typ)
			require.True(t, ok)
			assert.Equal(t, tt.want, c.Names[0])
			assert.Equal(t, tt.typ, c.Type)
		})
	}
}

func TestFuzzyStrategy_NoMatch(t *testing.T) {
	s := NewFuzzyStrategy(DefaultCatalog)

	_, ok := s.Find("zzqx", ir.TypeString)
	assert.False(t, ok)

	// names only compete within their type
	_, ok = s.Find("email", ir.TypeBoolean)
	assert.False(t, ok)

	_, ok = s.Find("", ir.TypeString)
	assert.False(t, ok)
}

func TestFuzzyStrategy_Threshold(t *testing.T) {
	s := NewFuzzyStrategy(DefaultCatalog)
	s.Threshold = 1.0

	_, ok := s.Find("userEmail", ir.TypeString)
	assert.False(t, ok)

	_, ok = s.Find("email", ir.TypeString)
	assert.True(t, ok)
}

func TestDefaultCatalog_GeneratesDeclaredTypes(t *testing.T) {
	f := newTestFaker(17)
	for _, c := range DefaultCatalog {
		v := c.Generate(f.fake, fixedNow)
		switch c.Type {
		case ir.TypeString:
			assert.IsType(t, "", v, c.Names[0])
		case ir.TypeInt:
			assert.IsType(t, 0, v, c.Names[0])
		case ir.TypeFloat:
			assert.IsType(t, 0.0, v, c.Names[0])
		case ir.TypeDate:
			assert.False(t, v.(interface{ IsZero() bool }).IsZero(), c.Names[0])
		}
	}
}
