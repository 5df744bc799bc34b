package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", "  \n\t ", []string{}},
		{"simple list", "Sugar, E102, Water, E621", []string{"sugar", "e102", "water", "e621"}},
		{"label", "Ingredients: Sugar; Salt", []string{"sugar", "salt"}},
		{"singular label no colon", "INGREDIENT sugar, salt", []string{"sugar", "salt"}},
		{"label only at start", "sugar, mixed ingredients", []string{"sugar", "mixed ingredients"}},
		{"and separates", "sugar and salt", []string{"sugar", "salt"}},
		{"and inside a word", "candy, sandalwood", []string{"candy", "sandalwood"}},
		{"uppercase AND kept", "salt AND pepper", []string{"salt and pepper"}},
		{"newlines and tabs", "sugar\nsalt\tpepper", []string{"sugar", "salt", "pepper"}},
		{"whitespace runs", "sugar   salt", []string{"sugar", "salt"}},
		{"single spaces kept", "sunset yellow", []string{"sunset yellow"}},
		{"markup", "<b>sugar</b>, salt", []string{"bsugar/b", "salt"}},
		{"empty pieces dropped", ",,sugar,,;;salt,", []string{"sugar", "salt"}},
		{"boilerplate", "sugar, Acme Brand, Foo Company, Bar Inc, Baz Ltd., salt", []string{"sugar", "salt"}},
		{"zinc counts as boilerplate", "zinc oxide, salt", []string{"salt"}},
		{"nfkc", "TiO₂, ＳＵＧＡＲ", []string{"tio2", "sugar"}},
		{"nbsp run", "sugar\u00a0\u00a0salt", []string{"sugar", "salt"}},
		{"ideographic space run", "sugar\u3000\u3000e102", []string{"sugar", "e102"}},
		{"single nbsp kept", "sunset\u00a0yellow", []string{"sunset yellow"}},
		{"full-width comma", "water，sugar", []string{"water", "sugar"}},
		{"full-width label", "ＩＮＧＲＥＤＩＥＮＴＳ： sugar", []string{"sugar"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_PreservesOrder(t *testing.T) {
	got := Normalize("water, sugar, e621, e102")
	assert.Equal(t, []string{"water", "sugar", "e621", "e102"}, got)
}

func TestJoinProduct(t *testing.T) {
	joined := JoinProduct([]string{"sugar", "e102", "water", "e621"})
	assert.Equal(t, "sugar,e102,water,e621", joined)
	assert.Equal(t, []string{"sugar", "e102", "water", "e621"}, Normalize(joined))
	assert.Equal(t, []string{}, Normalize(JoinProduct(nil)))
}

//Personal.AI order the ending
