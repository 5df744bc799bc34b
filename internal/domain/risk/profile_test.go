package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/EatTrue/pkg/errors"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, 30, p.Age)
	assert.Empty(t, p.DietaryPreferences)
	assert.Equal(t, NotPregnant, p.PregnancyStatus)
	assert.NoError(t, p.Validate())
}

func TestProfile_Validate(t *testing.T) {
	cases := []struct {
		name    string
		profile Profile
		valid   bool
	}{
		{"newborn", Profile{Age: 0, PregnancyStatus: NotPregnant}, true},
		{"pregnant", Profile{Age: 28, PregnancyStatus: Pregnant}, true},
		{"negative age", Profile{Age: -1, PregnancyStatus: NotPregnant}, false},
		{"missing status", Profile{Age: 40}, false},
		{"free text status", Profile{Age: 40, PregnancyStatus: "maybe"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.profile.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsCode(err, errors.CodeProfileInvalid))
		})
	}
}

func TestProfile_HasPreference(t *testing.T) {
	p := Profile{DietaryPreferences: []string{"diabetic", "vegan"}}
	assert.True(t, p.HasPreference(PreferenceDiabetic))
	assert.False(t, p.HasPreference(PreferenceLowSodium))
	assert.False(t, p.HasPreference("Diabetic"))
}

func TestParsePreferences(t *testing.T) {
	assert.Equal(t, []string{"diabetic", "low_sodium"}, ParsePreferences(" diabetic , low_sodium ,,"))
	assert.Equal(t, []string{}, ParsePreferences(""))
}

//Personal.AI order the ending
