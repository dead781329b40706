package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProfileInput(t *testing.T) {
	tests := []struct {
		name     string
		input    ProfileInput
		wantOK   bool
		wantKeys []string
	}{
		{
			name:   "valid",
			input:  ProfileInput{Status: "Developer", Skills: "js,node"},
			wantOK: true,
		},
		{
			name:     "both missing",
			input:    ProfileInput{},
			wantOK:   false,
			wantKeys: []string{"status", "skills"},
		},
		{
			name:     "whitespace only status",
			input:    ProfileInput{Status: "   ", Skills: "go"},
			wantOK:   false,
			wantKeys: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := ValidateProfileInput(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, errs, len(tt.wantKeys))
			for _, k := range tt.wantKeys {
				assert.Contains(t, errs, k)
			}
		})
	}
}

func TestValidateExperienceInput(t *testing.T) {
	errs, ok := ValidateExperienceInput(ExperienceInput{})
	assert.False(t, ok)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "company")
	assert.Contains(t, errs, "from")

	errs, ok = ValidateExperienceInput(ExperienceInput{
		Title:   "Backend Engineer",
		Company: "Acme",
		From:    "2020-01-01",
	})
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateEducationInput(t *testing.T) {
	errs, ok := ValidateEducationInput(EducationInput{School: "MIT"})
	assert.False(t, ok)
	assert.Contains(t, errs, "degree")
	assert.Contains(t, errs, "fieldofstudy")
	assert.Contains(t, errs, "from")
	assert.NotContains(t, errs, "school")

	_, ok = ValidateEducationInput(EducationInput{
		School:       "MIT",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         "2016-09-01",
	})
	assert.True(t, ok)
}
