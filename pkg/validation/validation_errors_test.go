package validation_test

import (
	"errors"
	"testing"

	"go-interview-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileForm struct {
	Name            string   `validate:"required,min=2"`
	PrimaryRole     string   `validate:"required,min=2"`
	ExperienceYears int      `validate:"gte=0"`
	TargetLevel     string   `validate:"required,oneof=Junior Mid Senior Lead"`
	Location        string   `validate:"required,min=2"`
	TechStack       []string `validate:"required,min=1,dive,required"`
	Bio             string   `validate:"max=500"`
}

func validForm() profileForm {
	return profileForm{
		Name:            "Ana",
		PrimaryRole:     "Backend Engineer",
		ExperienceYears: 3,
		TargetLevel:     "Mid",
		Location:        "Remote",
		TechStack:       []string{"Go"},
	}
}

func TestFormatValidationErrors(t *testing.T) {
	validate := validator.New()

	cases := []struct {
		name     string
		mutate   func(*profileForm)
		expected string
	}{
		{
			name:     "short name",
			mutate:   func(f *profileForm) { f.Name = "A" },
			expected: "Name: must be at least 2 characters",
		},
		{
			name:     "missing primary role",
			mutate:   func(f *profileForm) { f.PrimaryRole = "" },
			expected: "Primary role: required",
		},
		{
			name:     "negative experience",
			mutate:   func(f *profileForm) { f.ExperienceYears = -2 },
			expected: "Experience: cannot be negative",
		},
		{
			name:     "unknown target level",
			mutate:   func(f *profileForm) { f.TargetLevel = "Principal" },
			expected: "Target level: must be one of: Junior, Mid, Senior, Lead",
		},
		{
			name:     "empty tech stack",
			mutate:   func(f *profileForm) { f.TechStack = []string{} },
			expected: "Tech stack: at least 1 entry is required",
		},
		{
			name:     "blank tech stack entry",
			mutate:   func(f *profileForm) { f.TechStack = []string{""} },
			expected: "Tech stack: required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)

			err := validate.Struct(&form)
			require.Error(t, err)

			messages := validation.FormatValidationErrors(err)
			assert.Contains(t, messages, tc.expected)
		})
	}

	t.Run("collects one message per invalid field", func(t *testing.T) {
		form := validForm()
		form.Name = ""
		form.Location = "X"

		err := validate.Struct(&form)
		require.Error(t, err)

		messages := validation.FormatValidationErrors(err)
		assert.Len(t, messages, 2)
	})

	t.Run("passes through non-validator errors", func(t *testing.T) {
		messages := validation.FormatValidationErrors(errors.New("boom"))
		assert.Equal(t, []string{"boom"}, messages)
	})
}
