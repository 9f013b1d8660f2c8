package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeCourseRow_MarshalJSON(t *testing.T) {
	department := "Engineering"
	team := "Platform"
	course := 3
	rating := 4

	t.Run("rated pair serializes the number", func(t *testing.T) {
		row := EmployeeCourseRow{
			FirstName:  "Bruno",
			LastName:   "Ferraz",
			Department: &department,
			Team:       &team,
			Course:     &course,
			Rating:     &rating,
		}

		data, err := json.Marshal(row)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, float64(4), decoded["rating"])
		assert.Equal(t, float64(3), decoded["course"])
	})

	t.Run("unrated pair serializes the N/A sentinel", func(t *testing.T) {
		row := EmployeeCourseRow{
			FirstName: "Carla",
			LastName:  "Dias",
			Course:    &course,
		}

		data, err := json.Marshal(row)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "N/A", decoded["rating"])
		assert.Nil(t, decoded["department"])
	})

	t.Run("employee without enrollments keeps a null course and N/A rating", func(t *testing.T) {
		row := EmployeeCourseRow{FirstName: "Elena", LastName: "Rocha"}

		data, err := json.Marshal(row)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Nil(t, decoded["course"])
		assert.Equal(t, "N/A", decoded["rating"])
	})
}

func TestValidCourseID(t *testing.T) {
	assert.True(t, ValidCourseID(FirstCourseID))
	assert.True(t, ValidCourseID(FirstCourseID+CourseCount-1))
	assert.False(t, ValidCourseID(0))
	assert.False(t, ValidCourseID(FirstCourseID+CourseCount))
	assert.False(t, ValidCourseID(-1))
}
