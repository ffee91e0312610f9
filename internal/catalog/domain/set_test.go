package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Run("orders and removes duplicates", func(t *testing.T) {
		assert.Equal(t, Set[string]{"Audi", "BMW"}, NewSet("BMW", "Audi", "BMW"))
	})

	t.Run("empty set is nil", func(t *testing.T) {
		assert.Nil(t, NewSet[string]())
	})

	t.Run("marshals to an ordered JSON array", func(t *testing.T) {
		data, err := json.Marshal(NewSet("electric", "diesel"))
		require.NoError(t, err)
		assert.JSONEq(t, `["diesel","electric"]`, string(data))

		data, err = json.Marshal(Set[string](nil))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("unmarshals from JSON array", func(t *testing.T) {
		var out Set[string]
		require.NoError(t, json.Unmarshal([]byte(`["electric","diesel","electric"]`), &out))
		assert.Equal(t, NewSet("diesel", "electric"), out)
	})

	t.Run("toggle adds and removes", func(t *testing.T) {
		s := NewSet("BMW")
		s = s.Toggle("Audi")
		assert.Equal(t, NewSet("Audi", "BMW"), s)
		s = s.Toggle("BMW")
		assert.Equal(t, NewSet("Audi"), s)
		assert.Nil(t, s.Toggle("Audi"))
	})

	t.Run("union and intersect", func(t *testing.T) {
		a := NewSet("A4", "X5")
		b := NewSet("A4", "Q7")
		assert.Equal(t, NewSet("A4", "Q7", "X5"), a.Union(b))
		assert.Equal(t, NewSet("A4"), a.Intersect(b))
		assert.Nil(t, a.Intersect(nil))
	})

	t.Run("join", func(t *testing.T) {
		assert.Equal(t, "diesel,petrol", Join(NewSet(FuelPetrol, FuelDiesel)))
	})
}
