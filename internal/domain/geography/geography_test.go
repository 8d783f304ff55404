package geography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepartment(t *testing.T) {
	t.Run("creates department with valid DANE code", func(t *testing.T) {
		dept, err := NewDepartment("76", "Valle del Cauca")
		require.NoError(t, err)
		assert.Equal(t, "76", dept.Code)
		assert.Equal(t, "Valle del Cauca", dept.Name)
	})

	t.Run("rejects invalid codes", func(t *testing.T) {
		tests := []struct {
			name string
			code string
		}{
			{"too short", "7"},
			{"too long", "760"},
			{"non numeric", "7A"},
			{"empty", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewDepartment(tt.code, "Valle del Cauca")
				assert.Error(t, err)
			})
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewDepartment("76", "")
		assert.Error(t, err)
	})
}

func TestDepartment_SetPhonePrefix(t *testing.T) {
	dept, err := NewDepartment("11", "Bogotá D.C.")
	require.NoError(t, err)

	require.NoError(t, dept.SetPhonePrefix("601"))
	assert.Equal(t, "601", dept.PhonePrefix)

	assert.Error(t, dept.SetPhonePrefix("6011"))
}

func TestNewMunicipality(t *testing.T) {
	t.Run("creates municipality under its department", func(t *testing.T) {
		mun, err := NewMunicipality("76001", "76", "Cali")
		require.NoError(t, err)
		assert.Equal(t, "76001", mun.Code)
		assert.Equal(t, "76", mun.DepartmentCode)
		assert.Equal(t, MunicipalityTypeMunicipio, mun.Type)
	})

	t.Run("rejects code outside department", func(t *testing.T) {
		_, err := NewMunicipality("05001", "76", "Medellín")
		assert.Error(t, err)
	})

	t.Run("rejects malformed code", func(t *testing.T) {
		_, err := NewMunicipality("7600", "76", "Cali")
		assert.Error(t, err)
	})
}

func TestMunicipality_MarkAsDistrict(t *testing.T) {
	mun, err := NewMunicipality("11001", "11", "Bogotá D.C.")
	require.NoError(t, err)

	mun.MarkAsDistrict()
	assert.Equal(t, MunicipalityTypeDistrito, mun.Type)
}

func TestMunicipality_SetCategory(t *testing.T) {
	mun, err := NewMunicipality("76001", "76", "Cali")
	require.NoError(t, err)

	require.NoError(t, mun.SetCategory(MunicipalityCategoryA))
	assert.Equal(t, MunicipalityCategoryA, mun.Category)

	assert.Error(t, mun.SetCategory("Z"))
}

func TestNewNeighborhood(t *testing.T) {
	t.Run("creates neighborhood with surrogate id", func(t *testing.T) {
		barrio, err := NewNeighborhood("76001", "San Antonio")
		require.NoError(t, err)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", barrio.ID.String())
		assert.Equal(t, "76001", barrio.MunicipalityCode)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewNeighborhood("76001", "")
		assert.Error(t, err)
	})
}

func TestNeighborhood_SetAverageStratum(t *testing.T) {
	barrio, err := NewNeighborhood("76001", "Granada")
	require.NoError(t, err)

	for s := 1; s <= 6; s++ {
		assert.NoError(t, barrio.SetAverageStratum(s))
	}
	assert.Error(t, barrio.SetAverageStratum(0))
	assert.Error(t, barrio.SetAverageStratum(7))
}

func TestNeighborhood_SetZone(t *testing.T) {
	barrio, err := NewNeighborhood("76001", "El Peñón")
	require.NoError(t, err)

	require.NoError(t, barrio.SetZone("03"))
	assert.Equal(t, "03", barrio.Zone)
	assert.Error(t, barrio.SetZone("003"))
}
