package address

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAddress(t *testing.T) *Address {
	t.Helper()
	addr, err := NewAddress(uuid.New(), "76001", ViaCalle, "5", "36-08")
	require.NoError(t, err)
	addr.ClearDomainEvents()
	return addr
}

func TestNewAddress(t *testing.T) {
	t.Run("creates pending unverified address", func(t *testing.T) {
		userID := uuid.New()
		addr, err := NewAddress(userID, "76001", ViaCarrera, "36", "5-02")
		require.NoError(t, err)

		assert.Equal(t, userID, addr.UserID)
		assert.Equal(t, VerificationPending, addr.State)
		assert.False(t, addr.Verified)
		assert.False(t, addr.IsPrimary)

		events := addr.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeAddressCreated, events[0].EventType())
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := NewAddress(uuid.Nil, "76001", ViaCalle, "5", "")
		assert.Error(t, err)

		_, err = NewAddress(uuid.New(), "760", ViaCalle, "5", "")
		assert.Error(t, err)

		_, err = NewAddress(uuid.New(), "76001", ViaType("XX"), "5", "")
		assert.Error(t, err)

		_, err = NewAddress(uuid.New(), "76001", ViaCalle, "", "")
		assert.Error(t, err)
	})
}

func TestAddress_SetCoordinates(t *testing.T) {
	lat := decimal.RequireFromString("3.451647")
	lng := decimal.RequireFromString("-76.531985")

	t.Run("trusted source verifies immediately", func(t *testing.T) {
		for _, source := range []GeoSource{GeoSourceDAPM, GeoSourceGoogle} {
			addr := newTestAddress(t)
			require.NoError(t, addr.SetCoordinates(lat, lng, source, "ROOFTOP"))

			assert.True(t, addr.Verified)
			assert.Equal(t, VerificationVerified, addr.State)
			assert.True(t, addr.HasCoordinates())

			events := addr.GetDomainEvents()
			require.Len(t, events, 1)
			assert.Equal(t, EventTypeAddressVerified, events[0].EventType())
		}
	})

	t.Run("manual source stays pending", func(t *testing.T) {
		addr := newTestAddress(t)
		require.NoError(t, addr.SetCoordinates(lat, lng, GeoSourceManual, ""))

		assert.False(t, addr.Verified)
		assert.Equal(t, VerificationPending, addr.State)
		assert.True(t, addr.HasCoordinates())
		assert.Empty(t, addr.GetDomainEvents())
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		addr := newTestAddress(t)
		err := addr.SetCoordinates(decimal.NewFromInt(91), lng, GeoSourceGoogle, "")
		assert.Error(t, err)
		err = addr.SetCoordinates(lat, decimal.NewFromInt(-181), GeoSourceGoogle, "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		addr := newTestAddress(t)
		assert.Error(t, addr.SetCoordinates(lat, lng, GeoSource("OSM"), ""))
	})
}

func TestAddress_Complements(t *testing.T) {
	addr := newTestAddress(t)

	require.NoError(t, addr.AddComplement(ComplementEdificio, "Torre 2"))
	require.NoError(t, addr.AddComplement(ComplementPiso, "3"))
	require.NoError(t, addr.AddComplement(ComplementApartamento, "301"))
	require.NoError(t, addr.AddComplement(ComplementBloque, "B"))

	assert.Error(t, addr.AddComplement(ComplementOficina, "401"), "only four levels allowed")
	assert.Error(t, addr.AddComplement(ComplementType("ZZ"), "1"))
	assert.Error(t, addr.AddComplement(ComplementPiso, ""))
}

func TestAddress_FullAddress(t *testing.T) {
	addr, err := NewAddress(uuid.New(), "76001", ViaCalle, "5", "08")
	require.NoError(t, err)

	require.NoError(t, addr.SetViaDetail("a", true, SectorNorte))
	require.NoError(t, addr.SetCrossVia(ViaCarrera, "36", ""))
	require.NoError(t, addr.AddComplement(ComplementApartamento, "101"))

	assert.Equal(t, "Calle 5A BIS NORTE # 36-08 AP 101", addr.FullAddress())
}

func TestAddress_FullAddress_NoCrossVia(t *testing.T) {
	addr, err := NewAddress(uuid.New(), "11001", ViaAvenida, "68", "25-10")
	require.NoError(t, err)

	assert.Equal(t, "Avenida 68 # 25-10", addr.FullAddress())
}

func TestAddress_PrimaryFlag(t *testing.T) {
	addr := newTestAddress(t)

	addr.MarkPrimary()
	assert.True(t, addr.IsPrimary)

	events := addr.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeAddressMarkedPrimary, events[0].EventType())

	// Idempotent
	addr.ClearDomainEvents()
	addr.MarkPrimary()
	assert.Empty(t, addr.GetDomainEvents())

	addr.ClearPrimary()
	assert.False(t, addr.IsPrimary)
}

func TestAddress_Stratum(t *testing.T) {
	addr := newTestAddress(t)

	require.NoError(t, addr.SetStratum(4))
	require.NotNil(t, addr.Stratum)
	assert.Equal(t, 4, *addr.Stratum)

	assert.Error(t, addr.SetStratum(0))
	assert.Error(t, addr.SetStratum(7))
}

func TestAddress_PostalCode(t *testing.T) {
	addr := newTestAddress(t)

	require.NoError(t, addr.SetPostalCode("760001"))
	assert.Error(t, addr.SetPostalCode("76001"))
}

func TestAddress_MarkInvalid(t *testing.T) {
	addr := newTestAddress(t)
	lat := decimal.RequireFromString("3.451647")
	lng := decimal.RequireFromString("-76.531985")
	require.NoError(t, addr.SetCoordinates(lat, lng, GeoSourceGoogle, "ROOFTOP"))

	addr.MarkInvalid()
	assert.False(t, addr.Verified)
	assert.Equal(t, VerificationInvalid, addr.State)
}
