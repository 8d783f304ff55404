package address

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/address"
	"github.com/tienda/backend/internal/domain/geography"
	"github.com/tienda/backend/internal/domain/shared"
)

// Service handles delivery address operations
type Service struct {
	addressRepo      address.Repository
	municipalityRepo geography.MunicipalityRepository
	neighborhoodRepo geography.NeighborhoodRepository
	eventPublisher   shared.EventPublisher
}

// NewService creates a new address service
func NewService(
	addressRepo address.Repository,
	municipalityRepo geography.MunicipalityRepository,
	neighborhoodRepo geography.NeighborhoodRepository,
	eventPublisher shared.EventPublisher,
) *Service {
	return &Service{
		addressRepo:      addressRepo,
		municipalityRepo: municipalityRepo,
		neighborhoodRepo: neighborhoodRepo,
		eventPublisher:   eventPublisher,
	}
}

// Create creates a delivery address for a user. Coordinates from a
// trusted source verify the address on the spot.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	if _, err := s.municipalityRepo.FindByCode(ctx, req.MunicipalityCode); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNKNOWN_MUNICIPALITY", "Municipality does not exist")
		}
		return nil, err
	}

	addr, err := address.NewAddress(userID, req.MunicipalityCode, address.ViaType(req.ViaType), req.ViaNumber, req.PlateNumber)
	if err != nil {
		return nil, err
	}

	if req.ViaLetter != "" || req.Bis || req.Sector != "" {
		if err := addr.SetViaDetail(req.ViaLetter, req.Bis, address.Sector(req.Sector)); err != nil {
			return nil, err
		}
	}
	if req.CrossViaNumber != "" {
		if err := addr.SetCrossVia(address.ViaType(req.CrossViaType), req.CrossViaNumber, req.CrossViaLetter); err != nil {
			return nil, err
		}
	}
	for _, c := range req.Complements {
		if err := addr.AddComplement(address.ComplementType(c.Type), c.Value); err != nil {
			return nil, err
		}
	}

	if req.NeighborhoodID != nil {
		neighborhood, err := s.neighborhoodRepo.FindByID(ctx, *req.NeighborhoodID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("UNKNOWN_NEIGHBORHOOD", "Neighborhood does not exist")
			}
			return nil, err
		}
		if neighborhood.MunicipalityCode != req.MunicipalityCode {
			return nil, shared.NewDomainError("NEIGHBORHOOD_MISMATCH", "Neighborhood belongs to a different municipality")
		}
		addr.SetNeighborhood(req.NeighborhoodID)
	}

	if req.PostalCode != "" {
		if err := addr.SetPostalCode(req.PostalCode); err != nil {
			return nil, err
		}
	}
	if req.Stratum != nil {
		if err := addr.SetStratum(*req.Stratum); err != nil {
			return nil, err
		}
	}
	if req.Coordinates != nil {
		if err := addr.SetCoordinates(
			req.Coordinates.Latitude,
			req.Coordinates.Longitude,
			address.GeoSource(req.Coordinates.Source),
			req.Coordinates.Precision,
		); err != nil {
			return nil, err
		}
	}

	if req.IsPrimary {
		addr.MarkPrimary()
		if err := s.addressRepo.SaveAsPrimary(ctx, addr); err != nil {
			return nil, err
		}
	} else if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, addr)

	response := ToAddressResponse(addr)
	return &response, nil
}

// GetByID retrieves one of the user's addresses
func (s *Service) GetByID(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	addr, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	response := ToAddressResponse(addr)
	return &response, nil
}

// List retrieves all addresses of a user
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToAddressResponses(addresses), nil
}

// UpdateCoordinates records geocoding results on an address
func (s *Service) UpdateCoordinates(ctx context.Context, userID, addressID uuid.UUID, req UpdateCoordinatesRequest) (*AddressResponse, error) {
	addr, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := addr.SetCoordinates(req.Latitude, req.Longitude, address.GeoSource(req.Source), req.Precision); err != nil {
		return nil, err
	}

	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, addr)

	response := ToAddressResponse(addr)
	return &response, nil
}

// SetPrimary marks an address as the user's primary delivery address.
// Promotion and demotion of the previous primary happen in one
// transaction inside the repository.
func (s *Service) SetPrimary(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	addr, err := s.findOwned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	addr.MarkPrimary()

	if err := s.addressRepo.SaveAsPrimary(ctx, addr); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, addr)

	response := ToAddressResponse(addr)
	return &response, nil
}

// Delete removes one of the user's addresses
func (s *Service) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, addressID); err != nil {
		return err
	}

	return s.addressRepo.Delete(ctx, addressID)
}

func (s *Service) findOwned(ctx context.Context, userID, addressID uuid.UUID) (*address.Address, error) {
	addr, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, shared.NewDomainError("FORBIDDEN", "Address belongs to another user")
	}
	return addr, nil
}

func (s *Service) publishEvents(ctx context.Context, addr *address.Address) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range addr.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	addr.ClearDomainEvents()
}
