package service

import (
	"context"
	"fmt"

	"wastewise-pickup-demo/internal/model"
	"wastewise-pickup-demo/internal/repository"
)

type LocationService interface {
	// List returns drop-off sites ordered by id. Category "all" or "" means
	// no filtering.
	List(ctx context.Context, category string) ([]*model.Location, error)
	Get(ctx context.Context, id uint) (*model.Location, error)
	// EnsureSeeded loads the static site directory on first start.
	EnsureSeeded(ctx context.Context) error
}

type locationServiceImpl struct {
	locationRepo repository.LocationRepository
}

func NewLocationService(locationRepo repository.LocationRepository) LocationService {
	return &locationServiceImpl{
		locationRepo: locationRepo,
	}
}

func (s *locationServiceImpl) List(ctx context.Context, category string) ([]*model.Location, error) {
	if category == "" || category == "all" {
		return s.locationRepo.FindAll(ctx)
	}
	return s.locationRepo.FindByCategory(ctx, category)
}

func (s *locationServiceImpl) Get(ctx context.Context, id uint) (*model.Location, error) {
	return s.locationRepo.FindByID(ctx, id)
}

func (s *locationServiceImpl) EnsureSeeded(ctx context.Context) error {
	count, err := s.locationRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count locations: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.locationRepo.CreateMany(ctx, defaultLocations())
}

func defaultLocations() []*model.Location {
	return []*model.Location{
		{ID: 1, Name: "Bank Sampah Sejahtera - Jakarta Pusat", Address: "Jl. Merdeka No. 10, Jakarta", Lat: -6.1754, Lng: 106.8272, Category: "plastik"},
		{ID: 2, Name: "Drop-off Elektronik SCBD", Address: "Sudirman Central Business District, Jakarta Selatan", Lat: -6.2247, Lng: 106.8077, Category: "elektronik"},
		{ID: 3, Name: "Pusat Daur Ulang Kertas Thamrin", Address: "Jl. Thamrin No. 5, Jakarta", Lat: -6.1889, Lng: 106.8231, Category: "organik"},
		{ID: 4, Name: "Bandung Eco-Center", Address: "Jl. Dago No. 150, Bandung", Lat: -6.8915, Lng: 107.6107, Category: "organik"},
		{ID: 5, Name: "Tangsel Waste Hub", Address: "BSD City, Tangerang Selatan", Lat: -6.3032, Lng: 106.6668, Category: "plastik"},
		{ID: 6, Name: "Semarang Recycle Point", Address: "Jl. Pemuda No. 1, Semarang", Lat: -6.9702, Lng: 110.4178, Category: "elektronik"},
		{ID: 7, Name: "Yogyakarta Green Project", Address: "Kawasan Malioboro, Yogyakarta", Lat: -7.7956, Lng: 110.3695, Category: "plastik"},
		{ID: 8, Name: "Surabaya Zero Waste", Address: "Jl. Tunjungan No. 12, Surabaya", Lat: -7.2575, Lng: 112.7521, Category: "organik"},
		{ID: 9, Name: "Medan Eco-Recycle", Address: "Jl. Gatot Subroto, Medan", Lat: 3.5952, Lng: 98.6722, Category: "plastik"},
		{ID: 10, Name: "Palembang Waste Solution", Address: "Kawasan Ampera, Palembang", Lat: -2.9761, Lng: 104.7754, Category: "elektronik"},
		{ID: 11, Name: "Balikpapan Green Point", Address: "Jl. Jenderal Sudirman, Balikpapan", Lat: -1.2654, Lng: 116.8312, Category: "plastik"},
		{ID: 12, Name: "Pontianak Recycle Center", Address: "Jl. Gajah Mada, Pontianak", Lat: -0.0263, Lng: 109.3425, Category: "organik"},
		{ID: 13, Name: "Makassar Waste Hub", Address: "Pantai Losari, Makassar", Lat: -5.1476, Lng: 119.4327, Category: "plastik"},
		{ID: 14, Name: "Manado Eco-Logic", Address: "Kawasan Megamas, Manado", Lat: 1.4748, Lng: 124.8420, Category: "elektronik"},
		{ID: 15, Name: "Bali Eco-Point", Address: "Jl. Bypass Ngurah Rai, Denpasar", Lat: -8.6705, Lng: 115.2126, Category: "plastik"},
		{ID: 16, Name: "Jayapura Recycle Station", Address: "Kawasan Ruko Pasifik Permai, Jayapura", Lat: -2.5411, Lng: 140.7100, Category: "plastik"},
	}
}
