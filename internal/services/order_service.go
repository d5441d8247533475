package services

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"ppf-order-backend/internal/metrics"
	"ppf-order-backend/internal/models"
)

// OrderRepository persists orders. Implementations own the flat row layout.
type OrderRepository interface {
	List() ([]models.Order, error)
	Get(id string) (*models.Order, error)
	Create(input models.NewOrder) (*models.Order, error)
	Update(id string, patch models.OrderPatch) (*models.Order, error)
	Delete(id string) error
}

// PhotoStore keeps uploaded vehicle photos. Remove never fails.
type PhotoStore interface {
	Store(data []byte, originalFileName, contentType string) (string, error)
	Remove(photoURL string)
}

// Photo is an uploaded image waiting to be stored.
type Photo struct {
	Data        []byte
	FileName    string
	ContentType string
}

type OrderService struct {
	repo    OrderRepository
	photos  PhotoStore
	metrics *metrics.Metrics
	logger  *log.Entry
}

func NewOrderService(repo OrderRepository, photos PhotoStore, m *metrics.Metrics) *OrderService {
	return &OrderService{
		repo:    repo,
		photos:  photos,
		metrics: m,
		logger:  log.WithField("component", "order_service"),
	}
}

func (s *OrderService) List() ([]models.Order, error) {
	return s.repo.List()
}

func (s *OrderService) Get(id string) (*models.Order, error) {
	return s.repo.Get(id)
}

// Create stores the photo, if any, and then writes the order. Invalid input
// is rejected before either write. A failed upload aborts creation.
func (s *OrderService) Create(input models.NewOrder, photo *Photo) (*models.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if photo != nil {
		photoURL, err := s.photos.Store(photo.Data, photo.FileName, photo.ContentType)
		if err != nil {
			return nil, err
		}
		input.PhotoURL = photoURL
	}

	order, err := s.repo.Create(input)
	if err != nil {
		if input.PhotoURL != "" {
			s.logger.WithError(err).WithField("photo_url", input.PhotoURL).Warn("order write failed after photo upload, photo orphaned")
		}
		return nil, err
	}

	s.metrics.OrderCreated()
	s.logger.WithFields(log.Fields{"order_id": order.ID, "package": order.Package}).Info("order created")
	return order, nil
}

func (s *OrderService) Update(id string, patch models.OrderPatch) (*models.Order, error) {
	order, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}

	s.metrics.OrderUpdated()
	s.logger.WithFields(log.Fields{"order_id": order.ID, "status": order.Status}).Info("order updated")
	return order, nil
}

// Delete removes the order's photo best-effort and then the order itself.
// A failure to read the order first does not stop the delete.
func (s *OrderService) Delete(id string) error {
	order, err := s.repo.Get(id)
	switch {
	case err == nil:
		if order.PhotoURL != "" {
			s.photos.Remove(order.PhotoURL)
		}
	case !errors.Is(err, models.ErrNotFound):
		s.logger.WithError(err).WithField("order_id", id).Warn("order fetch failed during delete, continuing")
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.metrics.OrderDeleted()
	s.logger.WithField("order_id", id).Info("order deleted")
	return nil
}
