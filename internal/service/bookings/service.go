package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	bookingRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/booking"
	employeeRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/employee"
	"github.com/wissen-infra/seat-booking-service/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	bookingRepo  BookingRepository
	employeeRepo EmployeeRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	employeeRepo EmployeeRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и администратору
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking %s for requester %s", id, requesterID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking %s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking %s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerOrAdmin(ctx, booking.EmployeeID, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for requester %s to booking %s", requesterID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetEmployeeBookings получает историю бронирований сотрудника
// Сотрудник видит только свою историю, администратор - любую
func (s *Service) GetEmployeeBookings(ctx context.Context, req *models.GetEmployeeBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetEmployeeBookings: employee=%s, requester=%s, status=%v",
		req.EmployeeID, req.RequesterID, req.Status)

	if err := s.checkOwnerOrAdmin(ctx, req.EmployeeID, req.RequesterID); err != nil {
		s.logger.Warn("GetEmployeeBookings: access denied for requester %s", req.RequesterID)
		return nil, err
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetEmployeeBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByEmployee(ctx, domain.EmployeeBookingsFilter{
		EmployeeID: req.EmployeeID,
		Status:     domainStatus,
	})
	if err != nil {
		s.logger.Error("GetEmployeeBookings: repository error for employee %s: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEmployeeBookings: fetched %d bookings for employee %s", len(bookings), req.EmployeeID)
	return models.FromDomainBookingList(bookings), nil
}

// GetDayBookings получает аудит бронирований на дату с данными сотрудников
// Доступно только администратору
func (s *Service) GetDayBookings(ctx context.Context, req *models.GetDayBookingsRequest) (*models.DayBookingListResponse, error) {
	s.logger.Info("GetDayBookings: date=%s, requester=%s, includeCancelled=%t",
		req.Date.Format(domain.DateFormat), req.RequesterID, req.IncludeCancelled)

	if err := s.checkAdmin(ctx, req.RequesterID); err != nil {
		s.logger.Warn("GetDayBookings: access denied for requester %s", req.RequesterID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetDayBookings(ctx, req.Date, req.IncludeCancelled)
	if err != nil {
		s.logger.Error("GetDayBookings: repository error for date %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDayBookings: fetched %d bookings for %s", len(bookings), req.Date.Format(domain.DateFormat))
	return models.FromDomainDayBookings(req.Date, bookings), nil
}

// Cancel отменяет бронирование (soft-cancel)
// Разрешено владельцу бронирования и администратору
// Идемпотентна: повторная отмена уже отмененного бронирования - это no-op
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, requesterID uuid.UUID) error {
	s.logger.Info("Cancel: cancelling booking %s by requester %s", bookingID, requesterID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking %s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking %s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerOrAdmin(ctx, booking.EmployeeID, requesterID); err != nil {
		s.logger.Warn("Cancel: access denied for requester %s to booking %s", requesterID, bookingID)
		return err
	}

	// Уже отменено - успех без изменений
	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking %s already cancelled, no-op", bookingID)
		return nil
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking %s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking %s cancelled by %s", bookingID, requesterID)
	return nil
}

// Вспомогательные методы

// checkOwnerOrAdmin проверяет, что requester - владелец или администратор
func (s *Service) checkOwnerOrAdmin(ctx context.Context, ownerID, requesterID uuid.UUID) error {
	if ownerID == requesterID {
		return nil
	}
	return s.checkAdmin(ctx, requesterID)
}

// checkAdmin проверяет, что requester имеет административные права
func (s *Service) checkAdmin(ctx context.Context, requesterID uuid.UUID) error {
	requester, err := s.employeeRepo.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkAdmin - failed to get employee: %v", ErrInternal, err)
	}

	if !requester.IsAdmin() {
		return ErrAccessDenied
	}
	return nil
}
