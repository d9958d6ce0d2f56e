package services

import (
	"orderdesk/internal/domain"
	"orderdesk/internal/query"
	"orderdesk/internal/repos"
)

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

// Submit persists a new order built by the composer. On failure the caller's
// draft stays untouched; on success the canonical order (with server id,
// order number and order date) is returned.
func (s *OrderService) Submit(o domain.Order) (domain.Order, error) {
	if err := o.Validate(); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Create(o)
}

// Resubmit replaces a persisted order with the result of an edit draft.
func (s *OrderService) Resubmit(id string, o domain.Order) (domain.Order, error) {
	if err := o.Validate(); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Update(id, o)
}

// EditDraft re-opens a persisted order for editing.
func (s *OrderService) EditDraft(id string) (*Draft, error) {
	o, err := s.Orders.Get(id)
	if err != nil {
		return nil, err
	}
	return DraftFromOrder(o), nil
}

// Transition applies the status machine to a persisted order. The stored
// status changes only if the transition is legal.
func (s *OrderService) Transition(id string, to domain.OrderStatus) (domain.Order, error) {
	o, err := s.Orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if err := o.Transition(to); err != nil {
		return domain.Order{}, err
	}
	if err := s.Orders.UpdateStatus(id, to); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(id)
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	return s.Orders.Get(id)
}

func (s *OrderService) List(f query.OrderFilter) ([]domain.Order, error) {
	return s.Orders.Filter(f)
}

func (s *OrderService) Delete(id string) error {
	return s.Orders.Delete(id)
}
