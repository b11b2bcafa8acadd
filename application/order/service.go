package order

import (
	"context"

	"commerce/domain/order"
	"commerce/domain/shared"
)

// ApplicationService implements the order use cases. Order placement
// orchestrates both bounded contexts through the inventory gateway inside a
// single unit of work, so reservation and order persistence commit or roll
// back together.
type ApplicationService struct {
	orders     order.Repository
	inventory  order.InventoryGateway
	uowFactory shared.UnitOfWorkFactory
}

// NewApplicationService wires the order application service.
func NewApplicationService(orders order.Repository, inventory order.InventoryGateway, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{orders: orders, inventory: inventory, uowFactory: uowFactory}
}

// PlaceOrder runs the placement flow: validate the request, reserve stock for
// every item through the gateway, build priced order lines from the
// reservation snapshot, and persist the confirmed order. Any failure rolls
// the whole flow back, including the stock decrements.
func (s *ApplicationService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	customer, err := order.NewCustomerInfo(
		req.Customer.CustomerID, req.Customer.Name, req.Customer.Email, req.Customer.Phone)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		req.ShippingAddress.Street, req.ShippingAddress.City, req.ShippingAddress.State,
		req.ShippingAddress.PostalCode, req.ShippingAddress.Country)
	if err != nil {
		return nil, err
	}

	if len(req.Items) == 0 {
		return nil, order.NewEmptyOrderItemsError()
	}

	quantities := make([]order.Quantity, len(req.Items))
	requests := make([]order.ReservationRequest, len(req.Items))
	for i, item := range req.Items {
		qty, err := order.NewQuantity(item.Quantity)
		if err != nil {
			return nil, err
		}
		quantities[i] = *qty
		requests[i] = order.ReservationRequest{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	uow := s.uowFactory.New()
	var placed *order.Order
	err = uow.Execute(ctx, func(ctx context.Context) error {
		reserved, err := s.inventory.VerifyAndReserveStock(ctx, requests)
		if err != nil {
			return err
		}

		items := make([]order.OrderItem, len(reserved))
		for i, snapshot := range reserved {
			item, err := order.NewOrderItem(
				snapshot.ProductID, snapshot.ProductName, quantities[i], snapshot.UnitPrice)
			if err != nil {
				return err
			}
			items[i] = *item
		}

		placed, err = order.NewOrder(*customer, *address, items)
		if err != nil {
			return err
		}
		if err := placed.Confirm(); err != nil {
			return err
		}

		if err := s.orders.Save(ctx, placed); err != nil {
			return err
		}
		uow.RegisterNew(placed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(placed), nil
}

// GetOrder loads an order by ID.
func (s *ApplicationService) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	found, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(found), nil
}

// ListOrders returns orders with skip/limit pagination.
func (s *ApplicationService) ListOrders(ctx context.Context, skip, limit int) ([]*OrderResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	found, err := s.orders.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(found))
	for i, o := range found {
		responses[i] = toOrderResponse(o)
	}
	return responses, nil
}

// ListCustomerOrders returns all orders of one customer.
func (s *ApplicationService) ListCustomerOrders(ctx context.Context, customerID string) ([]*OrderResponse, error) {
	found, err := s.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(found))
	for i, o := range found {
		responses[i] = toOrderResponse(o)
	}
	return responses, nil
}

// CancelOrder cancels an order and releases its reserved stock in the same
// transaction. The release is driven off the one-shot CANCELLED transition,
// so a repeated cancel fails on the state machine before any stock moves.
func (s *ApplicationService) CancelOrder(ctx context.Context, id string, req CancelOrderRequest) (*OrderResponse, error) {
	uow := s.uowFactory.New()
	var cancelled *order.Order
	err := uow.Execute(ctx, func(ctx context.Context) error {
		found, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := found.Cancel(req.Reason); err != nil {
			return err
		}

		items := found.Items()
		requests := make([]order.ReservationRequest, len(items))
		for i, item := range items {
			requests[i] = order.ReservationRequest{
				ProductID: item.ProductID(),
				Quantity:  item.Quantity().Value(),
			}
		}
		if err := s.inventory.ReleaseStock(ctx, requests); err != nil {
			return err
		}

		if err := s.orders.Save(ctx, found); err != nil {
			return err
		}
		uow.RegisterDirty(found)
		cancelled = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(cancelled), nil
}

// UpdateStatus moves an order along its fulfilment lifecycle. Cancellation
// goes through CancelOrder instead because it also releases stock.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*OrderResponse, error) {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	var updated *order.Order
	err = uow.Execute(ctx, func(ctx context.Context) error {
		found, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return err
		}

		switch target {
		case order.StatusConfirmed:
			err = found.Confirm()
		case order.StatusProcessing:
			err = found.MarkProcessing()
		case order.StatusShipped:
			err = found.MarkShipped()
		case order.StatusDelivered:
			err = found.MarkDelivered()
		default:
			err = order.NewInvalidStateTransitionError(found.Status(), target)
		}
		if err != nil {
			return err
		}

		if err := s.orders.Save(ctx, found); err != nil {
			return err
		}
		uow.RegisterDirty(found)
		updated = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(updated), nil
}
