package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// referralRewardPct es el saldo (porcentaje) que gana el referente cuando su
// referido concreta la primera orden. Es un valor fijo, no aditivo.
const referralRewardPct = 10

type OrderDeps struct {
	Orders        OrderRepository
	Products      ProductRepository
	Bundles       BundleRepository
	Users         UserRepository
	Referrals     ReferralRepository
	Notifications NotificationRepository
	Activities    ActivityRepository
	Mailer        Mailer
	Events        EventPublisher
	Payments      PaymentGateway
}

// OrderService implementa el checkout completo: recálculo del total contra el
// catálogo vivo, descuentos de bundle, cierre de referidos y efectos laterales.
type OrderService struct {
	deps OrderDeps
}

func NewOrderService(deps OrderDeps) *OrderService {
	return &OrderService{deps: deps}
}

// PlaceOrder es el flujo de conciliación del checkout.
//
// El servidor es la única fuente de verdad del total: el total del cliente,
// si viene, sólo se usa como control cruzado. Las escrituras laterales
// (notificación, actividad, evento, email) son best-effort y no se revierten
// si un paso posterior falla.
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, req dto.PlaceOrderRequest) (*dto.OrderView, error) {
	if len(req.Items) == 0 || req.ShippingAddress.Empty() || req.BillingAddress.Empty() || req.PaymentMethod.Type == "" {
		return nil, ErrMissingFields
	}

	// Control de pago previo a cualquier escritura, si el cliente mandó
	// un paymentIntentId.
	if req.PaymentIntentID != "" && s.deps.Payments != nil {
		ok, err := s.deps.Payments.IntentSucceeded(ctx, req.PaymentIntentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrPaymentNotCompleted
		}
	}

	buyer, err := s.deps.Users.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	products, bundles, err := s.fetchCatalog(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	validItems, total := priceOrderItems(req.Items, products, bundles)
	if len(validItems) == 0 {
		return nil, ErrNoValidItems
	}

	total = total.Round(2)
	serverTotal, _ := total.Float64()
	if req.Total != nil && !totalsMatch(*req.Total, total) {
		log.Printf("total del cliente no coincide: cliente=%.2f servidor=%.2f", *req.Total, serverTotal)
		return nil, &TotalMismatchError{ClientTotal: *req.Total, ServerTotal: serverTotal}
	}

	// El código de referido completa la recompensa del referente pero NO
	// toca el total de esta orden: el descuento es un saldo para un
	// checkout futuro.
	if req.ReferralCode != "" {
		if err := s.completeReferral(ctx, req.ReferralCode, buyer); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	order := &model.Order{
		UserID:          userID,
		Items:           validItems,
		Total:           serverTotal,
		Status:          model.OrderPending,
		StatusHistory:   []model.StatusEntry{{Status: model.OrderPending, UpdatedAt: now}},
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		TrackingEvents:  []model.TrackingEvent{},
		ReferralCode:    req.ReferralCode,
		PNR:             req.PNR,
		CreatedAt:       now,
	}
	if err := s.deps.Orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	if err := s.notify(ctx, userID, fmt.Sprintf("Order #%s placed successfully!", order.ID.Hex())); err != nil {
		return nil, err
	}
	if err := s.logActivity(ctx, userID, "Order Placed", fmt.Sprintf("Placed order #%s for $%.2f", order.ID.Hex(), serverTotal)); err != nil {
		return nil, err
	}

	if s.deps.Events != nil {
		s.deps.Events.OrderPlaced(order)
	}

	view := buildOrderView(order, products, buyer)

	// El email va al final: si falla, la orden y la notificación quedan
	// escritas igual y el caller recibe el error.
	if s.deps.Mailer != nil {
		if err := s.deps.Mailer.SendOrderConfirmation(buyer.Email, view); err != nil {
			return nil, err
		}
	}

	return view, nil
}

// fetchCatalog trae en bloque productos y bundles referenciados por el
// carrito. Los ids no parseables quedan fuera del lote y la línea caerá
// después como inválida.
func (s *OrderService) fetchCatalog(ctx context.Context, items []dto.OrderItemRequest) (map[string]*model.Product, map[string]*model.Bundle, error) {
	var productIDs []primitive.ObjectID
	var bundleIDs []primitive.ObjectID
	for _, item := range items {
		if oid, err := primitive.ObjectIDFromHex(item.ProductID); err == nil {
			productIDs = append(productIDs, oid)
		}
		if item.BundleID != "" {
			if oid, err := primitive.ObjectIDFromHex(item.BundleID); err == nil {
				bundleIDs = append(bundleIDs, oid)
			}
		}
	}

	products := map[string]*model.Product{}
	if len(productIDs) > 0 {
		found, err := s.deps.Products.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range found {
			products[p.ID.Hex()] = p
		}
	}

	bundles := map[string]*model.Bundle{}
	if len(bundleIDs) > 0 {
		found, err := s.deps.Bundles.FindByIDs(ctx, bundleIDs)
		if err != nil {
			return nil, nil, err
		}
		for _, b := range found {
			bundles[b.ID.Hex()] = b
		}
	}

	return products, bundles, nil
}

// completeReferral cierra el referido pendiente (referente, comprador) si
// existe: lo marca Completed, fija el saldo del referente en el valor fijo y
// avisa. Un código sin dueño o sin referido pendiente se ignora en silencio.
func (s *OrderService) completeReferral(ctx context.Context, code string, buyer *model.User) error {
	referrer, err := s.deps.Users.FindByReferralCode(ctx, code)
	if err == repository.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	ref, err := s.deps.Referrals.FindPending(ctx, referrer.ID, buyer.ID)
	if err == repository.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.deps.Referrals.SetStatus(ctx, ref.ID, model.ReferralCompleted); err != nil {
		return err
	}
	// Saldo fijo: se pisa, no se acumula.
	if err := s.deps.Users.SetReferralDiscount(ctx, referrer.ID, referralRewardPct); err != nil {
		return err
	}
	if err := s.notify(ctx, referrer.ID, "Your referral was used! You earned a 10% discount on your next order."); err != nil {
		return err
	}
	return s.logActivity(ctx, referrer.ID, "Referral Completed", fmt.Sprintf("Referred user %s placed an order.", buyer.Name))
}

// Cancel sólo lo puede hacer el dueño y sólo mientras la orden está
// Pending. El restock es por línea y secuencial: si una falla a mitad de
// camino, lo ya repuesto queda repuesto.
func (s *OrderService) Cancel(ctx context.Context, orderID primitive.ObjectID, actorID primitive.ObjectID) (*model.Order, error) {
	order, err := s.deps.Orders.FindByID(ctx, orderID)
	if err == repository.ErrNotFound {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if order.UserID != actorID {
		return nil, ErrNotAuthorized
	}
	if order.Status != model.OrderPending {
		return nil, ErrNotCancelable
	}

	entry := model.StatusEntry{Status: model.OrderCanceled, UpdatedAt: time.Now().UTC()}
	order.Status = model.OrderCanceled
	order.StatusHistory = append(order.StatusHistory, entry)

	for _, item := range order.Items {
		if err := s.deps.Products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			if err == repository.ErrNotFound {
				// producto borrado del catálogo: no hay nada que reponer
				continue
			}
			return nil, err
		}
	}

	if err := s.deps.Orders.AppendStatus(ctx, order.ID, order.Status, entry); err != nil {
		return nil, err
	}

	if err := s.notify(ctx, actorID, fmt.Sprintf("Your order #%s has been canceled.", order.ID.Hex())); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus (sólo admin) agrega la entrada al historial y avisa al dueño.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*model.Order, error) {
	if !validOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.deps.Orders.FindByID(ctx, orderID)
	if err == repository.ErrNotFound {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	entry := model.StatusEntry{Status: status, UpdatedAt: time.Now().UTC()}
	order.Status = status
	order.StatusHistory = append(order.StatusHistory, entry)
	if err := s.deps.Orders.AppendStatus(ctx, order.ID, status, entry); err != nil {
		return nil, err
	}

	if err := s.notify(ctx, order.UserID, fmt.Sprintf("Order #%s status updated to %s", order.ID.Hex(), status)); err != nil {
		return nil, err
	}
	return order, nil
}

func validOrderStatus(s string) bool {
	switch s {
	case model.OrderPending, model.OrderShipped, model.OrderDelivered, model.OrderCanceled, model.OrderReturned:
		return true
	}
	return false
}

// ---- consultas ----

func (s *OrderService) GetAll(ctx context.Context) ([]*dto.OrderView, error) {
	orders, err := s.deps.Orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, orders)
}

func (s *OrderService) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*dto.OrderView, error) {
	orders, err := s.deps.Orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, orders)
}

// GetDetail aplica la regla de acceso: el admin ve todo, el usuario sólo lo
// suyo.
func (s *OrderService) GetDetail(ctx context.Context, orderID primitive.ObjectID, actorID primitive.ObjectID, isAdmin bool) (*dto.OrderView, error) {
	order, err := s.deps.Orders.FindByID(ctx, orderID)
	if err == repository.ErrNotFound {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !isAdmin && order.UserID != actorID {
		return nil, ErrNotAuthorized
	}

	views, err := s.buildViews(ctx, []*model.Order{order})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Analytics arma las métricas de ventas para el panel admin.
func (s *OrderService) Analytics(ctx context.Context) (*dto.OrderAnalytics, error) {
	orders, err := s.deps.Orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.productsFor(ctx, orders)
	if err != nil {
		return nil, err
	}

	out := &dto.OrderAnalytics{TotalOrders: len(orders)}

	sales := map[string]*dto.ProductSales{}
	monthly := map[string]*dto.MonthlySales{}
	for _, o := range orders {
		out.TotalRevenue += o.Total

		for _, item := range o.Items {
			p, ok := products[item.ProductID.Hex()]
			if !ok {
				log.Printf("orden %s: item con producto inexistente %s", o.ID.Hex(), item.ProductID.Hex())
				continue
			}
			ps, ok := sales[item.ProductID.Hex()]
			if !ok {
				ps = &dto.ProductSales{Name: p.Name}
				sales[item.ProductID.Hex()] = ps
			}
			ps.Quantity += item.Quantity
			ps.Revenue += float64(item.Quantity) * p.Price
		}

		key := fmt.Sprintf("%d/%d", int(o.CreatedAt.Month()), o.CreatedAt.Year())
		m, ok := monthly[key]
		if !ok {
			m = &dto.MonthlySales{Month: int(o.CreatedAt.Month()), Year: o.CreatedAt.Year()}
			monthly[key] = m
		}
		m.TotalOrders++
		m.TotalRevenue += o.Total
	}

	for _, ps := range sales {
		out.TopProducts = append(out.TopProducts, *ps)
	}
	sort.Slice(out.TopProducts, func(i, j int) bool {
		return out.TopProducts[i].Quantity > out.TopProducts[j].Quantity
	})
	if len(out.TopProducts) > 5 {
		out.TopProducts = out.TopProducts[:5]
	}

	for _, m := range monthly {
		out.MonthlySales = append(out.MonthlySales, *m)
	}
	sort.Slice(out.MonthlySales, func(i, j int) bool {
		if out.MonthlySales[i].Year != out.MonthlySales[j].Year {
			return out.MonthlySales[i].Year < out.MonthlySales[j].Year
		}
		return out.MonthlySales[i].Month < out.MonthlySales[j].Month
	})

	return out, nil
}

// ---- armado de vistas ----

// buildViews "popula" las órdenes: nombre y precio vivos del producto más
// email del comprador, en dos lecturas por lote.
func (s *OrderService) buildViews(ctx context.Context, orders []*model.Order) ([]*dto.OrderView, error) {
	products, err := s.productsFor(ctx, orders)
	if err != nil {
		return nil, err
	}

	userSet := map[primitive.ObjectID]bool{}
	for _, o := range orders {
		userSet[o.UserID] = true
	}
	var userIDs []primitive.ObjectID
	for id := range userSet {
		userIDs = append(userIDs, id)
	}
	users := map[primitive.ObjectID]*model.User{}
	if len(userIDs) > 0 {
		found, err := s.deps.Users.FindByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			users[u.ID] = u
		}
	}

	views := make([]*dto.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, buildOrderView(o, products, users[o.UserID]))
	}
	return views, nil
}

func (s *OrderService) productsFor(ctx context.Context, orders []*model.Order) (map[string]*model.Product, error) {
	idSet := map[primitive.ObjectID]bool{}
	for _, o := range orders {
		for _, item := range o.Items {
			idSet[item.ProductID] = true
		}
	}
	var ids []primitive.ObjectID
	for id := range idSet {
		ids = append(ids, id)
	}
	products := map[string]*model.Product{}
	if len(ids) > 0 {
		found, err := s.deps.Products.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			products[p.ID.Hex()] = p
		}
	}
	return products, nil
}

func buildOrderView(o *model.Order, products map[string]*model.Product, user *model.User) *dto.OrderView {
	view := &dto.OrderView{
		ID:              o.ID.Hex(),
		Total:           o.Total,
		Status:          o.Status,
		StatusHistory:   o.StatusHistory,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		PaymentMethod:   o.PaymentMethod,
		ReferralCode:    o.ReferralCode,
		PNR:             o.PNR,
		CreatedAt:       o.CreatedAt,
	}
	view.User.ID = o.UserID.Hex()
	if user != nil {
		view.User.Email = user.Email
		view.User.Name = user.Name
	}
	for _, item := range o.Items {
		iv := dto.OrderItemView{
			ProductID: item.ProductID.Hex(),
			Quantity:  item.Quantity,
		}
		if item.BundleID != nil {
			iv.BundleID = item.BundleID.Hex()
		}
		if p, ok := products[item.ProductID.Hex()]; ok {
			iv.Name = p.Name
			iv.Price = p.Price
			iv.Image = p.Image
		}
		view.Items = append(view.Items, iv)
	}
	return view
}

func (s *OrderService) notify(ctx context.Context, userID primitive.ObjectID, message string) error {
	return s.deps.Notifications.Insert(ctx, &model.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *OrderService) logActivity(ctx context.Context, userID primitive.ObjectID, action, details string) error {
	return s.deps.Activities.Insert(ctx, &model.Activity{
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
