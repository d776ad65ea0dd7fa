package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fakes en memoria de los repositorios, para testear los servicios sin Mongo.

type fakeProductRepo struct {
	products map[primitive.ObjectID]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[primitive.ObjectID]*model.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Insert(_ context.Context, p *model.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.Product, error) {
	var out []*model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Find(_ context.Context, f repository.ProductFilter) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindRelated(_ context.Context, category string, exclude primitive.ObjectID, limit int64) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range r.products {
		if p.Category == category && p.ID != exclude && int64(len(out)) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindByCategories(_ context.Context, categories []string, exclude []primitive.ObjectID, limit int64) ([]*model.Product, error) {
	excluded := map[primitive.ObjectID]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}
	var out []*model.Product
	for _, p := range r.products {
		if excluded[p.ID] || int64(len(out)) >= limit {
			continue
		}
		for _, c := range categories {
			if p.Category == c {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id primitive.ObjectID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) PullUserReviews(_ context.Context, userID primitive.ObjectID) error {
	for _, p := range r.products {
		var kept []model.Review
		for _, rev := range p.Reviews {
			if rev.UserID != userID {
				kept = append(kept, rev)
			}
		}
		p.Reviews = kept
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*model.Order
}

func newFakeOrderRepo(orders ...*model.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[primitive.ObjectID]*model.Order{}}
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Insert(_ context.Context, o *model.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.orders[o.ID] = o
	return nil
}

// FindByID devuelve una copia desacoplada, como un Decode de Mongo: mutar el
// resultado no toca lo guardado hasta que el caller persista.
func (r *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	cp.Items = append([]model.OrderItem(nil), o.Items...)
	cp.StatusHistory = append([]model.StatusEntry(nil), o.StatusHistory...)
	return &cp, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *model.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return repository.ErrNotFound
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) AppendStatus(_ context.Context, id primitive.ObjectID, status string, entry model.StatusEntry) error {
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, entry)
	return nil
}

func (r *fakeOrderRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	for id, o := range r.orders {
		if o.UserID == userID {
			delete(r.orders, id)
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]*model.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Insert(_ context.Context, u *model.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByReferralCode(_ context.Context, code string) (*model.User, error) {
	for _, u := range r.users {
		if u.ReferralCode == code {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	var out []*model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindAdmins(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		if u.Role == model.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) SetReferralDiscount(_ context.Context, id primitive.ObjectID, value float64) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ReferralDiscount = value
	return nil
}

func (r *fakeUserRepo) AddReferredUser(_ context.Context, referrerID, userID primitive.ObjectID) error {
	u, ok := r.users[referrerID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ReferredUsers = append(u.ReferredUsers, userID)
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeReferralRepo struct {
	referrals []*model.Referral
}

func (r *fakeReferralRepo) Insert(_ context.Context, ref *model.Referral) error {
	if ref.ID.IsZero() {
		ref.ID = primitive.NewObjectID()
	}
	r.referrals = append(r.referrals, ref)
	return nil
}

func (r *fakeReferralRepo) FindPending(_ context.Context, referrerID, refereeID primitive.ObjectID) (*model.Referral, error) {
	for _, ref := range r.referrals {
		if ref.ReferrerID == referrerID && ref.RefereeID == refereeID && ref.Status == model.ReferralPending {
			return ref, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeReferralRepo) FindAll(_ context.Context) ([]*model.Referral, error) {
	return r.referrals, nil
}

func (r *fakeReferralRepo) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	for _, ref := range r.referrals {
		if ref.ID == id {
			ref.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeReferralRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	var kept []*model.Referral
	for _, ref := range r.referrals {
		if ref.ReferrerID != userID && ref.RefereeID != userID {
			kept = append(kept, ref)
		}
	}
	r.referrals = kept
	return nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
}

func (r *fakeNotificationRepo) Insert(_ context.Context, n *model.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) FindUnreadByUser(_ context.Context, userID primitive.ObjectID) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) FindByIDAndUser(_ context.Context, id, userID primitive.ObjectID) (*model.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeNotificationRepo) SetRead(_ context.Context, id primitive.ObjectID, read bool) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = read
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeNotificationRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	var kept []*model.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

func (r *fakeNotificationRepo) forUser(userID primitive.ObjectID) []*model.Notification {
	var out []*model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeActivityRepo struct {
	activities []*model.Activity
}

func (r *fakeActivityRepo) Insert(_ context.Context, a *model.Activity) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.activities = append(r.activities, a)
	return nil
}

func (r *fakeActivityRepo) FindAll(_ context.Context) ([]*model.Activity, error) {
	return r.activities, nil
}

func (r *fakeActivityRepo) FindRecentByUser(_ context.Context, userID primitive.ObjectID, limit int64) ([]*model.Activity, error) {
	var out []*model.Activity
	for _, a := range r.activities {
		if a.UserID == userID && int64(len(out)) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) FindSince(_ context.Context, since time.Time) ([]*model.Activity, error) {
	var out []*model.Activity
	for _, a := range r.activities {
		if !a.Timestamp.Before(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	var kept []*model.Activity
	for _, a := range r.activities {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	r.activities = kept
	return nil
}

type fakeBundleRepo struct {
	bundles map[primitive.ObjectID]*model.Bundle
}

func newFakeBundleRepo(bundles ...*model.Bundle) *fakeBundleRepo {
	r := &fakeBundleRepo{bundles: map[primitive.ObjectID]*model.Bundle{}}
	for _, b := range bundles {
		if b.ID.IsZero() {
			b.ID = primitive.NewObjectID()
		}
		r.bundles[b.ID] = b
	}
	return r
}

func (r *fakeBundleRepo) Insert(_ context.Context, b *model.Bundle) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	r.bundles[b.ID] = b
	return nil
}

func (r *fakeBundleRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Bundle, error) {
	b, ok := r.bundles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (r *fakeBundleRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.Bundle, error) {
	var out []*model.Bundle
	for _, id := range ids {
		if b, ok := r.bundles[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBundleRepo) FindAll(_ context.Context) ([]*model.Bundle, error) {
	var out []*model.Bundle
	for _, b := range r.bundles {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBundleRepo) Update(_ context.Context, b *model.Bundle) error {
	if _, ok := r.bundles[b.ID]; !ok {
		return repository.ErrNotFound
	}
	r.bundles[b.ID] = b
	return nil
}

func (r *fakeBundleRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.bundles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.bundles, id)
	return nil
}

type fakeDiscountRepo struct {
	discounts map[primitive.ObjectID]*model.Discount
}

func newFakeDiscountRepo(discounts ...*model.Discount) *fakeDiscountRepo {
	r := &fakeDiscountRepo{discounts: map[primitive.ObjectID]*model.Discount{}}
	for _, d := range discounts {
		if d.ID.IsZero() {
			d.ID = primitive.NewObjectID()
		}
		r.discounts[d.ID] = d
	}
	return r
}

func (r *fakeDiscountRepo) Insert(_ context.Context, d *model.Discount) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	r.discounts[d.ID] = d
	return nil
}

func (r *fakeDiscountRepo) FindAll(_ context.Context) ([]*model.Discount, error) {
	var out []*model.Discount
	for _, d := range r.discounts {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDiscountRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Discount, error) {
	d, ok := r.discounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (r *fakeDiscountRepo) FindByCode(_ context.Context, code string) (*model.Discount, error) {
	for _, d := range r.discounts {
		if d.Code == code {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDiscountRepo) FindActiveByCode(_ context.Context, code string) (*model.Discount, error) {
	for _, d := range r.discounts {
		if d.Code == code && d.Active {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDiscountRepo) Update(_ context.Context, d *model.Discount) error {
	if _, ok := r.discounts[d.ID]; !ok {
		return repository.ErrNotFound
	}
	r.discounts[d.ID] = d
	return nil
}

func (r *fakeDiscountRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.discounts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.discounts, id)
	return nil
}

type fakeReturnRepo struct {
	returns map[primitive.ObjectID]*model.ReturnRequest
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{returns: map[primitive.ObjectID]*model.ReturnRequest{}}
}

func (r *fakeReturnRepo) Insert(_ context.Context, rr *model.ReturnRequest) error {
	if rr.ID.IsZero() {
		rr.ID = primitive.NewObjectID()
	}
	r.returns[rr.ID] = rr
	return nil
}

func (r *fakeReturnRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.ReturnRequest, error) {
	rr, ok := r.returns[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rr, nil
}

func (r *fakeReturnRepo) FindByOrderAndUser(_ context.Context, orderID, userID primitive.ObjectID) (*model.ReturnRequest, error) {
	for _, rr := range r.returns {
		if rr.OrderID == orderID && rr.UserID == userID {
			return rr, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeReturnRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]*model.ReturnRequest, error) {
	var out []*model.ReturnRequest
	for _, rr := range r.returns {
		if rr.UserID == userID {
			out = append(out, rr)
		}
	}
	return out, nil
}

func (r *fakeReturnRepo) FindAll(_ context.Context) ([]*model.ReturnRequest, error) {
	var out []*model.ReturnRequest
	for _, rr := range r.returns {
		out = append(out, rr)
	}
	return out, nil
}

func (r *fakeReturnRepo) Update(_ context.Context, rr *model.ReturnRequest) error {
	if _, ok := r.returns[rr.ID]; !ok {
		return repository.ErrNotFound
	}
	r.returns[rr.ID] = rr
	return nil
}

// ---- colaboradores externos ----

type fakeMailer struct {
	fail bool
	sent []*dto.OrderView
}

func (m *fakeMailer) SendOrderConfirmation(_ string, order *dto.OrderView) error {
	if m.fail {
		return errors.New("smtp connection refused")
	}
	m.sent = append(m.sent, order)
	return nil
}

type fakeEvents struct {
	published []*model.Order
}

func (e *fakeEvents) OrderPlaced(o *model.Order) {
	e.published = append(e.published, o)
}

type fakePayments struct {
	succeeded map[string]bool
}

func (p *fakePayments) IntentSucceeded(_ context.Context, intentID string) (bool, error) {
	return p.succeeded[intentID], nil
}
