package service

import (
	"context"
	"fmt"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users         UserRepository
	referrals     ReferralRepository
	orders        OrderRepository
	notifications NotificationRepository
	activities    ActivityRepository
	products      ProductRepository
	auth          *AuthService
}

func NewUserService(users UserRepository, referrals ReferralRepository, orders OrderRepository,
	notifications NotificationRepository, activities ActivityRepository, products ProductRepository,
	auth *AuthService) *UserService {
	return &UserService{
		users:         users,
		referrals:     referrals,
		orders:        orders,
		notifications: notifications,
		activities:    activities,
		products:      products,
		auth:          auth,
	}
}

// Register da de alta al usuario y, si vino un código de referido válido,
// crea el Referral pendiente y engancha al nuevo usuario con su referente.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrUserExists
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.NewUser(req.Name, req.Email, string(hashed))
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	if req.ReferralCode != "" {
		referrer, err := s.users.FindByReferralCode(ctx, req.ReferralCode)
		if err == nil {
			ref := &model.Referral{
				ReferrerID:   referrer.ID,
				RefereeID:    user.ID,
				ReferralCode: req.ReferralCode,
				Status:       model.ReferralPending,
				CreatedAt:    time.Now().UTC(),
			}
			if err := s.referrals.Insert(ctx, ref); err != nil {
				return nil, err
			}
			if err := s.users.AddReferredUser(ctx, referrer.ID, user.ID); err != nil {
				return nil, err
			}
		} else if err != repository.ErrNotFound {
			return nil, err
		}
		// código desconocido: se registra igual, sin referido
	}

	return s.authResponse(user)
}

func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err == repository.ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	err = s.activities.Insert(ctx, &model.Activity{
		UserID:    user.ID,
		Action:    "Login",
		Details:   "User logged in",
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return s.authResponse(user)
}

func (s *UserService) authResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User: dto.UserSummary{
			ID:           user.ID.Hex(),
			Name:         user.Name,
			Email:        user.Email,
			Role:         user.Role,
			ReferralCode: user.ReferralCode,
		},
	}, nil
}

func (s *UserService) Profile(ctx context.Context, userID primitive.ObjectID) (*dto.ProfileView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.profileView(ctx, user)
}

func (s *UserService) profileView(ctx context.Context, user *model.User) (*dto.ProfileView, error) {
	view := &dto.ProfileView{
		ID:               user.ID.Hex(),
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		ReferralCode:     user.ReferralCode,
		ReferralDiscount: user.ReferralDiscount,
		ReferredUsers:    []dto.ReferredUser{},
		CreatedAt:        user.CreatedAt,
	}
	if len(user.ReferredUsers) > 0 {
		referred, err := s.users.FindByIDs(ctx, user.ReferredUsers)
		if err != nil {
			return nil, err
		}
		for _, r := range referred {
			view.ReferredUsers = append(view.ReferredUsers, dto.ReferredUser{
				ID:    r.ID.Hex(),
				Name:  r.Name,
				Email: r.Email,
			})
		}
	}
	return view, nil
}

// UpdateProfile cambia sólo los campos presentes en el request.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req dto.UpdateProfileRequest) (*dto.ProfileView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.profileView(ctx, user)
}

// ApplyReferralDiscount consume el saldo ganado por referidos: valida que
// haya saldo, lo resetea a cero y deja la actividad registrada. Devuelve el
// porcentaje consumido.
func (s *UserService) ApplyReferralDiscount(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	if user.ReferralDiscount <= 0 {
		return 0, ErrNoReferralDiscount
	}

	discount := user.ReferralDiscount
	if err := s.users.SetReferralDiscount(ctx, userID, 0); err != nil {
		return 0, err
	}
	err = s.activities.Insert(ctx, &model.Activity{
		UserID:    userID,
		Action:    "Referral Discount Applied",
		Details:   fmt.Sprintf("Applied %.0f%% discount to next order", discount),
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}
	return discount, nil
}

// ---- administración ----

func (s *UserService) GetAll(ctx context.Context) ([]*model.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) AdminUpdate(ctx context.Context, id primitive.ObjectID, req dto.AdminUpdateUserRequest) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) AdminDelete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.users.Delete(ctx, id); err == repository.ErrNotFound {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}
	return nil
}

// DeleteAccount borra la cuenta y arrastra todo lo asociado: órdenes,
// notificaciones, actividades, referidos y reseñas embebidas. Las borradas
// son secuenciales y sin transacción.
func (s *UserService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.users.FindByID(ctx, userID); err == repository.ErrNotFound {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.orders.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.notifications.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.activities.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.referrals.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return s.products.PullUserReviews(ctx, userID)
}

// Referrals lista todos los referidos con referente y referido populados
// (panel admin).
func (s *UserService) Referrals(ctx context.Context) ([]*dto.ReferralView, error) {
	refs, err := s.referrals.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	idSet := map[primitive.ObjectID]bool{}
	for _, r := range refs {
		idSet[r.ReferrerID] = true
		idSet[r.RefereeID] = true
	}
	var ids []primitive.ObjectID
	for id := range idSet {
		ids = append(ids, id)
	}
	users := map[primitive.ObjectID]*model.User{}
	if len(ids) > 0 {
		found, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			users[u.ID] = u
		}
	}

	views := make([]*dto.ReferralView, 0, len(refs))
	for _, r := range refs {
		v := &dto.ReferralView{
			ID:        r.ID.Hex(),
			Code:      r.ReferralCode,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		}
		if u, ok := users[r.ReferrerID]; ok {
			v.Referrer = dto.ReferredUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
		}
		if u, ok := users[r.RefereeID]; ok {
			v.Referee = dto.ReferredUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
		}
		views = append(views, v)
	}
	return views, nil
}
