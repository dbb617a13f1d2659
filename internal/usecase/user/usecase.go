package user

import (
	"context"
	"errors"
	"strings"

	"contract-approval/internal/domain/ledger"
	domain "contract-approval/internal/domain/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

var ErrMissingFields = errors.New("username, email and password are required")

type Usecase struct {
	repo   domain.Repository
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewUsecase(repo domain.Repository, tokens *TokenIssuer, logger *zap.Logger) *Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Usecase{repo: repo, tokens: tokens, logger: logger}
}

func normalize(username, email string) (string, string) {
	return strings.ToLower(strings.TrimSpace(username)), strings.ToLower(strings.TrimSpace(email))
}

// Register creates a pending account with no blockchain addresses.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	username, email := normalize(in.Username, in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	_, err := u.repo.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return nil, domain.ErrAlreadyExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	usr := domain.New(username, email, string(hash), domain.RolePending)
	if err := u.repo.Create(ctx, usr); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	u.logger.Info("user registered", zap.String("user_id", usr.ID), zap.String("username", usr.Username))
	dto := toDTO(usr)
	return &dto, nil
}

// Login requires username and email to belong to the same account.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (string, error) {
	username, email := normalize(in.Username, in.Email)
	if username == "" || email == "" || in.Password == "" {
		return "", ErrMissingFields
	}
	usr, err := u.repo.FindByUsernameAndEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return u.tokens.Issue(usr)
}

func (u *Usecase) ListPending(ctx context.Context) ([]UserDTO, error) {
	rows, err := u.repo.ListByRole(ctx, domain.RolePending)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

// ApproveUser moves a pending account to a working role. Addresses, when given,
// replace the account's blockchain addresses; they are not added to the ledger roster.
func (u *Usecase) ApproveUser(ctx context.Context, in ApproveUserInput) (*UserDTO, error) {
	if !in.Role.Assignable() {
		return nil, domain.ErrInvalidRole
	}
	addrs := make([]string, 0, len(in.Addresses))
	for _, raw := range in.Addresses {
		a, err := ledger.ParseIdentity(raw)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, ledger.IdentityKey(a))
	}

	usr, err := u.repo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if usr.Role != domain.RolePending {
		return nil, domain.ErrAlreadyApproved
	}
	usr.Role = in.Role
	usr.ApprovedBy = in.ApprovedBy
	if len(addrs) > 0 {
		usr.BlockchainAddresses = addrs
	}
	if err := u.repo.Save(ctx, usr); err != nil {
		return nil, err
	}
	u.logger.Info("user approved", zap.String("user_id", usr.ID), zap.String("role", string(usr.Role)),
		zap.String("approved_by", usr.ApprovedBy))
	dto := toDTO(usr)
	return &dto, nil
}

// SeedAdmin creates the admin account once; an existing username is left untouched.
func (u *Usecase) SeedAdmin(ctx context.Context, username, email, password string) (created bool, err error) {
	username, email = normalize(username, email)
	if username == "" || email == "" || password == "" {
		return false, ErrMissingFields
	}
	if _, err := u.repo.FindByUsername(ctx, username); err == nil {
		u.logger.Info("admin user already exists", zap.String("username", username))
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return false, err
	}
	if err := u.repo.Create(ctx, domain.New(username, email, string(hash), domain.RoleAdmin)); err != nil {
		return false, err
	}
	u.logger.Info("admin user created", zap.String("username", username))
	return true, nil
}
