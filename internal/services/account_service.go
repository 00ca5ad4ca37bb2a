package services

import (
	"context"

	"github.com/google/uuid"

	"formloom/internal/models/db_models"
	"formloom/internal/models/request_models"
	"formloom/internal/models/response_models"
	"formloom/internal/questions"
	"formloom/internal/repositories"
	"formloom/pkg/utils"
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, request request_models.UpdateProfileRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{accountRepo: accountRepo}
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if existing != nil {
		return utils.ConflictError("An account with this email already exists")
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.DatabaseError(err)
	}

	account := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashed,
		Role:         string(questions.RoleUser),
		Plan:         string(questions.PlanFree),
		IsActive:     true,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return utils.DatabaseError(err)
	}
	return nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if account == nil {
		return nil, utils.UnauthorizedError("Invalid email or password")
	}
	if !account.IsActive {
		return nil, utils.ForbiddenError("This account has been deactivated")
	}
	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.UnauthorizedError("Invalid email or password")
	}

	token, err := utils.CreateToken(account.ID, account.Role, account.Plan)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}

	return &response_models.LoginResponse{
		Token:   token,
		Account: toAccountResponse(account),
	}, nil
}

func (a *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if account == nil {
		return nil, utils.NotFoundError("Account not found")
	}
	resp := toAccountResponse(account)
	return &resp, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, id uuid.UUID, request request_models.UpdateProfileRequest) error {
	fields := map[string]interface{}{}
	if request.DisplayName != nil {
		fields["name"] = *request.DisplayName
	}
	if len(fields) == 0 {
		return utils.ValidationError("Nothing to update")
	}
	if err := a.accountRepo.UpdateFields(ctx, id, fields); err != nil {
		return utils.DatabaseError(err)
	}
	return nil
}

func toAccountResponse(account *db_models.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:       account.ID,
		Name:     account.Name,
		Email:    account.Email,
		Role:     account.Role,
		Plan:     account.Plan,
		IsActive: account.IsActive,
		JoinedAt: account.CreatedAt,
	}
}
