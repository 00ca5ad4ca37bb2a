package services

import (
	"context"

	"github.com/google/uuid"

	"formloom/internal/models/request_models"
	"formloom/internal/models/response_models"
	"formloom/internal/questions"
	"formloom/internal/repositories"
	"formloom/pkg/utils"
)

type AdminServiceInterface interface {
	ListUsers(ctx context.Context, request request_models.ListUsersRequest) (*response_models.PagedUsers, error)
	// UpdateUser changes plan/activation; role changes need super_admin.
	UpdateUser(ctx context.Context, access questions.AccessContext, id uuid.UUID, request request_models.UpdateUserRequest) (*response_models.AccountResponse, error)
	DeleteUser(ctx context.Context, access questions.AccessContext, id uuid.UUID) error
}

type AdminService struct {
	accountRepo repositories.AccountRepository
}

func NewAdminService(accountRepo repositories.AccountRepository) AdminServiceInterface {
	return &AdminService{accountRepo: accountRepo}
}

func (s *AdminService) ListUsers(ctx context.Context, request request_models.ListUsersRequest) (*response_models.PagedUsers, error) {
	page := request.Page
	if page < 1 {
		page = 1
	}
	pageSize := request.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	accounts, total, err := s.accountRepo.List(ctx, request.Search, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}

	users := make([]response_models.AccountResponse, len(accounts))
	for i := range accounts {
		users[i] = toAccountResponse(&accounts[i])
	}
	return &response_models.PagedUsers{
		Users:    users,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, access questions.AccessContext, id uuid.UUID, request request_models.UpdateUserRequest) (*response_models.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if account == nil {
		return nil, utils.NotFoundError("User not found")
	}

	fields := map[string]interface{}{}
	if request.Role != nil {
		if access.Role != questions.RoleSuperAdmin {
			return nil, utils.ForbiddenError("Only a super admin may change roles")
		}
		switch questions.Role(*request.Role) {
		case questions.RoleUser, questions.RoleAdmin, questions.RoleSuperAdmin:
		default:
			return nil, utils.ValidationError("Unknown role: " + *request.Role)
		}
		fields["role"] = *request.Role
	}
	if request.Plan != nil {
		switch questions.Plan(*request.Plan) {
		case questions.PlanFree, questions.PlanPro, questions.PlanBusiness:
		default:
			return nil, utils.ValidationError("Unknown plan: " + *request.Plan)
		}
		fields["plan"] = *request.Plan
	}
	if request.IsActive != nil {
		fields["is_active"] = *request.IsActive
	}
	if len(fields) == 0 {
		return nil, utils.ValidationError("Nothing to update")
	}

	if err := s.accountRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, utils.DatabaseError(err)
	}

	updated, err := s.accountRepo.FindByID(ctx, id)
	if err != nil || updated == nil {
		return nil, utils.DatabaseError(err)
	}
	resp := toAccountResponse(updated)
	return &resp, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, access questions.AccessContext, id uuid.UUID) error {
	if id == access.UserID {
		return utils.ValidationError("You cannot delete your own account")
	}
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if account == nil {
		return utils.NotFoundError("User not found")
	}
	if account.Role == string(questions.RoleSuperAdmin) && access.Role != questions.RoleSuperAdmin {
		return utils.ForbiddenError("Only a super admin may delete a super admin")
	}
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return utils.DatabaseError(err)
	}
	return nil
}
