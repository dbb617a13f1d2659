package user

import domain "contract-approval/internal/domain/user"

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

type ApproveUserInput struct {
	UserID    string
	Role      domain.Role
	Addresses []string
	// ApprovedBy is the admin's user id, taken from the bearer token.
	ApprovedBy string
}

type UserDTO struct {
	ID                  string   `json:"id"`
	Username            string   `json:"username"`
	Email               string   `json:"email"`
	Role                string   `json:"role"`
	BlockchainAddresses []string `json:"blockchainAddresses"`
	ApprovedBy          string   `json:"approvedBy,omitempty"`
}

func toDTO(u *domain.User) UserDTO {
	addrs := u.BlockchainAddresses
	if addrs == nil {
		addrs = []string{}
	}
	return UserDTO{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Role:                string(u.Role),
		BlockchainAddresses: addrs,
	}
}
