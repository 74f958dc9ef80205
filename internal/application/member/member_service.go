// Package member manages storefront customers and their addresses.
package member

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/member"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"go.uber.org/zap"
)

// MemberService handles member administration
type MemberService struct {
	repo   member.MemberRepository
	logger *zap.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(repo member.MemberRepository, logger *zap.Logger) *MemberService {
	return &MemberService{repo: repo, logger: logger}
}

func (s *MemberService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[member.Member], error) {
	return s.repo.FindPage(ctx, filter)
}

func (s *MemberService) GetByID(ctx context.Context, userID string) (*member.Member, error) {
	return s.repo.FindByID(ctx, userID)
}

// Update applies the admin-editable fields of in to the stored member.
// Account data such as the mobile or registration details is left alone.
func (s *MemberService) Update(ctx context.Context, in member.Member) (*member.Member, error) {
	if in.UserID == "" {
		return nil, shared.InvalidInput("userId is required")
	}
	m, err := s.repo.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	previous := m.Status
	if err := m.ApplyAdminEdit(member.AdminEdit{
		NickName: in.NickName,
		Status:   in.Status,
		Pic:      in.Pic,
		UserMemo: in.UserMemo,
	}); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	if previous != m.Status {
		s.logger.Info("Member status changed",
			zap.String("user_id", m.UserID),
			zap.Int("status", m.Status))
	}
	return m, nil
}

// DeleteBatch removes members together with their addresses
func (s *MemberService) DeleteBatch(ctx context.Context, ids []string) error {
	if err := s.repo.DeleteBatch(ctx, ids); err != nil {
		return err
	}
	s.logger.Info("Members deleted", zap.Strings("user_ids", ids))
	return nil
}

// UserAddrService handles member shipping addresses
type UserAddrService struct {
	repo    member.UserAddrRepository
	members member.MemberRepository
}

// NewUserAddrService creates a new UserAddrService
func NewUserAddrService(repo member.UserAddrRepository, members member.MemberRepository) *UserAddrService {
	return &UserAddrService{repo: repo, members: members}
}

func (s *UserAddrService) Page(ctx context.Context, filter shared.Filter) (shared.Paginated[member.UserAddr], error) {
	return s.repo.FindPage(ctx, filter)
}

func (s *UserAddrService) GetByID(ctx context.Context, id int64) (*member.UserAddr, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores an address. A default address clears the flag on the
// member's other addresses.
func (s *UserAddrService) Create(ctx context.Context, a member.UserAddr) (*member.UserAddr, error) {
	a.AddrID = 0
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.members.FindByID(ctx, a.UserID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update replaces an address
func (s *UserAddrService) Update(ctx context.Context, a member.UserAddr) (*member.UserAddr, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.AddrID == 0 {
		return nil, shared.InvalidInput("Address id is required")
	}
	if err := s.repo.Save(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *UserAddrService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
