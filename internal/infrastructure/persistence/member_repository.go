package persistence

import (
	"context"

	"github.com/Darkingtail/mall4r/internal/domain/member"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMemberRepository implements MemberRepository using GORM.
// Members are keyed by string ids, so only the paging helpers are shared.
type GormMemberRepository struct {
	pages *GormCrudRepository[member.Member]
	db    *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{
		db: db,
		pages: newCrudRepository[member.Member](db, querySpec{
			primaryKey: "user_id",
			filters: map[string]filterFunc{
				"nickName": like("nick_name"),
				"status":   eq("status"),
			},
			defaultOrder: "user_regtime DESC",
		}),
	}
}

// FindByID finds a member by its ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id string) (*member.Member, error) {
	var m member.Member
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// FindPage finds one page of members
func (r *GormMemberRepository) FindPage(ctx context.Context, filter shared.Filter) (shared.Paginated[member.Member], error) {
	return r.pages.FindPage(ctx, filter)
}

// Update saves the admin-editable columns of a member
func (r *GormMemberRepository) Update(ctx context.Context, m *member.Member) error {
	result := r.db.WithContext(ctx).Model(&member.Member{}).
		Where("user_id = ?", m.UserID).
		Updates(map[string]interface{}{
			"nick_name": m.NickName,
			"status":    m.Status,
			"pic":       m.Pic,
			"user_memo": m.UserMemo,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBatch deletes members and their addresses
func (r *GormMemberRepository) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id IN ?", ids).Delete(&member.UserAddr{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id IN ?", ids).Delete(&member.Member{}).Error
	})
}

// GormUserAddrRepository implements UserAddrRepository using GORM
type GormUserAddrRepository struct {
	*GormCrudRepository[member.UserAddr]
}

// NewGormUserAddrRepository creates a new GormUserAddrRepository
func NewGormUserAddrRepository(db *gorm.DB) *GormUserAddrRepository {
	return &GormUserAddrRepository{newCrudRepository[member.UserAddr](db, querySpec{
		primaryKey: "addr_id",
		filters: map[string]filterFunc{
			"userId": eq("user_id"),
		},
		defaultOrder: "common_addr DESC, addr_id DESC",
		immutable:    []string{"create_time"},
	})}
}

// ClearCommon unsets the default flag on the member's other addresses
func (r *GormUserAddrRepository) ClearCommon(ctx context.Context, userID string, exceptAddrID int64) error {
	return clearCommonAddr(r.db.WithContext(ctx), userID, exceptAddrID)
}

// Save writes the address and, for a default address, clears the flag on
// the member's other addresses in one transaction
func (r *GormUserAddrRepository) Save(ctx context.Context, a *member.UserAddr) error {
	return r.transaction(ctx, func(tx *gorm.DB) error {
		if a.AddrID == 0 {
			if err := tx.Omit(clause.Associations).Create(a).Error; err != nil {
				return err
			}
		} else if err := r.update(tx, a); err != nil {
			return err
		}
		if a.CommonAddr != 1 {
			return nil
		}
		return clearCommonAddr(tx, a.UserID, a.AddrID)
	})
}

func clearCommonAddr(db *gorm.DB, userID string, exceptAddrID int64) error {
	return db.Model(&member.UserAddr{}).
		Where("user_id = ? AND addr_id <> ? AND common_addr = ?", userID, exceptAddrID, 1).
		Update("common_addr", 0).Error
}

var (
	_ member.MemberRepository   = (*GormMemberRepository)(nil)
	_ member.UserAddrRepository = (*GormUserAddrRepository)(nil)
)
