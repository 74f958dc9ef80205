package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Darkingtail/mall4r/internal/domain/member"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormMemberRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	members := NewGormMemberRepository(db)
	addrs := NewGormUserAddrRepository(db)

	require.NoError(t, db.Create(&member.Member{UserID: "u1", NickName: "alice", Status: 1, Score: 10}).Error)
	require.NoError(t, db.Create(&member.Member{UserID: "u2", NickName: "bob", Status: 0}).Error)

	page, err := members.FindPage(ctx, shared.DefaultFilter().With("status", 1))
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "alice", page.Records[0].NickName)

	m, err := members.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, m.ApplyAdminEdit(member.AdminEdit{NickName: "alice2", Status: 0}))
	require.NoError(t, members.Update(ctx, m))
	m, err = members.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice2", m.NickName)
	assert.Equal(t, 10, m.Score)

	assert.ErrorIs(t, members.Update(ctx, &member.Member{UserID: "nobody", NickName: "x"}), shared.ErrNotFound)

	t.Run("clearing the default address", func(t *testing.T) {
		a1 := &member.UserAddr{UserID: "u1", Receiver: "A", Addr: "1", Mobile: "13800000000", CommonAddr: 1}
		a2 := &member.UserAddr{UserID: "u1", Receiver: "B", Addr: "2", Mobile: "13800000000", CommonAddr: 1}
		a3 := &member.UserAddr{UserID: "u2", Receiver: "C", Addr: "3", Mobile: "13800000000", CommonAddr: 1}
		for _, a := range []*member.UserAddr{a1, a2, a3} {
			require.NoError(t, addrs.Create(ctx, a))
		}
		require.NoError(t, addrs.ClearCommon(ctx, "u1", a2.AddrID))

		got, err := addrs.FindByID(ctx, a1.AddrID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.CommonAddr)
		got, err = addrs.FindByID(ctx, a2.AddrID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.CommonAddr)
		got, err = addrs.FindByID(ctx, a3.AddrID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.CommonAddr, "other members untouched")
	})

	t.Run("batch delete removes addresses", func(t *testing.T) {
		require.NoError(t, members.DeleteBatch(ctx, []string{"u1"}))
		_, err := members.FindByID(ctx, "u1")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, int64(1), countRows(t, db, &member.UserAddr{}))
	})
}

func TestGormUserAddrRepository_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("a default address clears the others in the same write", func(t *testing.T) {
		addrs := NewGormUserAddrRepository(newTestDB(t))
		first := &member.UserAddr{UserID: "u1", Receiver: "A", Addr: "1", Mobile: "13800000000", CommonAddr: 1}
		require.NoError(t, addrs.Save(ctx, first))
		require.NotZero(t, first.AddrID)

		second := &member.UserAddr{UserID: "u1", Receiver: "B", Addr: "2", Mobile: "13800000000", CommonAddr: 1}
		require.NoError(t, addrs.Save(ctx, second))
		got, err := addrs.FindByID(ctx, first.AddrID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.CommonAddr)

		first.CommonAddr = 1
		require.NoError(t, addrs.Save(ctx, first))
		got, err = addrs.FindByID(ctx, second.AddrID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.CommonAddr)

		missing := &member.UserAddr{AddrID: 999, UserID: "u1", Receiver: "C", Addr: "3", Mobile: "1"}
		assert.ErrorIs(t, addrs.Save(ctx, missing), shared.ErrNotFound)
	})

	t.Run("rolls back the insert when clearing fails", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()
		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}),
			&gorm.Config{SkipDefaultTransaction: true})
		require.NoError(t, err)
		addrs := NewGormUserAddrRepository(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "tz_user_addr"`).
			WillReturnRows(sqlmock.NewRows([]string{"addr_id"}).AddRow(5))
		mock.ExpectExec(`UPDATE "tz_user_addr" SET "common_addr"`).
			WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		a := &member.UserAddr{UserID: "u1", Receiver: "A", Addr: "1", Mobile: "13800000000", CommonAddr: 1}
		assert.Error(t, addrs.Save(ctx, a))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)

	addr := &trade.UserAddrOrder{Receiver: "alice", Addr: "road 1", Mobile: "13800000000"}
	require.NoError(t, db.Create(addr).Error)
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	orders := []trade.Order{
		{OrderNumber: "N1", Status: trade.OrderToShip, IsPayed: 1, Total: decimal.NewFromInt(30), AddrOrderID: addr.AddrOrderID, CreateTime: created},
		{OrderNumber: "N2", Status: trade.OrderUnpaid, Total: decimal.NewFromInt(12), CreateTime: created.AddDate(0, 1, 0)},
	}
	for i := range orders {
		require.NoError(t, db.Create(&orders[i]).Error)
	}
	require.NoError(t, db.Create(&trade.OrderItem{OrderNumber: "N1", ProdName: "Phone", ProdCount: 2}).Error)

	t.Run("page filters and loads items", func(t *testing.T) {
		page, err := repo.FindPage(ctx, shared.DefaultFilter().
			With("startTime", "2024-03-01 00:00:00").
			With("endTime", "2024-03-31 23:59:59"))
		require.NoError(t, err)
		require.Len(t, page.Records, 1)
		assert.Equal(t, "N1", page.Records[0].OrderNumber)
		assert.Len(t, page.Records[0].OrderItems, 1)

		page, err = repo.FindPage(ctx, shared.DefaultFilter().With("isPayed", 0))
		require.NoError(t, err)
		require.Len(t, page.Records, 1)
		assert.Equal(t, "N2", page.Records[0].OrderNumber)
	})

	t.Run("order info carries items and address", func(t *testing.T) {
		o, err := repo.FindByNumber(ctx, "N1")
		require.NoError(t, err)
		assert.Len(t, o.OrderItems, 1)
		require.NotNil(t, o.UserAddrOrder)
		assert.Equal(t, "alice", o.UserAddrOrder.Receiver)

		_, err = repo.FindByNumber(ctx, "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delivery only applies once", func(t *testing.T) {
		o, err := repo.FindByNumber(ctx, "N1")
		require.NoError(t, err)
		require.NoError(t, o.Deliver(1, "SF1", time.Now()))
		require.NoError(t, repo.SaveDelivery(ctx, o))

		stale := orders[0]
		stale.OrderID = o.OrderID
		require.NoError(t, stale.Deliver(2, "ZT2", time.Now()))
		assert.ErrorIs(t, repo.SaveDelivery(ctx, &stale), shared.ErrInvalidState)

		got, err := repo.FindByNumber(ctx, "N1")
		require.NoError(t, err)
		assert.Equal(t, trade.OrderShipped, got.Status)
		assert.Equal(t, "SF1", got.DvyFlowID)
	})
}
