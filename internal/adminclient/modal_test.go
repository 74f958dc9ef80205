package adminclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Darkingtail/mall4r/internal/domain/marketing"
	"github.com/Darkingtail/mall4r/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNoticeStore struct {
	mock.Mock
}

func (m *mockNoticeStore) GetByID(ctx context.Context, id int64) (*marketing.Notice, error) {
	args := m.Called(ctx, id)
	if n, ok := args.Get(0).(*marketing.Notice); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoticeStore) Add(ctx context.Context, n marketing.Notice) (*marketing.Notice, error) {
	args := m.Called(ctx, n)
	if out, ok := args.Get(0).(*marketing.Notice); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoticeStore) Update(ctx context.Context, n marketing.Notice) (*marketing.Notice, error) {
	args := m.Called(ctx, n)
	if out, ok := args.Get(0).(*marketing.Notice); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestModal_Add(t *testing.T) {
	ctx := context.Background()
	store := new(mockNoticeStore)
	modal := NewModal[marketing.Notice](store, NoticeRules, nil, nil)

	refetched := 0
	modal.OnSuccess = func(context.Context) error {
		refetched++
		return nil
	}

	require.NoError(t, modal.Open(ctx, ModeAdd, 0))
	assert.True(t, modal.State().Visible)

	modal.Edit(func(n *marketing.Notice) { n.Status = 3 })
	_, err := modal.Submit(ctx)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title is required", verr.Fields["title"])
	assert.Equal(t, "status must be one of 0 1", verr.Fields["status"])
	store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	assert.Zero(t, refetched)

	modal.Edit(func(n *marketing.Notice) {
		n.Title = "Holiday hours"
		n.Status = 1
	})
	store.On("Add", ctx, mock.MatchedBy(func(n marketing.Notice) bool { return n.Title == "Holiday hours" })).
		Return(&marketing.Notice{ID: 7, Title: "Holiday hours", Status: 1}, nil).Once()

	saved, err := modal.Submit(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 7, saved.ID)
	assert.False(t, modal.State().Visible)
	assert.Empty(t, modal.State().FieldErrors)
	assert.Equal(t, 1, refetched)
	store.AssertExpectations(t)
}

func TestModal_Update(t *testing.T) {
	ctx := context.Background()
	store := new(mockNoticeStore)
	modal := NewModal[marketing.Notice](store, NoticeRules, nil, nil)

	stored := &marketing.Notice{ID: 3, Title: "Old", Content: "body", Status: 1, IsTop: 1}
	store.On("GetByID", ctx, int64(3)).Return(stored, nil)

	require.NoError(t, modal.Open(ctx, ModeUpdate, 3))
	assert.Equal(t, ModeUpdate, modal.State().Mode)
	modal.Edit(func(n *marketing.Notice) { n.Title = "New" })

	t.Run("the full snapshot is sent", func(t *testing.T) {
		want := *stored
		want.Title = "New"
		store.On("Update", ctx, want).Return(nil, &APIError{
			Status:  http.StatusBadRequest,
			Code:    dto.ErrCodeValidation,
			Message: "Validation failed",
			Details: []dto.ValidationDetail{{Field: "content", Message: "too long"}},
		}).Once()

		_, err := modal.Submit(ctx)
		require.Error(t, err)
		state := modal.State()
		assert.True(t, state.Visible, "a server error keeps the modal open")
		assert.Equal(t, "Validation failed", state.Toast)
		assert.Equal(t, "too long", state.FieldErrors["content"])

		store.On("Update", ctx, want).Return(&want, nil).Once()
		_, err = modal.Submit(ctx)
		require.NoError(t, err)
		assert.False(t, modal.State().Visible)
		assert.Empty(t, modal.State().Toast)
	})

	t.Run("a failed load keeps the modal closed", func(t *testing.T) {
		store.On("GetByID", ctx, int64(404)).Return(nil, &APIError{Status: http.StatusNotFound, Message: "Notice not found"})
		assert.Error(t, modal.Open(ctx, ModeUpdate, 404))
		state := modal.State()
		assert.False(t, state.Visible)
		assert.Equal(t, "Notice not found", state.Toast)
	})
}

func TestRows(t *testing.T) {
	var rows Rows[string]
	rows.Reset([]string{"a", "b"})
	assert.Equal(t, 2, rows.Append("c"))
	require.NoError(t, rows.Edit(1, func(s *string) { *s = "B" }))
	require.NoError(t, rows.Remove(0))
	assert.Equal(t, []string{"B", "c"}, rows.Items())
	assert.Error(t, rows.Remove(5))
	assert.Error(t, rows.Edit(-1, func(*string) {}))

	items := rows.Items()
	items[0] = "changed"
	assert.Equal(t, "B", rows.Items()[0], "Items returns a copy")
}

func TestSysUserFormRules(t *testing.T) {
	v := newFormValidator[SysUserForm](nil)
	err := v.Struct(SysUserForm{Username: "a", Email: "nope", Status: 1})
	require.Error(t, err)

	m := &Modal[SysUserForm]{validate: v}
	fields := m.check(SysUserForm{Username: "a", Email: "nope", Status: 1})
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.NotContains(t, fields, "password", "an empty password keeps the stored one")
}

func TestCompositeModals_StayClosedWhenListsFail(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/listByPid") || strings.HasSuffix(r.URL.Path, "/list") {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"` + dto.ErrCodeInternal + `","message":"database is down"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	api := NewAPI(c)

	pick := NewPickAddrModal(api, nil)
	require.Error(t, pick.Open(ctx, ModeAdd, 0))
	assert.False(t, pick.State().Visible)
	assert.NotEmpty(t, pick.State().Toast)

	users := NewSysUserModal(api, nil)
	require.Error(t, users.Open(ctx, ModeUpdate, 3))
	assert.False(t, users.State().Visible, "the operator loaded but the roles did not")
}
