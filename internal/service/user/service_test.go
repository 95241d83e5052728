package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tribeLeadID = "01900000-0000-7000-8000-000000000001"
	leadAID     = "01900000-0000-7000-8000-000000000002"
	leadBID     = "01900000-0000-7000-8000-000000000003"
	reporterID  = "01900000-0000-7000-8000-000000000004"
)

var now = time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

func seedUsers() []user.User {
	return []user.User{
		{ID: tribeLeadID, Email: "tl@example.com", Name: "Tara", Role: user.RoleTribeLead},
		{ID: leadAID, Email: "a@example.com", Name: "Alice", Role: user.RoleChapterLead},
		{ID: leadBID, Email: "b@example.com", Name: "Bob", Role: user.RoleChapterLead},
		{ID: reporterID, Email: "r@example.com", Name: "Rita", Role: user.RoleReporter, ChapterLeadID: ptr(leadAID), IsFirstLogin: true},
	}
}

func setup(t *testing.T) (user.UserService, *memory.Users) {
	t.Helper()
	repo := memory.NewUsers(seedUsers()...)
	return NewUserService(memory.Transactor{}, repo), repo
}

func sessionOf(t *testing.T, repo *memory.Users, id string) user.Session {
	t.Helper()
	u, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return user.NewSession(u, now)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("tribe lead creates reporter", func(t *testing.T) {
		svc, repo := setup(t)
		resp, err := svc.Create(ctx, sessionOf(t, repo, tribeLeadID), user.CreateUserRequest{
			Email:         " New@Example.com ",
			Name:          "Nina",
			Password:      "password123",
			Role:          "reporter",
			ChapterLeadID: ptr(leadBID),
		})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", resp.Email)
		assert.Equal(t, "REPORTER", resp.Role)
		assert.True(t, resp.IsFirstLogin)

		stored, err := repo.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.PasswordHash)
		assert.NotEqual(t, "password123", *stored.PasswordHash)
	})

	t.Run("chapter lead without delegation is rejected", func(t *testing.T) {
		svc, repo := setup(t)
		_, err := svc.Create(ctx, sessionOf(t, repo, leadAID), user.CreateUserRequest{
			Email: "x@example.com", Name: "X", Password: "password123", Role: "CHAPTER_LEAD",
		})
		assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
	})

	t.Run("delegated chapter lead may create", func(t *testing.T) {
		svc, repo := setup(t)
		s := sessionOf(t, repo, leadAID)
		s.Permissions.Add(user.DelegatedPermissions...)
		s.Delegated = true
		_, err := svc.Create(ctx, s, user.CreateUserRequest{
			Email: "x@example.com", Name: "X", Password: "password123", Role: "CHAPTER_LEAD",
		})
		assert.NoError(t, err)
	})

	cases := []struct {
		name string
		req  user.CreateUserRequest
		want error
	}{
		{
			name: "duplicate email",
			req:  user.CreateUserRequest{Email: "A@example.com", Name: "Dup", Password: "password123", Role: "CHAPTER_LEAD"},
			want: user.ErrUserEmailExists,
		},
		{
			name: "reporter without lead",
			req:  user.CreateUserRequest{Email: "n@example.com", Name: "N", Password: "password123", Role: "REPORTER"},
			want: user.ErrReporterNeedsLead,
		},
		{
			name: "reporter under a reporter",
			req:  user.CreateUserRequest{Email: "n@example.com", Name: "N", Password: "password123", Role: "REPORTER", ChapterLeadID: ptr(reporterID)},
			want: user.ErrReporterNeedsLead,
		},
		{
			name: "lead with a lead",
			req:  user.CreateUserRequest{Email: "n@example.com", Name: "N", Password: "password123", Role: "CHAPTER_LEAD", ChapterLeadID: ptr(leadAID)},
			want: user.ErrLeadCannotHaveLead,
		},
		{
			name: "second tribe lead",
			req:  user.CreateUserRequest{Email: "n@example.com", Name: "N", Password: "password123", Role: "TRIBE_LEAD"},
			want: user.ErrTribeLeadExists,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc, repo := setup(t)
			_, err := svc.Create(ctx, sessionOf(t, repo, tribeLeadID), c.req)
			assert.ErrorIs(t, err, c.want)
		})
	}

	t.Run("field validation", func(t *testing.T) {
		svc, repo := setup(t)
		_, err := svc.Create(ctx, sessionOf(t, repo, tribeLeadID), user.CreateUserRequest{Email: "bad", Password: "short"})
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("reporter edits own name", func(t *testing.T) {
		svc, repo := setup(t)
		resp, err := svc.Update(ctx, sessionOf(t, repo, reporterID), user.UpdateUserRequest{ID: reporterID, Name: ptr("Rita R.")})
		require.NoError(t, err)
		assert.Equal(t, "Rita R.", resp.Name)
		assert.Equal(t, leadAID, *resp.ChapterLeadID)
	})

	t.Run("reporter cannot edit others", func(t *testing.T) {
		svc, repo := setup(t)
		_, err := svc.Update(ctx, sessionOf(t, repo, reporterID), user.UpdateUserRequest{ID: leadAID, Name: ptr("X")})
		assert.ErrorIs(t, err, user.ErrCannotEditUser)
	})

	t.Run("reporter cannot change own role", func(t *testing.T) {
		svc, repo := setup(t)
		_, err := svc.Update(ctx, sessionOf(t, repo, reporterID), user.UpdateUserRequest{ID: reporterID, Role: ptr("CHAPTER_LEAD")})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	})

	t.Run("move reporter to another chapter", func(t *testing.T) {
		svc, repo := setup(t)
		resp, err := svc.Update(ctx, sessionOf(t, repo, tribeLeadID), user.UpdateUserRequest{ID: reporterID, ChapterLeadID: ptr(leadBID)})
		require.NoError(t, err)
		assert.Equal(t, leadBID, *resp.ChapterLeadID)
	})

	t.Run("promote reporter clears chapter lead", func(t *testing.T) {
		svc, repo := setup(t)
		resp, err := svc.Update(ctx, sessionOf(t, repo, tribeLeadID), user.UpdateUserRequest{ID: reporterID, Role: ptr("CHAPTER_LEAD")})
		require.NoError(t, err)
		assert.Equal(t, "CHAPTER_LEAD", resp.Role)
		assert.Nil(t, resp.ChapterLeadID)
	})

	t.Run("demoting lead with reporters", func(t *testing.T) {
		svc, repo := setup(t)
		_, err := svc.Update(ctx, sessionOf(t, repo, tribeLeadID), user.UpdateUserRequest{
			ID: leadAID, Role: ptr("REPORTER"), ChapterLeadID: ptr(leadBID),
		})
		assert.ErrorIs(t, err, user.ErrChapterLeadHasReports)
	})

	t.Run("demoting the tribe lead", func(t *testing.T) {
		svc, repo := setup(t)
		_, err := svc.Update(ctx, sessionOf(t, repo, tribeLeadID), user.UpdateUserRequest{ID: tribeLeadID, Role: ptr("CHAPTER_LEAD")})
		assert.ErrorIs(t, err, user.ErrTribeLeadRequired)
	})

	t.Run("email taken", func(t *testing.T) {
		svc, repo := setup(t)
		_, err := svc.Update(ctx, sessionOf(t, repo, reporterID), user.UpdateUserRequest{ID: reporterID, Email: ptr("a@example.com")})
		assert.ErrorIs(t, err, user.ErrUserEmailExists)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo := setup(t)
		_, err := svc.Update(ctx, sessionOf(t, repo, tribeLeadID), user.UpdateUserRequest{ID: "01900000-0000-7000-8000-0000000000ff", Name: ptr("X")})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name   string
		actor  string
		target string
		want   error
	}{
		{"non tribe lead", leadAID, reporterID, user.ErrTribeLeadAccessRequired},
		{"self", tribeLeadID, tribeLeadID, user.ErrCannotDeleteSelf},
		{"lead with reporters", tribeLeadID, leadAID, user.ErrChapterLeadHasReports},
		{"unknown", tribeLeadID, "01900000-0000-7000-8000-0000000000ff", user.ErrUserNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc, repo := setup(t)
			err := svc.Delete(ctx, sessionOf(t, repo, c.actor), c.target)
			assert.ErrorIs(t, err, c.want)
		})
	}

	t.Run("reporter then empty lead", func(t *testing.T) {
		svc, repo := setup(t)
		s := sessionOf(t, repo, tribeLeadID)
		require.NoError(t, svc.Delete(ctx, s, reporterID))
		require.NoError(t, svc.Delete(ctx, s, leadAID))

		_, err := repo.GetByID(ctx, leadAID)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		svc, repo := setup(t)
		s := sessionOf(t, repo, tribeLeadID)
		boom := errors.New("boom")
		repo.FailWrites(boom)
		assert.ErrorIs(t, svc.Delete(ctx, s, reporterID), boom)
	})
}

func TestTeamViews(t *testing.T) {
	ctx := context.Background()

	t.Run("hierarchy requires lead", func(t *testing.T) {
		svc, repo := setup(t)
		_, err := svc.Hierarchy(ctx, sessionOf(t, repo, reporterID))
		assert.ErrorIs(t, err, user.ErrLeadAccessRequired)

		h, err := svc.Hierarchy(ctx, sessionOf(t, repo, leadBID))
		require.NoError(t, err)
		require.NotNil(t, h.TribeLead)
		assert.Equal(t, tribeLeadID, h.TribeLead.ID)
		require.Len(t, h.ChapterLeads, 2)
		assert.Equal(t, "Alice", h.ChapterLeads[0].ChapterLead.Name)
		assert.Len(t, h.ChapterLeads[0].Reporters, 1)
		assert.Empty(t, h.ChapterLeads[1].Reporters)
	})

	t.Run("reporter sees own chapter", func(t *testing.T) {
		svc, repo := setup(t)
		team, err := svc.MyTeam(ctx, sessionOf(t, repo, reporterID))
		require.NoError(t, err)
		require.NotNil(t, team.ChapterLead)
		assert.Equal(t, leadAID, team.ChapterLead.ID)
		require.Len(t, team.Members, 1)
		assert.Equal(t, reporterID, team.Members[0].ID)
		assert.Nil(t, team.Hierarchy)
	})

	t.Run("tribe lead sees everything", func(t *testing.T) {
		svc, repo := setup(t)
		team, err := svc.MyTeam(ctx, sessionOf(t, repo, tribeLeadID))
		require.NoError(t, err)
		assert.NotNil(t, team.Hierarchy)
		assert.Len(t, team.Members, 4)
	})

	t.Run("direct reports", func(t *testing.T) {
		svc, repo := setup(t)
		reports, err := svc.DirectReports(ctx, sessionOf(t, repo, leadAID), leadAID)
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, reporterID, reports[0].ID)

		reports, err = svc.DirectReports(ctx, sessionOf(t, repo, leadAID), tribeLeadID)
		require.NoError(t, err)
		assert.Len(t, reports, 2)

		_, err = svc.DirectReports(ctx, sessionOf(t, repo, reporterID), leadAID)
		assert.ErrorIs(t, err, user.ErrNotInYourTeam)
	})
}

func TestCompleteFirstLogin(t *testing.T) {
	svc, repo := setup(t)
	resp, err := svc.CompleteFirstLogin(context.Background(), sessionOf(t, repo, reporterID))
	require.NoError(t, err)
	assert.False(t, resp.IsFirstLogin)
}

func TestMe(t *testing.T) {
	svc, repo := setup(t)
	me, err := svc.Me(context.Background(), sessionOf(t, repo, reporterID))
	require.NoError(t, err)
	assert.Equal(t, []string{"attendance.set_own", "team.view_own"}, me.Permissions)
	assert.False(t, me.Delegated)
}

func TestMalformedID(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)
	tribeLead := sessionOf(t, repo, tribeLeadID)

	_, err := svc.Get(ctx, tribeLead, "abc")
	assert.ErrorIs(t, err, user.ErrInvalidUserID)
	_, err = svc.Update(ctx, tribeLead, user.UpdateUserRequest{ID: "abc", Name: ptr("X")})
	assert.ErrorIs(t, err, user.ErrInvalidUserID)
	_, err = svc.DirectReports(ctx, tribeLead, "abc")
	assert.ErrorIs(t, err, user.ErrInvalidUserID)

	err = svc.Delete(ctx, tribeLead, "abc")
	assert.ErrorIs(t, err, user.ErrInvalidUserID)
	assert.True(t, apperror.IsValidation(err))
}
