package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ireporter-ke/ireporter/internal/domain"
)

func TestReportRepositoryInsertAssignsSequentialIDs(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := NewReportRepository()

	first := domain.NewReport("1", "red-flag", "23.0, 34.5", "Corruption", "bribery")
	id, err := repo.Insert(ctx, first)
	require.NoError(err)
	require.Equal(1, id)
	require.Equal(1, first.ID)

	second := domain.NewReport("2", "intervention", "1.0, 2.0", "Potholes", "main road")
	id, err = repo.Insert(ctx, second)
	require.NoError(err)
	require.Equal(2, id)
}

func TestReportRepositoryFindReturnsInsertedFields(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := NewReportRepository()

	report := domain.NewReport("1", "red-flag", "23.0, 34.5", "Corruption", "bribery")
	_, err := repo.Insert(ctx, report)
	require.NoError(err)

	found, err := repo.Find(ctx, 1)
	require.NoError(err)
	require.Equal(*report, *found)

	_, err = repo.Find(ctx, 5)
	require.ErrorIs(err, domain.ErrNotFound)
}

func TestReportRepositoryFindReturnsACopy(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := NewReportRepository()

	report := domain.NewReport("1", "red-flag", "23.0, 34.5", "Corruption", "bribery")
	_, err := repo.Insert(ctx, report)
	require.NoError(err)

	found, _ := repo.Find(ctx, 1)
	found.Comment = "tampered"

	again, _ := repo.Find(ctx, 1)
	require.Equal("bribery", again.Comment)
}

func TestReportRepositoryUpdate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := NewReportRepository()

	report := domain.NewReport("1", "red-flag", "23.0, 34.5", "Corruption", "bribery")
	_, err := repo.Insert(ctx, report)
	require.NoError(err)

	report.Comment = "extortion"
	require.NoError(repo.Update(ctx, report))

	found, _ := repo.Find(ctx, 1)
	require.Equal("extortion", found.Comment)

	missing := domain.NewReport("1", "red-flag", "23.0, 34.5", "Corruption", "bribery")
	missing.ID = 9
	require.ErrorIs(repo.Update(ctx, missing), domain.ErrNotFound)
}

func TestReportRepositoryMutate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := NewReportRepository()

	report := domain.NewReport("1", "red-flag", "23.0, 34.5", "Corruption", "bribery")
	_, err := repo.Insert(ctx, report)
	require.NoError(err)

	require.NoError(repo.Mutate(ctx, 1, func(r *domain.Report) error {
		r.Comment = "extortion"
		return nil
	}))
	found, _ := repo.Find(ctx, 1)
	require.Equal("extortion", found.Comment)

	// A failing mutation leaves the record untouched, even when fn already
	// wrote to its argument before returning the error.
	err = repo.Mutate(ctx, 1, func(r *domain.Report) error {
		r.Comment = ""
		return domain.ValidationErrors{domain.MsgCommentBlank}
	})
	var verrs domain.ValidationErrors
	require.ErrorAs(err, &verrs)
	found, _ = repo.Find(ctx, 1)
	require.Equal("extortion", found.Comment)

	require.ErrorIs(repo.Mutate(ctx, 9, func(r *domain.Report) error { return nil }), domain.ErrNotFound)
}

func TestReportRepositoryDeleteNeverReusesIDs(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := NewReportRepository()

	for i := 0; i < 3; i++ {
		_, err := repo.Insert(ctx, domain.NewReport("1", "red-flag", "23.0, 34.5", "Corruption", "bribery"))
		require.NoError(err)
	}

	require.NoError(repo.Delete(ctx, 3))

	// The id counter is independent of the collection length, so a fresh
	// insert after a delete must not collide with the deleted record's id.
	next := domain.NewReport("2", "intervention", "1.0, 2.0", "Potholes", "main road")
	id, err := repo.Insert(ctx, next)
	require.NoError(err)
	require.Equal(4, id)

	_, err = repo.Find(ctx, 3)
	require.ErrorIs(err, domain.ErrNotFound)
}

func TestReportRepositoryDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := NewReportRepository()

	_, err := repo.Insert(ctx, domain.NewReport("1", "red-flag", "23.0, 34.5", "Corruption", "bribery"))
	require.NoError(err)

	require.ErrorIs(repo.Delete(ctx, 7), domain.ErrNotFound)

	all, err := repo.List(ctx)
	require.NoError(err)
	require.Len(all, 1)
}

func TestReportRepositoryListPreservesInsertionOrder(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := NewReportRepository()

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		_, err := repo.Insert(ctx, domain.NewReport("1", "red-flag", "23.0, 34.5", title, "bribery"))
		require.NoError(err)
	}

	all, err := repo.List(ctx)
	require.NoError(err)
	require.Len(all, 3)
	for i, title := range titles {
		require.Equal(title, all[i].Title)
		require.Equal(i+1, all[i].ID)
	}
}

func TestAccountRepositoryEnforcesEmailUniqueness(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := NewAccountRepository()

	id, err := repo.Insert(ctx, domain.NewAccount("user@example.com", "pass1234"))
	require.NoError(err)
	require.Equal(1, id)

	_, err = repo.Insert(ctx, domain.NewAccount("user@example.com", "other567"))
	require.ErrorIs(err, domain.ErrAlreadyExists)

	found, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(err)
	require.Equal(1, found.ID)
	require.Equal("pass1234", found.Password)

	_, err = repo.FindByEmail(ctx, "ghost@example.com")
	require.ErrorIs(err, domain.ErrNotFound)
}

func TestSessionStoreOneEntryPerAccount(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := NewSessionStore()

	require.NoError(store.Add(ctx, domain.Session{Email: "a@example.com", ID: 1}))
	require.NoError(store.Add(ctx, domain.Session{Email: "b@example.com", ID: 2}))
	require.ErrorIs(store.Add(ctx, domain.Session{Email: "a@example.com", ID: 1}), domain.ErrAlreadyExists)

	sessions, err := store.List(ctx)
	require.NoError(err)
	require.Len(sessions, 2)
	require.Equal("a@example.com", sessions[0].Email)
}

func TestSessionStoreRemove(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	store := NewSessionStore()

	require.NoError(store.Add(ctx, domain.Session{Email: "a@example.com", ID: 1}))
	require.NoError(store.Add(ctx, domain.Session{Email: "b@example.com", ID: 2}))

	require.NoError(store.Remove(ctx, 1))

	sessions, _ := store.List(ctx)
	require.Equal([]domain.Session{{Email: "b@example.com", ID: 2}}, sessions)

	require.ErrorIs(store.Remove(ctx, 1), domain.ErrNotFound)
	sessions, _ = store.List(ctx)
	require.Len(sessions, 1, "failed remove must not mutate the sequence")
}
