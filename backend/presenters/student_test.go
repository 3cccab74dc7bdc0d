package presenters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/models"
)

func TestMyCoursesCompleted(t *testing.T) {
	p := testPresenters(t)

	mc, err := p.MyCourses.List(context.Background(), "stu-001", MyCoursesQuery{Status: "completed"})
	require.NoError(t, err)

	require.Len(t, mc.Items, 1)
	assert.Equal(t, "enr-003", mc.Items[0].EnrollmentID)
	assert.Equal(t, models.EnrollmentCompleted, mc.Items[0].Status)
	assert.Equal(t, len(mc.Items), mc.Stats.Completed)
	assert.Nil(t, mc.Items[0].CurrentLesson)
}

func TestMyCoursesStatsIgnoreFilter(t *testing.T) {
	p := testPresenters(t)
	ctx := context.Background()

	all, err := p.MyCourses.List(ctx, "stu-001", MyCoursesQuery{})
	require.NoError(t, err)
	assert.Equal(t, "all", all.Status)
	assert.Equal(t, MyCoursesStats{Total: 4, Active: 2, Completed: 1, Paused: 1, AverageProgress: 56.3}, all.Stats)

	// most recently accessed first
	ids := make([]string, 0, len(all.Items))
	for _, it := range all.Items {
		ids = append(ids, it.EnrollmentID)
	}
	assert.Equal(t, []string{"enr-002", "enr-001", "enr-004", "enr-003"}, ids)
	require.NotNil(t, all.Items[0].CurrentLesson)
	assert.Equal(t, "HTTP Servers", all.Items[0].CurrentLesson.Title)

	paused, err := p.MyCourses.List(ctx, "stu-001", MyCoursesQuery{Status: "paused"})
	require.NoError(t, err)
	require.Len(t, paused.Items, 1)
	assert.Equal(t, all.Stats, paused.Stats)

	_, err = p.MyCourses.List(ctx, "stu-001", MyCoursesQuery{Status: "dropped"})
	requireInvalid(t, err, "status")
}

func TestWishlist(t *testing.T) {
	p := testPresenters(t)
	ctx := context.Background()

	w, err := p.Wishlist.Get(ctx, "stu-001")
	require.NoError(t, err)
	require.Equal(t, 3, w.Count)
	assert.Equal(t, "course-004", w.Items[0].Course.ID)
	assert.Equal(t, "course-011", w.Items[1].Course.ID)
	assert.Equal(t, "course-006", w.Items[2].Course.ID)
	assert.Equal(t, 700+1105+600, w.TotalPrice)
	assert.Equal(t, 195+600, w.TotalSavings)

	// course-999 does not exist
	w, err = p.Wishlist.Get(ctx, "stu-004")
	require.NoError(t, err)
	require.Equal(t, 1, w.Count)
	assert.Equal(t, "course-013", w.Items[0].Course.ID)

	// course-010 is archived
	w, err = p.Wishlist.Get(ctx, "stu-006")
	require.NoError(t, err)
	assert.Equal(t, 0, w.Count)
	assert.NotNil(t, w.Items)
}

func TestWishlistActionsDoNotPersist(t *testing.T) {
	p := testPresenters(t)
	ctx := context.Background()

	res, err := p.Wishlist.Remove(ctx, "stu-001", "course-004")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.Persisted)

	res, err = p.Wishlist.Add(ctx, "stu-001", "course-012")
	require.NoError(t, err)
	assert.True(t, res.Success)

	w, err := p.Wishlist.Get(ctx, "stu-001")
	require.NoError(t, err)
	assert.Equal(t, 3, w.Count)
	assert.Equal(t, "course-004", w.Items[0].Course.ID)

	_, err = p.Wishlist.Add(ctx, "stu-001", "course-999")
	requireNotFound(t, err, "course")

	// draft and archived courses never show in the wishlist, so they cannot be added
	_, err = p.Wishlist.Add(ctx, "stu-001", "course-007")
	requireNotFound(t, err, "course")
	_, err = p.Wishlist.Add(ctx, "stu-001", "course-010")
	requireNotFound(t, err, "course")

	res, err = p.Wishlist.Remove(ctx, "stu-001", "course-010")
	require.NoError(t, err)
	assert.False(t, res.Persisted)
}

func TestLeaderboardRanks(t *testing.T) {
	p := testPresenters(t)

	lb, err := p.Leaderboard.Get(context.Background(), "stu-001", LeaderboardQuery{})
	require.NoError(t, err)

	require.Len(t, lb.Entries, 6)
	assert.Equal(t, 6, lb.TotalCount)
	for i := 1; i < len(lb.Entries); i++ {
		assert.GreaterOrEqual(t, lb.Entries[i-1].Points, lb.Entries[i].Points)
	}

	greater := 0
	for _, e := range lb.Entries {
		if e.Points > lb.CurrentUser.Points {
			greater++
		}
	}
	assert.Equal(t, "stu-001", lb.CurrentUser.StudentID)
	assert.True(t, lb.CurrentUser.IsCurrentUser)
	assert.Equal(t, 1+greater, lb.CurrentUser.Rank)
	assert.Equal(t, 3, lb.CurrentUser.Rank)

	ranks := make([]int, 0, len(lb.Entries))
	for _, e := range lb.Entries {
		ranks = append(ranks, e.Rank)
	}
	assert.Equal(t, []int{1, 1, 3, 3, 5, 6}, ranks)
	// ties keep input order
	assert.Equal(t, "stu-002", lb.Entries[0].StudentID)
	assert.Equal(t, "stu-005", lb.Entries[1].StudentID)
}

func TestLeaderboardPageKeepsCurrentUser(t *testing.T) {
	p := testPresenters(t)

	lb, err := p.Leaderboard.Get(context.Background(), "stu-006", LeaderboardQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, lb.Entries, 2)
	assert.Equal(t, 6, lb.TotalCount)
	assert.Equal(t, 6, lb.CurrentUser.Rank)
}

func TestAchievements(t *testing.T) {
	p := testPresenters(t)
	ctx := context.Background()

	a, err := p.Achievements.Get(ctx, "stu-001", AchievementsQuery{})
	require.NoError(t, err)
	assert.Len(t, a.Unlocked, 3)
	assert.Len(t, a.Locked, 5)
	assert.Equal(t, AchievementStats{Unlocked: 3, Total: 8, EarnedPoints: 225, TotalPoints: 1450, CompletionPercent: 38}, a.Stats)
	assert.Equal(t, []string{"learning", "streak", "community"}, a.Categories)

	streak, err := p.Achievements.Get(ctx, "stu-001", AchievementsQuery{Category: "streak"})
	require.NoError(t, err)
	assert.Equal(t, AchievementStats{Unlocked: 1, Total: 2, EarnedPoints: 75, TotalPoints: 100, CompletionPercent: 50}, streak.Stats)

	// ach-404 is not in the catalog
	priya, err := p.Achievements.Get(ctx, "stu-004", AchievementsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, priya.Stats.Unlocked)
}

func TestStudentDashboard(t *testing.T) {
	p := testPresenters(t)

	d, err := p.Dashboard.Student(context.Background(), "stu-001")
	require.NoError(t, err)

	assert.Equal(t, "Alex Johnson", d.Student.Name)
	assert.Equal(t, StudentStats{
		EnrolledCourses:  4,
		CompletedCourses: 1,
		InProgress:       2,
		Certificates:     1,
		AverageProgress:  56.3,
		LearningMinutes:  819 + 216 + 840 + 240,
	}, d.Stats)

	require.Len(t, d.ContinueLearning, 2)
	assert.Equal(t, "course-002", d.ContinueLearning[0].Course.ID)
	assert.Equal(t, "HTTP Servers", d.ContinueLearning[0].CurrentLessonTitle)
	assert.Equal(t, "Async JavaScript", d.ContinueLearning[1].CurrentLessonTitle)

	assert.Equal(t, []string{"course-011", "course-005", "course-013", "course-006"}, cardIDs(d.Recommendations))

	require.Len(t, d.RecentAchievements, 3)
	assert.Equal(t, "ach-004", d.RecentAchievements[0].ID)
}

func TestCertificates(t *testing.T) {
	p := testPresenters(t)
	ctx := context.Background()

	list, err := p.Certificates.List(ctx, "stu-002")
	require.NoError(t, err)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "cert-002", list.Items[0].ID)
	assert.Equal(t, "modern-javascript-from-scratch", list.Items[0].CourseSlug)

	cert, err := p.Certificates.Get(ctx, "stu-001", "cert-001")
	require.NoError(t, err)
	assert.Equal(t, "LH-2024-0001", cert.CredentialID)
	assert.Equal(t, "Marco Rossi", cert.InstructorName)

	// someone else's certificate
	_, err = p.Certificates.Get(ctx, "stu-001", "cert-002")
	requireNotFound(t, err, "certificate")

	empty, err := p.Certificates.List(ctx, "stu-006")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.NotNil(t, empty.Items)
}

func TestSettings(t *testing.T) {
	p := testPresenters(t)
	ctx := context.Background()

	s, err := p.Settings.Get(ctx, "stu-001")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", s.Profile.Email)
	assert.Equal(t, 1.25, s.Preferences.PlaybackSpeed)

	res, err := p.Settings.Save(ctx, "stu-001", SaveSettingsRequest{
		Name:        "Alex J.",
		Preferences: PreferencesInput{Language: "fr", PlaybackSpeed: 2},
	})
	require.NoError(t, err)
	assert.False(t, res.Persisted)

	again, err := p.Settings.Get(ctx, "stu-001")
	require.NoError(t, err)
	assert.Equal(t, "Alex Johnson", again.Profile.Name)
	assert.Equal(t, "en", again.Preferences.Language)

	_, err = p.Settings.Save(ctx, "stu-001", SaveSettingsRequest{
		Name:        "Alex",
		Preferences: PreferencesInput{Language: "de", PlaybackSpeed: 4},
	})
	requireInvalid(t, err, "language")
	requireInvalid(t, err, "playbackSpeed")
}
