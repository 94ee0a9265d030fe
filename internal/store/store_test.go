package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
)

// testNow is mid-afternoon so no time-of-day badge can fire by accident
var testNow = time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, model.Subject) {
	t.Helper()
	s := New(model.DefaultState())
	s.now = func() time.Time { return testNow }
	sub, err := s.AddSubject("Math", "#4ECDC4")
	require.NoError(t, err)
	return s, sub
}

func addTask(t *testing.T, s *Store, sub model.Subject, priority model.Priority) model.Task {
	t.Helper()
	task := model.NewTask("", sub.ID, "solve problem set")
	task.Priority = priority
	created, err := s.AddTask(task)
	require.NoError(t, err)
	return created
}

func TestCompleteTaskGrantsXPAndFirstBadge(t *testing.T) {
	s, sub := newTestStore(t)
	task := addTask(t, s, sub, model.PriorityMedium)

	done, err := s.SetTaskStatus(task.ID, model.StatusCompleted)
	require.NoError(t, err)

	st := s.State()
	assert.Equal(t, gamify.RewardCompleteTask, st.XP)
	assert.True(t, st.HasBadge(model.BadgeFirstTask))
	assert.False(t, st.HasBadge(model.BadgeTenTasks))
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, testNow, *done.CompletedAt)
}

func TestHighPriorityCompletionCrossesLevel(t *testing.T) {
	s, sub := newTestStore(t)

	// Seed XP to 90 with six medium completions
	for i := 0; i < 6; i++ {
		task := addTask(t, s, sub, model.PriorityMedium)
		_, err := s.SetTaskStatus(task.ID, model.StatusCompleted)
		require.NoError(t, err)
	}
	require.Equal(t, 90, s.State().XP)

	task := addTask(t, s, sub, model.PriorityHigh)
	_, err := s.SetTaskStatus(task.ID, model.StatusCompleted)
	require.NoError(t, err)

	st := s.State()
	assert.Equal(t, 115, st.XP)
	level := gamify.GetLevel(st.XP)
	assert.Equal(t, gamify.Level{Level: 2, CurrentLevelXP: 15, NextLevelXP: 100}, level)
}

func TestUncompleteReversesXPExactly(t *testing.T) {
	s, sub := newTestStore(t)
	task := addTask(t, s, sub, model.PriorityHigh)

	_, err := s.SetTaskStatus(task.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, gamify.RewardCompleteHighPriority, s.State().XP)

	reopened, err := s.SetTaskStatus(task.ID, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 0, s.State().XP)
	assert.Nil(t, reopened.CompletedAt)
}

func TestXPNeverGoesNegative(t *testing.T) {
	s, sub := newTestStore(t)
	task := addTask(t, s, sub, model.PriorityMedium)

	// Complete at medium (+15), raise priority to high, then uncomplete
	// (-25): the clamp holds the total at 0.
	_, err := s.SetTaskStatus(task.ID, model.StatusCompleted)
	require.NoError(t, err)

	current, ok := s.Task(task.ID)
	require.True(t, ok)
	current.Priority = model.PriorityHigh
	require.NoError(t, s.UpdateTask(current))

	_, err = s.SetTaskStatus(task.ID, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 0, s.State().XP)
}

func TestSweepOverdueReclassifiesPending(t *testing.T) {
	s, sub := newTestStore(t)
	yesterday := testNow.AddDate(0, 0, -1).Format(model.DateLayout)

	overdue := model.NewTask("", sub.ID, "past due")
	overdue.DueType = model.DueSpecific
	overdue.DueDate = yesterday
	created, err := s.AddTask(overdue)
	require.NoError(t, err)

	today := addTask(t, s, sub, model.PriorityMedium)

	assert.Equal(t, 1, s.SweepOverdue())

	st := s.State()
	for _, task := range st.Tasks {
		switch task.ID {
		case created.ID:
			assert.Equal(t, model.StatusDelayed, task.Status)
			assert.Equal(t, yesterday, task.DueDate, "sweep must not touch the due date")
		case today.ID:
			assert.Equal(t, model.StatusPending, task.Status)
		}
	}

	// Idempotent: nothing left to reclassify
	assert.Equal(t, 0, s.SweepOverdue())
}

func TestDeleteSubjectCascadesExactly(t *testing.T) {
	s, sub := newTestStore(t)
	other, err := s.AddSubject("History", "#FF6B6B")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		addTask(t, s, sub, model.PriorityMedium)
	}
	kept := addTask(t, s, other, model.PriorityMedium)

	require.NoError(t, s.DeleteSubject(sub.ID))

	st := s.State()
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, kept.ID, st.Tasks[0].ID)
	require.Len(t, st.Subjects, 1)
	assert.Equal(t, other.ID, st.Subjects[0].ID)
}

func TestToggleHabitLogRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	habit, err := s.AddHabit("Read", "📚", "#95E1A3")
	require.NoError(t, err)
	day := testNow.Format(model.DateLayout)

	logged, err := s.ToggleHabitLog(habit.ID, day)
	require.NoError(t, err)
	assert.True(t, logged)
	st := s.State()
	assert.Equal(t, gamify.RewardHabitLog, st.XP)
	assert.True(t, st.HasHabitLog(habit.ID, day))

	// Second toggle removes the log and grants nothing
	logged, err = s.ToggleHabitLog(habit.ID, day)
	require.NoError(t, err)
	assert.False(t, logged)
	st = s.State()
	assert.Equal(t, gamify.RewardHabitLog, st.XP)
	assert.False(t, st.HasHabitLog(habit.ID, day))
	assert.Empty(t, st.HabitLogs)
}

func TestToggleHabitLogUnknownHabit(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.ToggleHabitLog("missing", testNow.Format(model.DateLayout))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddNoteGrantsFlatXP(t *testing.T) {
	s, _ := newTestStore(t)
	note, err := s.AddNote(model.Note{Title: "derivatives", Body: "chain rule"})
	require.NoError(t, err)
	assert.Equal(t, gamify.RewardCreateNote, s.State().XP)

	// Deleting the note does not claw the grant back
	require.NoError(t, s.DeleteNote(note.ID))
	assert.Equal(t, gamify.RewardCreateNote, s.State().XP)
}

func TestRecordPomodoro(t *testing.T) {
	s, sub := newTestStore(t)
	session, err := s.RecordPomodoro(sub.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, session.Minutes)

	st := s.State()
	assert.Equal(t, gamify.RewardCompletePomodoro, st.XP)
	assert.True(t, st.HasBadge(model.BadgeFirstPomodoro))

	_, err = s.RecordPomodoro(sub.ID, 0)
	assert.Error(t, err)
}

func TestAddTaskRequiresSubject(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddTask(model.NewTask("", "", "no subject"))
	assert.Error(t, err)

	task := model.NewTask("", "unknown-subject", "dangling ref")
	_, err = s.AddTask(task)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddTaskResolvesDueTypes(t *testing.T) {
	s, sub := newTestStore(t)

	today := model.NewTask("", sub.ID, "due today")
	today.DueType = model.DueToday
	created, err := s.AddTask(today)
	require.NoError(t, err)
	assert.Equal(t, testNow.Format(model.DateLayout), created.DueDate)

	tomorrow := model.NewTask("", sub.ID, "due tomorrow")
	tomorrow.DueType = model.DueTomorrow
	created, err = s.AddTask(tomorrow)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, 1).Format(model.DateLayout), created.DueDate)
}

func TestUpdateUserPreservesIdentity(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.SetIdentity("uid-1", "dana@example.com"))

	profile := s.State().User
	profile.Name = "Dana K"
	profile.UID = "spoofed"
	profile.Email = "spoofed@example.com"
	require.NoError(t, s.UpdateUser(profile))

	st := s.State()
	assert.Equal(t, "Dana K", st.User.Name)
	assert.Equal(t, "uid-1", st.User.UID)
	assert.Equal(t, "dana@example.com", st.User.Email)
}

func TestUpdateNoteKeepsCreatedAt(t *testing.T) {
	s, _ := newTestStore(t)
	note, err := s.AddNote(model.Note{Title: "draft"})
	require.NoError(t, err)

	note.Title = "final"
	note.CreatedAt = time.Time{}
	require.NoError(t, s.UpdateNote(note))

	st := s.State()
	require.Len(t, st.Notes, 1)
	assert.Equal(t, "final", st.Notes[0].Title)
	assert.Equal(t, testNow, st.Notes[0].CreatedAt)

	missing := note
	missing.ID = "missing"
	assert.ErrorIs(t, s.UpdateNote(missing), ErrNotFound)
}

func TestUpdateSubject(t *testing.T) {
	s, sub := newTestStore(t)

	sub.Name = "Mathematics"
	require.NoError(t, s.UpdateSubject(sub))

	got, ok := s.Subject(sub.ID)
	require.True(t, ok)
	assert.Equal(t, "Mathematics", got.Name)
}

func TestChangeOriginsAndVersions(t *testing.T) {
	s, sub := newTestStore(t)

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	before := s.State().Version
	addTask(t, s, sub, model.PriorityMedium)
	require.Len(t, changes, 1)
	assert.Equal(t, OriginLocal, changes[0].Origin)
	assert.Equal(t, before+1, changes[0].State.Version)

	remote := model.DefaultState()
	remote.Version = 42
	remote.XP = 500
	s.ApplyRemote(remote)
	require.Len(t, changes, 2)
	assert.Equal(t, OriginRemote, changes[1].Origin)
	assert.Equal(t, int64(42), changes[1].State.Version, "remote applies adopt the remote version verbatim")
	assert.Equal(t, 500, s.State().XP)
}
