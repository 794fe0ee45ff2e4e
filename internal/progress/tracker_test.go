package progress

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_NoSavedState(t *testing.T) {
	b := &memBackend{}
	tr := New(registry("a", "b", "c"), Options{Backend: b})

	assert.Equal(t, 0, tr.CurrentIndex())
	assert.Equal(t, 0, tr.NDone())
	assert.Empty(t, doneNames(tr))
	assert.False(t, tr.Restored())
	assert.Equal(t, 0, b.saves, "construction must not persist")
}

func TestNew_MalformedStateKeepsDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"single line", "b"},
		{"single line with trailing text", "b a c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(registry("a", "b", "c"), Options{Backend: newMemBackend(tt.content)})
			assert.Equal(t, 0, tr.CurrentIndex())
			assert.Equal(t, 0, tr.NDone())
			assert.Empty(t, doneNames(tr))
			assert.False(t, tr.Restored())
		})
	}
}

func TestNew_RestoresState(t *testing.T) {
	tr := New(registry("a", "b", "c", "d"), Options{Backend: newMemBackend(stateText("c", "a", "b"))})

	assert.True(t, tr.Restored())
	assert.Equal(t, 2, tr.CurrentIndex())
	assert.Equal(t, 2, tr.NDone())
	assert.Equal(t, []string{"a", "b"}, doneNames(tr))
}

func TestNew_SeparatorContentIgnored(t *testing.T) {
	tr := New(registry("a", "b"), Options{Backend: newMemBackend("b\nwhatever\na\n")})

	assert.Equal(t, 1, tr.CurrentIndex())
	assert.Equal(t, []string{"a"}, doneNames(tr))
}

func TestNew_DoneListStopsAtEmptyLine(t *testing.T) {
	tr := New(registry("a", "b", "c"), Options{Backend: newMemBackend("a\n\nb\n\nc\n")})

	assert.Equal(t, []string{"b"}, doneNames(tr))
	assert.Equal(t, 1, tr.NDone())
}

func TestNew_UnknownNamesIgnored(t *testing.T) {
	tr := New(registry("a", "b"), Options{Backend: newMemBackend(stateText("gone", "removed", "b"))})

	assert.Equal(t, 0, tr.CurrentIndex(), "unknown current keeps the first exercise")
	assert.Equal(t, []string{"b"}, doneNames(tr))
	assert.Equal(t, 1, tr.NDone())
}

func TestNew_NoTrailingNewline(t *testing.T) {
	tr := New(registry("a", "b", "c"), Options{Backend: newMemBackend("c\n\na\nb")})

	assert.Equal(t, 2, tr.CurrentIndex())
	assert.Equal(t, []string{"a", "b"}, doneNames(tr))
}

func TestNew_EmptyRegistryPanics(t *testing.T) {
	assert.Panics(t, func() {
		New(registry(), Options{Backend: &memBackend{}})
	})
}

func TestSetCurrentByIndex(t *testing.T) {
	b := &memBackend{}
	tr := New(registry("a", "b", "c"), Options{Backend: b})

	for i := 0; i < 3; i++ {
		require.NoError(t, tr.SetCurrentByIndex(i))
		assert.Equal(t, i, tr.CurrentIndex())
	}
	assert.Equal(t, 3, b.saves)
	assert.Equal(t, stateText("c"), string(b.data))
}

func TestSetCurrentByIndex_OutOfRange(t *testing.T) {
	b := &memBackend{}
	tr := New(registry("a", "b", "c"), Options{Backend: b})
	require.NoError(t, tr.SetCurrentByIndex(1))
	saves := b.saves

	for _, ind := range []int{3, 10, -1} {
		err := tr.SetCurrentByIndex(ind)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, 1, tr.CurrentIndex())
	assert.Equal(t, saves, b.saves)
}

func TestSetCurrentByName(t *testing.T) {
	b := &memBackend{}
	tr := New(registry("a", "b", "c"), Options{Backend: b})

	require.NoError(t, tr.SetCurrentByName("c"))
	assert.Equal(t, 2, tr.CurrentIndex())
	assert.Equal(t, stateText("c"), string(b.data))

	err := tr.SetCurrentByName("nope")
	require.ErrorIs(t, err, ErrExerciseNotFound)
	assert.Contains(t, err.Error(), `"nope"`)
	assert.Equal(t, 2, tr.CurrentIndex())
}

func TestSetPending(t *testing.T) {
	b := newMemBackend(stateText("a", "a", "b"))
	tr := New(registry("a", "b", "c"), Options{Backend: b})
	require.Equal(t, 2, tr.NDone())

	require.NoError(t, tr.SetPending(1))
	assert.Equal(t, 1, tr.NDone())
	assert.Equal(t, []string{"a"}, doneNames(tr))
	assert.Equal(t, 1, b.saves)
	assert.Equal(t, stateText("a", "a"), string(b.data))
}

func TestSetPending_AlreadyPendingIsNoop(t *testing.T) {
	b := newMemBackend(stateText("a", "a"))
	tr := New(registry("a", "b", "c"), Options{Backend: b})

	require.NoError(t, tr.SetPending(2))
	assert.Equal(t, 1, tr.NDone())
	assert.Equal(t, 0, b.saves)
}

func TestSetPending_OutOfRange(t *testing.T) {
	tr := New(registry("a"), Options{Backend: &memBackend{}})
	require.ErrorIs(t, tr.SetPending(1), ErrIndexOutOfRange)
}

func TestWriteFailureKeepsMutation(t *testing.T) {
	b := &memBackend{saveErr: errWrite}
	tr := New(registry("a", "b"), Options{Backend: b})

	err := tr.SetCurrentByIndex(1)
	require.ErrorIs(t, err, errWrite)
	assert.Contains(t, err.Error(), "write state mem")
	assert.Equal(t, 1, tr.CurrentIndex())
}

func TestMarkCurrentDoneAndAdvance_CircularScan(t *testing.T) {
	b := newMemBackend(stateText("c", "a", "c"))
	tr := New(registry("a", "b", "c", "d"), Options{Backend: b, Runner: &fakeRunner{}})
	require.Equal(t, 2, tr.CurrentIndex())
	rep := &recordingReporter{}
	ctx := context.Background()

	out, err := tr.MarkCurrentDoneAndAdvance(ctx, rep)
	require.NoError(t, err)
	assert.Equal(t, ExercisesPending, out)
	assert.Equal(t, 3, tr.CurrentIndex())
	assert.Equal(t, 2, tr.NDone())

	out, err = tr.MarkCurrentDoneAndAdvance(ctx, rep)
	require.NoError(t, err)
	assert.Equal(t, ExercisesPending, out)
	assert.Equal(t, 1, tr.CurrentIndex(), "scan wraps to the start")
	assert.Equal(t, 3, tr.NDone())
	assert.Equal(t, stateText("b", "a", "c", "d"), string(b.data))
	assert.Empty(t, rep.events)
}

func TestMarkCurrentDoneAndAdvance_AlreadyDoneNotCountedTwice(t *testing.T) {
	tr := New(registry("a", "b", "c"), Options{Backend: newMemBackend(stateText("a", "a"))})

	out, err := tr.MarkCurrentDoneAndAdvance(context.Background(), &recordingReporter{})
	require.NoError(t, err)
	assert.Equal(t, ExercisesPending, out)
	assert.Equal(t, 1, tr.NDone())
	assert.Equal(t, 1, tr.CurrentIndex())
}

func TestMarkCurrentDoneAndAdvance_AllDone(t *testing.T) {
	b := newMemBackend(stateText("b", "a", "b"))
	run := &fakeRunner{}
	rep := &recordingReporter{}
	tr := New(registry("a", "b"), Options{Backend: b, Runner: run, FinalMessage: "bye"})

	out, err := tr.MarkCurrentDoneAndAdvance(context.Background(), rep)
	require.NoError(t, err)
	assert.Equal(t, AllDone, out)
	assert.Equal(t, []string{"a", "b"}, run.ran)
	assert.Equal(t, []string{"verify", "running a", "ok a", "running b", "ok b", "done bye"}, rep.events)
	assert.Equal(t, 1, tr.CurrentIndex())
	assert.Equal(t, 2, tr.NDone())
	assert.Equal(t, stateText("b", "a", "b"), string(b.data))
}

func TestMarkCurrentDoneAndAdvance_LastCompletionPersistedBeforeVerify(t *testing.T) {
	b := newMemBackend(stateText("b", "a"))
	tr := New(registry("a", "b"), Options{Backend: b, Runner: &fakeRunner{}})

	out, err := tr.MarkCurrentDoneAndAdvance(context.Background(), &recordingReporter{})
	require.NoError(t, err)
	assert.Equal(t, AllDone, out)
	assert.Equal(t, stateText("b", "a", "b"), string(b.data))
}

func TestMarkCurrentDoneAndAdvance_Regression(t *testing.T) {
	b := newMemBackend(stateText("d", "a", "b", "c", "d"))
	run := &fakeRunner{failing: map[string]bool{"c": true, "d": true}}
	rep := &recordingReporter{}
	tr := New(registry("a", "b", "c", "d"), Options{Backend: b, Runner: run})
	require.Equal(t, 4, tr.NDone())

	out, err := tr.MarkCurrentDoneAndAdvance(context.Background(), rep)
	require.NoError(t, err)
	assert.Equal(t, ExercisesPending, out)

	assert.Equal(t, 2, tr.CurrentIndex())
	assert.False(t, tr.Current().Done)
	assert.Equal(t, 3, tr.NDone())
	assert.Equal(t, []string{"a", "b", "c"}, run.ran, "pass stops at the first failure")
	assert.Equal(t, []string{"verify", "running a", "ok a", "running b", "ok b", "running c", "FAILED c"}, rep.events)
	assert.Equal(t, stateText("c", "a", "b", "d"), string(b.data))
}

func TestMarkCurrentDoneAndAdvance_ResumesAfterRegression(t *testing.T) {
	b := newMemBackend(stateText("b", "a", "b"))
	run := &fakeRunner{failing: map[string]bool{"a": true}}
	tr := New(registry("a", "b"), Options{Backend: b, Runner: run})
	ctx := context.Background()

	out, err := tr.MarkCurrentDoneAndAdvance(ctx, &recordingReporter{})
	require.NoError(t, err)
	require.Equal(t, ExercisesPending, out)
	require.Equal(t, 0, tr.CurrentIndex())

	run.failing = nil
	out, err = tr.MarkCurrentDoneAndAdvance(ctx, &recordingReporter{})
	require.NoError(t, err)
	assert.Equal(t, AllDone, out)
	assert.Equal(t, 2, tr.NDone())
}

func TestMarkCurrentDoneAndAdvance_NilReporter(t *testing.T) {
	b := newMemBackend(stateText("b", "a"))
	run := &fakeRunner{}
	tr := New(registry("a", "b"), Options{Backend: b, Runner: run})

	out, err := tr.MarkCurrentDoneAndAdvance(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, AllDone, out)
	assert.Equal(t, []string{"a", "b"}, run.ran)

	run.failing = map[string]bool{"a": true}
	out, err = tr.MarkCurrentDoneAndAdvance(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, ExercisesPending, out)
	assert.Equal(t, 0, tr.CurrentIndex())
	assert.Equal(t, stateText("a", "b"), string(b.data))
}

func TestMarkCurrentDoneAndAdvance_PassLogsAtDebug(t *testing.T) {
	run := &fakeRunner{failing: map[string]bool{"a": true}}

	core, logs := observer.New(zap.InfoLevel)
	tr := New(registry("a", "b"), Options{Backend: newMemBackend(stateText("b", "a")), Runner: run, Logger: zap.New(core)})
	_, err := tr.MarkCurrentDoneAndAdvance(context.Background(), &recordingReporter{})
	require.NoError(t, err)
	assert.Zero(t, logs.Len(), "verification pass is silent at info level")

	core, logs = observer.New(zap.DebugLevel)
	tr = New(registry("a", "b"), Options{Backend: newMemBackend(stateText("b", "a")), Runner: run, Logger: zap.New(core)})
	_, err = tr.MarkCurrentDoneAndAdvance(context.Background(), &recordingReporter{})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("verifying all exercises").Len())
	regressions := logs.FilterMessage("regression found").All()
	require.Len(t, regressions, 1)
	assert.Equal(t, "a", regressions[0].ContextMap()["exercise"])
	assert.Contains(t, regressions[0].ContextMap(), "pass")
}

func TestMarkCurrentDoneAndAdvance_RunnerError(t *testing.T) {
	run := &fakeRunner{err: errWrite}
	tr := New(registry("a"), Options{Backend: &memBackend{}, Runner: run})

	_, err := tr.MarkCurrentDoneAndAdvance(context.Background(), &recordingReporter{})
	require.ErrorIs(t, err, errWrite)
	assert.Contains(t, err.Error(), "run exercises/a")
}

func TestMarkCurrentDoneAndAdvance_NoRunner(t *testing.T) {
	tr := New(registry("a"), Options{Backend: &memBackend{}})

	_, err := tr.MarkCurrentDoneAndAdvance(context.Background(), &recordingReporter{})
	require.ErrorIs(t, err, ErrNoRunner)
}

func TestRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultStateFile)

	first := New(registry("a", "b", "c", "d"), Options{Backend: NewFileBackend(path)})
	require.NoError(t, first.SetCurrentByName("b"))
	_, err := first.MarkCurrentDoneAndAdvance(context.Background(), &recordingReporter{})
	require.NoError(t, err)
	require.NoError(t, first.SetCurrentByIndex(3))

	second := New(registry("a", "b", "c", "d"), Options{Backend: NewFileBackend(path)})
	assert.True(t, second.Restored())
	assert.Equal(t, first.CurrentIndex(), second.CurrentIndex())
	assert.Equal(t, doneNames(first), doneNames(second))
	assert.Equal(t, first.NDone(), second.NDone())
}

func TestForget(t *testing.T) {
	b := newMemBackend(stateText("b", "a"))
	tr := New(registry("a", "b"), Options{Backend: b})

	require.NoError(t, tr.Forget())
	assert.False(t, b.present)
	assert.Equal(t, 1, tr.NDone(), "in-memory progress is kept")

	fresh := New(registry("a", "b"), Options{Backend: b})
	assert.Equal(t, 0, fresh.NDone())
}
