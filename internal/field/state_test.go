package field

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/billie-coop/fieldstate/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_ZeroValueErrorIsDistinctFromNoError(t *testing.T) {
	s := NewState[string, int]("x")
	_, has := s.Error()
	assert.False(t, has)

	s = s.withError(Invalid(0))
	e, has := s.Error()
	assert.True(t, has)
	assert.Zero(t, e)
	assert.False(t, s.IsValid())
}

func TestState_ErrReturnsCopy(t *testing.T) {
	s := NewState[string, string]("x").withError(Invalid("bad"))

	e := s.Err()
	*e = "mutated"

	assert.Equal(t, Invalid("bad"), s.Err())
}

func TestState_JSON(t *testing.T) {
	tests := []struct {
		name  string
		state State[int, string]
		want  string
	}{
		{
			name:  "valid",
			state: NewState[int, string](3),
			want:  `{"value":3,"error":null,"autovalidate":false,"read_only":false,"edited_manually":false}`,
		},
		{
			name: "invalid_with_flags",
			state: NewState[int, string](-1).
				withError(Invalid("negative")).
				withAutovalidate(true).
				withReadOnly(true).
				withEditedManually(true),
			want: `{"value":-1,"error":"negative","autovalidate":true,"read_only":true,"edited_manually":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.state)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var decoded State[int, string]
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.state, decoded)
		})
	}
}

func TestController_PersistentStoreRestoresDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "username.json")

	first := New[string, string]("",
		WithObservable[string, string](state.NewStore(
			NewState[string, string](""),
			state.WithPersistence[State[string, string]](path),
		)),
	)
	first.SetValue("ada")
	first.SetEditedManually(true)
	first.Close()

	restored := state.NewStore(NewState[string, string](""), state.WithPersistence[State[string, string]](path))
	assert.Equal(t, "ada", restored.Value().Value())
	assert.True(t, restored.Value().EditedManually())
}

func TestResume_KeepsRestoredSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "username.json")

	first := New[string, string]("",
		WithObservable[string, string](state.NewStore(
			NewState[string, string](""),
			state.WithPersistence[State[string, string]](path),
		)),
	)
	first.SetValue("ad")
	first.SetError("too short")
	first.SetAutovalidate(true)
	first.Close()

	store := state.NewStore(NewState[string, string](""), state.WithPersistence[State[string, string]](path))
	second := Resume(store.Value(), WithObservable[string, string](store))
	t.Cleanup(second.Close)

	st := second.State()
	assert.Equal(t, "ad", st.Value())
	assert.True(t, st.Autovalidate())
	msg, ok := st.Error()
	require.True(t, ok)
	assert.Equal(t, "too short", msg)
}
