package tasks

import (
	"encoding/json"
	"testing"

	"task-list/errors"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

func TestValidateTitle(t *testing.T) {
	testCases := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"plain title", "Buy milk", false},
		{"padded title", "  Buy milk  ", false},
		{"empty", "", true},
		{"spaces only", "   ", true},
		{"mixed whitespace", "\t\n\r ", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTitle(tc.title)
			if tc.wantErr {
				assert.Assert(t, errors.IsEmptyTitle(err))
				return
			}
			assert.NilError(t, err)
		})
	}
}

func TestRequestValidate(t *testing.T) {
	assert.NilError(t, InsertTask{NonEmptyTitle: "x"}.Validate())
	assert.Assert(t, errors.IsEmptyTitle(InsertTask{NonEmptyTitle: " ", Details: "d"}.Validate()))
	assert.NilError(t, UpdateTask{ID: 1, NewTitle: "x"}.Validate())
	assert.Assert(t, errors.IsEmptyTitle(UpdateTask{ID: 1}.Validate()))
}

func TestTask_Matches(t *testing.T) {
	task := Task{ID: 1, Title: "Buy milk", Details: "Semi-skimmed"}

	assert.Assert(t, task.Matches(""))
	assert.Assert(t, task.Matches("MILK"))
	assert.Assert(t, task.Matches("skim"))
	assert.Assert(t, !task.Matches("bread"))
}

func TestWireFormat(t *testing.T) {
	data, err := json.Marshal(Task{ID: 4, Title: "t", Details: ""})
	require.NoError(t, err)
	assert.Equal(t, `{"id":4,"title":"t","details":""}`, string(data))

	var insert InsertTask
	require.NoError(t, json.Unmarshal([]byte(`{"non_empty_title":"a","details":"b"}`), &insert))
	assert.DeepEqual(t, InsertTask{NonEmptyTitle: "a", Details: "b"}, insert)

	var update UpdateTask
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"new_title":"a","details":"b"}`), &update))
	assert.DeepEqual(t, UpdateTask{ID: 2, NewTitle: "a", Details: "b"}, update)
}
