package meta

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tqbf/tgzmeta/pkg/clock"
	"github.com/tqbf/tgzmeta/pkg/manifest"
)

const now = "2020-03-10T12:34:56.789Z"

func parse(t *testing.T, text string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse(text)
	require.NoError(t, err)
	return m
}

func ptr(s string) *string { return &s }

func TestBuildMinimal(t *testing.T) {
	doc, err := Build(parse(t, `{"name":"foo"}`), clock.Fixed(now))
	require.NoError(t, err)

	want := &Document{
		Name:     "foo",
		Time:     Time{Created: now, Modified: now},
		Users:    map[string]any{},
		Versions: map[string]any{},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("wrong document\n%s", diff)
	}

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &top))
	assert.Len(t, top, 4)
	assert.JSONEq(t, `{}`, string(top["users"]))
	assert.JSONEq(t, `{}`, string(top["versions"]))
}

func TestBuildOptionalFields(t *testing.T) {
	doc, err := Build(parse(t,
		`{"name":"left-pad","_id":"left-pad@1.0.0","readme":"# left-pad","version":"1.0.0"}`,
	), clock.Fixed(now))
	require.NoError(t, err)

	want := &Document{
		Name:     "left-pad",
		Time:     Time{Created: now, Modified: now},
		Users:    map[string]any{},
		Versions: map[string]any{},
		ID:       ptr("left-pad@1.0.0"),
		Readme:   ptr("# left-pad"),
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("wrong document\n%s", diff)
	}
}

func TestBuildJSONShape(t *testing.T) {
	doc, err := BuildAt(parse(t,
		`{"name":"left-pad","readme":"# left-pad","_id":"left-pad@1.0.0"}`,
	), now)
	require.NoError(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"left-pad","time":{"created":"`+now+`","modified":"`+now+`"},`+
			`"users":{},"versions":{},"_id":"left-pad@1.0.0","readme":"# left-pad"}`,
		string(out),
	)
}

func TestBuildSingleTimestampSample(t *testing.T) {
	c := &countingClock{}
	doc, err := Build(parse(t, `{"name":"foo"}`), c)
	require.NoError(t, err)
	assert.Equal(t, 1, c.calls)
	assert.Equal(t, doc.Time.Created, doc.Time.Modified)
}

func TestBuildMissingName(t *testing.T) {
	cases := []string{
		`{}`,
		`{"_id":"foo@1.0.0"}`,
		`{"name":null}`,
		`{"name":["foo"]}`,
	}
	for _, text := range cases {
		c := &countingClock{}
		doc, err := Build(parse(t, text), c)
		assert.Nil(t, doc)
		var mf *MissingFieldError
		require.ErrorAs(t, err, &mf, "manifest %s", text)
		assert.Equal(t, "name", mf.Field)
		assert.Zero(t, c.calls)
	}
}

func TestBuildNilManifest(t *testing.T) {
	_, err := BuildAt(nil, now)
	var mf *MissingFieldError
	assert.ErrorAs(t, err, &mf)
}

func TestBuildDoesNotAliasManifest(t *testing.T) {
	m := parse(t, `{"name":"foo","readme":"old"}`)
	doc, err := BuildAt(m, now)
	require.NoError(t, err)

	*m.Readme = "new"
	assert.Equal(t, "old", *doc.Readme)
}

type countingClock struct {
	calls int
}

func (c *countingClock) Now() string {
	c.calls++
	return now
}
