package sdict

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customName string

type person struct {
	Name customName `sdict:"name"`
}

func TestToMapSerializesNamedStringTypes(t *testing.T) {
	p, err := Construct(person{}, nil, map[string]any{"name": customName("Haha")})
	require.NoError(t, err)

	// the stored value keeps its declared type
	_, ok := p.Attr("name").(customName)
	assert.True(t, ok)

	// the serialized value is a plain string
	plain := p.ToMap()
	v, ok := plain["name"].(string)
	require.True(t, ok, "named string type must be stripped, got %T", plain["name"])
	assert.Equal(t, "Haha", v)
}

func TestToMapProcessesRawContainers(t *testing.T) {
	pt, err := New(Point{}, map[string]any{"x": 1})
	require.NoError(t, err)

	w, err := New(weirdTypes{}, nil)
	require.NoError(t, err)
	// raw containers stored through the unguarded write path still serialize
	w.SetAttr("x", []any{pt, "s"})
	w.Set("u", map[string]any{"pt": pt})

	want := map[string]any{
		"x": []any{map[string]any{"x": 1}, "s"},
		"u": map[string]any{"pt": map[string]any{"x": 1}},
	}
	if diff := cmp.Diff(want, w.ToMap()); diff != "" {
		t.Errorf("unexpected plain structure (-want +got):\n%s", diff)
	}
}

func TestToMapKeepsByteSlicesOpaque(t *testing.T) {
	w, err := New(weirdTypes{}, nil)
	require.NoError(t, err)
	w.SetAttr("x", []byte("raw"))

	assert.Equal(t, []byte("raw"), w.ToMap()["x"])
}

type msgHeader struct {
	Title string `sdict:"title" default:"Hello, world!"`
	Sent  string `sdict:"sent"`
}

type msgTag struct {
	Value string `sdict:"value"`
}

type message struct {
	Header msgHeader `sdict:"header"`
	Body   string    `sdict:"body"`
	Tags   []msgTag  `sdict:"tags"`
}

func TestMessageRoundTrip(t *testing.T) {
	source := map[string]any{
		"header": map[string]any{
			"sent": "2018-10-20 18:09:42",
		},
		"body": "What is going on?",
		"tags": []any{
			map[string]any{"value": "unread"},
		},
	}

	m, err := New(message{}, source)
	require.NoError(t, err)

	header := m.Attr("header").(*Dict)
	assert.Equal(t, "Hello, world!", header.Attr("title"))
	assert.Equal(t, "2018-10-20 18:09:42", header.Attr("sent"))

	tags := m.Attr("tags").([]any)
	assert.Equal(t, "unread", tags[0].(*Dict).Attr("value"))

	// un-set defaults must not leak into the serialized structure
	if diff := cmp.Diff(source, m.ToMap()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
