package convert

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jbasko/strictus-dictus/sdict"
)

type point struct {
	X int `sdict:"x"`
	Y int `sdict:"y"`
}

type line struct {
	Start point `sdict:"start"`
	End   point `sdict:"end"`
}

type cloud struct {
	Points []point          `sdict:"points"`
	Edges  map[string]point `sdict:"edges"`
}

func TestFromJSON(t *testing.T) {
	raw := []byte(`{"start": {"x": 3, "y": 4}}`)
	l, err := FromJSON(line{}, raw)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	start, ok := l.Attr("start").(*sdict.Dict)
	if !ok {
		t.Fatalf("start not parsed, got %T", l.Attr("start"))
	}
	// JSON numbers decode as float64
	if got := start.Attr("x"); got != float64(3) {
		t.Errorf("x = %v (%T), want 3", got, got)
	}
	if !sdict.IsEmpty(l.Attr("end")) {
		t.Errorf("end should be EMPTY")
	}
}

func TestFromYAML(t *testing.T) {
	raw := []byte("start:\n  x: 3\n  y: 4\n")
	l, err := FromYAML(line{}, raw)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	start := l.Attr("start").(*sdict.Dict)
	// YAML whole numbers decode as int, same as HCL
	if got := start.Attr("x"); got != 3 {
		t.Errorf("x = %v (%T), want int 3", got, got)
	}

	want := map[string]any{"start": map[string]any{"x": 3, "y": 4}}
	if !reflect.DeepEqual(l.ToMap(), want) {
		t.Errorf("got:  %#v", l.ToMap())
		t.Errorf("want: %#v", want)
	}
}

func TestFromHCL(t *testing.T) {
	raw := []byte(`
start {
  x = 3
  y = 4
}
`)
	l, err := FromHCL(line{}, raw)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	start := l.Attr("start").(*sdict.Dict)
	if got := start.Attr("x"); got != 3 {
		t.Errorf("x = %v (%T), want int 3", got, got)
	}

	want := map[string]any{"start": map[string]any{"x": 3, "y": 4}}
	if !reflect.DeepEqual(l.ToMap(), want) {
		t.Errorf("got:  %#v", l.ToMap())
		t.Errorf("want: %#v", want)
	}
}

func TestFromHCLContainers(t *testing.T) {
	raw := []byte(`
points = [
  {
    "x" = 1
    "y" = 1
  },
  {
    "x" = 2
    "y" = 2
  },
]
edges "topleft" {
  x = -5
  y = 5
}
`)
	c, err := FromHCL(cloud{}, raw)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	points := c.Attr("points").([]any)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if got := points[1].(*sdict.Dict).Attr("x"); got != 2 {
		t.Errorf("points[1].x = %v, want 2", got)
	}

	edges := c.Attr("edges").(map[string]any)
	if got := edges["topleft"].(*sdict.Dict).Attr("x"); got != -5 {
		t.Errorf("edges[topleft].x = %v, want -5", got)
	}
}

func TestHCLRoundTrip(t *testing.T) {
	raw := []byte(`
start {
  x = 3
  y = 4
}
end {
  x = 0
  y = 9
}
`)
	l, err := FromHCL(line{}, raw)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	out, err := ToHCL(l)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	back, err := FromHCL(line{}, out)
	if err != nil {
		t.Fatalf("error re-parsing:\n%s\n%v", out, err)
	}
	if !reflect.DeepEqual(l.ToMap(), back.ToMap()) {
		t.Errorf("hcl:  %s", out)
		t.Errorf("got:  %#v", back.ToMap())
		t.Errorf("want: %#v", l.ToMap())
	}
}

func TestToJSONAndToYAML(t *testing.T) {
	l, err := FromYAML(line{}, []byte("start:\n  x: 3\n  y: 4\n"))
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	jsn, err := ToJSON(l)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if string(jsn) != `{"start":{"x":3,"y":4}}` {
		t.Errorf("unexpected JSON: %s", jsn)
	}

	yml, err := ToYAML(l)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if !strings.Contains(string(yml), "x: 3") {
		t.Errorf("unexpected YAML: %s", yml)
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	_, err := FromJSON(point{}, []byte(`{"z": 5}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Unsupported key(s)") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEmptyInputRejected(t *testing.T) {
	for _, fn := range []func(any, []byte) (*sdict.Dict, error){FromJSON, FromYAML, FromHCL} {
		if _, err := fn(point{}, nil); err == nil {
			t.Error("expected error for empty input")
		}
	}
}
